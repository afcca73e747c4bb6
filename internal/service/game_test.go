package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/service"
)

func TestGameService_CreateGame_StructuralValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.games.CreateGame(context.Background(), "2024/25", time.Time{}, 0, 0, "live")
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, []string{"home_team_id", "away_team_id", "date", "season", "status"}, fieldNames(err))

	_, err = f.games.CreateGame(context.Background(), "2024-25", time.Now(), 3, 3, "scheduled")
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, []string{"teams"}, fieldNames(err))
}

func TestGameService_CreateGame_UnknownTeams(t *testing.T) {
	f := newFixture(t)
	home := f.team(t, "Lakers")

	_, err := f.games.CreateGame(context.Background(), "2024-25", time.Now(), home.ID, 777, "scheduled")
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, []string{"away_team_id"}, fieldNames(err))
	assert.Zero(t, f.store.Games.Len())
}

func TestGameService_CreateGame_NormalizesStatusAndDate(t *testing.T) {
	f := newFixture(t)
	home, away := f.team(t, "Lakers"), f.team(t, "Heat")
	local := time.Date(2024, 12, 25, 20, 0, 0, 0, time.FixedZone("EST", -5*3600))

	g, err := f.games.CreateGame(context.Background(), " 2024-25 ", local, home.ID, away.ID, " Finished ")
	require.NoError(t, err)
	assert.Equal(t, "finished", g.Status)
	assert.Equal(t, "2024-25", g.Season)
	assert.Equal(t, time.UTC, g.Date.Location())
	assert.True(t, g.Date.Equal(local))
}

func TestGameService_ListGames_NewestFirst(t *testing.T) {
	f := newFixture(t)
	home, away := f.team(t, "Lakers"), f.team(t, "Heat")
	base := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	for i := range 4 {
		_, err := f.games.CreateGame(context.Background(), "2024-25", base.AddDate(0, 0, i), home.ID, away.ID, "scheduled")
		require.NoError(t, err)
	}

	res, err := f.games.ListGames(context.Background(), listing.Pagination{Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page().TotalPages)

	full, err := res.GetData(context.Background())
	require.NoError(t, err)
	require.Len(t, full, 2)
	assert.True(t, full[0].Date.After(full[1].Date))

	sums, err := listing.ProjectTo(context.Background(), res, model.GameSummaryProjection)
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, full[0].ID, sums[0].ID)
	assert.Equal(t, "scheduled", sums[0].Status)
}
