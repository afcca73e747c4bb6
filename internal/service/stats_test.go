package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository"
	"github.com/maxviazov/listresult/internal/service"
)

func TestStatsService_UpsertStatLine_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.stats.UpsertStatLine(context.Background(), model.PlayerStatLine{
		Points: -1, Fouls: 7, MinutesPlayed: 49,
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, []string{"player_id", "game_id", "points", "fouls", "minutes_played"}, fieldNames(err))
}

func TestStatsService_UpsertStatLine_MissingReferences(t *testing.T) {
	f := newFixture(t)

	_, err := f.stats.UpsertStatLine(context.Background(), model.PlayerStatLine{PlayerID: 5, GameID: 6})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, []string{"player_id", "game_id"}, fieldNames(err))
}

func seedBoxScore(t *testing.T, f *fixture, n int) model.Game {
	t.Helper()
	home, away := f.team(t, "Lakers"), f.team(t, "Heat")
	g := f.game(t, home.ID, away.ID)
	for i := range n {
		p := f.player(t, home.ID, string(rune('A'+i)))
		_, err := f.stats.UpsertStatLine(context.Background(), model.PlayerStatLine{
			PlayerID: p.ID, GameID: g.ID, Points: 10 + i, Rebounds: i, Assists: 1, MinutesPlayed: 30,
		})
		require.NoError(t, err)
	}
	return g
}

func TestStatsService_ListStatsByGame_Materialized(t *testing.T) {
	f := newFixture(t)
	g := seedBoxScore(t, f, 5)

	res, err := f.stats.ListStatsByGame(context.Background(), g.ID, listing.Pagination{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.False(t, res.IsQueryable())
	assert.Equal(t, listing.PageDetail{Page: 1, Size: 2, Total: 5, TotalPages: 3, HasNext: true, HasPrevious: true}, res.Page())

	fetchesBefore := f.store.Stats.Stats().Fetches
	lines, err := res.GetData(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, []int{12, 13}, []int{lines[0].Points, lines[1].Points})

	box, err := listing.ProjectTo(context.Background(), res, model.BoxScoreProjection)
	require.NoError(t, err)
	require.Len(t, box, 2)
	assert.Equal(t, "12 PTS, 2 REB, 1 AST, 30.0 MIN", box[0].Line)
	assert.Equal(t, fetchesBefore, f.store.Stats.Stats().Fetches, "materialized reads must not hit the store")
}

func TestStatsService_ListStatsByGame_PastEnd(t *testing.T) {
	f := newFixture(t)
	g := seedBoxScore(t, f, 2)

	res, err := f.stats.ListStatsByGame(context.Background(), g.ID, listing.Pagination{Page: 4, Size: 2})
	require.NoError(t, err)
	lines, err := res.GetData(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, 2, res.Page().Total)
	assert.False(t, res.Page().HasNext)
}

func TestStatsService_ListStatsByGame_HugePage(t *testing.T) {
	f := newFixture(t)
	g := seedBoxScore(t, f, 2)

	_, err := f.stats.ListStatsByGame(context.Background(), g.ID, listing.Pagination{Page: math.MaxInt, Size: 2})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, []string{"page"}, fieldNames(err))

	res, err := f.stats.ListStatsByGame(context.Background(), g.ID, listing.Pagination{Page: testPaging.MaxPage(), Size: testPaging.MaxSize})
	require.NoError(t, err)
	lines, err := res.GetData(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, 2, res.Page().Total)
	assert.False(t, res.Page().HasNext)
}

func TestStatsService_ListStatsByGame_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.stats.ListStatsByGame(context.Background(), -1, listing.Pagination{})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = f.stats.ListStatsByGame(context.Background(), 123, listing.Pagination{})
	require.ErrorIs(t, err, repository.ErrNotFound)
}
