package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository"
	"github.com/maxviazov/listresult/internal/repository/memory"
	"github.com/maxviazov/listresult/internal/service"
)

var testPaging = service.Paging{DefaultSize: 3, MaxSize: 5}

type fixture struct {
	store   *memory.Store
	teams   service.TeamService
	players service.PlayerService
	games   service.GameService
	stats   service.StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zerolog.New(io.Discard)
	st := memory.NewStore()
	teams := memory.NewTeamRepository(st)
	players := memory.NewPlayerRepository(st)
	games := memory.NewGameRepository(st)
	tx := memory.NewTxManager()
	return &fixture{
		store:   st,
		teams:   service.NewTeamService(teams, testPaging, log),
		players: service.NewPlayerService(players, teams, testPaging, log),
		games:   service.NewGameService(games, teams, tx, testPaging, log),
		stats:   service.NewStatsService(memory.NewStatsRepository(st), players, games, tx, testPaging, log),
	}
}

func (f *fixture) team(t *testing.T, name string) model.Team {
	t.Helper()
	tm, err := f.teams.CreateTeam(context.Background(), name)
	require.NoError(t, err)
	return tm
}

func (f *fixture) player(t *testing.T, teamID int64, last string) model.Player {
	t.Helper()
	p, err := f.players.CreatePlayer(context.Background(), teamID, "Test", last, "pg")
	require.NoError(t, err)
	return p
}

func (f *fixture) game(t *testing.T, home, away int64) model.Game {
	t.Helper()
	g, err := f.games.CreateGame(context.Background(), "2024-25", time.Date(2024, 11, 1, 19, 0, 0, 0, time.UTC), home, away, "scheduled")
	require.NoError(t, err)
	return g
}

func fieldNames(err error) []string {
	var out []string
	for _, fe := range service.FieldErrors(err) {
		out = append(out, fe.Field)
	}
	return out
}

// pageRecorder captures the pagination the service hands to the repository.
type pageRecorder struct {
	repository.TeamRepository
	last listing.Pagination
}

func (r *pageRecorder) List(ctx context.Context, p listing.Pagination) (listing.ListResult[model.Team], error) {
	r.last = p
	return r.TeamRepository.List(ctx, p)
}
