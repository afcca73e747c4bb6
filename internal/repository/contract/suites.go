// Package contract holds behaviour suites every repository backend must pass.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository"
)

type TeamFactory func(t *testing.T) (repository.TeamRepository, func())

type PlayerFactory func(t *testing.T) (repo repository.PlayerRepository, createTeam func(ctx context.Context, name string) (int64, error), cleanup func())

type GameFactory func(t *testing.T) (repo repository.GameRepository, createTeam func(ctx context.Context, name string) (int64, error), cleanup func())

type StatsFactory func(t *testing.T) (repo repository.StatsRepository, mkPlayer func(ctx context.Context) (int64, error), mkGame func(ctx context.Context) (int64, error), cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, teams repository.TeamRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func RunTeamRepositoryContract(t *testing.T, makeRepo TeamFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Team{Name: "Warriors"})
		require.NoError(t, err)
		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Warriors", got.Name)

		ok, err := repo.Exists(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		ok, err := repo.Exists(context.Background(), 999999)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list_is_deferred_with_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			_, err := repo.Create(ctx, model.Team{Name: fmt.Sprintf("T-%c", 'A'+i)})
			require.NoError(t, err)
		}

		res, err := repo.List(ctx, listing.Pagination{Page: 0, Size: 3})
		require.NoError(t, err)
		assert.True(t, res.IsQueryable())
		assert.Equal(t, listing.PageDetail{Page: 0, Size: 3, Total: 7, TotalPages: 3, HasNext: true}, res.Page())

		items, err := res.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"T-A", "T-B", "T-C"}, teamNames(items))

		res2, err := repo.List(ctx, listing.Pagination{Page: 2, Size: 3})
		require.NoError(t, err)
		items2, err := res2.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"T-G"}, teamNames(items2))
		assert.False(t, res2.Page().HasNext)
		assert.True(t, res2.Page().HasPrevious)
	})

	t.Run("list_project_to_summary", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for _, name := range []string{"Celtics", "Bulls", "Heat"} {
			_, err := repo.Create(ctx, model.Team{Name: name})
			require.NoError(t, err)
		}

		res, err := repo.List(ctx, listing.Pagination{Page: 0, Size: 10})
		require.NoError(t, err)
		full, err := res.GetData(ctx)
		require.NoError(t, err)
		summaries, err := listing.ProjectTo(ctx, res, model.TeamSummaryProjection)
		require.NoError(t, err)

		require.Len(t, summaries, len(full))
		for i, team := range full {
			assert.Equal(t, model.TeamSummaryProjection.Map(team), summaries[i])
		}
	})

	t.Run("list_sees_rows_added_after_listing", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		_, err := repo.Create(ctx, model.Team{Name: "Early"})
		require.NoError(t, err)
		res, err := repo.List(ctx, listing.Pagination{Page: 0, Size: 10})
		require.NoError(t, err)
		_, err = repo.Create(ctx, model.Team{Name: "Late"})
		require.NoError(t, err)

		items, err := res.GetData(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 2, "deferred results read at fetch time")
		assert.Equal(t, 1, res.Page().Total, "the total is fixed when listing")
	})

	t.Run("list_cancelled_fetch", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Create(context.Background(), model.Team{Name: "Only"})
		require.NoError(t, err)
		res, err := repo.List(context.Background(), listing.Pagination{Page: 0, Size: 10})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		items, err := res.GetData(ctx)
		assert.Nil(t, items)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("create_duplicate_name_conflict", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		_, err := repo.Create(ctx, model.Team{Name: "Dup"})
		require.NoError(t, err)
		_, err = repo.Create(ctx, model.Team{Name: "Dup"})
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)
	})
}

func RunPlayerRepositoryContract(t *testing.T, makeRepo PlayerFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, mkTeam, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		teamID, err := mkTeam(ctx, "Bulls")
		require.NoError(t, err)
		created, err := repo.Create(ctx, model.Player{TeamID: teamID, FirstName: "Michael", LastName: "Jordan", Position: "SG"})
		require.NoError(t, err)
		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, teamID, got.TeamID)
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 42424242)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("list_by_team_pagination", func(t *testing.T) {
		repo, mkTeam, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		teamID, err := mkTeam(ctx, "Lakers")
		require.NoError(t, err)
		otherID, err := mkTeam(ctx, "Clippers")
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			_, err := repo.Create(ctx, model.Player{TeamID: teamID, FirstName: "P", LastName: string(rune('A' + i)), Position: "SF"})
			require.NoError(t, err)
		}
		_, err = repo.Create(ctx, model.Player{TeamID: otherID, FirstName: "Other", LastName: "Guy", Position: "C"})
		require.NoError(t, err)

		res, err := repo.ListByTeam(ctx, teamID, listing.Pagination{Page: 1, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, 5, res.Page().Total)
		assert.Equal(t, 3, res.Page().TotalPages)

		summaries, err := listing.ProjectTo(ctx, res, model.PlayerSummaryProjection)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, "P C", summaries[0].FullName)
		assert.Equal(t, "P D", summaries[1].FullName)
		assert.Equal(t, "SF", summaries[0].Position)
	})

	t.Run("create_fk_violation_conflict", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Create(context.Background(), model.Player{TeamID: 9999999, FirstName: "X", LastName: "Y", Position: "PG"})
		assert.ErrorIs(t, err, repository.ErrConflict)
	})
}

func RunGameRepositoryContract(t *testing.T, makeRepo GameFactory) {
	t.Helper()

	t.Run("create_get_list", func(t *testing.T) {
		repo, mkTeam, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		homeID, err := mkTeam(ctx, "Home")
		require.NoError(t, err)
		awayID, err := mkTeam(ctx, "Away")
		require.NoError(t, err)

		base := time.Date(2025, 1, 10, 19, 30, 0, 0, time.UTC)
		var ids []int64
		for i := 0; i < 3; i++ {
			g, err := repo.Create(ctx, model.Game{Season: "2024-25", Date: base.AddDate(0, 0, i), HomeTeamID: homeID, AwayTeamID: awayID, Status: "scheduled"})
			require.NoError(t, err)
			ids = append(ids, g.ID)
		}
		got, err := repo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, homeID, got.HomeTeamID)
		assert.Equal(t, awayID, got.AwayTeamID)

		res, err := repo.List(ctx, listing.Pagination{Page: 0, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Page().Total)
		summaries, err := listing.ProjectTo(ctx, res, model.GameSummaryProjection)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, ids[2], summaries[0].ID, "newest first")
		assert.Equal(t, ids[1], summaries[1].ID)
		assert.Equal(t, "scheduled", summaries[0].Status)
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 7777777)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func RunStatsRepositoryContract(t *testing.T, makeRepo StatsFactory) {
	t.Helper()

	t.Run("upsert_and_list", func(t *testing.T) {
		repo, mkPlayer, mkGame, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		pid, err := mkPlayer(ctx)
		require.NoError(t, err)
		gid, err := mkGame(ctx)
		require.NoError(t, err)

		line := model.PlayerStatLine{PlayerID: pid, GameID: gid, Points: 10}
		l1, err := repo.UpsertStatLine(ctx, line)
		require.NoError(t, err)
		assert.Equal(t, 10, l1.Points)

		line.Points = 22
		l2, err := repo.UpsertStatLine(ctx, line)
		require.NoError(t, err)
		assert.Equal(t, 22, l2.Points)
		assert.Equal(t, l1.ID, l2.ID)

		list, err := repo.ListByGame(ctx, gid)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, 22, list[0].Points)
	})

	t.Run("list_empty_ok", func(t *testing.T) {
		repo, _, mkGame, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		gid, err := mkGame(ctx)
		require.NoError(t, err)
		list, err := repo.ListByGame(ctx, gid)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

// RunTxCommitContract checks that work done inside WithinTx is visible afterwards.
func RunTxCommitContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, teams, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := teams.Create(ctx, model.Team{Name: "TxCommit"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		require.NoError(t, err)
		_, err = teams.GetByID(ctx, createdID)
		assert.NoError(t, err)
	})

	t.Run("error_is_returned", func(t *testing.T) {
		tx, _, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		marker := errors.New("boom")
		err := tx.WithinTx(context.Background(), func(context.Context) error { return marker })
		assert.ErrorIs(t, err, marker)
	})
}

// RunTxRollbackContract checks that a failing unit of work leaves nothing behind.
// Only backends with real transactions run it.
func RunTxRollbackContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, teams, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		marker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := teams.Create(ctx, model.Team{Name: "TxRollback"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return marker
		})
		assert.ErrorIs(t, err, marker)
		_, err = teams.GetByID(ctx, createdID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("deferred_list_inside_tx_sees_uncommitted_rows", func(t *testing.T) {
		tx, teams, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := teams.Create(ctx, model.Team{Name: "InTx"}); err != nil {
				return err
			}
			res, err := teams.List(ctx, listing.Pagination{Page: 0, Size: 5})
			if err != nil {
				return err
			}
			items, err := res.GetData(ctx)
			if err != nil {
				return err
			}
			assert.Equal(t, []string{"InTx"}, teamNames(items))
			return errors.New("discard")
		})
		require.Error(t, err)

		res, err := teams.List(ctx, listing.Pagination{Page: 0, Size: 5})
		require.NoError(t, err)
		assert.Equal(t, 0, res.Page().Total)
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		assert.NoError(t, p.Ping(context.Background()))
	})
}

func teamNames(items []model.Team) []string {
	out := make([]string, 0, len(items))
	for _, t := range items {
		out = append(out, t.Name)
	}
	return out
}
