package postgres

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository"
)

var statColumns = []string{
	"id", "player_id", "game_id", "points", "rebounds", "assists", "steals",
	"blocks", "fouls", "turnovers", "minutes_played", "created_at", "updated_at",
}

const upsertStatConflict = `ON CONFLICT (player_id, game_id) DO UPDATE SET
	points = EXCLUDED.points,
	rebounds = EXCLUDED.rebounds,
	assists = EXCLUDED.assists,
	steals = EXCLUDED.steals,
	blocks = EXCLUDED.blocks,
	fouls = EXCLUDED.fouls,
	turnovers = EXCLUDED.turnovers,
	minutes_played = EXCLUDED.minutes_played,
	updated_at = NOW()`

type statsRepository struct{ pool *pgxpool.Pool }

func NewStatsRepository(pool *pgxpool.Pool) repository.StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) UpsertStatLine(ctx context.Context, s model.PlayerStatLine) (model.PlayerStatLine, error) {
	return queryOne[model.PlayerStatLine](ctx, r.pool, psql.
		Insert("player_stats").
		Columns("player_id", "game_id", "points", "rebounds", "assists", "steals", "blocks", "fouls", "turnovers", "minutes_played").
		Values(s.PlayerID, s.GameID, s.Points, s.Rebounds, s.Assists, s.Steals, s.Blocks, s.Fouls, s.Turnovers, s.MinutesPlayed).
		Suffix(upsertStatConflict+" "+returning(statColumns)))
}

func (r *statsRepository) ListByGame(ctx context.Context, gameID int64) ([]model.PlayerStatLine, error) {
	return NewQuery[model.PlayerStatLine](r.pool, "player_stats", statColumns...).
		Where(sq.Eq{"game_id": gameID}).
		OrderBy("id ASC").
		Fetch(ctx)
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

var _ repository.StatsRepository = (*statsRepository)(nil)
