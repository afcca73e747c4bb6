package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository"
)

var gameColumns = []string{"id", "season", "date", "home_team_id", "away_team_id", "status", "created_at", "updated_at"}

type gameRepository struct{ pool *pgxpool.Pool }

func NewGameRepository(pool *pgxpool.Pool) repository.GameRepository {
	return &gameRepository{pool: pool}
}

func (r *gameRepository) query() Query[model.Game] {
	return NewQuery[model.Game](r.pool, "games", gameColumns...)
}

func (r *gameRepository) Create(ctx context.Context, g model.Game) (model.Game, error) {
	return queryOne[model.Game](ctx, r.pool, psql.
		Insert("games").
		Columns("season", "date", "home_team_id", "away_team_id", "status").
		Values(g.Season, g.Date, g.HomeTeamID, g.AwayTeamID, g.Status).
		Suffix(returning(gameColumns)))
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (model.Game, error) {
	return queryOne[model.Game](ctx, r.pool, r.query().Where(sq.Eq{"id": id}))
}

// List returns the newest games first.
func (r *gameRepository) List(ctx context.Context, p listing.Pagination) (listing.ListResult[model.Game], error) {
	return listPage(ctx, r.query().OrderBy("date DESC", "id DESC"), p)
}

var _ repository.GameRepository = (*gameRepository)(nil)
