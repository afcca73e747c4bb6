package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository"
)

var teamColumns = []string{"id", "name", "created_at", "updated_at"}

type teamRepository struct{ pool *pgxpool.Pool }

func NewTeamRepository(pool *pgxpool.Pool) repository.TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) query() Query[model.Team] {
	return NewQuery[model.Team](r.pool, "teams", teamColumns...)
}

func (r *teamRepository) Create(ctx context.Context, t model.Team) (model.Team, error) {
	return queryOne[model.Team](ctx, r.pool, psql.
		Insert("teams").
		Columns("name").
		Values(t.Name).
		Suffix(returning(teamColumns)))
}

func (r *teamRepository) GetByID(ctx context.Context, id int64) (model.Team, error) {
	return queryOne[model.Team](ctx, r.pool, r.query().Where(sq.Eq{"id": id}))
}

func (r *teamRepository) List(ctx context.Context, p listing.Pagination) (listing.ListResult[model.Team], error) {
	return listPage(ctx, r.query().OrderBy("name ASC", "id ASC"), p)
}

func (r *teamRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.pool, "teams", id)
}

var _ repository.TeamRepository = (*teamRepository)(nil)
