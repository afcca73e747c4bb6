package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository"
)

var playerColumns = []string{"id", "team_id", "first_name", "last_name", "position", "created_at", "updated_at"}

type playerRepository struct{ pool *pgxpool.Pool }

func NewPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return &playerRepository{pool: pool}
}

func (r *playerRepository) query() Query[model.Player] {
	return NewQuery[model.Player](r.pool, "players", playerColumns...)
}

func (r *playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	return queryOne[model.Player](ctx, r.pool, psql.
		Insert("players").
		Columns("team_id", "first_name", "last_name", "position").
		Values(p.TeamID, p.FirstName, p.LastName, p.Position).
		Suffix(returning(playerColumns)))
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (model.Player, error) {
	return queryOne[model.Player](ctx, r.pool, r.query().Where(sq.Eq{"id": id}))
}

func (r *playerRepository) ListByTeam(ctx context.Context, teamID int64, p listing.Pagination) (listing.ListResult[model.Player], error) {
	q := r.query().Where(sq.Eq{"team_id": teamID}).OrderBy("id ASC")
	return listPage(ctx, q, p)
}

// Exists performs a lightweight check to see if a player with the given ID exists.
func (r *playerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.pool, "players", id)
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
