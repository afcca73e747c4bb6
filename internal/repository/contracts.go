package repository

import (
	"context"

	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// TeamRepository declares persistence operations for teams.
// List counts eagerly and returns a deferred result; rows are read when the caller asks for them.
type TeamRepository interface {
	Create(ctx context.Context, t model.Team) (model.Team, error)
	GetByID(ctx context.Context, id int64) (model.Team, error)
	List(ctx context.Context, p listing.Pagination) (listing.ListResult[model.Team], error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// PlayerRepository declares persistence operations for players.
type PlayerRepository interface {
	Create(ctx context.Context, p model.Player) (model.Player, error)
	GetByID(ctx context.Context, id int64) (model.Player, error)
	ListByTeam(ctx context.Context, teamID int64, p listing.Pagination) (listing.ListResult[model.Player], error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// GameRepository declares persistence operations for games.
type GameRepository interface {
	Create(ctx context.Context, g model.Game) (model.Game, error)
	GetByID(ctx context.Context, id int64) (model.Game, error)
	List(ctx context.Context, p listing.Pagination) (listing.ListResult[model.Game], error)
}

// StatsRepository declares operations for player stat lines per game.
// A box score is small and bounded, so ListByGame always returns it whole.
type StatsRepository interface {
	UpsertStatLine(ctx context.Context, s model.PlayerStatLine) (model.PlayerStatLine, error)
	ListByGame(ctx context.Context, gameID int64) ([]model.PlayerStatLine, error)
}
