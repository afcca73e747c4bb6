// Package memory implements the repository interfaces on top of memstore.
// It backs the service when app.storage is "memory" and gives the contract
// suites a database-free target.
package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/memstore"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository"
)

// Store holds every table. Writes that check and then insert are serialized
// by mu so uniqueness and reference checks stay consistent.
type Store struct {
	mu      sync.Mutex
	nextID  atomic.Int64
	now     func() time.Time
	Teams   *memstore.Table[model.Team]
	Players *memstore.Table[model.Player]
	Games   *memstore.Table[model.Game]
	Stats   *memstore.Table[model.PlayerStatLine]
}

func NewStore() *Store {
	return &Store{
		now:     func() time.Time { return time.Now().UTC() },
		Teams:   memstore.NewTable(memstore.WithFields(teamFields)),
		Players: memstore.NewTable(memstore.WithFields(playerFields)),
		Games:   memstore.NewTable(memstore.WithFields(gameFields)),
		Stats:   memstore.NewTable[model.PlayerStatLine](),
	}
}

// Truncate empties every table.
func (s *Store) Truncate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Teams.Truncate()
	s.Players.Truncate()
	s.Games.Truncate()
	s.Stats.Truncate()
}

func (s *Store) id() int64 { return s.nextID.Add(1) }

// listPage counts then returns the page as a deferred result, the same
// two-step shape the postgres repositories use.
func listPage[T any](ctx context.Context, q memstore.Query[T], p listing.Pagination) (listing.ListResult[T], error) {
	total, err := q.Count(ctx)
	if err != nil {
		return listing.ListResult[T]{}, err
	}
	return listing.FromQuery[T](q.Paginate(p), p, total), nil
}

func byID[T any](id int64, get func(T) int64) func(T) bool {
	return func(v T) bool { return get(v) == id }
}

type pinger struct{}

// NewPinger reports the in-memory store as always ready.
func NewPinger() repository.Pinger { return pinger{} }

func (pinger) Ping(ctx context.Context) error { return ctx.Err() }

type txManager struct{}

// NewTxManager returns a manager that runs fn directly. The in-memory store
// has no rollback; writes made before an error stay visible.
func NewTxManager() repository.TxManager { return txManager{} }

func (txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error { return fn(ctx) }
