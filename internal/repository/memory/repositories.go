package memory

import (
	"cmp"
	"context"
	"strings"

	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository"
)

type teamRepository struct{ s *Store }

func NewTeamRepository(s *Store) repository.TeamRepository { return &teamRepository{s: s} }

func (r *teamRepository) Create(ctx context.Context, t model.Team) (model.Team, error) {
	if err := ctx.Err(); err != nil {
		return model.Team{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.Teams.Find(func(x model.Team) bool { return x.Name == t.Name }); dup {
		return model.Team{}, repository.ErrAlreadyExists
	}
	t.ID = r.s.id()
	t.CreatedAt = r.s.now()
	t.UpdatedAt = t.CreatedAt
	r.s.Teams.Insert(t)
	return t, nil
}

func (r *teamRepository) GetByID(_ context.Context, id int64) (model.Team, error) {
	t, ok := r.s.Teams.Find(byID(id, func(t model.Team) int64 { return t.ID }))
	if !ok {
		return model.Team{}, repository.ErrNotFound
	}
	return t, nil
}

func (r *teamRepository) List(ctx context.Context, p listing.Pagination) (listing.ListResult[model.Team], error) {
	q := r.s.Teams.Query().OrderBy(func(a, b model.Team) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return listPage(ctx, q, p)
}

func (r *teamRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.s.Teams.Find(byID(id, func(t model.Team) int64 { return t.ID }))
	return ok, nil
}

type playerRepository struct{ s *Store }

func NewPlayerRepository(s *Store) repository.PlayerRepository { return &playerRepository{s: s} }

func (r *playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ctx.Err(); err != nil {
		return model.Player{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Teams.Find(byID(p.TeamID, func(t model.Team) int64 { return t.ID })); !ok {
		return model.Player{}, repository.ErrConflict
	}
	p.ID = r.s.id()
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	r.s.Players.Insert(p)
	return p, nil
}

func (r *playerRepository) GetByID(_ context.Context, id int64) (model.Player, error) {
	p, ok := r.s.Players.Find(byID(id, func(p model.Player) int64 { return p.ID }))
	if !ok {
		return model.Player{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *playerRepository) ListByTeam(ctx context.Context, teamID int64, p listing.Pagination) (listing.ListResult[model.Player], error) {
	q := r.s.Players.Query().
		Where(func(pl model.Player) bool { return pl.TeamID == teamID }).
		OrderBy(func(a, b model.Player) int { return cmp.Compare(a.ID, b.ID) })
	return listPage(ctx, q, p)
}

func (r *playerRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.s.Players.Find(byID(id, func(p model.Player) int64 { return p.ID }))
	return ok, nil
}

type gameRepository struct{ s *Store }

func NewGameRepository(s *Store) repository.GameRepository { return &gameRepository{s: s} }

func (r *gameRepository) Create(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ctx.Err(); err != nil {
		return model.Game{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if g.HomeTeamID == g.AwayTeamID {
		return model.Game{}, repository.ErrConflict
	}
	for _, id := range []int64{g.HomeTeamID, g.AwayTeamID} {
		if _, ok := r.s.Teams.Find(byID(id, func(t model.Team) int64 { return t.ID })); !ok {
			return model.Game{}, repository.ErrConflict
		}
	}
	g.ID = r.s.id()
	g.CreatedAt = r.s.now()
	g.UpdatedAt = g.CreatedAt
	r.s.Games.Insert(g)
	return g, nil
}

func (r *gameRepository) GetByID(_ context.Context, id int64) (model.Game, error) {
	g, ok := r.s.Games.Find(byID(id, func(g model.Game) int64 { return g.ID }))
	if !ok {
		return model.Game{}, repository.ErrNotFound
	}
	return g, nil
}

// List returns the newest games first.
func (r *gameRepository) List(ctx context.Context, p listing.Pagination) (listing.ListResult[model.Game], error) {
	q := r.s.Games.Query().OrderBy(func(a, b model.Game) int {
		return cmp.Or(b.Date.Compare(a.Date), cmp.Compare(b.ID, a.ID))
	})
	return listPage(ctx, q, p)
}

type statsRepository struct{ s *Store }

func NewStatsRepository(s *Store) repository.StatsRepository { return &statsRepository{s: s} }

func (r *statsRepository) UpsertStatLine(ctx context.Context, line model.PlayerStatLine) (model.PlayerStatLine, error) {
	if err := ctx.Err(); err != nil {
		return model.PlayerStatLine{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Players.Find(byID(line.PlayerID, func(p model.Player) int64 { return p.ID })); !ok {
		return model.PlayerStatLine{}, repository.ErrConflict
	}
	if _, ok := r.s.Games.Find(byID(line.GameID, func(g model.Game) int64 { return g.ID })); !ok {
		return model.PlayerStatLine{}, repository.ErrConflict
	}

	now := r.s.now()
	same := func(x model.PlayerStatLine) bool { return x.PlayerID == line.PlayerID && x.GameID == line.GameID }
	var out model.PlayerStatLine
	updated := r.s.Stats.Update(same, func(x *model.PlayerStatLine) {
		line.ID, line.CreatedAt, line.UpdatedAt = x.ID, x.CreatedAt, now
		*x = line
		out = line
	})
	if updated > 0 {
		return out, nil
	}
	line.ID = r.s.id()
	line.CreatedAt = now
	line.UpdatedAt = now
	r.s.Stats.Insert(line)
	return line, nil
}

func (r *statsRepository) ListByGame(ctx context.Context, gameID int64) ([]model.PlayerStatLine, error) {
	return r.s.Stats.Query().
		Where(func(x model.PlayerStatLine) bool { return x.GameID == gameID }).
		OrderBy(func(a, b model.PlayerStatLine) int { return cmp.Compare(a.ID, b.ID) }).
		Fetch(ctx)
}

var (
	_ repository.TeamRepository   = (*teamRepository)(nil)
	_ repository.PlayerRepository = (*playerRepository)(nil)
	_ repository.GameRepository   = (*gameRepository)(nil)
	_ repository.StatsRepository  = (*statsRepository)(nil)
)
