package service

import (
	"context"
	"strings"
	"time"

	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository"
	"github.com/rs/zerolog"
)

// teamService holds team use-case logic: validation + orchestration, no transport / SQL details.
type teamService struct {
	repo   repository.TeamRepository
	paging Paging
	log    zerolog.Logger
}

func NewTeamService(repo repository.TeamRepository, paging Paging, logger zerolog.Logger) TeamService {
	l := logger.With().Str("module", "service").Str("component", "team").Logger()
	return &teamService{repo: repo, paging: paging, log: l}
}

func (s *teamService) CreateTeam(ctx context.Context, name string) (model.Team, error) {
	start := time.Now()
	original := name
	name = strings.TrimSpace(name)

	var ferrs []FieldError
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if ln := len([]rune(name)); ln < 2 || ln > 50 {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 50"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Str("name_raw", original).Interface("field_errors", ferrs).Msg("team validation failed")
		return model.Team{}, err
	}

	out, err := s.repo.Create(ctx, model.Team{Name: name})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("name", name).Msg("create team failed")
		return model.Team{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("team_id", out.ID).Msg("team created")
	return out, nil
}

func (s *teamService) GetTeam(ctx context.Context, id int64) (model.Team, error) {
	if id <= 0 {
		return model.Team{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.repo.GetByID(ctx, id)
}

// ListTeams counts matching teams and hands back a deferred page; the caller
// decides whether to load full rows or a projection.
func (s *teamService) ListTeams(ctx context.Context, page listing.Pagination) (listing.ListResult[model.Team], error) {
	p, err := normalizePage(page, s.paging)
	if err != nil {
		return listing.ListResult[model.Team]{}, err
	}
	res, err := s.repo.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("page", p.Page).Int("size", p.Size).Msg("list teams failed")
		return listing.ListResult[model.Team]{}, err
	}
	return res, nil
}
