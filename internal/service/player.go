package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository"
	"github.com/rs/zerolog"
)

type playerService struct {
	players repository.PlayerRepository
	teams   repository.TeamRepository
	paging  Paging
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, teams repository.TeamRepository, paging Paging, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, teams: teams, paging: paging, log: l}
}

func (s *playerService) CreatePlayer(ctx context.Context, teamID int64, firstName, lastName, position string) (model.Player, error) {
	start := time.Now()
	rawPos := position

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	position = normalizePosition(position)

	var ferrs []FieldError
	if teamID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team_id", Message: "must be > 0"})
	}
	ferrs = append(ferrs, nameErrors("first_name", firstName)...)
	ferrs = append(ferrs, nameErrors("last_name", lastName)...)
	if !isValidPosition(position) {
		ferrs = append(ferrs, FieldError{Field: "position", Message: "must be one of PG, SG, SF, PF, C"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Str("pos_raw", rawPos).Msg("player validation failed")
		return model.Player{}, err
	}

	// Existence check improves client UX vs deferring to FK violation.
	if err := s.requireTeam(ctx, teamID); err != nil {
		return model.Player{}, err
	}

	out, err := s.players.Create(ctx, model.Player{TeamID: teamID, FirstName: firstName, LastName: lastName, Position: position})
	if err != nil {
		s.log.Error().Err(err).Int64("team_id", teamID).Msg("create player failed")
		return model.Player{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("player_id", out.ID).Msg("player created")
	return out, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	if id <= 0 {
		return model.Player{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.players.GetByID(ctx, id)
}

// ListPlayersByTeam returns a deferred roster page. An unknown team is a 404,
// not an empty page.
func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int64, page listing.Pagination) (listing.ListResult[model.Player], error) {
	if teamID <= 0 {
		return listing.ListResult[model.Player]{}, NewInvalidInputError([]FieldError{{Field: "team_id", Message: "must be > 0"}})
	}
	ok, err := s.teams.Exists(ctx, teamID)
	if err != nil {
		return listing.ListResult[model.Player]{}, err
	}
	if !ok {
		return listing.ListResult[model.Player]{}, repository.ErrNotFound
	}

	p, err := normalizePage(page, s.paging)
	if err != nil {
		return listing.ListResult[model.Player]{}, err
	}
	res, err := s.players.ListByTeam(ctx, teamID, p)
	if err != nil {
		s.log.Error().Err(err).Int64("team_id", teamID).Int("page", p.Page).Int("size", p.Size).Msg("list players failed")
		return listing.ListResult[model.Player]{}, err
	}
	return res, nil
}

func (s *playerService) requireTeam(ctx context.Context, teamID int64) error {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewInvalidInputError([]FieldError{{Field: "team_id", Message: "team does not exist"}})
		}
		return err
	}
	return nil
}

func nameErrors(field, value string) []FieldError {
	switch {
	case value == "":
		return []FieldError{{Field: field, Message: "must not be empty"}}
	case len([]rune(value)) > 50:
		return []FieldError{{Field: field, Message: "length must be <= 50"}}
	default:
		return nil
	}
}
