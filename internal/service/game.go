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

type gameService struct {
	games  repository.GameRepository
	teams  repository.TeamRepository
	tx     repository.TxManager
	paging Paging
	log    zerolog.Logger
}

func NewGameService(games repository.GameRepository, teams repository.TeamRepository, tx repository.TxManager, paging Paging, logger zerolog.Logger) GameService {
	l := logger.With().Str("module", "service").Str("component", "game").Logger()
	return &gameService{games: games, teams: teams, tx: tx, paging: paging, log: l}
}

func (s *gameService) CreateGame(ctx context.Context, season string, date time.Time, homeID, awayID int64, status string) (model.Game, error) {
	season = strings.TrimSpace(season)
	status = normalizeStatus(status)

	var ferrs []FieldError
	if homeID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "home_team_id", Message: "must be > 0"})
	}
	if awayID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "away_team_id", Message: "must be > 0"})
	}
	if homeID > 0 && homeID == awayID {
		ferrs = append(ferrs, FieldError{Field: "teams", Message: "home and away must differ"})
	}
	if date.IsZero() {
		ferrs = append(ferrs, FieldError{Field: "date", Message: "must be set"})
	}
	if !IsValidSeason(season) {
		ferrs = append(ferrs, FieldError{Field: "season", Message: "invalid format, expected YYYY-YY"})
	}
	if !isValidGameStatus(status) {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of scheduled|in_progress|finished"})
	}
	// structural problems never reach the database
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("game validation failed (structure)")
		return model.Game{}, err
	}

	var out model.Game
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var existence []FieldError
		for _, ref := range []struct {
			field string
			id    int64
		}{{"home_team_id", homeID}, {"away_team_id", awayID}} {
			ok, err := s.teams.Exists(ctx, ref.id)
			if err != nil {
				return err
			}
			if !ok {
				existence = append(existence, FieldError{Field: ref.field, Message: "team does not exist"})
			}
		}
		if err := NewInvalidInputError(existence); err != nil {
			return err
		}

		created, err := s.games.Create(ctx, model.Game{Season: season, Date: date.UTC(), HomeTeamID: homeID, AwayTeamID: awayID, Status: status})
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidInput) {
			s.log.Error().Err(err).Int64("home_id", homeID).Int64("away_id", awayID).Msg("create game failed")
		}
		return model.Game{}, err
	}
	return out, nil
}

func (s *gameService) GetGame(ctx context.Context, id int64) (model.Game, error) {
	if id <= 0 {
		return model.Game{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.games.GetByID(ctx, id)
}

func (s *gameService) ListGames(ctx context.Context, page listing.Pagination) (listing.ListResult[model.Game], error) {
	p, err := normalizePage(page, s.paging)
	if err != nil {
		return listing.ListResult[model.Game]{}, err
	}
	res, err := s.games.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("page", p.Page).Int("size", p.Size).Msg("list games failed")
		return listing.ListResult[model.Game]{}, err
	}
	return res, nil
}
