package service

import (
	"context"
	"errors"

	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository"
	"github.com/rs/zerolog"
)

const (
	maxFouls   = 6
	maxMinutes = 48.0
)

type statsService struct {
	stats   repository.StatsRepository
	players repository.PlayerRepository
	games   repository.GameRepository
	tx      repository.TxManager
	paging  Paging
	log     zerolog.Logger
}

func NewStatsService(stats repository.StatsRepository, players repository.PlayerRepository, games repository.GameRepository, tx repository.TxManager, paging Paging, logger zerolog.Logger) StatsService {
	l := logger.With().Str("module", "service").Str("component", "stats").Logger()
	return &statsService{stats: stats, players: players, games: games, tx: tx, paging: paging, log: l}
}

func (s *statsService) UpsertStatLine(ctx context.Context, line model.PlayerStatLine) (model.PlayerStatLine, error) {
	var ferrs []FieldError
	if line.PlayerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "must be > 0"})
	}
	if line.GameID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "game_id", Message: "must be > 0"})
	}
	for _, c := range []struct {
		field string
		value int
	}{
		{"points", line.Points},
		{"rebounds", line.Rebounds},
		{"assists", line.Assists},
		{"steals", line.Steals},
		{"blocks", line.Blocks},
		{"turnovers", line.Turnovers},
	} {
		if c.value < 0 {
			ferrs = append(ferrs, FieldError{Field: c.field, Message: "must be >= 0"})
		}
	}
	if line.Fouls < 0 || line.Fouls > maxFouls {
		ferrs = append(ferrs, FieldError{Field: "fouls", Message: "must be between 0 and 6"})
	}
	if line.MinutesPlayed < 0 || float64(line.MinutesPlayed) > maxMinutes {
		ferrs = append(ferrs, FieldError{Field: "minutes_played", Message: "must be between 0 and 48.0"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.PlayerStatLine{}, err
	}

	var out model.PlayerStatLine
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var existence []FieldError
		if _, err := s.players.GetByID(ctx, line.PlayerID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			existence = append(existence, FieldError{Field: "player_id", Message: "player does not exist"})
		}
		if _, err := s.games.GetByID(ctx, line.GameID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			existence = append(existence, FieldError{Field: "game_id", Message: "game does not exist"})
		}
		if err := NewInvalidInputError(existence); err != nil {
			return err
		}

		saved, err := s.stats.UpsertStatLine(ctx, line)
		if err != nil {
			return err
		}
		out = saved
		return nil
	})
	if err != nil {
		return model.PlayerStatLine{}, err
	}
	return out, nil
}

// ListStatsByGame loads the whole box score, which is small and bounded, and
// pages it in memory. The result is materialized: reads never go back to the store.
func (s *statsService) ListStatsByGame(ctx context.Context, gameID int64, page listing.Pagination) (listing.ListResult[model.PlayerStatLine], error) {
	if gameID <= 0 {
		return listing.ListResult[model.PlayerStatLine]{}, NewInvalidInputError([]FieldError{{Field: "game_id", Message: "must be > 0"}})
	}
	if _, err := s.games.GetByID(ctx, gameID); err != nil {
		return listing.ListResult[model.PlayerStatLine]{}, err
	}
	lines, err := s.stats.ListByGame(ctx, gameID)
	if err != nil {
		s.log.Error().Err(err).Int64("game_id", gameID).Msg("list stats failed")
		return listing.ListResult[model.PlayerStatLine]{}, err
	}

	p, err := normalizePage(page, s.paging)
	if err != nil {
		return listing.ListResult[model.PlayerStatLine]{}, err
	}
	return listing.FromSlice(window(lines, p), p, len(lines)), nil
}

func window[T any](items []T, p listing.Pagination) []T {
	start := min(max(p.Offset(), 0), len(items))
	end := min(start+p.Limit(), len(items))
	return items[start:end]
}
