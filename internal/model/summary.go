package model

import (
	"fmt"
	"time"

	"github.com/maxviazov/listresult/internal/listing"
)

// TeamSummary is the compact team shape used by list views.
type TeamSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PlayerSummary is the compact roster entry.
type PlayerSummary struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Position string `json:"position"`
}

// GameSummary is the compact schedule entry.
type GameSummary struct {
	ID     int64     `json:"id"`
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Status string    `json:"status"`
}

// BoxScoreLine is the compact per-player stat line of a game.
type BoxScoreLine struct {
	PlayerID int64  `json:"player_id"`
	Line     string `json:"line"`
}

// Summary projections. Fields list the columns Map reads so deferred stores
// load nothing else.
var (
	TeamSummaryProjection = listing.Projection[Team, TeamSummary]{
		Fields: []string{"id", "name"},
		Map: func(t Team) TeamSummary {
			return TeamSummary{ID: t.ID, Name: t.Name}
		},
	}

	PlayerSummaryProjection = listing.Projection[Player, PlayerSummary]{
		Fields: []string{"id", "first_name", "last_name", "position"},
		Map: func(p Player) PlayerSummary {
			return PlayerSummary{ID: p.ID, FullName: p.FirstName + " " + p.LastName, Position: p.Position}
		},
	}

	GameSummaryProjection = listing.Projection[Game, GameSummary]{
		Fields: []string{"id", "date", "home_team_id", "away_team_id", "status"},
		Map: func(g Game) GameSummary {
			return GameSummary{
				ID:     g.ID,
				Date:   g.Date,
				Label:  fmt.Sprintf("team %d vs team %d", g.HomeTeamID, g.AwayTeamID),
				Status: g.Status,
			}
		},
	}

	BoxScoreProjection = listing.Map(func(s PlayerStatLine) BoxScoreLine {
		return BoxScoreLine{
			PlayerID: s.PlayerID,
			Line:     fmt.Sprintf("%d PTS, %d REB, %d AST, %.1f MIN", s.Points, s.Rebounds, s.Assists, s.MinutesPlayed),
		}
	})
)
