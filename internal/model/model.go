// Package model contains domain entities and the read-side shapes derived from them.
// db tags name the columns pgx scans into; json tags are the wire format.
package model

import "time"

// Team represents a basketball team.
type Team struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Player represents an athlete belonging to a team.
type Player struct {
	ID        int64     `json:"id" db:"id"`
	TeamID    int64     `json:"team_id" db:"team_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Position  string    `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Game represents a scheduled or finished match.
type Game struct {
	ID         int64     `json:"id" db:"id"`
	Season     string    `json:"season" db:"season"`
	Date       time.Time `json:"date" db:"date"`
	HomeTeamID int64     `json:"home_team_id" db:"home_team_id"`
	AwayTeamID int64     `json:"away_team_id" db:"away_team_id"`
	Status     string    `json:"status" db:"status"` // scheduled, in_progress, finished
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// PlayerStatLine represents per-game stats for a player.
type PlayerStatLine struct {
	ID            int64     `json:"id" db:"id"`
	PlayerID      int64     `json:"player_id" db:"player_id"`
	GameID        int64     `json:"game_id" db:"game_id"`
	Points        int       `json:"points" db:"points"`
	Rebounds      int       `json:"rebounds" db:"rebounds"`
	Assists       int       `json:"assists" db:"assists"`
	Steals        int       `json:"steals" db:"steals"`
	Blocks        int       `json:"blocks" db:"blocks"`
	Fouls         int       `json:"fouls" db:"fouls"`
	Turnovers     int       `json:"turnovers" db:"turnovers"`
	MinutesPlayed float32   `json:"minutes_played" db:"minutes_played"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
