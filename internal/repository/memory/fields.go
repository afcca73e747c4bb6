package memory

import (
	"github.com/maxviazov/listresult/internal/memstore"
	"github.com/maxviazov/listresult/internal/model"
)

// Field copiers mirror the postgres column names so the same projections
// narrow on either backend.

var teamFields = map[string]memstore.FieldCopier[model.Team]{
	"id":         func(d *model.Team, s model.Team) { d.ID = s.ID },
	"name":       func(d *model.Team, s model.Team) { d.Name = s.Name },
	"created_at": func(d *model.Team, s model.Team) { d.CreatedAt = s.CreatedAt },
	"updated_at": func(d *model.Team, s model.Team) { d.UpdatedAt = s.UpdatedAt },
}

var playerFields = map[string]memstore.FieldCopier[model.Player]{
	"id":         func(d *model.Player, s model.Player) { d.ID = s.ID },
	"team_id":    func(d *model.Player, s model.Player) { d.TeamID = s.TeamID },
	"first_name": func(d *model.Player, s model.Player) { d.FirstName = s.FirstName },
	"last_name":  func(d *model.Player, s model.Player) { d.LastName = s.LastName },
	"position":   func(d *model.Player, s model.Player) { d.Position = s.Position },
	"created_at": func(d *model.Player, s model.Player) { d.CreatedAt = s.CreatedAt },
	"updated_at": func(d *model.Player, s model.Player) { d.UpdatedAt = s.UpdatedAt },
}

var gameFields = map[string]memstore.FieldCopier[model.Game]{
	"id":           func(d *model.Game, s model.Game) { d.ID = s.ID },
	"season":       func(d *model.Game, s model.Game) { d.Season = s.Season },
	"date":         func(d *model.Game, s model.Game) { d.Date = s.Date },
	"home_team_id": func(d *model.Game, s model.Game) { d.HomeTeamID = s.HomeTeamID },
	"away_team_id": func(d *model.Game, s model.Game) { d.AwayTeamID = s.AwayTeamID },
	"status":       func(d *model.Game, s model.Game) { d.Status = s.Status },
	"created_at":   func(d *model.Game, s model.Game) { d.CreatedAt = s.CreatedAt },
	"updated_at":   func(d *model.Game, s model.Game) { d.UpdatedAt = s.UpdatedAt },
}
