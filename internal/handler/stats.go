package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/service"
	"github.com/maxviazov/listresult/pkg/response"
)

type StatsHandler struct {
	svc service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

func (h *StatsHandler) Register(r *gin.RouterGroup) {
	r.Group("/stats").POST("", h.upsert)
	// /api/v1/games/:id/stats
	r.Group("/games").GET("/:id/stats", h.listByGame)
}

type upsertStatRequest struct {
	PlayerID      int64   `json:"player_id"`
	GameID        int64   `json:"game_id"`
	Points        int     `json:"points"`
	Rebounds      int     `json:"rebounds"`
	Assists       int     `json:"assists"`
	Steals        int     `json:"steals"`
	Blocks        int     `json:"blocks"`
	Fouls         int     `json:"fouls"`
	Turnovers     int     `json:"turnovers"`
	MinutesPlayed float32 `json:"minutes_played"`
}

func (h *StatsHandler) upsert(c *gin.Context) {
	var req upsertStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	line, err := h.svc.UpsertStatLine(c.Request.Context(), model.PlayerStatLine{
		PlayerID:      req.PlayerID,
		GameID:        req.GameID,
		Points:        req.Points,
		Rebounds:      req.Rebounds,
		Assists:       req.Assists,
		Steals:        req.Steals,
		Blocks:        req.Blocks,
		Fouls:         req.Fouls,
		Turnovers:     req.Turnovers,
		MinutesPlayed: req.MinutesPlayed,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, line)
}

// listByGame serves the box score. The service hands back an already
// materialized page, so both views are computed in process.
func (h *StatsHandler) listByGame(c *gin.Context) {
	gameID, err := pathID(c, "id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	q, err := bindListQuery(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.ListStatsByGame(c.Request.Context(), gameID, q.Pagination)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	writeList(c, res, q.View, model.BoxScoreProjection)
}
