package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/listresult/internal/service"
)

// APIV1Prefix is the canonical base path for public HTTP API v1.
const APIV1Prefix = "/api/v1"

// Register mounts all public routes on the given engine.
// nil services are skipped so probes can be served on their own.
func Register(r *gin.Engine, repo Pinger, teamSvc service.TeamService, playerSvc service.PlayerService, gameSvc service.GameService, statsSvc service.StatsService) {
	h := NewHealthHandler(repo)

	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		if teamSvc != nil {
			NewTeamHandler(teamSvc).Register(api)
		}
		if playerSvc != nil {
			NewPlayerHandler(playerSvc).Register(api)
		}
		if gameSvc != nil {
			NewGameHandler(gameSvc).Register(api)
		}
		if statsSvc != nil {
			NewStatsHandler(statsSvc).Register(api)
		}
	}
}
