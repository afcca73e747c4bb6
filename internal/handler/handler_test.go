package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/listresult/internal/handler"
	"github.com/maxviazov/listresult/internal/listing"
	"github.com/maxviazov/listresult/internal/model"
	"github.com/maxviazov/listresult/internal/repository/memory"
	"github.com/maxviazov/listresult/internal/service"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type app struct {
	store  *memory.Store
	router *gin.Engine
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zerolog.New(io.Discard)
	paging := service.Paging{DefaultSize: 2, MaxSize: 10}

	st := memory.NewStore()
	teams := memory.NewTeamRepository(st)
	players := memory.NewPlayerRepository(st)
	games := memory.NewGameRepository(st)
	tx := memory.NewTxManager()

	r := gin.New()
	handler.Register(r, memory.NewPinger(),
		service.NewTeamService(teams, paging, log),
		service.NewPlayerService(players, teams, paging, log),
		service.NewGameService(games, teams, tx, paging, log),
		service.NewStatsService(memory.NewStatsRepository(st), players, games, tx, paging, log),
	)
	return &app{store: st, router: r}
}

func (a *app) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, handler.APIV1Prefix+path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) mustCreate(t *testing.T, path string, body any, out any) {
	t.Helper()
	w := a.do(t, http.MethodPost, path, body)
	require.Contains(t, []int{http.StatusCreated, http.StatusOK}, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

type envelope[T any] struct {
	Page listing.PageDetail `json:"page"`
	Data []T                `json:"data"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestTeams_CreateAndGet(t *testing.T) {
	a := newApp(t)
	var team model.Team
	a.mustCreate(t, "/teams", map[string]string{"name": "Lakers"}, &team)
	assert.Equal(t, "Lakers", team.Name)

	w := a.do(t, http.MethodGet, "/teams/"+itoa(team.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lakers")

	w = a.do(t, http.MethodGet, "/teams/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodGet, "/teams/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTeams_CreateInvalid(t *testing.T) {
	a := newApp(t)
	w := a.do(t, http.MethodPost, "/teams", map[string]string{"name": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_input")
	assert.Contains(t, w.Body.String(), `"field":"name"`)

	a.mustCreate(t, "/teams", map[string]string{"name": "Heat"}, &model.Team{})
	w = a.do(t, http.MethodPost, "/teams", map[string]string{"name": "Heat"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTeams_ListFullAndSummary(t *testing.T) {
	a := newApp(t)
	for _, n := range []string{"Knicks", "Bulls", "Heat"} {
		a.mustCreate(t, "/teams", map[string]string{"name": n}, &model.Team{})
	}

	full := decode[model.Team](t, a.do(t, http.MethodGet, "/teams", nil))
	assert.Equal(t, listing.PageDetail{Page: 0, Size: 2, Total: 3, TotalPages: 2, HasNext: true}, full.Page)
	require.Len(t, full.Data, 2)
	assert.Equal(t, "Bulls", full.Data[0].Name)
	assert.False(t, full.Data[0].CreatedAt.IsZero())

	sum := decode[map[string]any](t, a.do(t, http.MethodGet, "/teams?page=1&size=2&view=summary", nil))
	require.Len(t, sum.Data, 1)
	assert.Equal(t, "Knicks", sum.Data[0]["name"])
	assert.NotContains(t, sum.Data[0], "created_at")
	assert.True(t, sum.Page.HasPrevious)
	assert.Equal(t, int64(1), a.store.Teams.Stats().NarrowedFetches)
}

func TestTeams_ListPastLastPageIsEmptyArray(t *testing.T) {
	a := newApp(t)
	a.mustCreate(t, "/teams", map[string]string{"name": "Heat"}, &model.Team{})

	w := a.do(t, http.MethodGet, "/teams?page=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestTeams_ListRejectsBadQuery(t *testing.T) {
	a := newApp(t)
	for _, q := range []string{"?view=compact", "?page=-1", "?size=abc"} {
		w := a.do(t, http.MethodGet, "/teams"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Contains(t, w.Body.String(), "invalid_input", q)
	}
}

func TestList_HugePageIsRejected(t *testing.T) {
	a := newApp(t)
	var home, away model.Team
	a.mustCreate(t, "/teams", map[string]string{"name": "Lakers"}, &home)
	a.mustCreate(t, "/teams", map[string]string{"name": "Heat"}, &away)
	var game model.Game
	a.mustCreate(t, "/games", map[string]any{
		"season": "2024-25", "date": "2024-11-01T19:00:00Z",
		"home_team_id": home.ID, "away_team_id": away.ID, "status": "scheduled",
	}, &game)

	paths := []string{
		"/teams?page=9223372036854775807&size=2",
		"/teams?page=922337203685477581&size=10",
		"/teams?page=99999999999999999999",
		"/games?view=summary&page=9223372036854775807",
		"/teams/" + itoa(home.ID) + "/players?page=9223372036854775807",
		"/games/" + itoa(game.ID) + "/stats?page=9223372036854775807&size=2",
	}
	for _, path := range paths {
		w := a.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "invalid_input", path)
		assert.NotContains(t, w.Body.String(), "Lakers", path)
	}
}

func TestTeams_ListStoreFailure(t *testing.T) {
	a := newApp(t)
	a.mustCreate(t, "/teams", map[string]string{"name": "Heat"}, &model.Team{})
	a.store.Teams.FailWith(errors.New("disk on fire"))

	w := a.do(t, http.MethodGet, "/teams", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
}

func TestPlayers_ListByTeam(t *testing.T) {
	a := newApp(t)
	var team model.Team
	a.mustCreate(t, "/teams", map[string]string{"name": "Lakers"}, &team)
	for _, last := range []string{"James", "Davis", "Reaves"} {
		a.mustCreate(t, "/players", map[string]any{
			"team_id": team.ID, "first_name": "X", "last_name": last, "position": "sf",
		}, &model.Player{})
	}

	env := decode[model.PlayerSummary](t, a.do(t, http.MethodGet, "/teams/"+itoa(team.ID)+"/players?view=summary&size=5", nil))
	assert.Equal(t, 3, env.Page.Total)
	require.Len(t, env.Data, 3)
	assert.Equal(t, "X James", env.Data[0].FullName)
	assert.Equal(t, "SF", env.Data[0].Position)

	w := a.do(t, http.MethodGet, "/teams/999/players", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGames_CreateAndListSummary(t *testing.T) {
	a := newApp(t)
	var home, away model.Team
	a.mustCreate(t, "/teams", map[string]string{"name": "Lakers"}, &home)
	a.mustCreate(t, "/teams", map[string]string{"name": "Heat"}, &away)

	base := time.Date(2024, 11, 1, 19, 0, 0, 0, time.UTC)
	for i := range 3 {
		a.mustCreate(t, "/games", map[string]any{
			"season": "2024-25", "date": base.AddDate(0, 0, i).Format(time.RFC3339),
			"home_team_id": home.ID, "away_team_id": away.ID, "status": "scheduled",
		}, &model.Game{})
	}

	env := decode[model.GameSummary](t, a.do(t, http.MethodGet, "/games?view=summary&size=10", nil))
	require.Len(t, env.Data, 3)
	assert.True(t, env.Data[0].Date.Equal(base.AddDate(0, 0, 2)))
	assert.Equal(t, "team "+itoa(home.ID)+" vs team "+itoa(away.ID), env.Data[0].Label)

	w := a.do(t, http.MethodPost, "/games", map[string]any{"season": "2024-25", "date": "yesterday"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"date"`)
}

func TestStats_BoxScoreIsMaterialized(t *testing.T) {
	a := newApp(t)
	var home, away model.Team
	a.mustCreate(t, "/teams", map[string]string{"name": "Lakers"}, &home)
	a.mustCreate(t, "/teams", map[string]string{"name": "Heat"}, &away)
	var game model.Game
	a.mustCreate(t, "/games", map[string]any{
		"season": "2024-25", "date": "2024-11-01T19:00:00Z",
		"home_team_id": home.ID, "away_team_id": away.ID, "status": "finished",
	}, &game)
	for i, last := range []string{"James", "Davis", "Reaves"} {
		var p model.Player
		a.mustCreate(t, "/players", map[string]any{
			"team_id": home.ID, "first_name": "X", "last_name": last, "position": "PF",
		}, &p)
		a.mustCreate(t, "/stats", map[string]any{
			"player_id": p.ID, "game_id": game.ID, "points": 20 + i, "rebounds": 5, "assists": 3, "minutes_played": 32.5,
		}, &model.PlayerStatLine{})
	}

	env := decode[model.BoxScoreLine](t, a.do(t, http.MethodGet, "/games/"+itoa(game.ID)+"/stats?view=summary&page=1&size=2", nil))
	assert.Equal(t, listing.PageDetail{Page: 1, Size: 2, Total: 3, TotalPages: 2, HasPrevious: true}, env.Page)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "22 PTS, 5 REB, 3 AST, 32.5 MIN", env.Data[0].Line)

	full := decode[model.PlayerStatLine](t, a.do(t, http.MethodGet, "/games/"+itoa(game.ID)+"/stats?size=10", nil))
	assert.Len(t, full.Data, 3)

	w := a.do(t, http.MethodGet, "/games/0/stats", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		path string
		err  error
		want int
	}{
		{"live root", "/live", errors.New("ignored"), http.StatusOK},
		{"ready root", "/ready", nil, http.StatusOK},
		{"ready root down", "/ready", errors.New("db down"), http.StatusServiceUnavailable},
		{"ready api", handler.APIV1Prefix + "/health/ready", nil, http.StatusOK},
		{"ready api down", handler.APIV1Prefix + "/health/ready", errors.New("db down"), http.StatusServiceUnavailable},
		{"live api", handler.APIV1Prefix + "/health/live", nil, http.StatusOK},
		{"unknown", "/no-such", nil, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			handler.Register(r, stubPinger{err: tc.err}, nil, nil, nil, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
