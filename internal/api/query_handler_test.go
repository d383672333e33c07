package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"FootballExplorer/internal/model"
	"FootballExplorer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64 { return &v }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	holder := service.NewHolder(&model.Dataset{
		Teams: []model.TeamRow{
			{IDTeam: 1, Name: "Nantes"},
			{IDTeam: 2, Name: "Lyon"},
		},
		Matches: []model.MatchRow{
			{MatchID: i64(1), HomeIDTeam: i64(1), AwayIDTeam: i64(2), HomeScore: 2, AwayScore: 0},
		},
	})

	r := gin.New()
	h := NewQueryHandler(holder, logger)
	r.GET("/api/teams", h.ListTeamsHandler)
	r.GET("/api/teams/:id", h.GetTeamHandler)
	r.GET("/api/matches", h.ListMatchesHandler)
	return r
}

func do(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListTeamsHandler(t *testing.T) {
	w := do(t, newTestRouter(), "/api/teams")
	require.Equal(t, http.StatusOK, w.Code)

	var teams []service.TeamInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &teams))
	require.Len(t, teams, 2)
	assert.Equal(t, "Lyon", teams[0].Name)
}

func TestGetTeamHandlerMissAnswers404(t *testing.T) {
	w := do(t, newTestRouter(), "/api/teams/99")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestGetTeamHandlerBadID(t *testing.T) {
	w := do(t, newTestRouter(), "/api/teams/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMatchesHandlerResolvesNames(t *testing.T) {
	w := do(t, newTestRouter(), "/api/matches?team=1")
	require.Equal(t, http.StatusOK, w.Code)

	var matches []service.MatchSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "Nantes", matches[0].HomeTeam)
	assert.Equal(t, "Lyon", matches[0].AwayTeam)
}

func TestListMatchesHandlerBadFilter(t *testing.T) {
	w := do(t, newTestRouter(), "/api/matches?date=10/08/2019")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
