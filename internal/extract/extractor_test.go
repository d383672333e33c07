package extract

import (
	"encoding/json"
	"testing"
	"time"

	"FootballExplorer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDoc(t *testing.T, raw string) *model.MatchDocument {
	t.Helper()
	var doc model.MatchDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return &doc
}

func TestDocumentScoreCountsValidGoalsOnly(t *testing.T) {
	doc := decodeDoc(t, `{
		"id": 11,
		"matchData": {
			"home": {"goals": [
				{"time": 12, "playerId": 100},
				{"time": 55, "playerId": 100, "type": "penalty"}
			]},
			"away": {"goals": [
				{"time": 80, "playerId": 200, "type": "var"}
			]}
		}
	}`)

	ex := Document(doc)
	assert.Equal(t, 2, ex.Match.HomeScore)
	assert.Equal(t, 0, ex.Match.AwayScore)

	// 被VAR取消的进球也不进高光
	require.Len(t, ex.Highlights, 2)
	for _, h := range ex.Highlights {
		assert.Equal(t, model.HighlightGoal, h.Type)
	}
}

func TestGoalValid(t *testing.T) {
	varMark := "var"
	penalty := "penalty"
	assert.True(t, GoalValid(model.GoalEvent{}))
	assert.True(t, GoalValid(model.GoalEvent{Type: &penalty}))
	assert.False(t, GoalValid(model.GoalEvent{Type: &varMark}))
}

func TestNormalizeBookingType(t *testing.T) {
	cases := map[string]string{
		"yellow":       "yellowcard",
		"red":          "redcard",
		"secondyellow": "secondyellow",
		"straightred":  "straightred",
	}
	for in, want := range cases {
		in := in
		assert.Equal(t, want, NormalizeBookingType(&in), "input=%s", in)
	}
	assert.Equal(t, "", NormalizeBookingType(nil))
}

func TestDocumentFormationFromFirstRosterEntry(t *testing.T) {
	// JSON对象里键的出现顺序决定"第一名球员"，与键名大小无关
	doc := decodeDoc(t, `{
		"id": 12,
		"Home": {
			"id": 1,
			"club": "Nantes",
			"players": {
				"player_900": {"info": {"idplayer": 900, "formation_used": "442"}},
				"player_100": {"info": {"idplayer": 100, "formation_used": "433"}}
			}
		}
	}`)

	ex := Document(doc)
	require.NotNil(t, ex.Match.HomeFormation)
	assert.Equal(t, "442", *ex.Match.HomeFormation)
}

func TestDocumentPlayersAndAppearances(t *testing.T) {
	doc := decodeDoc(t, `{
		"id": 13,
		"quotationPlayers": {"player_100": 7.5},
		"Home": {
			"id": 1,
			"club": "Nantes",
			"players": {
				"player_100": {
					"info": {
						"idplayer": 100,
						"lastname": "Martin",
						"position": "milieu",
						"mins_played": 90,
						"note_final_2015": 6.5
					},
					"stat": {"passes": 42, "mins_played": 88}
				},
				"player_x": {"info": {"lastname": "SansID"}}
			}
		}
	}`)

	ex := Document(doc)

	// id缺失的球员不进players表，但出场记录保留（playerid为空）
	require.Len(t, ex.Players, 1)
	assert.Equal(t, int64(100), ex.Players[0].PlayerID)
	require.Len(t, ex.MatchPlayers, 2)

	a := ex.MatchPlayers[0]
	require.NotNil(t, a.QuotationPlayer)
	assert.Equal(t, 7.5, *a.QuotationPlayer)
	require.NotNil(t, a.TeamID)
	assert.Equal(t, int64(1), *a.TeamID)
	// stat块整体保留，键与固定列重名时由持久化层做覆盖
	assert.Equal(t, 42.0, a.Stats["passes"])
	assert.Equal(t, 88.0, a.Stats["mins_played"])

	assert.Nil(t, ex.MatchPlayers[1].PlayerID)
}

func TestDocumentSubstitutionsFromBothSources(t *testing.T) {
	doc := decodeDoc(t, `{
		"id": 14,
		"matchData": {
			"home": {"substitutions": [{"time": 60, "subOff": 1, "subOn": 2}]}
		},
		"timeline": [
			{"type": "substitution", "time": 60, "subOff": 1, "subOn": 2, "reason": "injury"},
			{"type": "goal", "time": 30}
		]
	}`)

	ex := Document(doc)
	// 两个来源无条件并列，重复不去重
	require.Len(t, ex.Substitutions, 2)
	assert.Equal(t, model.UnknownName, ex.Substitutions[0].Reason)
	assert.Equal(t, "injury", ex.Substitutions[1].Reason)
}

func TestDocumentMissingEverything(t *testing.T) {
	ex := Document(&model.MatchDocument{})
	assert.Empty(t, ex.Teams)
	assert.Empty(t, ex.Players)
	assert.Nil(t, ex.Match.MatchID)
	assert.Nil(t, ex.Match.Date)
	assert.Equal(t, 0, ex.Match.HomeScore)
}

func TestDocumentTeamDefaultsAndChampionship(t *testing.T) {
	doc := decodeDoc(t, `{
		"id": 15,
		"championship": 5.0,
		"Home": {"id": 3},
		"Away": {"club": "SansID"}
	}`)

	ex := Document(doc)
	require.Len(t, ex.Teams, 1)
	assert.Equal(t, model.UnknownName, ex.Teams[0].Name)
	require.NotNil(t, ex.Match.Championship)
	assert.Equal(t, int64(5), *ex.Match.Championship)
	assert.Nil(t, ex.Match.AwayIDTeam)
}

func TestParseMatchDate(t *testing.T) {
	for _, raw := range []string{
		"2019-08-10T00:00:00Z",
		"2019-08-10T00:00:00",
		"2019-08-10 00:00:00",
		"2019-08-10",
	} {
		raw := raw
		got := ParseMatchDate(&raw)
		require.NotNil(t, got, "layout %s", raw)
		assert.Equal(t, time.Date(2019, 8, 10, 0, 0, 0, 0, time.UTC), got.UTC())
	}

	bad := "10/08/2019"
	assert.Nil(t, ParseMatchDate(&bad))
	assert.Nil(t, ParseMatchDate(nil))
}
