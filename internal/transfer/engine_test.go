package transfer

import (
	"testing"
	"time"

	"FootballExplorer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64    { return &v }
func strp(v string) *string { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
func dayp(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func fixtureTeams() []model.TeamRow {
	return []model.TeamRow{
		{IDTeam: 1, Name: "Nantes"},
		{IDTeam: 2, Name: "Lyon"},
		{IDTeam: 3, Name: "Rennes"},
	}
}

func fixturePlayers() []model.PlayerRow {
	return []model.PlayerRow{{PlayerID: 100, LastName: strp("Martin")}}
}

func appearance(playerID, matchID, teamID int64) model.AppearanceRow {
	return model.AppearanceRow{PlayerID: i64(playerID), MatchID: i64(matchID), TeamID: i64(teamID)}
}

func TestInferSingleAppearance(t *testing.T) {
	matches := []model.MatchRow{{MatchID: i64(1), Date: dayp(2019, 8, 10)}}
	got := Infer(fixtureTeams(), fixturePlayers(), matches, []model.AppearanceRow{appearance(100, 1, 1)})

	require.Len(t, got, 1)
	assert.Equal(t, model.TransferRow{
		PlayerID:   100,
		PlayerName: "Martin",
		Team:       "Nantes",
		StartDate:  day(2019, 8, 10),
		EndDate:    day(2019, 8, 10),
	}, got[0])
}

func TestInferClubChangeClosesPeriodDayBefore(t *testing.T) {
	matches := []model.MatchRow{
		{MatchID: i64(1), Date: dayp(2019, 8, 10)},
		{MatchID: i64(2), Date: dayp(2019, 8, 17)},
		{MatchID: i64(3), Date: dayp(2019, 8, 24)},
	}
	apps := []model.AppearanceRow{
		appearance(100, 1, 1),
		appearance(100, 2, 3),
		appearance(100, 3, 3),
	}

	got := Infer(fixtureTeams(), fixturePlayers(), matches, apps)
	require.Len(t, got, 2)
	assert.Equal(t, "Nantes", got[0].Team)
	assert.Equal(t, day(2019, 8, 10), got[0].StartDate)
	assert.Equal(t, day(2019, 8, 16), got[0].EndDate) // 换队当日的前一天
	assert.Equal(t, "Rennes", got[1].Team)
	assert.Equal(t, day(2019, 8, 17), got[1].StartDate)
	assert.Equal(t, day(2019, 8, 24), got[1].EndDate)
}

func TestInferSameDayTieBreakByMatchID(t *testing.T) {
	// 同一天两场：matchid小的那场先遍历，结果与输入顺序无关
	matches := []model.MatchRow{
		{MatchID: i64(9), Date: dayp(2019, 8, 10)},
		{MatchID: i64(5), Date: dayp(2019, 8, 10)},
	}
	apps := []model.AppearanceRow{
		appearance(100, 9, 2),
		appearance(100, 5, 1),
	}

	got := Infer(fixtureTeams(), fixturePlayers(), matches, apps)
	require.Len(t, got, 2)
	assert.Equal(t, "Nantes", got[0].Team)
	assert.Equal(t, "Lyon", got[1].Team)
	// 同日换队：上一区间结束日落在当日前一天
	assert.Equal(t, day(2019, 8, 9), got[0].EndDate)
}

func TestInferDropsRowsMissingJoin(t *testing.T) {
	matches := []model.MatchRow{
		{MatchID: i64(1), Date: dayp(2019, 8, 10)},
		{MatchID: i64(2)}, // 无日期
	}
	apps := []model.AppearanceRow{
		appearance(100, 1, 1),
		appearance(100, 2, 1),  // 比赛无日期 → 丢弃
		appearance(100, 1, 77), // 球队不在teams表 → 丢弃
		{MatchID: i64(1), TeamID: i64(1)}, // 无playerid → 丢弃
	}

	got := Infer(fixtureTeams(), fixturePlayers(), matches, apps)
	require.Len(t, got, 1)
	assert.Equal(t, day(2019, 8, 10), got[0].StartDate)
	assert.Equal(t, day(2019, 8, 10), got[0].EndDate)
}

func TestInferUnknownPlayerName(t *testing.T) {
	matches := []model.MatchRow{{MatchID: i64(1), Date: dayp(2019, 8, 10)}}
	apps := []model.AppearanceRow{appearance(999, 1, 1)}

	got := Infer(fixtureTeams(), fixturePlayers(), matches, apps)
	require.Len(t, got, 1)
	assert.Equal(t, model.UnknownName, got[0].PlayerName)
}
