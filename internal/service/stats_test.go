package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsService() *StatsService {
	return NewStatsService(NewHolder(fixtureDataset()), testLogger())
}

func TestClubResults(t *testing.T) {
	results := newStatsService().ClubResults(StatsFilter{})
	require.Len(t, results, 3)

	byName := make(map[string]ClubResult)
	for _, r := range results {
		byName[r.Team] = r
	}
	assert.Equal(t, ClubResult{Team: "Nantes", Wins: 1, Draws: 1, Losses: 1, Total: 3}, byName["Nantes"])
	assert.Equal(t, ClubResult{Team: "Lyon", Wins: 1, Draws: 0, Losses: 1, Total: 2}, byName["Lyon"])
	assert.Equal(t, ClubResult{Team: "Rennes", Wins: 0, Draws: 1, Losses: 0, Total: 1}, byName["Rennes"])
}

func TestClubResultsChampionshipFilter(t *testing.T) {
	results := newStatsService().ClubResults(StatsFilter{Championship: i64(2)})
	require.Len(t, results, 2)
	byName := make(map[string]ClubResult)
	for _, r := range results {
		byName[r.Team] = r
	}
	assert.Equal(t, 1, byName["Lyon"].Wins)
	assert.Equal(t, 1, byName["Nantes"].Losses)
}

func TestClubResultsDateRangeOpenInterval(t *testing.T) {
	// 开区间：边界日的比赛不计入
	results := newStatsService().ClubResults(StatsFilter{
		From: dayp(2019, 8, 10),
		To:   dayp(2020, 1, 5),
	})
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, 1, r.Total)
	}
}

func TestWinRatioRanking(t *testing.T) {
	entries := newStatsService().WinRatio(StatsFilter{}, 10)
	require.Len(t, entries, 3)
	// Lyon 1/2 > Nantes 1/3 > Rennes 0/1
	assert.Equal(t, "Lyon", entries[0].Team)
	assert.InDelta(t, 0.5, entries[0].Ratio, 1e-9)
	assert.Equal(t, "Nantes", entries[1].Team)
	assert.Equal(t, "Rennes", entries[2].Team)

	limited := newStatsService().WinRatio(StatsFilter{}, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, "Lyon", limited[0].Team)
}

func TestTopScorersRequiresAppearance(t *testing.T) {
	ds := fixtureDataset()
	// 该进球的球员在这场比赛没有出场记录，不应计入
	ds.Highlights = append(ds.Highlights, ds.Highlights[0])
	ds.Highlights[len(ds.Highlights)-1].PlayerID = i64(999)

	s := NewStatsService(NewHolder(ds), testLogger())
	boards := s.TopScorers(nil, 10)
	require.Len(t, boards, 2)

	assert.Equal(t, int64(1), boards[0].Championship)
	assert.Equal(t, "Ligue 1", boards[0].ChampionshipName)
	require.Len(t, boards[0].Scorers, 1)
	assert.Equal(t, ScorerEntry{PlayerID: 100, LastName: "Martin", Goals: 2}, boards[0].Scorers[0])

	assert.Equal(t, "Premier League", boards[1].ChampionshipName)
	require.Len(t, boards[1].Scorers, 1)
	// 姓氏缺失的射手显示 Unknown
	assert.Equal(t, "Unknown", boards[1].Scorers[0].LastName)
}

func TestTopScorersChampionshipFilter(t *testing.T) {
	boards := newStatsService().TopScorers(i64(2), 10)
	require.Len(t, boards, 1)
	assert.Equal(t, int64(2), boards[0].Championship)
}

func TestHomeAwayContingency(t *testing.T) {
	rows := newStatsService().HomeAway()
	require.Len(t, rows, 2)

	home, away := rows[0], rows[1]
	assert.Equal(t, "home", home.Venue)
	assert.Equal(t, 2, home.Wins)
	assert.Equal(t, 1, home.Draws)
	assert.Equal(t, 0, home.Losses)
	assert.InDelta(t, 100*2.0/3.0, home.WinPct, 1e-9)

	assert.Equal(t, "away", away.Venue)
	assert.Equal(t, 0, away.Wins)
	assert.Equal(t, 2, away.Losses)
}

func TestFormationsWinRate(t *testing.T) {
	stats := newStatsService().Formations()
	require.Len(t, stats, 2)

	// 4-4-2: 三次使用一胜；4-3-3: 一次使用零胜
	assert.Equal(t, "4-4-2", stats[0].Formation)
	assert.Equal(t, 3, stats[0].Matches)
	assert.InDelta(t, 1.0/3.0, stats[0].WinRate, 1e-9)
	assert.Equal(t, "4-3-3", stats[1].Formation)
	assert.Equal(t, 0.0, stats[1].WinRate)
}

func TestNormalizeFormation(t *testing.T) {
	assert.Equal(t, "3-4-3", NormalizeFormation("343d"))
	assert.Equal(t, "4-4-2", NormalizeFormation("4-4-2"))
	assert.Equal(t, "", NormalizeFormation("inconnu"))
}

func TestBettingGainsFlatStake(t *testing.T) {
	gains := newStatsService().BettingGains()
	require.Len(t, gains, 3)

	byClub := make(map[string]ClubGain)
	for _, g := range gains {
		byClub[g.Club] = g
	}
	// Nantes: 胜(2.0-1) + 平(-1) = 0，第三场无赔率不计
	assert.InDelta(t, 0.0, byClub["Nantes"].Gain, 1e-9)
	assert.Equal(t, 2, byClub["Nantes"].Matches)
	// Lyon: 负(-1)，第三场主胜但无赔率不计
	assert.InDelta(t, -1.0, byClub["Lyon"].Gain, 1e-9)
	assert.Equal(t, 1, byClub["Lyon"].Matches)
	// Rennes: 平(-1)
	assert.InDelta(t, -1.0, byClub["Rennes"].Gain, 1e-9)

	// 按净收益降序
	assert.Equal(t, "Nantes", gains[0].Club)
}

func TestChampionshipName(t *testing.T) {
	assert.Equal(t, "Serie A", ChampionshipName(5))
	assert.Equal(t, "Unknown", ChampionshipName(42))
}
