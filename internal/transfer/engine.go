package transfer

import (
	"sort"
	"time"

	"FootballExplorer/internal/model"
)

// joined 出场记录与比赛日期、球队名称拼接后的一行
type joined struct {
	playerID int64
	matchID  int64
	date     time.Time
	teamName string
}

// Infer 根据出场记录推断每名球员的效力区间。
// match_players ⨝ matches(date) ⨝ teams(name)，缺日期或缺球队的记录参与不了拼接，直接丢弃。
// 每名球员按 (日期, 比赛id) 升序遍历：球队名变化即收口上一区间
// （结束日 = 变化当日的前一天），最后一行收口末段区间。
// 只出场一次的球员得到一个起止同日的区间。
func Infer(teams []model.TeamRow, players []model.PlayerRow, matches []model.MatchRow, appearances []model.AppearanceRow) []model.TransferRow {
	matchDates := make(map[int64]time.Time, len(matches))
	for i := range matches {
		m := &matches[i]
		if m.MatchID != nil && m.Date != nil {
			matchDates[*m.MatchID] = *m.Date
		}
	}
	teamNames := make(map[int64]string, len(teams))
	for i := range teams {
		teamNames[teams[i].IDTeam] = teams[i].Name
	}
	playerNames := make(map[int64]string, len(players))
	for i := range players {
		name := model.UnknownName
		if players[i].LastName != nil {
			name = *players[i].LastName
		}
		playerNames[players[i].PlayerID] = name
	}

	var rows []joined
	for i := range appearances {
		a := &appearances[i]
		if a.PlayerID == nil || a.MatchID == nil || a.TeamID == nil {
			continue
		}
		date, ok := matchDates[*a.MatchID]
		if !ok {
			continue
		}
		teamName, ok := teamNames[*a.TeamID]
		if !ok {
			continue
		}
		rows = append(rows, joined{
			playerID: *a.PlayerID,
			matchID:  *a.MatchID,
			date:     date,
			teamName: teamName,
		})
	}

	// (playerid, date, matchid) 三级排序：matchid兜底，保证同日多场时结果确定
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].playerID != rows[j].playerID {
			return rows[i].playerID < rows[j].playerID
		}
		if !rows[i].date.Equal(rows[j].date) {
			return rows[i].date.Before(rows[j].date)
		}
		return rows[i].matchID < rows[j].matchID
	})

	var transfers []model.TransferRow
	for start := 0; start < len(rows); {
		end := start
		for end < len(rows) && rows[end].playerID == rows[start].playerID {
			end++
		}
		transfers = append(transfers, inferPlayer(rows[start:end], playerName(playerNames, rows[start].playerID))...)
		start = end
	}
	return transfers
}

// inferPlayer 单名球员的区间推断，group 已按日期排好序
func inferPlayer(group []joined, name string) []model.TransferRow {
	var periods []model.TransferRow
	currentTeam := group[0].teamName
	startDate := truncateDay(group[0].date)

	for _, row := range group[1:] {
		if row.teamName == currentTeam {
			continue
		}
		// 换队：上一区间收口到变化当日的前一天
		periods = append(periods, model.TransferRow{
			PlayerID:   row.playerID,
			PlayerName: name,
			Team:       currentTeam,
			StartDate:  startDate,
			EndDate:    truncateDay(row.date).AddDate(0, 0, -1),
		})
		currentTeam = row.teamName
		startDate = truncateDay(row.date)
	}

	// 末段区间收口到最后一次出场日（从未换队时即唯一区间）
	periods = append(periods, model.TransferRow{
		PlayerID:   group[0].playerID,
		PlayerName: name,
		Team:       currentTeam,
		StartDate:  startDate,
		EndDate:    truncateDay(group[len(group)-1].date),
	})
	return periods
}

func playerName(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok {
		return name
	}
	return model.UnknownName
}

// truncateDay 截断到日粒度（UTC）
func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
