package service

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"FootballExplorer/internal/model"

	"github.com/sirupsen/logrus"
)

// ChampionshipNames 联赛编号到名称的映射，未知编号显示 Unknown
var ChampionshipNames = map[int64]string{
	1: "Ligue 1",
	2: "Premier League",
	3: "La Liga",
	4: "Bundesliga",
	5: "Serie A",
}

// ChampionshipName 联赛编号解析为名称
func ChampionshipName(id int64) string {
	if name, ok := ChampionshipNames[id]; ok {
		return name
	}
	return model.UnknownName
}

// StatsService 跨表聚合统计：战绩、射手榜、阵型、博彩收益等
type StatsService struct {
	holder *Holder
	logger *logrus.Logger
}

func NewStatsService(holder *Holder, logger *logrus.Logger) *StatsService {
	return &StatsService{holder: holder, logger: logger}
}

// StatsFilter 聚合统计筛选条件，零值字段不生效
type StatsFilter struct {
	Championship *int64
	From         *time.Time // 开区间下界
	To           *time.Time // 开区间上界
}

func (f StatsFilter) admits(m *model.MatchRow) bool {
	if f.Championship != nil {
		if m.Championship == nil || *m.Championship != *f.Championship {
			return false
		}
	}
	if f.From != nil || f.To != nil {
		if m.Date == nil {
			return false
		}
		if f.From != nil && !m.Date.After(*f.From) {
			return false
		}
		if f.To != nil && !m.Date.Before(*f.To) {
			return false
		}
	}
	return true
}

// ClubResult 单个俱乐部的胜平负战绩
type ClubResult struct {
	Team   string `json:"team"`
	Wins   int    `json:"wins"`
	Draws  int    `json:"draws"`
	Losses int    `json:"losses"`
	Total  int    `json:"total"`
}

// ClubResults 按俱乐部汇总胜平负，按球队名排序
func (s *StatsService) ClubResults(filter StatsFilter) []ClubResult {
	ds := s.holder.Get()
	byTeam := make(map[int64]*ClubResult)

	record := func(teamID int64, diff int) {
		r, ok := byTeam[teamID]
		if !ok {
			r = &ClubResult{Team: ds.TeamName(teamID)}
			byTeam[teamID] = r
		}
		r.Total++
		switch {
		case diff > 0:
			r.Wins++
		case diff < 0:
			r.Losses++
		default:
			r.Draws++
		}
	}

	for i := range ds.Matches {
		m := &ds.Matches[i]
		if !filter.admits(m) {
			continue
		}
		if m.HomeIDTeam != nil {
			record(*m.HomeIDTeam, m.HomeScore-m.AwayScore)
		}
		if m.AwayIDTeam != nil {
			record(*m.AwayIDTeam, m.AwayScore-m.HomeScore)
		}
	}

	out := make([]ClubResult, 0, len(byTeam))
	for _, r := range byTeam {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Team < out[j].Team })
	return out
}

// WinRatioEntry 俱乐部胜率条目
type WinRatioEntry struct {
	Team  string  `json:"team"`
	Wins  int     `json:"wins"`
	Total int     `json:"total"`
	Ratio float64 `json:"ratio"`
}

// WinRatio 胜率榜。只统计球队表内存在的球队，按胜率降序取前 limit 名
func (s *StatsService) WinRatio(filter StatsFilter, limit int) []WinRatioEntry {
	if limit <= 0 {
		limit = 10
	}
	ds := s.holder.Get()
	known := make(map[int64]string, len(ds.Teams))
	for _, t := range ds.Teams {
		known[t.IDTeam] = t.Name
	}

	type tally struct {
		wins, total int
	}
	byTeam := make(map[int64]*tally)
	record := func(teamID int64, diff int) {
		if _, ok := known[teamID]; !ok {
			return
		}
		t, ok := byTeam[teamID]
		if !ok {
			t = &tally{}
			byTeam[teamID] = t
		}
		t.total++
		if diff > 0 {
			t.wins++
		}
	}
	for i := range ds.Matches {
		m := &ds.Matches[i]
		if !filter.admits(m) {
			continue
		}
		if m.HomeIDTeam != nil {
			record(*m.HomeIDTeam, m.HomeScore-m.AwayScore)
		}
		if m.AwayIDTeam != nil {
			record(*m.AwayIDTeam, m.AwayScore-m.HomeScore)
		}
	}

	out := make([]WinRatioEntry, 0, len(byTeam))
	for id, t := range byTeam {
		entry := WinRatioEntry{Team: known[id], Wins: t.wins, Total: t.total}
		if t.total > 0 {
			entry.Ratio = float64(t.wins) / float64(t.total)
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ratio != out[j].Ratio {
			return out[i].Ratio > out[j].Ratio
		}
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Team < out[j].Team
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ScorerEntry 射手榜条目
type ScorerEntry struct {
	PlayerID int64  `json:"playerid"`
	LastName string `json:"lastname"`
	Goals    int    `json:"goals"`
}

// ScorerBoard 单个联赛的射手榜
type ScorerBoard struct {
	Championship     int64         `json:"championship"`
	ChampionshipName string        `json:"championship_name"`
	Scorers          []ScorerEntry `json:"scorers"`
}

// TopScorers 各联赛射手榜。只统计在该场比赛确有出场记录的进球，
// championship 非空时只返回指定联赛
func (s *StatsService) TopScorers(championship *int64, limit int) []ScorerBoard {
	if limit <= 0 {
		limit = 10
	}
	ds := s.holder.Get()

	type pair struct{ matchID, playerID int64 }
	appeared := make(map[pair]struct{}, len(ds.MatchPlayers))
	for i := range ds.MatchPlayers {
		a := &ds.MatchPlayers[i]
		if a.MatchID != nil && a.PlayerID != nil {
			appeared[pair{*a.MatchID, *a.PlayerID}] = struct{}{}
		}
	}

	champByMatch := make(map[int64]int64, len(ds.Matches))
	for i := range ds.Matches {
		m := &ds.Matches[i]
		if m.MatchID != nil && m.Championship != nil {
			champByMatch[*m.MatchID] = *m.Championship
		}
	}

	goals := make(map[int64]map[int64]int) // championship -> playerid -> goals
	for _, h := range ds.Highlights {
		if h.Type != model.HighlightGoal || h.PlayerID == nil || h.MatchID == nil {
			continue
		}
		if _, ok := appeared[pair{*h.MatchID, *h.PlayerID}]; !ok {
			continue
		}
		champ, ok := champByMatch[*h.MatchID]
		if !ok {
			continue
		}
		if championship != nil && champ != *championship {
			continue
		}
		if goals[champ] == nil {
			goals[champ] = make(map[int64]int)
		}
		goals[champ][*h.PlayerID]++
	}

	champs := make([]int64, 0, len(goals))
	for c := range goals {
		champs = append(champs, c)
	}
	sort.Slice(champs, func(i, j int) bool { return champs[i] < champs[j] })

	boards := make([]ScorerBoard, 0, len(champs))
	for _, c := range champs {
		board := ScorerBoard{Championship: c, ChampionshipName: ChampionshipName(c)}
		for pid, n := range goals[c] {
			board.Scorers = append(board.Scorers, ScorerEntry{
				PlayerID: pid,
				LastName: ds.PlayerName(pid),
				Goals:    n,
			})
		}
		sort.Slice(board.Scorers, func(i, j int) bool {
			if board.Scorers[i].Goals != board.Scorers[j].Goals {
				return board.Scorers[i].Goals > board.Scorers[j].Goals
			}
			return board.Scorers[i].PlayerID < board.Scorers[j].PlayerID
		})
		if len(board.Scorers) > limit {
			board.Scorers = board.Scorers[:limit]
		}
		boards = append(boards, board)
	}
	return boards
}

// VenueRow 主/客场视角的胜平负行，百分比按行归一
type VenueRow struct {
	Venue   string  `json:"venue"`
	Wins    int     `json:"wins"`
	Draws   int     `json:"draws"`
	Losses  int     `json:"losses"`
	Total   int     `json:"total"`
	WinPct  float64 `json:"win_pct"`
	DrawPct float64 `json:"draw_pct"`
	LossPct float64 `json:"loss_pct"`
}

// HomeAway 主客场与比赛结果的列联表
func (s *StatsService) HomeAway() []VenueRow {
	ds := s.holder.Get()
	home := VenueRow{Venue: "home"}
	away := VenueRow{Venue: "away"}
	for i := range ds.Matches {
		m := &ds.Matches[i]
		diff := m.HomeScore - m.AwayScore
		home.Total++
		away.Total++
		switch {
		case diff > 0:
			home.Wins++
			away.Losses++
		case diff < 0:
			home.Losses++
			away.Wins++
		default:
			home.Draws++
			away.Draws++
		}
	}
	finalizeVenue(&home)
	finalizeVenue(&away)
	return []VenueRow{home, away}
}

func finalizeVenue(r *VenueRow) {
	if r.Total == 0 {
		return
	}
	r.WinPct = 100 * float64(r.Wins) / float64(r.Total)
	r.DrawPct = 100 * float64(r.Draws) / float64(r.Total)
	r.LossPct = 100 * float64(r.Losses) / float64(r.Total)
}

// FormationStat 单个阵型的胜率统计
type FormationStat struct {
	Formation string  `json:"formation"`
	Matches   int     `json:"matches"`
	Wins      int     `json:"wins"`
	WinRate   float64 `json:"win_rate"`
}

// Formations 按归一化阵型统计胜率，按胜率降序、样本数降序排序。
// 阵型缺失或不含数字的场次跳过
func (s *StatsService) Formations() []FormationStat {
	ds := s.holder.Get()
	type tally struct {
		wins, total int
	}
	byFormation := make(map[string]*tally)

	record := func(raw *string, diff int) {
		if raw == nil {
			return
		}
		formation := NormalizeFormation(*raw)
		if formation == "" {
			return
		}
		t, ok := byFormation[formation]
		if !ok {
			t = &tally{}
			byFormation[formation] = t
		}
		t.total++
		if diff > 0 {
			t.wins++
		}
	}
	for i := range ds.Matches {
		m := &ds.Matches[i]
		record(m.HomeFormation, m.HomeScore-m.AwayScore)
		record(m.AwayFormation, m.AwayScore-m.HomeScore)
	}

	out := make([]FormationStat, 0, len(byFormation))
	for f, t := range byFormation {
		stat := FormationStat{Formation: f, Matches: t.total, Wins: t.wins}
		if t.total > 0 {
			stat.WinRate = float64(t.wins) / float64(t.total)
		}
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate != out[j].WinRate {
			return out[i].WinRate > out[j].WinRate
		}
		if out[i].Matches != out[j].Matches {
			return out[i].Matches > out[j].Matches
		}
		return out[i].Formation < out[j].Formation
	})
	return out
}

// NormalizeFormation 清洗阵型串：只保留数字并用连字符连接，如 "343d" -> "3-4-3"
func NormalizeFormation(raw string) string {
	var digits []string
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits = append(digits, string(r))
		}
	}
	return strings.Join(digits, "-")
}

// ClubGain 单个俱乐部的博彩净收益（每场1单位固定投注）
type ClubGain struct {
	Club    string  `json:"club"`
	Matches int     `json:"matches"`
	Gain    float64 `json:"gain"`
}

// BettingGains 假设每场给该俱乐部下注1个单位：赢则收益 赔率-1，平或负则 -1。
// 该侧赛前赔率缺失的场次不计入。按净收益降序
func (s *StatsService) BettingGains() []ClubGain {
	ds := s.holder.Get()
	byTeam := make(map[int64]*ClubGain)

	record := func(teamID int64, quotation *float64, diff int) {
		if quotation == nil {
			return
		}
		g, ok := byTeam[teamID]
		if !ok {
			g = &ClubGain{Club: ds.TeamName(teamID)}
			byTeam[teamID] = g
		}
		g.Matches++
		if diff > 0 {
			g.Gain += *quotation - 1
		} else {
			g.Gain -= 1
		}
	}
	for i := range ds.Matches {
		m := &ds.Matches[i]
		if m.HomeIDTeam != nil {
			record(*m.HomeIDTeam, m.QuotationHome, m.HomeScore-m.AwayScore)
		}
		if m.AwayIDTeam != nil {
			record(*m.AwayIDTeam, m.QuotationAway, m.AwayScore-m.HomeScore)
		}
	}

	out := make([]ClubGain, 0, len(byTeam))
	for _, g := range byTeam {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gain != out[j].Gain {
			return out[i].Gain > out[j].Gain
		}
		return out[i].Club < out[j].Club
	})
	return out
}
