package service

import (
	"sort"
	"strings"
	"time"

	"FootballExplorer/internal/model"

	"github.com/sirupsen/logrus"
)

// QueryService 面向仪表盘的基础查询：球队、球员、比赛、单人视图
type QueryService struct {
	holder *Holder
	logger *logrus.Logger
}

func NewQueryService(holder *Holder, logger *logrus.Logger) *QueryService {
	return &QueryService{holder: holder, logger: logger}
}

// TeamInfo 球队视图
type TeamInfo struct {
	IDTeam int64  `json:"idteam"`
	Name   string `json:"name"`
}

// ListTeams 全部球队，按名称排序
func (s *QueryService) ListTeams() []TeamInfo {
	ds := s.holder.Get()
	out := make([]TeamInfo, 0, len(ds.Teams))
	for _, t := range ds.Teams {
		out = append(out, TeamInfo{IDTeam: t.IDTeam, Name: t.Name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].IDTeam < out[j].IDTeam
	})
	return out
}

// GetTeam 按id查询球队，落空返回 ok=false
func (s *QueryService) GetTeam(id int64) (TeamInfo, bool) {
	ds := s.holder.Get()
	for _, t := range ds.Teams {
		if t.IDTeam == id {
			return TeamInfo{IDTeam: t.IDTeam, Name: t.Name}, true
		}
	}
	return TeamInfo{}, false
}

// PlayerInfo 球员视图，姓氏缺失时为 Unknown
type PlayerInfo struct {
	PlayerID int64  `json:"playerid"`
	LastName string `json:"lastname"`
}

// ListPlayers 球员列表。lastname 非空时按姓氏做不区分大小写的精确筛选，
// 筛选针对原始姓氏：缺失的姓氏只在展示时兜底为 Unknown，搜不出来
func (s *QueryService) ListPlayers(lastname string) []PlayerInfo {
	ds := s.holder.Get()
	var out []PlayerInfo
	for _, p := range ds.Players {
		if lastname != "" {
			if p.LastName == nil || !strings.EqualFold(*p.LastName, lastname) {
				continue
			}
		}
		name := model.UnknownName
		if p.LastName != nil {
			name = *p.LastName
		}
		out = append(out, PlayerInfo{PlayerID: p.PlayerID, LastName: name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// MatchSummary 比赛视图，双方id已解析为名称（落空为 Unknown）
type MatchSummary struct {
	MatchID      *int64     `json:"matchid"`
	Date         *time.Time `json:"date"`
	HomeIDTeam   *int64     `json:"home_idteam"`
	AwayIDTeam   *int64     `json:"away_idteam"`
	HomeTeam     string     `json:"home_team"`
	AwayTeam     string     `json:"away_team"`
	HomeScore    int        `json:"home_score"`
	AwayScore    int        `json:"away_score"`
	Championship *int64     `json:"championship"`
}

// MatchFilter 比赛列表筛选条件，零值字段不生效
type MatchFilter struct {
	TeamID       *int64     // 参赛球队（主客不限）
	Date         *time.Time // 指定某一天
	Year         *int       // 指定年份
	Championship *int64     // 联赛编号
}

// ListMatches 按条件筛选比赛，按日期升序（无日期的排在最后）
func (s *QueryService) ListMatches(filter MatchFilter) []MatchSummary {
	ds := s.holder.Get()
	var out []MatchSummary
	for i := range ds.Matches {
		m := &ds.Matches[i]
		if filter.TeamID != nil && !matchHasTeam(m, *filter.TeamID) {
			continue
		}
		if filter.Date != nil {
			if m.Date == nil || !sameDay(*m.Date, *filter.Date) {
				continue
			}
		}
		if filter.Year != nil {
			if m.Date == nil || m.Date.UTC().Year() != *filter.Year {
				continue
			}
		}
		if filter.Championship != nil {
			if m.Championship == nil || *m.Championship != *filter.Championship {
				continue
			}
		}
		out = append(out, s.summarize(ds, m))
	}
	sortMatches(out)
	return out
}

// HeadToHead 两队之间的全部交锋（主客不限）
func (s *QueryService) HeadToHead(teamA, teamB int64) []MatchSummary {
	ds := s.holder.Get()
	var out []MatchSummary
	for i := range ds.Matches {
		m := &ds.Matches[i]
		if m.HomeIDTeam == nil || m.AwayIDTeam == nil {
			continue
		}
		if (*m.HomeIDTeam == teamA && *m.AwayIDTeam == teamB) ||
			(*m.HomeIDTeam == teamB && *m.AwayIDTeam == teamA) {
			out = append(out, s.summarize(ds, m))
		}
	}
	sortMatches(out)
	return out
}

// TransferHistory 一名球员的俱乐部履历
type TransferHistory struct {
	PlayerID   int64            `json:"playerid"`
	PlayerName string           `json:"player_name"`
	Periods    []TransferPeriod `json:"periods"`
	Clubs      []string         `json:"clubs"` // 按首次效力顺序去重
}

// TransferPeriod 单段效力区间（日粒度）
type TransferPeriod struct {
	Team      string `json:"team"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// PlayerTransfers 球员的效力区间。无任何记录时返回 ok=false
func (s *QueryService) PlayerTransfers(playerID int64) (TransferHistory, bool) {
	ds := s.holder.Get()
	history := TransferHistory{
		PlayerID:   playerID,
		PlayerName: ds.PlayerName(playerID),
	}
	seen := make(map[string]struct{})
	for _, t := range ds.Transfers {
		if t.PlayerID != playerID {
			continue
		}
		history.Periods = append(history.Periods, TransferPeriod{
			Team:      t.Team,
			StartDate: t.StartDate.Format("2006-01-02"),
			EndDate:   t.EndDate.Format("2006-01-02"),
		})
		if _, dup := seen[t.Team]; !dup {
			seen[t.Team] = struct{}{}
			history.Clubs = append(history.Clubs, t.Team)
		}
	}
	if len(history.Periods) == 0 {
		return history, false
	}
	return history, true
}

// CardSummary 球员红黄牌统计。红牌 = redcard + secondyellow + straightred
type CardSummary struct {
	PlayerID int64 `json:"playerid"`
	Yellow   int   `json:"yellow"`
	Red      int   `json:"red"`
}

// PlayerCards 统计球员的红黄牌
func (s *QueryService) PlayerCards(playerID int64) CardSummary {
	ds := s.holder.Get()
	summary := CardSummary{PlayerID: playerID}
	for _, h := range ds.Highlights {
		if h.PlayerID == nil || *h.PlayerID != playerID {
			continue
		}
		switch h.Type {
		case model.HighlightYellowCard:
			summary.Yellow++
		case model.HighlightRedCard, model.HighlightSecondYellow, model.HighlightStraightRed:
			summary.Red++
		}
	}
	return summary
}

// MarkPoint 球员单场评分点位
type MarkPoint struct {
	MatchID int64      `json:"matchid"`
	Date    *time.Time `json:"date"`
	Mark    float64    `json:"mark"`
}

// PlayerMarks 球员有效评分（final_mark_2015）的时间序列，按日期升序
func (s *QueryService) PlayerMarks(playerID int64) []MarkPoint {
	ds := s.holder.Get()
	dates := matchDateIndex(ds)
	var out []MarkPoint
	for i := range ds.MatchPlayers {
		a := &ds.MatchPlayers[i]
		if a.PlayerID == nil || *a.PlayerID != playerID || a.FinalMark2015 == nil || a.MatchID == nil {
			continue
		}
		point := MarkPoint{MatchID: *a.MatchID, Mark: *a.FinalMark2015}
		if d, ok := dates[*a.MatchID]; ok {
			point.Date = &d
		}
		out = append(out, point)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Date, out[j].Date
		if di == nil || dj == nil {
			return dj == nil && di != nil
		}
		if !di.Equal(*dj) {
			return di.Before(*dj)
		}
		return out[i].MatchID < out[j].MatchID
	})
	return out
}

// GoalDiffPoint 单场净胜球点位（正=赢球）
type GoalDiffPoint struct {
	MatchID *int64     `json:"matchid"`
	Date    *time.Time `json:"date"`
	Diff    int        `json:"goal_diff"`
}

// TeamGoalDiff 球队每场比赛的净胜球序列，按日期升序
func (s *QueryService) TeamGoalDiff(teamID int64) []GoalDiffPoint {
	ds := s.holder.Get()
	var out []GoalDiffPoint
	for i := range ds.Matches {
		m := &ds.Matches[i]
		diff, ok := goalDiffFor(m, teamID)
		if !ok {
			continue
		}
		out = append(out, GoalDiffPoint{MatchID: m.MatchID, Date: m.Date, Diff: diff})
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Date, out[j].Date
		if di == nil || dj == nil {
			return dj == nil && di != nil
		}
		return di.Before(*dj)
	})
	return out
}

// TeamPlayers 为该队出过场的球员（按出场记录去重，按姓氏排序）
func (s *QueryService) TeamPlayers(teamID int64) []PlayerInfo {
	ds := s.holder.Get()
	seen := make(map[int64]struct{})
	var out []PlayerInfo
	for i := range ds.MatchPlayers {
		a := &ds.MatchPlayers[i]
		if a.PlayerID == nil || a.TeamID == nil || *a.TeamID != teamID {
			continue
		}
		if _, dup := seen[*a.PlayerID]; dup {
			continue
		}
		seen[*a.PlayerID] = struct{}{}
		out = append(out, PlayerInfo{PlayerID: *a.PlayerID, LastName: ds.PlayerName(*a.PlayerID)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// PositionMark 单个场上位置的平均评分
type PositionMark struct {
	Position string  `json:"position"`
	Average  float64 `json:"average"`
	Samples  int     `json:"samples"`
}

// TeamPositionMarks 该队出场记录按位置汇总的平均评分（final_mark_2015），
// 只统计有评分的记录，位置缺失归入 Unknown，按位置名排序
func (s *QueryService) TeamPositionMarks(teamID int64) []PositionMark {
	ds := s.holder.Get()
	type tally struct {
		sum     float64
		samples int
	}
	byPosition := make(map[string]*tally)
	for i := range ds.MatchPlayers {
		a := &ds.MatchPlayers[i]
		if a.TeamID == nil || *a.TeamID != teamID || a.FinalMark2015 == nil {
			continue
		}
		position := model.UnknownName
		if a.Position != nil {
			position = *a.Position
		}
		t, ok := byPosition[position]
		if !ok {
			t = &tally{}
			byPosition[position] = t
		}
		t.sum += *a.FinalMark2015
		t.samples++
	}

	out := make([]PositionMark, 0, len(byPosition))
	for position, t := range byPosition {
		out = append(out, PositionMark{
			Position: position,
			Average:  t.sum / float64(t.samples),
			Samples:  t.samples,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// HistogramBucket 换人次数直方图的一格
type HistogramBucket struct {
	Substitutions int `json:"substitutions"`
	Matches       int `json:"matches"`
}

// SubstitutionSummary 球队换人概览：场均次数与分布
type SubstitutionSummary struct {
	TeamID     int64             `json:"team_id"`
	MatchCount int               `json:"match_count"`
	Average    float64           `json:"average"`
	Histogram  []HistogramBucket `json:"histogram"`
}

// TeamSubstitutions 球队参与的每场比赛的换人统计（比赛内全部换人，双方合计）
func (s *QueryService) TeamSubstitutions(teamID int64) SubstitutionSummary {
	ds := s.holder.Get()
	summary := SubstitutionSummary{TeamID: teamID}

	subsPerMatch := make(map[int64]int)
	for _, sub := range ds.Substitutions {
		if sub.MatchID != nil {
			subsPerMatch[*sub.MatchID]++
		}
	}

	total := 0
	counts := make(map[int]int)
	for i := range ds.Matches {
		m := &ds.Matches[i]
		if !matchHasTeam(m, teamID) {
			continue
		}
		n := 0
		if m.MatchID != nil {
			n = subsPerMatch[*m.MatchID]
		}
		summary.MatchCount++
		total += n
		counts[n]++
	}
	if summary.MatchCount > 0 {
		summary.Average = float64(total) / float64(summary.MatchCount)
	}

	buckets := make([]int, 0, len(counts))
	for n := range counts {
		buckets = append(buckets, n)
	}
	sort.Ints(buckets)
	for _, n := range buckets {
		summary.Histogram = append(summary.Histogram, HistogramBucket{Substitutions: n, Matches: counts[n]})
	}
	return summary
}

// ===== 内部辅助 =====

func (s *QueryService) summarize(ds *model.Dataset, m *model.MatchRow) MatchSummary {
	summary := MatchSummary{
		MatchID:      m.MatchID,
		Date:         m.Date,
		HomeIDTeam:   m.HomeIDTeam,
		AwayIDTeam:   m.AwayIDTeam,
		HomeTeam:     model.UnknownName,
		AwayTeam:     model.UnknownName,
		HomeScore:    m.HomeScore,
		AwayScore:    m.AwayScore,
		Championship: m.Championship,
	}
	if m.HomeIDTeam != nil {
		summary.HomeTeam = ds.TeamName(*m.HomeIDTeam)
	}
	if m.AwayIDTeam != nil {
		summary.AwayTeam = ds.TeamName(*m.AwayIDTeam)
	}
	return summary
}

func sortMatches(out []MatchSummary) {
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Date, out[j].Date
		if di == nil || dj == nil {
			return dj == nil && di != nil
		}
		if !di.Equal(*dj) {
			return di.Before(*dj)
		}
		return intOrZero(out[i].MatchID) < intOrZero(out[j].MatchID)
	})
}

func matchHasTeam(m *model.MatchRow, teamID int64) bool {
	return (m.HomeIDTeam != nil && *m.HomeIDTeam == teamID) ||
		(m.AwayIDTeam != nil && *m.AwayIDTeam == teamID)
}

// goalDiffFor 该队视角的净胜球，未参赛返回 ok=false
func goalDiffFor(m *model.MatchRow, teamID int64) (int, bool) {
	if m.HomeIDTeam != nil && *m.HomeIDTeam == teamID {
		return m.HomeScore - m.AwayScore, true
	}
	if m.AwayIDTeam != nil && *m.AwayIDTeam == teamID {
		return m.AwayScore - m.HomeScore, true
	}
	return 0, false
}

func matchDateIndex(ds *model.Dataset) map[int64]time.Time {
	idx := make(map[int64]time.Time, len(ds.Matches))
	for i := range ds.Matches {
		m := &ds.Matches[i]
		if m.MatchID != nil && m.Date != nil {
			idx[*m.MatchID] = *m.Date
		}
	}
	return idx
}

func sameDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func intOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
