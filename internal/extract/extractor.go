package extract

import (
	"fmt"
	"time"

	"FootballExplorer/internal/model"
)

// Extraction 单份文档摊平后的各表增量行
type Extraction struct {
	Teams         []model.TeamRow
	Match         model.MatchRow
	Players       []model.PlayerRow
	MatchPlayers  []model.AppearanceRow
	Highlights    []model.HighlightRow
	Substitutions []model.SubstitutionRow
}

// Document 把一份原始比赛文档摊平成各表的行。
// 纯函数：字段缺失一律取默认值，不会失败。
func Document(doc *model.MatchDocument) *Extraction {
	ex := &Extraction{}

	// 1. 球队（两侧各一行，id缺失则不产出）
	for _, side := range []*model.SideDocument{doc.Home, doc.Away} {
		if side == nil || side.ID == nil {
			continue
		}
		name := model.UnknownName
		if side.Club != nil {
			name = *side.Club
		}
		ex.Teams = append(ex.Teams, model.TeamRow{IDTeam: *side.ID, Name: name})
	}

	// 2. 比赛行：比分 = 通过有效性过滤的进球数
	homeGoals := validGoals(sideGoals(doc.MatchData, true))
	awayGoals := validGoals(sideGoals(doc.MatchData, false))
	ex.Match = model.MatchRow{
		MatchID:       doc.ID,
		Date:          ParseMatchDate(doc.DateMatch),
		HomeIDTeam:    sideID(doc.Home),
		AwayIDTeam:    sideID(doc.Away),
		Duration:      doc.MatchTime,
		Period:        doc.Period,
		Championship:  championshipCode(doc.Championship),
		HomeFormation: sideFormation(doc.Home),
		AwayFormation: sideFormation(doc.Away),
		HomeScore:     len(homeGoals),
		AwayScore:     len(awayGoals),
	}
	if q := doc.QuotationPreGame; q != nil {
		ex.Match.QuotationHome = q.Home
		ex.Match.QuotationAway = q.Away
		ex.Match.QuotationDraw = q.Draw
	}

	// 3. 球员与出场记录（按文档中名单的原始顺序）
	for _, side := range []*model.SideDocument{doc.Home, doc.Away} {
		if side == nil {
			continue
		}
		for _, entry := range side.Players.Entries {
			info := entry.Player.Info
			if info == nil {
				info = &model.PlayerInfo{}
			}
			if info.IDPlayer != nil {
				ex.Players = append(ex.Players, model.PlayerRow{
					PlayerID: *info.IDPlayer,
					LastName: info.LastName,
				})
			}
			row := model.AppearanceRow{
				PlayerID:       info.IDPlayer,
				MatchID:        doc.ID,
				TeamID:         side.ID,
				Position:       info.Position,
				FormationPlace: info.FormationPlace,
				PlayDuration:   info.MinsPlayed,
				FinalMark2015:  info.NoteFinal2015,
			}
			if info.IDPlayer != nil && doc.QuotationPlayers != nil {
				row.QuotationPlayer = doc.QuotationPlayers[fmt.Sprintf("player_%d", *info.IDPlayer)]
			}
			if len(entry.Player.Stat) > 0 {
				row.Stats = make(map[string]float64, len(entry.Player.Stat))
				for k, v := range entry.Player.Stat {
					row.Stats[k] = v
				}
			}
			ex.MatchPlayers = append(ex.MatchPlayers, row)
		}
	}

	// 4. 高光：有效进球 + 归一化后的红黄牌
	for _, g := range append(homeGoals, awayGoals...) {
		ex.Highlights = append(ex.Highlights, model.HighlightRow{
			MatchID:  doc.ID,
			Time:     g.Time,
			PlayerID: g.PlayerID,
			Type:     model.HighlightGoal,
		})
	}
	for _, b := range append(sideBookings(doc.MatchData, true), sideBookings(doc.MatchData, false)...) {
		ex.Highlights = append(ex.Highlights, model.HighlightRow{
			MatchID:  doc.ID,
			Time:     b.Time,
			PlayerID: b.PlayerID,
			Type:     NormalizeBookingType(b.Type),
		})
	}

	// 5. 换人：结构化列表 + 时间线，两个来源无条件并列
	for _, sub := range append(sideSubstitutions(doc.MatchData, true), sideSubstitutions(doc.MatchData, false)...) {
		ex.Substitutions = append(ex.Substitutions, model.SubstitutionRow{
			MatchID:     doc.ID,
			Time:        sub.Time,
			OffPlayerID: sub.SubOff,
			OnPlayerID:  sub.SubOn,
			Reason:      reasonOrUnknown(sub.Reason),
		})
	}
	for _, ev := range doc.Timeline {
		if ev.Type == nil || *ev.Type != "substitution" {
			continue
		}
		ex.Substitutions = append(ex.Substitutions, model.SubstitutionRow{
			MatchID:     doc.ID,
			Time:        ev.Time,
			OffPlayerID: ev.SubOff,
			OnPlayerID:  ev.SubOn,
			Reason:      reasonOrUnknown(ev.Reason),
		})
	}

	return ex
}

// goalDisallowedMarker 被VAR取消的进球在type字段上的标记
const goalDisallowedMarker = "var"

// GoalValid 进球是否计入比分与高光
func GoalValid(g model.GoalEvent) bool {
	return g.Type == nil || *g.Type != goalDisallowedMarker
}

// NormalizeBookingType 红黄牌代码归一化：yellow→yellowcard、red→redcard，其余原样透传
func NormalizeBookingType(t *string) string {
	if t == nil {
		return ""
	}
	switch *t {
	case "yellow":
		return model.HighlightYellowCard
	case "red":
		return model.HighlightRedCard
	default:
		return *t
	}
}

// matchDateLayouts 比赛日期的候选格式，源数据格式不固定
var matchDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseMatchDate 尽力解析自由格式的比赛日期，全部失败返回nil
func ParseMatchDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range matchDateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}

func validGoals(goals []model.GoalEvent) []model.GoalEvent {
	var out []model.GoalEvent
	for _, g := range goals {
		if GoalValid(g) {
			out = append(out, g)
		}
	}
	return out
}

func sideID(side *model.SideDocument) *int64 {
	if side == nil {
		return nil
	}
	return side.ID
}

// sideFormation 取该侧名单中第一名球员的formation_used，名单为空则缺失
func sideFormation(side *model.SideDocument) *string {
	if side == nil {
		return nil
	}
	first := side.Players.First()
	if first == nil || first.Info == nil {
		return nil
	}
	return first.Info.FormationUsed
}

func sideGoals(md *model.MatchData, home bool) []model.GoalEvent {
	se := sideEvents(md, home)
	if se == nil {
		return nil
	}
	return se.Goals
}

func sideBookings(md *model.MatchData, home bool) []model.BookingEvent {
	se := sideEvents(md, home)
	if se == nil {
		return nil
	}
	return se.Bookings
}

func sideSubstitutions(md *model.MatchData, home bool) []model.SubstitutionEvent {
	se := sideEvents(md, home)
	if se == nil {
		return nil
	}
	return se.Substitutions
}

func sideEvents(md *model.MatchData, home bool) *model.SideEvents {
	if md == nil {
		return nil
	}
	if home {
		return md.Home
	}
	return md.Away
}

func championshipCode(v *float64) *int64 {
	if v == nil {
		return nil
	}
	code := int64(*v)
	return &code
}

func reasonOrUnknown(r *string) string {
	if r == nil || *r == "" {
		return model.UnknownName
	}
	return *r
}
