package model

import (
	"sort"
	"time"
)

// Highlight 事件类型。进球与红黄牌之外的原始代码原样透传
const (
	HighlightGoal         = "goal"
	HighlightYellowCard   = "yellowcard"
	HighlightRedCard      = "redcard"
	HighlightSecondYellow = "secondyellow"
	HighlightStraightRed  = "straightred"
)

// UnknownName 查询落空时的统一兜底名称（球队/球员均用它）
const UnknownName = "Unknown"

// TeamRow teams表一行。首次出现即定格，之后同id不再更新
type TeamRow struct {
	IDTeam int64  `json:"idteam"`
	Name   string `json:"name"`
}

// PlayerRow players表一行
type PlayerRow struct {
	PlayerID int64   `json:"playerid"`
	LastName *string `json:"lastname"`
}

// MatchRow matches表一行，一份原始文档产出一行
type MatchRow struct {
	MatchID       *int64     `json:"matchid"`
	Date          *time.Time `json:"date"`
	HomeIDTeam    *int64     `json:"home_idteam"`
	AwayIDTeam    *int64     `json:"away_idteam"`
	Duration      *float64   `json:"duration"`
	Period        *string    `json:"period"`
	Championship  *int64     `json:"championship"`
	HomeFormation *string    `json:"home_formation"`
	AwayFormation *string    `json:"away_formation"`
	QuotationHome *float64   `json:"quotation_home"`
	QuotationAway *float64   `json:"quotation_away"`
	QuotationDraw *float64   `json:"quotation_draw"`
	HomeScore     int        `json:"home_score"`
	AwayScore     int        `json:"away_score"`
}

// AppearanceRow match_players表一行：一名球员在一场比赛中的出场记录。
// Stats 为开放式统计块，键集合因文档而异；键与固定列同名时以Stats的值为准。
type AppearanceRow struct {
	PlayerID        *int64             `json:"playerid"`
	MatchID         *int64             `json:"matchid"`
	TeamID          *int64             `json:"team_id"`
	Position        *string            `json:"position"`
	FormationPlace  *float64           `json:"formation_place"`
	PlayDuration    *float64           `json:"play_duration"`
	FinalMark2015   *float64           `json:"final_mark_2015"`
	QuotationPlayer *float64           `json:"quotation_player"`
	Stats           map[string]float64 `json:"stats,omitempty"`
}

// HighlightRow highlights表一行（进球或红黄牌）
type HighlightRow struct {
	MatchID  *int64   `json:"matchid"`
	Time     *float64 `json:"time"`
	PlayerID *int64   `json:"playerid"`
	Type     string   `json:"type"`
}

// SubstitutionRow substitutions表一行。两个来源的记录无条件并列，重复不去重
type SubstitutionRow struct {
	MatchID     *int64   `json:"matchid"`
	Time        *float64 `json:"time"`
	OffPlayerID *int64   `json:"off_playerid"`
	OnPlayerID  *int64   `json:"on_playerid"`
	Reason      string   `json:"reason"`
}

// TransferRow transfers表一行：一名球员在一个俱乐部的连续效力区间（日粒度）
type TransferRow struct {
	PlayerID   int64     `json:"playerid"`
	PlayerName string    `json:"player_name"`
	Team       string    `json:"team"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// Dataset 物化后的七张表，查询层以只读方式消费
type Dataset struct {
	Teams         []TeamRow         `json:"teams"`
	Players       []PlayerRow       `json:"players"`
	Matches       []MatchRow        `json:"matches"`
	Highlights    []HighlightRow    `json:"highlights"`
	Substitutions []SubstitutionRow `json:"substitutions"`
	MatchPlayers  []AppearanceRow   `json:"match_players"`
	Transfers     []TransferRow     `json:"transfers"`
}

// TeamName 按id查询球队名，落空返回 Unknown
func (d *Dataset) TeamName(id int64) string {
	for i := range d.Teams {
		if d.Teams[i].IDTeam == id {
			return d.Teams[i].Name
		}
	}
	return UnknownName
}

// PlayerName 按id查询球员姓氏，落空或姓氏缺失返回 Unknown
func (d *Dataset) PlayerName(id int64) string {
	for i := range d.Players {
		if d.Players[i].PlayerID == id {
			if d.Players[i].LastName != nil {
				return *d.Players[i].LastName
			}
			return UnknownName
		}
	}
	return UnknownName
}

// StatColumns 所有出场记录的动态统计键并集，按字典序排列，
// 与固定列重名的键不重复出列（其值直接覆盖固定列）。
func (d *Dataset) StatColumns(fixed []string) []string {
	fixedSet := make(map[string]struct{}, len(fixed))
	for _, c := range fixed {
		fixedSet[c] = struct{}{}
	}
	seen := make(map[string]struct{})
	var cols []string
	for i := range d.MatchPlayers {
		for k := range d.MatchPlayers[i].Stats {
			if _, dup := seen[k]; dup {
				continue
			}
			if _, isFixed := fixedSet[k]; isFixed {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)
	return cols
}

// Counts 每张表的行数，导入完成后打印
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		"teams":         len(d.Teams),
		"players":       len(d.Players),
		"matches":       len(d.Matches),
		"highlights":    len(d.Highlights),
		"substitutions": len(d.Substitutions),
		"match_players": len(d.MatchPlayers),
		"transfers":     len(d.Transfers),
	}
}
