package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MatchDocument 单场比赛的原始JSON文档。
// 所有字段均可缺失：指针保持nil、切片保持空，提取阶段只做判空不报错；
// 只有整个文档无法解码时才跳过该文件。
type MatchDocument struct {
	ID               *int64              `json:"id"`
	DateMatch        *string             `json:"dateMatch"`
	MatchTime        *float64            `json:"matchTime"`
	Period           *string             `json:"period"`
	Championship     *float64            `json:"championship"`
	Home             *SideDocument       `json:"Home"`
	Away             *SideDocument       `json:"Away"`
	QuotationPreGame *PreGameQuotation   `json:"quotationPreGame"`
	QuotationPlayers map[string]*float64 `json:"quotationPlayers"`
	MatchData        *MatchData          `json:"matchData"`
	Timeline         []TimelineEvent     `json:"timeline"`
}

// SideDocument 一侧球队（Home/Away）的原始信息
type SideDocument struct {
	ID      *int64  `json:"id"`
	Club    *string `json:"club"`
	Players Roster  `json:"players"`
}

// PreGameQuotation 赛前三向赔率
type PreGameQuotation struct {
	Home *float64 `json:"Home"`
	Away *float64 `json:"Away"`
	Draw *float64 `json:"Draw"`
}

// MatchData 比赛事件块（进球/红黄牌/换人按主客分列）
type MatchData struct {
	Home *SideEvents `json:"home"`
	Away *SideEvents `json:"away"`
}

// SideEvents 单侧的事件列表
type SideEvents struct {
	Goals         []GoalEvent         `json:"goals"`
	Bookings      []BookingEvent      `json:"bookings"`
	Substitutions []SubstitutionEvent `json:"substitutions"`
}

// GoalEvent 进球事件。Type=="var" 表示被VAR取消的进球
type GoalEvent struct {
	Time     *float64 `json:"time"`
	PlayerID *int64   `json:"playerId"`
	Type     *string  `json:"type"`
}

// BookingEvent 红黄牌事件，原始代码 yellow/red 在提取时归一化
type BookingEvent struct {
	Time     *float64 `json:"time"`
	PlayerID *int64   `json:"playerId"`
	Type     *string  `json:"type"`
}

// SubstitutionEvent 结构化换人记录
type SubstitutionEvent struct {
	Time   *float64 `json:"time"`
	SubOff *int64   `json:"subOff"`
	SubOn  *int64   `json:"subOn"`
	Reason *string  `json:"reason"`
}

// TimelineEvent 顶层时间线事件（type=="substitution" 时作为换人的第二来源）
type TimelineEvent struct {
	Type   *string  `json:"type"`
	Time   *float64 `json:"time"`
	SubOff *int64   `json:"subOff"`
	SubOn  *int64   `json:"subOn"`
	Reason *string  `json:"reason"`
}

// PlayerDocument 名单中一名球员的原始信息：固定info块 + 开放式stat块
type PlayerDocument struct {
	Info *PlayerInfo        `json:"info"`
	Stat map[string]float64 `json:"stat"`
}

// PlayerInfo 球员在该场比赛中的固定字段
type PlayerInfo struct {
	IDPlayer       *int64   `json:"idplayer"`
	LastName       *string  `json:"lastname"`
	Position       *string  `json:"position"`
	FormationPlace *float64 `json:"formation_place"`
	MinsPlayed     *float64 `json:"mins_played"`
	NoteFinal2015  *float64 `json:"note_final_2015"`
	FormationUsed  *string  `json:"formation_used"`
}

// RosterEntry 名单中的一项：原始键（player_XXX）与球员数据
type RosterEntry struct {
	Key    string
	Player PlayerDocument
}

// Roster 球员名单。上游把名单存成JSON对象，而该对象的"第一名球员"
// 决定该侧的阵型字段，因此解码时必须保留文档中键的出现顺序。
type Roster struct {
	Entries []RosterEntry
}

// UnmarshalJSON 按文档顺序逐项解码名单对象
func (r *Roster) UnmarshalJSON(data []byte) error {
	r.Entries = nil
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("players 不是JSON对象")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var p PlayerDocument
		if err := dec.Decode(&p); err != nil {
			return err
		}
		r.Entries = append(r.Entries, RosterEntry{Key: key, Player: p})
	}
	_, err = dec.Token() // 消费收尾的 '}'
	return err
}

// First 返回名单中按文档顺序的第一名球员，名单为空时返回nil
func (r *Roster) First() *PlayerDocument {
	if len(r.Entries) == 0 {
		return nil
	}
	return &r.Entries[0].Player
}
