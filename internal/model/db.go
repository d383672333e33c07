package model

import (
	"time"

	"gorm.io/datatypes"
)

// 数据仓库镜像表（postgres.enabled=true 时由仓储层整体重灌）。
// 列名与CSV列保持一致，方便对照排查。

type Team struct {
	IDTeam int64  `gorm:"column:idteam;primaryKey;comment:球队ID"`
	Name   string `gorm:"column:name;type:varchar(128);not null;comment:球队名称"`
}

type Player struct {
	PlayerID int64   `gorm:"column:playerid;primaryKey;comment:球员ID"`
	LastName *string `gorm:"column:lastname;type:varchar(128);comment:球员姓氏"`
}

type Match struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	MatchID       *int64     `gorm:"column:matchid;type:bigint;uniqueIndex;comment:比赛ID"`
	Date          *time.Time `gorm:"column:date;type:timestamp;comment:比赛日期"`
	HomeIDTeam    *int64     `gorm:"column:home_idteam;type:bigint;comment:主队ID"`
	AwayIDTeam    *int64     `gorm:"column:away_idteam;type:bigint;comment:客队ID"`
	Duration      *float64   `gorm:"column:duration;type:numeric(8,2);comment:比赛时长"`
	Period        *string    `gorm:"column:period;type:varchar(32);comment:比赛阶段"`
	Championship  *int64     `gorm:"column:championship;type:bigint;comment:联赛编号"`
	HomeFormation *string    `gorm:"column:home_formation;type:varchar(16);comment:主队阵型"`
	AwayFormation *string    `gorm:"column:away_formation;type:varchar(16);comment:客队阵型"`
	QuotationHome *float64   `gorm:"column:quotation_home;type:numeric(8,2);comment:主胜赔率"`
	QuotationAway *float64   `gorm:"column:quotation_away;type:numeric(8,2);comment:客胜赔率"`
	QuotationDraw *float64   `gorm:"column:quotation_draw;type:numeric(8,2);comment:平局赔率"`
	HomeScore     int        `gorm:"column:home_score;type:int;not null;comment:主队有效进球数"`
	AwayScore     int        `gorm:"column:away_score;type:int;not null;comment:客队有效进球数"`
}

type MatchPlayer struct {
	ID              uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	PlayerID        *int64         `gorm:"column:playerid;type:bigint;index;comment:球员ID"`
	MatchID         *int64         `gorm:"column:matchid;type:bigint;index;comment:比赛ID"`
	TeamID          *int64         `gorm:"column:team_id;type:bigint;comment:球队ID"`
	Position        *string        `gorm:"column:position;type:varchar(32);comment:场上位置"`
	FormationPlace  *float64       `gorm:"column:formation_place;type:numeric(8,2);comment:阵型位次"`
	PlayDuration    *float64       `gorm:"column:play_duration;type:numeric(8,2);comment:出场分钟"`
	FinalMark2015   *float64       `gorm:"column:final_mark_2015;type:numeric(8,2);comment:2015赛季评分"`
	QuotationPlayer *float64       `gorm:"column:quotation_player;type:numeric(8,2);comment:球员赛前赔率"`
	Stats           datatypes.JSON `gorm:"column:stats;type:jsonb;comment:开放式比赛统计"`
}

type Highlight struct {
	ID       uint64   `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	MatchID  *int64   `gorm:"column:matchid;type:bigint;index;comment:比赛ID"`
	Time     *float64 `gorm:"column:time;type:numeric(8,2);comment:事件时间"`
	PlayerID *int64   `gorm:"column:playerid;type:bigint;index;comment:球员ID"`
	Type     string   `gorm:"column:type;type:varchar(32);not null;comment:事件类型"`
}

type Substitution struct {
	ID          uint64   `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	MatchID     *int64   `gorm:"column:matchid;type:bigint;index;comment:比赛ID"`
	Time        *float64 `gorm:"column:time;type:numeric(8,2);comment:换人时间"`
	OffPlayerID *int64   `gorm:"column:off_playerid;type:bigint;comment:被换下球员ID"`
	OnPlayerID  *int64   `gorm:"column:on_playerid;type:bigint;comment:替补登场球员ID"`
	Reason      string   `gorm:"column:reason;type:varchar(64);comment:换人原因"`
}

type Transfer struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	PlayerID   int64     `gorm:"column:playerid;type:bigint;index;comment:球员ID"`
	PlayerName string    `gorm:"column:player_name;type:varchar(128);comment:球员姓氏"`
	Team       string    `gorm:"column:team;type:varchar(128);comment:效力俱乐部"`
	StartDate  time.Time `gorm:"column:start_date;type:date;comment:区间开始日"`
	EndDate    time.Time `gorm:"column:end_date;type:date;comment:区间结束日"`
}

func (Team) TableName() string         { return "teams" }
func (Player) TableName() string       { return "players" }
func (Match) TableName() string        { return "matches" }
func (MatchPlayer) TableName() string  { return "match_players" }
func (Highlight) TableName() string    { return "highlights" }
func (Substitution) TableName() string { return "substitutions" }
func (Transfer) TableName() string     { return "transfers" }
