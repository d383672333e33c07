package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"FootballExplorer/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const insertBatchSize = 500

// WarehouseRepository 数据仓库镜像仓储：把物化数据集整体重灌进Postgres
type WarehouseRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewWarehouseRepository(db *gorm.DB, logger *logrus.Logger) *WarehouseRepository {
	return &WarehouseRepository{db: db, logger: logger}
}

// ReplaceAll 在一个事务里清空七张镜像表并重新写入。
// 任一步失败整体回滚，库内保持上一版数据。
func (r *WarehouseRepository) ReplaceAll(ctx context.Context, ds *model.Dataset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 清空旧数据（按依赖顺序可任意，无外键）
		for _, m := range []interface{}{
			&model.Transfer{}, &model.Substitution{}, &model.Highlight{},
			&model.MatchPlayer{}, &model.Match{}, &model.Player{}, &model.Team{},
		} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return fmt.Errorf("清空镜像表失败: %w", err)
			}
		}

		// 2. 批量写入新数据
		if err := batchInsert(tx, teamModels(ds)); err != nil {
			return fmt.Errorf("写入teams失败: %w", err)
		}
		if err := batchInsert(tx, playerModels(ds)); err != nil {
			return fmt.Errorf("写入players失败: %w", err)
		}
		if err := batchInsert(tx, matchModels(ds)); err != nil {
			return fmt.Errorf("写入matches失败: %w", err)
		}
		mp, err := matchPlayerModels(ds)
		if err != nil {
			return err
		}
		if err := batchInsert(tx, mp); err != nil {
			return fmt.Errorf("写入match_players失败: %w", err)
		}
		if err := batchInsert(tx, highlightModels(ds)); err != nil {
			return fmt.Errorf("写入highlights失败: %w", err)
		}
		if err := batchInsert(tx, substitutionModels(ds)); err != nil {
			return fmt.Errorf("写入substitutions失败: %w", err)
		}
		if err := batchInsert(tx, transferModels(ds)); err != nil {
			return fmt.Errorf("写入transfers失败: %w", err)
		}

		r.logger.WithFields(logrus.Fields{
			"teams":     len(ds.Teams),
			"players":   len(ds.Players),
			"matches":   len(ds.Matches),
			"transfers": len(ds.Transfers),
		}).Info("数据仓库镜像重灌完成")
		return nil
	})
}

func batchInsert[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, insertBatchSize).Error
}

func teamModels(ds *model.Dataset) []model.Team {
	out := make([]model.Team, 0, len(ds.Teams))
	for _, t := range ds.Teams {
		out = append(out, model.Team{IDTeam: t.IDTeam, Name: t.Name})
	}
	return out
}

func playerModels(ds *model.Dataset) []model.Player {
	out := make([]model.Player, 0, len(ds.Players))
	for _, p := range ds.Players {
		out = append(out, model.Player{PlayerID: p.PlayerID, LastName: p.LastName})
	}
	return out
}

func matchModels(ds *model.Dataset) []model.Match {
	out := make([]model.Match, 0, len(ds.Matches))
	for i := range ds.Matches {
		m := &ds.Matches[i]
		out = append(out, model.Match{
			MatchID:       m.MatchID,
			Date:          m.Date,
			HomeIDTeam:    m.HomeIDTeam,
			AwayIDTeam:    m.AwayIDTeam,
			Duration:      m.Duration,
			Period:        m.Period,
			Championship:  m.Championship,
			HomeFormation: m.HomeFormation,
			AwayFormation: m.AwayFormation,
			QuotationHome: m.QuotationHome,
			QuotationAway: m.QuotationAway,
			QuotationDraw: m.QuotationDraw,
			HomeScore:     m.HomeScore,
			AwayScore:     m.AwayScore,
		})
	}
	return out
}

func matchPlayerModels(ds *model.Dataset) ([]model.MatchPlayer, error) {
	out := make([]model.MatchPlayer, 0, len(ds.MatchPlayers))
	for i := range ds.MatchPlayers {
		a := &ds.MatchPlayers[i]
		row := model.MatchPlayer{
			PlayerID:        a.PlayerID,
			MatchID:         a.MatchID,
			TeamID:          a.TeamID,
			Position:        a.Position,
			FormationPlace:  a.FormationPlace,
			PlayDuration:    a.PlayDuration,
			FinalMark2015:   a.FinalMark2015,
			QuotationPlayer: a.QuotationPlayer,
		}
		if len(a.Stats) > 0 {
			raw, err := json.Marshal(a.Stats)
			if err != nil {
				return nil, fmt.Errorf("序列化出场统计失败: %w", err)
			}
			row.Stats = datatypes.JSON(raw)
		}
		out = append(out, row)
	}
	return out, nil
}

func highlightModels(ds *model.Dataset) []model.Highlight {
	out := make([]model.Highlight, 0, len(ds.Highlights))
	for _, h := range ds.Highlights {
		out = append(out, model.Highlight{
			MatchID:  h.MatchID,
			Time:     h.Time,
			PlayerID: h.PlayerID,
			Type:     h.Type,
		})
	}
	return out
}

func substitutionModels(ds *model.Dataset) []model.Substitution {
	out := make([]model.Substitution, 0, len(ds.Substitutions))
	for _, s := range ds.Substitutions {
		out = append(out, model.Substitution{
			MatchID:     s.MatchID,
			Time:        s.Time,
			OffPlayerID: s.OffPlayerID,
			OnPlayerID:  s.OnPlayerID,
			Reason:      s.Reason,
		})
	}
	return out
}

func transferModels(ds *model.Dataset) []model.Transfer {
	out := make([]model.Transfer, 0, len(ds.Transfers))
	for _, t := range ds.Transfers {
		out = append(out, model.Transfer{
			PlayerID:   t.PlayerID,
			PlayerName: t.PlayerName,
			Team:       t.Team,
			StartDate:  t.StartDate,
			EndDate:    t.EndDate,
		})
	}
	return out
}
