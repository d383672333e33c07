package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"FootballExplorer/internal/extract"
	"FootballExplorer/internal/model"

	"github.com/sirupsen/logrus"
)

// Loader 遍历原始JSON目录，逐份文档调用提取器并累积各表的行
type Loader struct {
	logger *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	return &Loader{logger: logger}
}

// Result 一次全量解析的产出：七张表中除transfers外的六张，外加文件计数
type Result struct {
	Teams         []model.TeamRow
	Players       []model.PlayerRow
	Matches       []model.MatchRow
	Highlights    []model.HighlightRow
	Substitutions []model.SubstitutionRow
	MatchPlayers  []model.AppearanceRow

	FilesParsed  int
	FilesSkipped int
}

// LoadDirectory 解析目录下所有 *.json 文档。
// 目录不存在时创建空目录并返回空结果；单份文档损坏只告警跳过，不中断全量解析。
// Team/Player 在遍历过程中按id增量去重，首次出现者胜出。
func (l *Loader) LoadDirectory(dir string) (*Result, error) {
	res := &Result{}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		l.logger.Warnf("目录 %s 不存在，已创建空目录", dir)
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return nil, fmt.Errorf("创建目录 %s 失败: %w", dir, mkErr)
		}
		return res, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("读取目录 %s 失败: %w", dir, err)
	}

	seenTeams := make(map[int64]struct{})
	seenPlayers := make(map[int64]struct{})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		raw, err := os.ReadFile(path)
		if err != nil {
			l.logger.Warnf("跳过 %s，读取失败: %v", entry.Name(), err)
			res.FilesSkipped++
			continue
		}
		var doc model.MatchDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			l.logger.Warnf("跳过 %s，解码失败: %v", entry.Name(), err)
			res.FilesSkipped++
			continue
		}

		ex := extract.Document(&doc)
		res.FilesParsed++

		for _, t := range ex.Teams {
			if _, dup := seenTeams[t.IDTeam]; dup {
				continue
			}
			seenTeams[t.IDTeam] = struct{}{}
			res.Teams = append(res.Teams, t)
		}
		for _, p := range ex.Players {
			if _, dup := seenPlayers[p.PlayerID]; dup {
				continue
			}
			seenPlayers[p.PlayerID] = struct{}{}
			res.Players = append(res.Players, p)
		}
		res.Matches = append(res.Matches, ex.Match)
		res.Highlights = append(res.Highlights, ex.Highlights...)
		res.Substitutions = append(res.Substitutions, ex.Substitutions...)
		res.MatchPlayers = append(res.MatchPlayers, ex.MatchPlayers...)
	}

	l.logger.Infof("目录 %s 解析完成：%d 份文档，%d 份跳过", dir, res.FilesParsed, res.FilesSkipped)
	return res, nil
}
