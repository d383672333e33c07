package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"FootballExplorer/internal/config"
	"FootballExplorer/internal/corpus"
	"FootballExplorer/internal/model"
	"FootballExplorer/internal/transfer"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// 七张表与manifest的固定文件名
const (
	FileTeams         = "teams.csv"
	FilePlayers       = "players.csv"
	FileMatches       = "matches.csv"
	FileHighlights    = "highlights.csv"
	FileSubstitutions = "substitutions.csv"
	FileMatchPlayers  = "match_players.csv"
	FileTransfers     = "transfers.csv"
	FileManifest      = "manifest.json"
)

var outputFiles = []string{
	FileTeams, FilePlayers, FileMatches, FileHighlights,
	FileSubstitutions, FileMatchPlayers, FileTransfers, FileManifest,
}

// Store 七张表的物化与缓存层：全量解析后写盘，后续运行直接读盘。
// 缓存条件 = 八个文件齐全 且 manifest指纹与原始目录一致（目录不可读时信任缓存）。
type Store struct {
	dataDir   string
	outputDir string
	logger    *logrus.Logger
	loader    *corpus.Loader

	// 串行化重建：并发导入交错rename会留下新旧混杂的表
	rebuildMu sync.Mutex
}

func NewStore(cfg config.DataConfig, logger *logrus.Logger) *Store {
	return &Store{
		dataDir:   cfg.JSONDir,
		outputDir: cfg.OutputDir,
		logger:    logger,
		loader:    corpus.NewLoader(logger),
	}
}

// Load 取数据集：优先走缓存，force=true 或缓存不可用时全量重建
func (s *Store) Load(force bool) (*model.Dataset, error) {
	if !force {
		if ds, ok := s.tryCache(); ok {
			return ds, nil
		}
	}
	return s.Rebuild()
}

// tryCache 校验并加载既有缓存，任一环节不满足都回落到重建
func (s *Store) tryCache() (*model.Dataset, bool) {
	for _, name := range outputFiles {
		if _, err := os.Stat(filepath.Join(s.outputDir, name)); err != nil {
			return nil, false
		}
	}
	m, err := readManifest(s.outputDir)
	if err != nil {
		s.logger.Warnf("manifest不可用，忽略缓存: %v", err)
		return nil, false
	}
	// 原始目录可读且指纹变化 → 缓存过期；目录不可读 → 信任缓存（加载路径不碰原始数据）
	if fp, ferr := SourceFingerprint(s.dataDir); ferr == nil && fp != m.SourceFingerprint {
		s.logger.Infof("原始目录 %s 指纹变化，缓存过期", s.dataDir)
		return nil, false
	}
	ds, err := s.loadFromDisk()
	if err != nil {
		s.logger.Warnf("读取缓存失败，改为重建: %v", err)
		return nil, false
	}
	s.logger.Infof("✅ 已从CSV缓存加载数据（run_id=%s）", m.RunID)
	return ds, true
}

// Rebuild 全量流水线：解析原始目录 → 物化 → 推断转会 → 原子落盘
func (s *Store) Rebuild() (*model.Dataset, error) {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	res, err := s.loader.LoadDirectory(s.dataDir)
	if err != nil {
		return nil, err
	}

	ds := materialize(res)
	ds.Transfers = transfer.Infer(ds.Teams, ds.Players, ds.Matches, ds.MatchPlayers)

	fp, err := SourceFingerprint(s.dataDir)
	if err != nil {
		// LoadDirectory 已确保目录存在，到这一步读不了属于致命I/O错误
		return nil, err
	}
	if err := s.persist(ds, fp); err != nil {
		return nil, err
	}

	s.logger.Info("✅ Export CSV 完成")
	for name, n := range ds.Counts() {
		s.logger.Infof("  %s: %d", name, n)
	}
	return ds, nil
}

// materialize 行列表 → 数据集，表级去重（Team/Player/Match 按id保留首次出现）
func materialize(res *corpus.Result) *model.Dataset {
	ds := &model.Dataset{
		Highlights:    res.Highlights,
		Substitutions: res.Substitutions,
		MatchPlayers:  res.MatchPlayers,
	}

	seenTeams := make(map[int64]struct{})
	for _, t := range res.Teams {
		if _, dup := seenTeams[t.IDTeam]; dup {
			continue
		}
		seenTeams[t.IDTeam] = struct{}{}
		ds.Teams = append(ds.Teams, t)
	}

	seenPlayers := make(map[int64]struct{})
	for _, p := range res.Players {
		if _, dup := seenPlayers[p.PlayerID]; dup {
			continue
		}
		seenPlayers[p.PlayerID] = struct{}{}
		ds.Players = append(ds.Players, p)
	}

	seenMatches := make(map[int64]struct{})
	seenNilMatch := false
	for _, m := range res.Matches {
		if m.MatchID == nil {
			if seenNilMatch {
				continue
			}
			seenNilMatch = true
		} else {
			if _, dup := seenMatches[*m.MatchID]; dup {
				continue
			}
			seenMatches[*m.MatchID] = struct{}{}
		}
		ds.Matches = append(ds.Matches, m)
	}

	return ds
}

// persist 八个文件先写进临时目录，再成组rename进输出目录，
// 避免中途崩溃留下新旧混杂的表。
func (s *Store) persist(ds *model.Dataset, fingerprint string) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录 %s 失败: %w", s.outputDir, err)
	}

	runID := uuid.NewString()
	tmpDir := filepath.Join(s.outputDir, ".tmp-"+runID)
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return fmt.Errorf("创建临时目录 %s 失败: %w", tmpDir, err)
	}
	defer os.RemoveAll(tmpDir)

	statCols := ds.StatColumns(appearanceColumns)
	writes := []struct {
		file    string
		header  []string
		records [][]string
	}{
		{FileTeams, teamColumns, teamRecords(ds.Teams)},
		{FilePlayers, playerColumns, playerRecords(ds.Players)},
		{FileMatches, matchColumns, matchRecords(ds.Matches)},
		{FileHighlights, highlightColumns, highlightRecords(ds.Highlights)},
		{FileSubstitutions, substitutionColumns, substitutionRecords(ds.Substitutions)},
		{FileMatchPlayers, append(append([]string{}, appearanceColumns...), statCols...), appearanceRecords(ds.MatchPlayers, statCols)},
		{FileTransfers, transferColumns, transferRecords(ds.Transfers)},
	}
	for _, w := range writes {
		if err := writeCSV(filepath.Join(tmpDir, w.file), w.header, w.records); err != nil {
			return err
		}
	}
	if err := writeManifest(filepath.Join(tmpDir, FileManifest), &Manifest{
		RunID:             runID,
		CreatedAt:         time.Now().UTC(),
		SourceFingerprint: fingerprint,
		Counts:            ds.Counts(),
	}); err != nil {
		return err
	}

	// 先移走旧manifest使既有缓存失效：中途崩溃只会留下"无manifest"的
	// 半成品，下次启动直接走重建，不会误信新旧混杂的表。
	// manifest排在outputFiles末位，新缓存最后一步才生效。
	if err := os.Remove(filepath.Join(s.outputDir, FileManifest)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("移除旧manifest失败: %w", err)
	}
	for _, name := range outputFiles {
		if err := os.Rename(filepath.Join(tmpDir, name), filepath.Join(s.outputDir, name)); err != nil {
			return fmt.Errorf("落盘 %s 失败: %w", name, err)
		}
	}
	return nil
}

// loadFromDisk 不触碰原始目录，直接从七张CSV还原数据集
func (s *Store) loadFromDisk() (*model.Dataset, error) {
	ds := &model.Dataset{}

	_, teamRecs, err := readCSV(filepath.Join(s.outputDir, FileTeams))
	if err != nil {
		return nil, err
	}
	ds.Teams = parseTeams(teamRecs)

	_, playerRecs, err := readCSV(filepath.Join(s.outputDir, FilePlayers))
	if err != nil {
		return nil, err
	}
	ds.Players = parsePlayers(playerRecs)

	_, matchRecs, err := readCSV(filepath.Join(s.outputDir, FileMatches))
	if err != nil {
		return nil, err
	}
	ds.Matches = parseMatches(matchRecs)

	_, hlRecs, err := readCSV(filepath.Join(s.outputDir, FileHighlights))
	if err != nil {
		return nil, err
	}
	ds.Highlights = parseHighlights(hlRecs)

	_, subRecs, err := readCSV(filepath.Join(s.outputDir, FileSubstitutions))
	if err != nil {
		return nil, err
	}
	ds.Substitutions = parseSubstitutions(subRecs)

	mpHeader, mpRecs, err := readCSV(filepath.Join(s.outputDir, FileMatchPlayers))
	if err != nil {
		return nil, err
	}
	ds.MatchPlayers = parseAppearances(mpHeader, mpRecs)

	_, trRecs, err := readCSV(filepath.Join(s.outputDir, FileTransfers))
	if err != nil {
		return nil, err
	}
	ds.Transfers = parseTransfers(trRecs)

	return ds, nil
}
