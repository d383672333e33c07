package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Manifest 与七张CSV一起落盘的缓存凭据。
// SourceFingerprint 记录生成时原始目录的指纹，用于检测缓存过期。
type Manifest struct {
	RunID             string         `json:"run_id"`
	CreatedAt         time.Time      `json:"created_at"`
	SourceFingerprint string         `json:"source_fingerprint"`
	Counts            map[string]int `json:"counts"`
}

// SourceFingerprint 原始目录中所有 *.json 条目的 (文件名,大小,修改时间) 摘要。
// 目录不可读时返回错误，由调用方决定是否信任既有缓存。
func SourceFingerprint(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("读取目录 %s 失败: %w", dir, err)
	}

	var lines []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", fmt.Errorf("读取 %s 信息失败: %w", entry.Name(), err)
		}
		lines = append(lines, fmt.Sprintf("%s|%d|%d", entry.Name(), info.Size(), info.ModTime().UnixNano()))
	}
	sort.Strings(lines)

	h := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(h[:]), nil
}

func writeManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化manifest失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}

func readManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileManifest)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", path, err)
	}
	return &m, nil
}
