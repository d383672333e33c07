package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader() *Loader {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewLoader(logger)
}

func writeDoc(t *testing.T, dir, name, raw string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(raw), 0o644))
}

func TestLoadDirectoryCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does", "not", "exist")

	res, err := newTestLoader().LoadDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, res.FilesParsed)
	assert.Empty(t, res.Matches)

	// 目录已被创建，下次运行可直接落文件
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadDirectorySkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "good.json", `{"id": 1, "Home": {"id": 10, "club": "Nantes"}}`)
	writeDoc(t, dir, "broken.json", `{"id": `)
	writeDoc(t, dir, "notes.txt", `pas du json`)

	res, err := newTestLoader().LoadDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, res.FilesParsed)
	assert.Equal(t, 1, res.FilesSkipped)
	require.Len(t, res.Matches, 1)
}

func TestLoadDirectoryDedupFirstWins(t *testing.T) {
	dir := t.TempDir()
	// 文件按名称顺序遍历：a.json先出现，其球队/球员名定格
	writeDoc(t, dir, "a.json", `{
		"id": 1,
		"Home": {"id": 10, "club": "Nantes",
			"players": {"player_100": {"info": {"idplayer": 100, "lastname": "Martin"}}}}
	}`)
	writeDoc(t, dir, "b.json", `{
		"id": 2,
		"Home": {"id": 10, "club": "FC Nantes",
			"players": {"player_100": {"info": {"idplayer": 100, "lastname": "MARTIN"}}}}
	}`)

	res, err := newTestLoader().LoadDirectory(dir)
	require.NoError(t, err)

	require.Len(t, res.Teams, 1)
	assert.Equal(t, "Nantes", res.Teams[0].Name)
	require.Len(t, res.Players, 1)
	require.NotNil(t, res.Players[0].LastName)
	assert.Equal(t, "Martin", *res.Players[0].LastName)

	// 比赛与出场记录不去重，每份文档各产出一份
	assert.Len(t, res.Matches, 2)
	assert.Len(t, res.MatchPlayers, 2)
}
