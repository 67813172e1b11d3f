package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipyin/lego-songbook/internal/config"
	"github.com/kipyin/lego-songbook/internal/model"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	settings   *config.Settings
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	base := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(base, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write("songs.csv", "title,original_key,alternative_titles,lyricist,composer\n"+
		"Way Maker,E,,,\n奇异恩典,G,,,\n爱赢了,,,,\n")
	write("resources/media/奇异恩典.mp3", "fake mpeg audio frames")
	write("resources/sheets/TINY/爱赢了.png", "")

	settings := config.DefaultSettings()
	settings.Catalog = filepath.Join(base, "songs.csv")
	settings.SongInfo = filepath.Join(base, "song_info.yml")
	settings.LibraryRoot = filepath.Join(base, "resources")
	settings.PageDir = filepath.Join(base, "_songs")
	settings.LogLevel = "error"

	configPath := filepath.Join(base, "legoworship.toml")
	require.NoError(t, settings.Save(configPath))

	return &cliTestEnv{baseDir: base, configPath: configPath, settings: settings}
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.configPath, "--env", ""}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRoot_PrintsVersion(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "legoworship "+version+"\n"))

	out, err = env.run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "legoworship version "+version+"\n", out)

	out, err = env.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "legoworship version "+version+"\n", out)
}

func TestSort_Plain(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "sort", "title", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "爱赢了\n奇异恩典\nWay Maker\n", out)

	out, err = env.run(t, "sort", "title", "--plain", "--desc")
	require.NoError(t, err)
	assert.Equal(t, "Way Maker\n奇异恩典\n爱赢了\n", out)

	out, err = env.run(t, "sort", "original_key", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "爱赢了\nWay Maker\n奇异恩典\n", out)
}

func TestSort_Errors(t *testing.T) {
	env := setupCLITestEnv(t)

	_, err := env.run(t, "sort", "composer")
	assert.ErrorIs(t, err, model.ErrUnsupported)

	_, err = env.run(t, "sort", "name")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestSort_Output(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(env.baseDir, "sorted.csv")

	_, err := env.run(t, "sort", "title", "--output", output)
	require.NoError(t, err)

	catalog, err := model.ImportCSV(output, model.FormatCurrent)
	require.NoError(t, err)
	assert.Equal(t, []string{"爱赢了", "奇异恩典", "Way Maker"}, catalog.Titles())
}

func TestList_Table(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Qi Yi En Dian")
	assert.Contains(t, out, "Pinyin")
	assert.NotContains(t, out, "PINYIN")
}

func TestConvert(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "legacy.csv")
	dst := filepath.Join(env.baseDir, "current.csv")
	require.NoError(t, os.WriteFile(src, []byte("name,key,hymn_ref,sheet_type\n奇异恩典,G,,\n"), 0644))

	out, err := env.run(t, "convert", src, dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 1 songs from legacy to current")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "title,original_key,alternative_titles,lyricist,composer\n奇异恩典,G,,,\n", string(data))

	_, err = env.run(t, "convert", src, dst, "--from", "ancient")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestShow_Markdown(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "show", "奇异恩典")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# 奇异恩典\n"))
	assert.Contains(t, out, "- **Key:** G")

	_, err = env.run(t, "show", "Unknown")
	assert.Error(t, err)
}

func TestResources(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "resources", "find", "奇异恩典")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.baseDir, "resources", "media", "奇异恩典.mp3")+"\n", out)

	out, err = env.run(t, "resources", "scan", "--kind", "sheet")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("TINY", "爱赢了.png"))

	_, err = env.run(t, "resources", "find", "奇异恩典", "--kind", "score")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestResources_ThumbnailDirFromConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	small := filepath.Join(env.baseDir, "resources", "sheets", "SMALL", "爱赢了.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(small), 0755))
	require.NoError(t, os.WriteFile(small, nil, 0644))

	env.settings.Thumbnails.DirName = "SMALL"
	require.NoError(t, env.settings.Save(env.configPath))

	out, err := env.run(t, "resources", "find", "爱赢了", "--kind", "sheet")
	require.NoError(t, err)
	assert.Equal(t, small+"\n", out)

	out, err = env.run(t, "resources", "scan", "--kind", "sheet")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("SMALL", "爱赢了.png"))
	assert.NotContains(t, out, filepath.Join("TINY", "爱赢了.png"))
}

func TestPagesCreate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "pages", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "Created 3 pages")
	assert.FileExists(t, filepath.Join(env.settings.PageDir, "奇异恩典.md"))

	_, err = env.run(t, "pages", "create")
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	out, err = env.run(t, "pages", "create", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Created 0 pages")
}

func TestInfoExportLoad(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.baseDir, "exported.yml")

	_, err := env.run(t, "info", "export", path)
	require.NoError(t, err)
	records, err := model.ReadSongInfo(path)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	doc := "- title: 奇异恩典\n  resources: null\n  lyrics:\n    zh: 奇异恩典\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	out, err := env.run(t, "info", "load", path)
	require.NoError(t, err)
	assert.Contains(t, out, "zh")
}

func TestBuild(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "6/6 steps")

	assert.FileExists(t, env.settings.SongInfo)
	assert.FileExists(t, filepath.Join(env.settings.LibraryRoot, "setlist.m3u"))
	assert.FileExists(t, filepath.Join(env.settings.PageDir, "Way Maker.md"))
}

func TestPlaylist_Format(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "playlist", "--format", "pls", "--name", "Sunday")
	require.NoError(t, err)

	path := filepath.Join(env.settings.LibraryRoot, "Sunday.pls")
	assert.Equal(t, path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "File1=media/奇异恩典.mp3")
}

func TestCatalogFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	legacy := filepath.Join(env.baseDir, "legacy.csv")
	require.NoError(t, os.WriteFile(legacy, []byte("name,key,hymn_ref,sheet_type\nOnly,C,,\n"), 0644))

	out, err := env.run(t, "--catalog", legacy, "--legacy", "list", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "Only\n", out)
}
