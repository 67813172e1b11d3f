package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "songs.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportCSV_Legacy(t *testing.T) {
	path := writeCSV(t, "name,key,hymn_ref,sheet_type\n奇异恩典,G,,\n爱赢了,C,12,png\n")

	catalog, err := ImportCSV(path, FormatLegacy)
	require.NoError(t, err)

	assert.Equal(t, "songs.csv", catalog.Name)
	require.Len(t, catalog.Songs, 2)
	assert.Equal(t, NewSong("奇异恩典", "G"), catalog.Songs[0])
	assert.Equal(t, NewSong("爱赢了", "C"), catalog.Songs[1])
}

func TestImportCSV_CurrentReadsTitleAndKeyOnly(t *testing.T) {
	path := writeCSV(t, "title,original_key,alternative_titles,lyricist,composer\nAmazing Grace,G,奇异恩典,John Newton,\n")

	catalog, err := ImportCSV(path, FormatCurrent)
	require.NoError(t, err)

	require.Len(t, catalog.Songs, 1)
	assert.Equal(t, &Song{Title: "Amazing Grace", OriginalKey: "G"}, catalog.Songs[0])
}

func TestImportCSV_BOM(t *testing.T) {
	path := writeCSV(t, "\ufefftitle,original_key,alternative_titles,lyricist,composer\nA,,,,\n")

	catalog, err := ImportCSV(path, FormatCurrent)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, catalog.Titles())
}

func TestImportCSV_HeaderMismatch(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  Format
	}{
		{"legacy file read as current", "name,key,hymn_ref,sheet_type\nA,C,,\n", FormatCurrent},
		{"current file read as legacy", "title,original_key,alternative_titles,lyricist,composer\n", FormatLegacy},
		{"reordered columns", "key,name,hymn_ref,sheet_type\nC,A,,\n", FormatLegacy},
		{"missing column", "name,key,hymn_ref\nA,C,\n", FormatLegacy},
		{"empty file", "", FormatLegacy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportCSV(writeCSV(t, tt.content), tt.format)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestImportCSV_MissingTitle(t *testing.T) {
	_, err := ImportCSV(writeCSV(t, "name,key,hymn_ref,sheet_type\n,C,,\n"), FormatLegacy)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestImportCSV_MissingFile(t *testing.T) {
	_, err := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"), FormatLegacy)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportCSV(t *testing.T) {
	song := &Song{
		Title:             "Amazing Grace",
		OriginalKey:       "G",
		AlternativeTitles: []string{"奇异恩典", "天赐恩典"},
		Lyricist:          "John Newton",
	}
	catalog := NewSongCatalog("x", song, NewSong("爱赢了", ""))

	dir := t.TempDir()

	current := filepath.Join(dir, "current.csv")
	require.NoError(t, catalog.ExportCSV(current, FormatCurrent))
	data, err := os.ReadFile(current)
	require.NoError(t, err)
	assert.Equal(t,
		"title,original_key,alternative_titles,lyricist,composer\n"+
			"Amazing Grace,G,奇异恩典 / 天赐恩典,John Newton,\n"+
			"爱赢了,,,,\n",
		string(data))

	legacy := filepath.Join(dir, "legacy.csv")
	require.NoError(t, catalog.ExportCSV(legacy, FormatLegacy))
	data, err = os.ReadFile(legacy)
	require.NoError(t, err)
	assert.Equal(t, "name,key,hymn_ref,sheet_type\nAmazing Grace,G,,\n爱赢了,,,\n", string(data))
}

func TestCSV_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatLegacy, FormatCurrent} {
		t.Run(format.String(), func(t *testing.T) {
			header := strings.Join(format.Header(), ",")
			pad := strings.Repeat(",", len(format.Header())-2)
			src := writeCSV(t, header+"\n奇异恩典,G"+pad+"\n爱赢了,C"+pad+"\nWay Maker,"+pad+"\n")

			catalog, err := ImportCSV(src, format)
			require.NoError(t, err)

			out := filepath.Join(t.TempDir(), "out.csv")
			require.NoError(t, catalog.ExportCSV(out, format))

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			assert.Equal(t, header, lines[0])
			assert.Len(t, lines, 4)

			again, err := ImportCSV(out, format)
			require.NoError(t, err)
			assert.Equal(t, catalog.Songs, again.Songs)
		})
	}
}
