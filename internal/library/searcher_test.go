package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kipyin/lego-songbook/internal/model"
)

func buildLibrary(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
	return root
}

func TestSearcher_Find(t *testing.T) {
	root := buildLibrary(t,
		"sheets/奇异恩典.png",
		"sheets/TINY/奇异恩典.png",
		"sheets/TINY/奇异恩典.pdf",
		"media/奇异恩典.mp3",
		"media/奇异恩典.wav",
		"media/爱赢了.mp3",
	)
	s := NewSearcher(nil)

	tests := []struct {
		name  string
		title string
		kind  model.ResourceType
		want  []string
	}{
		{"sheet only in TINY", "奇异恩典", model.ResourceSheet, []string{"sheets/TINY/奇异恩典.png"}},
		{"media only mp3", "奇异恩典", model.ResourceMedia, []string{"media/奇异恩典.mp3"}},
		{"substring title", "爱", model.ResourceMedia, []string{"media/爱赢了.mp3"}},
		{"no match", "Way Maker", model.ResourceMedia, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Find(tt.title, tt.kind, root)
			require.NoError(t, err)

			var want []string
			for _, w := range tt.want {
				want = append(want, filepath.Join(root, filepath.FromSlash(w)))
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestSearcher_FindWarnsWhenEmpty(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewSearcher(zap.New(core))

	got, err := s.Find("奇异恩典", model.ResourceMedia, buildLibrary(t, "other.mp3"))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, logs.FilterMessage("no resource found").Len())
}

func TestSearcher_FindInvalidKind(t *testing.T) {
	s := NewSearcher(nil)

	_, err := s.Find("A", model.ResourceType("score"), t.TempDir())
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = s.FindMultiple(model.ResourceType("score"), t.TempDir(), model.NewSongCatalog("x"))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestSearcher_FindMissingRoot(t *testing.T) {
	_, err := NewSearcher(nil).Find("A", model.ResourceMedia, filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSearcher_FindMultiple(t *testing.T) {
	root := buildLibrary(t,
		"爱赢了.mp3",
		"奇异恩典.mp3",
		"unrelated.mp3",
	)
	catalog := model.NewSongCatalog("x",
		model.NewSong("爱", ""),
		model.NewSong("爱赢了", ""),
		model.NewSong("奇异恩典", ""),
	)

	got, err := NewSearcher(nil).FindMultiple(model.ResourceMedia, root, catalog)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "爱赢了.mp3"),
		filepath.Join(root, "奇异恩典.mp3"),
	}, got)
}

func TestSearcher_FindBySong(t *testing.T) {
	root := buildLibrary(t,
		"a/TINY/爱赢了.png",
		"b/TINY/奇异恩典 p1.png",
		"b/TINY/奇异恩典 p2.png",
	)
	catalog := model.NewSongCatalog("x",
		model.NewSong("爱", ""),
		model.NewSong("爱赢了", ""),
		model.NewSong("奇异恩典", ""),
		model.NewSong("Way Maker", ""),
	)

	got, err := NewSearcher(nil).FindBySong(model.ResourceSheet, root, catalog)
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"爱":    {filepath.Join(root, "a", "TINY", "爱赢了.png")},
		"爱赢了":  {filepath.Join(root, "a", "TINY", "爱赢了.png")},
		"奇异恩典": {filepath.Join(root, "b", "TINY", "奇异恩典 p1.png"), filepath.Join(root, "b", "TINY", "奇异恩典 p2.png")},
	}, got)
}

func TestSearcher_CustomThumbnailDir(t *testing.T) {
	root := buildLibrary(t, "SMALL/A.png", "TINY/A.png")
	s := NewSearcher(nil)
	s.ThumbnailDir = "SMALL"

	got, err := s.Find("A", model.ResourceSheet, root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "SMALL", "A.png")}, got)
}
