package library

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/kipyin/lego-songbook/internal/model"
)

// DefaultThumbnailDir is the directory name that marks small sheet variants.
const DefaultThumbnailDir = "TINY"

const (
	sheetExtension = ".png"
	mediaExtension = ".mp3"
)

// Searcher finds resource files for songs under a library root.
type Searcher struct {
	// ThumbnailDir must appear in the directory path of a sheet match.
	ThumbnailDir string

	logger *zap.Logger
}

// NewSearcher creates a Searcher logging to logger.
//
// If logger is nil, logging is disabled.
func NewSearcher(logger *zap.Logger) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{
		ThumbnailDir: DefaultThumbnailDir,
		logger:       logger,
	}
}

// Find returns the paths under root matching title for kind.
//
// Paths come in walk order. No match returns an empty result and logs a
// warning. Kinds other than sheet and media fail with
// model.ErrInvalidArgument.
func (s *Searcher) Find(title string, kind model.ResourceType, root string) ([]string, error) {
	match, err := s.matcher(kind)
	if err != nil {
		return nil, err
	}

	var found []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && match(title, path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return found, err
	}

	if len(found) == 0 {
		s.logger.Warn("no resource found",
			zap.String("title", title),
			zap.String("kind", string(kind)),
			zap.String("root", root))
	}
	return found, nil
}

// FindMultiple returns the paths under root matching any song of catalog.
//
// The tree is walked once and every path appears at most once, even when
// several titles match it.
func (s *Searcher) FindMultiple(kind model.ResourceType, root string, catalog *model.SongCatalog) ([]string, error) {
	var found []string
	err := s.walkCatalog(kind, root, catalog, func(path string, _ []*model.Song) {
		found = append(found, path)
	})
	return found, err
}

// FindBySong returns the matching paths under root keyed by song title.
//
// Titles without matches are absent from the map. A path matching several
// titles is listed under each of them.
func (s *Searcher) FindBySong(kind model.ResourceType, root string, catalog *model.SongCatalog) (map[string][]string, error) {
	found := make(map[string][]string)
	err := s.walkCatalog(kind, root, catalog, func(path string, songs []*model.Song) {
		for _, song := range songs {
			if !slices.Contains(found[song.Title], path) {
				found[song.Title] = append(found[song.Title], path)
			}
		}
	})
	return found, err
}

func (s *Searcher) walkCatalog(kind model.ResourceType, root string, catalog *model.SongCatalog, visit func(path string, songs []*model.Song)) error {
	match, err := s.matcher(kind)
	if err != nil {
		return err
	}
	if catalog == nil {
		return fmt.Errorf("%w: nil catalog", model.ErrInvalidArgument)
	}

	matched := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		var owners []*model.Song
		for _, song := range catalog.Songs {
			if match(song.Title, path) {
				owners = append(owners, song)
			}
		}
		if len(owners) > 0 {
			matched++
			s.logger.Debug("resource matched",
				zap.String("path", path),
				zap.Int("songs", len(owners)))
			visit(path, owners)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if matched == 0 {
		s.logger.Warn("no resource found",
			zap.String("catalog", catalog.Name),
			zap.String("kind", string(kind)),
			zap.String("root", root))
	}
	return nil
}

// matcher returns the file test for kind.
func (s *Searcher) matcher(kind model.ResourceType) (func(title, path string) bool, error) {
	switch kind {
	case model.ResourceSheet:
		return func(title, path string) bool {
			return nameMatches(title, path, sheetExtension) &&
				strings.Contains(filepath.Dir(path), s.ThumbnailDir)
		}, nil
	case model.ResourceMedia:
		return func(title, path string) bool {
			return nameMatches(title, path, mediaExtension)
		}, nil
	default:
		return nil, fmt.Errorf("%w: cannot search resources of kind %q", model.ErrInvalidArgument, kind)
	}
}

func nameMatches(title, path, ext string) bool {
	name := filepath.Base(path)
	return title != "" &&
		strings.Contains(name, title) &&
		strings.HasSuffix(strings.ToLower(name), ext)
}
