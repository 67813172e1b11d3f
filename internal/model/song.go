package model

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/kipyin/lego-songbook/internal/sortkey"
)

// Song represents one musical work in the catalog.
//
// Song carries the fields kept in the catalog CSV plus the side-channel
// data loaded from the song info document:
//   - Title and alternative titles, possibly mixing Chinese and English
//   - Original key and credits
//   - Lyrics by language or section label
//   - Sheet music and recordings found in the resource library
//
// Two songs are the same song for lookups when their titles are equal.
// Nothing enforces unique titles inside a catalog.
//
// Example:
//
//	song := &Song{Title: "奇异恩典", OriginalKey: "G"}
//	song.PinyinTitle() // ["Qi", "Yi", "En", "Dian"]
type Song struct {
	// Title is the display name. It is required and never empty.
	Title string

	// AlternativeTitles are other names the song is known by.
	AlternativeTitles []string

	// OriginalKey is the key of the original recording. Empty means unknown.
	OriginalKey string

	// Lyricist and Composer are free-form credits.
	Lyricist string
	Composer string

	// Lyrics maps a label such as "zh" or "chorus" to lyric text.
	Lyrics map[string]string

	// Resources are the files attached to this song.
	Resources []SongResource
}

// NewSong creates a song with the given title and original key.
func NewSong(title, originalKey string) *Song {
	return &Song{Title: title, OriginalKey: originalKey}
}

// PinyinTitle returns the title as phonetic sort tokens using the default
// overrides.
func (s *Song) PinyinTitle() []string {
	return s.SortKey(sortkey.Default())
}

// SortKey returns the title as phonetic sort tokens built by b.
func (s *Song) SortKey(b *sortkey.Builder) []string {
	return b.Build(s.Title)
}

// AlternativeTitleString joins the alternative titles with " / ".
func (s *Song) AlternativeTitleString() string {
	return strings.Join(s.AlternativeTitles, " / ")
}

// MatchesFile reports whether filename belongs to this song.
//
// The title must appear anywhere in filename (case-sensitive) and filename
// must end with one of extensions (case-insensitive). A title that is part
// of a longer title also matches the longer title's files.
func (s *Song) MatchesFile(filename string, extensions []string) bool {
	if s.Title == "" || !strings.Contains(filename, s.Title) {
		return false
	}
	return hasExtension(filename, extensions)
}

// FindResources walks libraryRoot and attaches every file matching this song.
//
// Without extensions, the defaults of resourceType are used; an unknown type
// without extensions fails with ErrInvalidArgument. Found files are appended
// to Resources, so calling twice attaches duplicates. Resources appended
// before a walk error stay attached.
//
// Returns whether at least one resource was found.
func (s *Song) FindResources(resourceType ResourceType, libraryRoot string, extensions ...string) (bool, error) {
	if len(extensions) == 0 {
		defaults, ok := resourceType.DefaultExtensions()
		if !ok {
			return false, fmt.Errorf("%w: no default extensions for resource type %q", ErrInvalidArgument, resourceType)
		}
		extensions = defaults
	}

	found := false
	err := filepath.WalkDir(libraryRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !s.MatchesFile(d.Name(), extensions) {
			return nil
		}
		s.Resources = append(s.Resources, SongResource{Type: resourceType, Location: path})
		found = true
		return nil
	})

	return found, err
}

// ResourcesOf returns the attached resources of the given type, in order.
func (s *Song) ResourcesOf(resourceType ResourceType) []SongResource {
	var out []SongResource
	for _, r := range s.Resources {
		if r.Type == resourceType {
			out = append(out, r)
		}
	}
	return out
}

// HasResource reports whether a resource with the same type and location
// is attached.
func (s *Song) HasResource(r SongResource) bool {
	for _, existing := range s.Resources {
		if existing.Type == r.Type && existing.Location == r.Location {
			return true
		}
	}
	return false
}

// LoadInfoFromRecords merges the first record titled like this song.
//
// Lyrics are merged label by label, the record winning. Record resources
// are appended unless the same type and location is already attached.
// No matching record leaves the song unchanged.
func (s *Song) LoadInfoFromRecords(records []SongInfo) {
	for _, record := range records {
		if record.Title != s.Title {
			continue
		}

		if len(record.Lyrics) > 0 && s.Lyrics == nil {
			s.Lyrics = make(map[string]string, len(record.Lyrics))
		}
		for label, text := range record.Lyrics {
			s.Lyrics[label] = text
		}

		for _, info := range record.Resources {
			r := ResourceFromInfo(info)
			if !s.HasResource(r) {
				s.Resources = append(s.Resources, r)
			}
		}
		return
	}
}

// Info returns a snapshot of the song for the song info document.
func (s *Song) Info() SongInfo {
	info := SongInfo{Title: s.Title}

	if len(s.Resources) > 0 {
		info.Resources = make([]ResourceInfo, len(s.Resources))
		for i, r := range s.Resources {
			info.Resources[i] = r.Info()
		}
	}

	if len(s.Lyrics) > 0 {
		info.Lyrics = make(map[string]string, len(s.Lyrics))
		for label, text := range s.Lyrics {
			info.Lyrics[label] = text
		}
	}

	return info
}

func hasExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// addTo implements AddInput.
func (s *Song) addTo(c *SongCatalog) {
	c.Songs = append(c.Songs, s)
}
