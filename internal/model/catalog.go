package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kipyin/lego-songbook/internal/sortkey"
)

// SongCatalog is a named, ordered collection of songs.
//
// Order is meaningful: it reflects import or sort order. Titles are not
// required to be unique.
//
// Example:
//
//	catalog, err := ImportCSV("docs/_data/songs.csv", FormatLegacy)
//	sorted, err := catalog.Sort("title", SortOptions{})
//	err = sorted.ExportCSV("docs/_data/all_songs.csv", FormatCurrent)
type SongCatalog struct {
	// Name labels the catalog, usually the source file name.
	Name string

	// Songs are the catalog entries in order.
	Songs []*Song
}

// NewSongCatalog creates a catalog holding songs.
func NewSongCatalog(name string, songs ...*Song) *SongCatalog {
	return &SongCatalog{Name: name, Songs: songs}
}

// AddInput is either a *Song or a *SongCatalog.
type AddInput interface {
	addTo(c *SongCatalog)
}

// addTo implements AddInput.
func (c *SongCatalog) addTo(dst *SongCatalog) {
	dst.Songs = append(dst.Songs, slices.Clone(c.Songs)...)
}

// Add appends one song or every song of another catalog, in order.
//
// Fails with ErrInvalidArgument for a nil input.
func (c *SongCatalog) Add(in AddInput) error {
	switch v := in.(type) {
	case nil:
		return fmt.Errorf("%w: cannot add nil to the catalog", ErrInvalidArgument)
	case *Song:
		if v == nil {
			return fmt.Errorf("%w: cannot add a nil song to the catalog", ErrInvalidArgument)
		}
	case *SongCatalog:
		if v == nil {
			return fmt.Errorf("%w: cannot add a nil catalog to the catalog", ErrInvalidArgument)
		}
	}
	in.addTo(c)
	return nil
}

// SortOptions controls SongCatalog.Sort.
type SortOptions struct {
	// Descending reverses the order. Equal songs keep their relative order.
	Descending bool

	// Format selects which header names are valid sort fields.
	Format Format

	// Keys builds title sort keys. Nil means sortkey.Default().
	Keys *sortkey.Builder
}

// Sort returns a new catalog with the same name and the songs ordered by
// the column by.
//
// by must be a column of opts.Format, else Sort fails with
// ErrInvalidArgument. Only "title" (phonetic key) and "original_key" or
// "key" (raw string, missing keys first) are sortable; other columns fail
// with ErrUnsupported. The sort is stable and the receiver is unchanged.
func (c *SongCatalog) Sort(by string, opts SortOptions) (*SongCatalog, error) {
	if !opts.Format.HasField(by) {
		return nil, fmt.Errorf("%w: %s is not a valid sort key", ErrInvalidArgument, by)
	}

	var compare func(a, b int) int
	switch by {
	case "title":
		keys := opts.Keys
		if keys == nil {
			keys = sortkey.Default()
		}
		titleKeys := make([][]string, len(c.Songs))
		for i, song := range c.Songs {
			titleKeys[i] = song.SortKey(keys)
		}
		compare = func(a, b int) int { return sortkey.Compare(titleKeys[a], titleKeys[b]) }
	case "key", "original_key":
		compare = func(a, b int) int { return strings.Compare(c.Songs[a].OriginalKey, c.Songs[b].OriginalKey) }
	default:
		return nil, fmt.Errorf("%w: sorting by %s is not supported", ErrUnsupported, by)
	}

	order := make([]int, len(c.Songs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if opts.Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})

	songs := make([]*Song, len(order))
	for i, idx := range order {
		songs[i] = c.Songs[idx]
	}

	return &SongCatalog{Name: c.Name, Songs: songs}, nil
}

// Find returns the first song titled title, or nil.
func (c *SongCatalog) Find(title string) *Song {
	for _, song := range c.Songs {
		if song.Title == title {
			return song
		}
	}
	return nil
}

// Titles returns the song titles in catalog order.
func (c *SongCatalog) Titles() []string {
	titles := make([]string, len(c.Songs))
	for i, song := range c.Songs {
		titles[i] = song.Title
	}
	return titles
}

// Len returns the number of songs.
func (c *SongCatalog) Len() int {
	return len(c.Songs)
}

// ExportSongInfo writes the Info snapshot of every song, in order, as a
// song info document.
func (c *SongCatalog) ExportSongInfo(path string) error {
	records := make([]SongInfo, len(c.Songs))
	for i, song := range c.Songs {
		records[i] = song.Info()
	}
	return WriteSongInfo(path, records)
}

// LoadInfoFromDocument reads the song info document at path and merges
// the matching record into every song.
func (c *SongCatalog) LoadInfoFromDocument(path string) error {
	records, err := ReadSongInfo(path)
	if err != nil {
		return err
	}
	for _, song := range c.Songs {
		song.LoadInfoFromRecords(records)
	}
	return nil
}
