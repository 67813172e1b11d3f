package audio

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/kipyin/lego-songbook/internal/model"
)

// TagReader fills resource metadata from existing ID3 tags.
type TagReader struct{}

// NewTagReader creates a TagReader.
func NewTagReader() *TagReader {
	return &TagReader{}
}

// Enrich reads the tags of every MP3 media resource of song and fills
// the BPM, key, artist and album fields that are still empty.
//
// Fields already set are kept. Other resources are skipped. Files that
// cannot be read do not stop the others; their errors are joined into the
// returned error. Returns the number of resources that changed.
func (r *TagReader) Enrich(song *model.Song) (int, error) {
	changed := 0
	var errs []error

	for i := range song.Resources {
		res := &song.Resources[i]
		if checkTaggable(*res) != nil {
			continue
		}

		ok, err := r.enrichResource(res)
		if err != nil {
			errs = append(errs, fmt.Errorf("read tags of %s: %w", res.Location, err))
			continue
		}
		if ok {
			changed++
		}
	}

	return changed, errors.Join(errs...)
}

func (r *TagReader) enrichResource(res *model.SongResource) (bool, error) {
	tag, err := id3v2.Open(res.Location, id3v2.Options{Parse: true})
	if err != nil {
		return false, err
	}
	defer tag.Close()

	before := *res

	if res.BPM == 0 {
		if bpm, err := strconv.Atoi(strings.TrimSpace(tag.GetTextFrame(frameBPM).Text)); err == nil && bpm > 0 {
			res.BPM = bpm
		}
	}
	if res.Key == "" {
		res.Key = strings.TrimSpace(tag.GetTextFrame(frameKey).Text)
	}
	if res.Artist == "" {
		res.Artist = strings.TrimSpace(tag.Artist())
	}
	if res.Album == "" {
		res.Album = strings.TrimSpace(tag.Album())
	}

	return *res != before, nil
}

func sortedLabels(lyrics map[string]string) []string {
	return slices.Sorted(maps.Keys(lyrics))
}
