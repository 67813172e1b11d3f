package model

import (
	"fmt"
	"strings"
)

// ResourceType names the kind of file attached to a song.
type ResourceType string

const (
	// ResourceSheet is sheet music: scans or engraved PDFs.
	ResourceSheet ResourceType = "sheet"

	// ResourceMedia is a recording.
	ResourceMedia ResourceType = "media"
)

// DefaultExtensions returns the file suffixes searched for the type.
//
// The second result is false for types without builtin defaults.
func (t ResourceType) DefaultExtensions() ([]string, bool) {
	switch t {
	case ResourceSheet:
		return []string{".png", ".pdf"}, true
	case ResourceMedia:
		return []string{".mp3", ".m4a", ".wav"}, true
	default:
		return nil, false
	}
}

// ParseResourceType validates s as a builtin resource type.
func ParseResourceType(s string) (ResourceType, error) {
	t := ResourceType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := t.DefaultExtensions(); !ok {
		return "", fmt.Errorf("%w: unknown resource type %q", ErrInvalidArgument, s)
	}
	return t, nil
}

// SongResource is one file supporting a song.
//
// A resource belongs to exactly one Song and is copied by value.
type SongResource struct {
	// Type is the resource kind, sheet or media.
	Type ResourceType

	// Location is the file path.
	Location string

	// BPM is the tempo; zero means unknown.
	BPM int

	// Key is the key of this arrangement, which may differ from the
	// song's original key.
	Key string

	// Artist and Album describe recordings.
	Artist string
	Album  string
}

// Info returns the serializable form of the resource.
func (r SongResource) Info() ResourceInfo {
	return ResourceInfo{
		ResourceType: string(r.Type),
		Location:     r.Location,
		BPM:          r.BPM,
		Key:          r.Key,
		Artist:       r.Artist,
		Album:        r.Album,
	}
}

// ResourceFromInfo rebuilds a resource from its record.
func ResourceFromInfo(info ResourceInfo) SongResource {
	bpm := info.BPM
	if bpm < 0 {
		bpm = 0
	}
	return SongResource{
		Type:     ResourceType(info.ResourceType),
		Location: info.Location,
		BPM:      bpm,
		Key:      info.Key,
		Artist:   info.Artist,
		Album:    info.Album,
	}
}
