package model

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ioutils "github.com/kipyin/lego-songbook/internal/io"
)

// SongInfo is one record of the song info document.
//
// The document is a YAML sequence of these records, keyed by title. It
// carries the lyrics and resource metadata that the catalog CSV has no
// columns for.
type SongInfo struct {
	Title     string            `yaml:"title"`
	Resources []ResourceInfo    `yaml:"resources"`
	Lyrics    map[string]string `yaml:"lyrics"`
}

// ResourceInfo is the serialized form of a SongResource.
type ResourceInfo struct {
	ResourceType string `yaml:"resource_type"`
	Location     string `yaml:"location"`
	BPM          int    `yaml:"bpm,omitempty"`
	Key          string `yaml:"key,omitempty"`
	Artist       string `yaml:"artist,omitempty"`
	Album        string `yaml:"album,omitempty"`
}

// MarshalYAML writes empty resources and lyrics as null.
func (i SongInfo) MarshalYAML() (any, error) {
	out := struct {
		Title     string `yaml:"title"`
		Resources any    `yaml:"resources"`
		Lyrics    any    `yaml:"lyrics"`
	}{Title: i.Title}

	if len(i.Resources) > 0 {
		out.Resources = i.Resources
	}
	if len(i.Lyrics) > 0 {
		out.Lyrics = i.Lyrics
	}

	return out, nil
}

// ReadSongInfo decodes a song info document.
func ReadSongInfo(path string) ([]SongInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []SongInfo
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse song info %s: %v", ErrInvalidArgument, path, err)
	}

	return records, nil
}

// WriteSongInfo encodes records as a song info document at path.
func WriteSongInfo(path string, records []SongInfo) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	return ioutils.WriteFile(path, buf.Bytes())
}
