package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/kipyin/lego-songbook/internal/audio"
	ioutils "github.com/kipyin/lego-songbook/internal/io"
	"github.com/kipyin/lego-songbook/internal/model"
	"github.com/kipyin/lego-songbook/internal/sortkey"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "LEGOWORSHIP_"

// Settings holds all configuration options.
type Settings struct {
	// Catalog files
	Catalog      string `toml:"catalog"`
	LegacyFormat bool   `toml:"legacy_format"`
	SongInfo     string `toml:"song_info"`

	// Site layout
	LibraryRoot string `toml:"library_root"`
	PageDir     string `toml:"page_dir"`

	// Logging
	LogLevel string `toml:"log_level"` // debug, info, warn, error

	Pinyin     PinyinSettings    `toml:"pinyin"`
	Playlist   PlaylistSettings  `toml:"playlist"`
	Tags       TagSettings       `toml:"tags"`
	Thumbnails ThumbnailSettings `toml:"thumbnails"`
}

// PinyinSettings configures title sort keys.
type PinyinSettings struct {
	// Overrides maps a single character to comma-separated readings. When
	// set, it replaces the builtin table.
	Overrides map[string]string `toml:"overrides,omitempty"`
}

// PlaylistSettings configures setlist playlists.
type PlaylistSettings struct {
	Format   string `toml:"format"` // m3u, pls, wpl, zpl
	Extended bool   `toml:"extended"`
	Name     string `toml:"name"` // file name without extension
}

// TagSettings configures ID3 tag writing.
type TagSettings struct {
	ModifyTags bool   `toml:"modify_tags"`
	Lyrics     string `toml:"lyrics"`   // empty, modify, keep
	Comments   string `toml:"comments"` // empty, modify, keep
}

// ThumbnailSettings configures sheet thumbnails.
type ThumbnailSettings struct {
	MaxSize int    `toml:"max_size"`
	DirName string `toml:"dir_name"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	thumbs := ioutils.DefaultThumbnailConfig()
	return &Settings{
		Catalog:      "songs.csv",
		LegacyFormat: false,
		SongInfo:     "song_info.yml",

		LibraryRoot: "resources",
		PageDir:     "_songs",

		LogLevel: "info",

		Playlist: PlaylistSettings{
			Format:   "m3u",
			Extended: true,
			Name:     "setlist",
		},
		Tags: TagSettings{
			ModifyTags: true,
			Lyrics:     "modify",
			Comments:   "empty",
		},
		Thumbnails: ThumbnailSettings{
			MaxSize: thumbs.MaxSize,
			DirName: thumbs.DirName,
		},
	}
}

// Load reads settings from a TOML file.
//
// A missing file yields DefaultSettings(). Keys absent from the file keep
// their default values.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, err
	}

	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(settings); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a TOML file.
func (s *Settings) Save(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return ioutils.WriteFile(path, data)
}

// ApplyEnv overrides settings from LEGOWORSHIP_* environment variables.
//
// If envFile is not empty it is loaded first with godotenv; a missing file
// is ignored. Variables already set in the process environment win over
// the file. Empty values are ignored.
func (s *Settings) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	strs := map[string]*string{
		"CATALOG":      &s.Catalog,
		"SONG_INFO":    &s.SongInfo,
		"LIBRARY_ROOT": &s.LibraryRoot,
		"PAGE_DIR":     &s.PageDir,
		"LOG_LEVEL":    &s.LogLevel,
	}
	for name, dst := range strs {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	if v := getenv("LEGACY_FORMAT"); v != "" {
		legacy, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, "LEGACY_FORMAT", err)
		}
		s.LegacyFormat = legacy
	}

	return nil
}

func getenv(name string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + name))
}

// Format returns the catalog CSV format.
func (s *Settings) Format() model.Format {
	if s.LegacyFormat {
		return model.FormatLegacy
	}
	return model.FormatCurrent
}

// KeyBuilder returns the sort key builder for the configured overrides.
//
// Without overrides the builtin table is used. Keys must be exactly one
// character.
func (s *Settings) KeyBuilder() (*sortkey.Builder, error) {
	if s.Pinyin.Overrides == nil {
		return sortkey.Default(), nil
	}

	overrides := make(map[rune]string, len(s.Pinyin.Overrides))
	for k, v := range s.Pinyin.Overrides {
		if utf8.RuneCountInString(k) != 1 {
			return nil, fmt.Errorf("%w: pinyin override key %q must be a single character", model.ErrInvalidArgument, k)
		}
		r, _ := utf8.DecodeRuneInString(k)
		overrides[r] = v
	}
	return sortkey.New(overrides), nil
}

// TagConfig converts settings to audio.TagConfig.
func (s *Settings) TagConfig() (*audio.TagConfig, error) {
	cfg := audio.DefaultTagConfig()
	cfg.ModifyTags = s.Tags.ModifyTags

	var err error
	if cfg.Lyrics, err = audio.ParseTagEditAction(s.Tags.Lyrics); err != nil {
		return nil, err
	}
	if cfg.Comments, err = audio.ParseTagEditAction(s.Tags.Comments); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PlaylistFormat converts the configured playlist format.
func (s *Settings) PlaylistFormat() (audio.PlaylistFormat, error) {
	return audio.ParsePlaylistFormat(s.Playlist.Format)
}

// ThumbnailConfig converts settings to ioutils.ThumbnailConfig.
//
// Zero values fall back to the defaults.
func (s *Settings) ThumbnailConfig() *ioutils.ThumbnailConfig {
	cfg := ioutils.DefaultThumbnailConfig()
	if s.Thumbnails.MaxSize > 0 {
		cfg.MaxSize = s.Thumbnails.MaxSize
	}
	if s.Thumbnails.DirName != "" {
		cfg.DirName = s.Thumbnails.DirName
	}
	return cfg
}
