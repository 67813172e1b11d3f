// Package config provides configuration management for legoworship.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values
//   - Environment overrides, optionally read from a .env file
//   - Conversion to the configs of other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Catalog songs.csv in the current format
//	// Resources under ./resources, pages under ./_songs
//	// Extended M3U setlists, ID3 tagging enabled
//
// # Loading from File
//
//	settings, err := config.Load("legoworship.toml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//	err = settings.ApplyEnv(".env")
//
// A complete file:
//
//	catalog = "songs.csv"
//	legacy_format = false
//	song_info = "song_info.yml"
//	library_root = "resources"
//	page_dir = "_songs"
//	log_level = "info"
//
//	[pinyin.overrides]
//	"祢" = "nǐ,mí"
//
//	[playlist]
//	format = "m3u"
//	extended = true
//	name = "setlist"
//
//	[tags]
//	modify_tags = true
//	lyrics = "modify"
//	comments = "empty"
//
//	[thumbnails]
//	max_size = 480
//	dir_name = "TINY"
//
// # Environment
//
// LEGOWORSHIP_CATALOG, LEGOWORSHIP_LEGACY_FORMAT, LEGOWORSHIP_SONG_INFO,
// LEGOWORSHIP_LIBRARY_ROOT, LEGOWORSHIP_PAGE_DIR and LEGOWORSHIP_LOG_LEVEL
// override the file.
package config
