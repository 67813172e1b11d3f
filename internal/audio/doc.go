// Package audio reads and writes metadata of song recordings and builds
// setlist playlists from a catalog.
//
// # ID3 Tags
//
// TagReader fills resource metadata from the tags already present in MP3
// recordings:
//
//	reader := audio.NewTagReader()
//	err := reader.Enrich(song) // BPM, key, artist, album of media resources
//
// Tagger writes catalog data back into a recording:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(song, song.Resources[0])
//
// The tagger writes:
//   - Title (TIT2), Composer (TCOM), Lyricist (TEXT)
//   - Initial key (TKEY), BPM (TBPM)
//   - Lyrics, one USLT frame per label
//   - Alternative titles as a comment
//
// # Playlists
//
// A playlist lists the first recording of every song in catalog order:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true)
//	content := creator.CreatePlaylist(catalog, "/srv/site")
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
