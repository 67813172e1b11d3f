// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Filename sanitization for page stubs and thumbnails
//   - Directory creation and file writing
//   - Sheet music thumbnails (the "TINY" variants)
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
//
// # Thumbnails
//
// The ImageService shrinks sheet music scans so they can be served on the
// static site:
//
//	svc := ioutils.NewImageService(ioutils.DefaultThumbnailConfig())
//
//	// Writes /sheets/TINY/奇异恩典.png next to /sheets/奇异恩典.png
//	out, err := svc.WriteThumbnail("/sheets/奇异恩典.png")
package ioutils
