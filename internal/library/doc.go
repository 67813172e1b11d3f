// Package library searches a resource library directory for song files.
//
// A resource library is a directory tree holding sheet music scans and
// recordings named after song titles. Searcher walks the tree and matches
// file names against titles:
//
//   - Sheets are the small PNG variants stored in a TINY directory, as
//     written by ioutils.ImageService
//   - Media are MP3 recordings anywhere in the tree
//
// A title matches any file whose name contains it, so the title "爱" also
// matches "爱赢了.mp3". Searches run synchronously on the calling goroutine.
//
// Example:
//
//	s := library.NewSearcher(logger)
//	paths, err := s.Find("奇异恩典", model.ResourceMedia, "/srv/library")
//
//	byTitle, err := s.FindBySong(model.ResourceSheet, "/srv/library", catalog)
//	for title, sheets := range byTitle {
//	    fmt.Println(title, sheets)
//	}
package library
