// Package model defines the song catalog: songs, their resources and the
// catalog collection with its CSV and YAML formats.
//
// # Song
//
// Song holds one work and the files attached to it:
//
//	song := model.NewSong("奇异恩典", "G")
//	found, err := song.FindResources(model.ResourceMedia, "/library")
//	song.PinyinTitle() // ["Qi", "Yi", "En", "Dian"]
//
// # SongCatalog
//
// SongCatalog is the ordered collection read from the catalog CSV:
//
//	catalog, err := model.ImportCSV("songs.csv", model.FormatCurrent)
//	sorted, err := catalog.Sort("title", model.SortOptions{})
//	err = sorted.ExportCSV("all_songs.csv", model.FormatCurrent)
//
// Two CSV schemas are supported, selected by Format:
//
//	FormatCurrent: title,original_key,alternative_titles,lyricist,composer
//	FormatLegacy:  name,key,hymn_ref,sheet_type
//
// # Song Info Document
//
// Lyrics and resource metadata live in a YAML side file, one record per
// title:
//
//	- title: 奇异恩典
//	  resources:
//	    - resource_type: media
//	      location: /library/奇异恩典.mp3
//	  lyrics:
//	    zh: ...
//
// # Errors
//
// Operations fail with ErrInvalidArgument, ErrUnsupported or
// ErrAlreadyExists, matched with errors.Is. File system errors are returned
// as the os package reports them.
package model
