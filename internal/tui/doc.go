// Package tui provides a Bubble Tea terminal user interface for browsing a
// song catalog and building the site.
//
// The browser lists the songs in a table that can be filtered by title,
// alternative title or pinyin and sorted by title or key. Enter shows the
// song sheet of the selected song. The build screen runs every pipeline
// step in the background and shows a spinner, a progress bar and the
// latest progress events.
//
// Keys:
//
//	/      filter            s  sort field     o  sort order
//	enter  song sheet        b  build          v  verbose events
//	esc    back or cancel    q  quit
package tui
