// Command legoworship manages the song catalog of the worship team site.
//
// The catalog is a CSV file listing song titles and keys. Commands sort and
// convert it, attach sheet scans and recordings found in the resource
// library, write page stubs, playlists and ID3 tags, and render song sheets
// in the terminal.
//
// Usage:
//
//	legoworship list
//	legoworship sort title --desc
//	legoworship convert old.csv songs.csv --from legacy --to current
//	legoworship resources find 奇异恩典 --kind media
//	legoworship show 奇异恩典
//	legoworship build
//
// Settings come from legoworship.toml, then LEGOWORSHIP_* variables, which
// may be kept in a .env file, then command flags.
package main
