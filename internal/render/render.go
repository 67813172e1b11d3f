// Package render formats songs as Markdown song sheets and renders them
// for the terminal with glamour.
package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/kipyin/lego-songbook/internal/model"
	"github.com/kipyin/lego-songbook/internal/sortkey"
)

// DefaultWidth is the word wrap width of rendered sheets.
const DefaultWidth = 80

// Options configures a Renderer.
type Options struct {
	// Width is the word wrap width. Zero means DefaultWidth.
	Width int

	// Style is a glamour standard style such as "dark", "light" or
	// "notty". Empty picks one from the terminal background.
	Style string

	// Keys builds the pinyin line. Nil means sortkey.Default().
	Keys *sortkey.Builder
}

// Renderer turns songs into terminal output.
type Renderer struct {
	term *glamour.TermRenderer
	keys *sortkey.Builder
}

// NewRenderer creates a Renderer.
func NewRenderer(opts Options) (*Renderer, error) {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	style := glamour.WithAutoStyle()
	if opts.Style != "" {
		style = glamour.WithStandardStyle(opts.Style)
	}

	term, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}

	keys := opts.Keys
	if keys == nil {
		keys = sortkey.Default()
	}

	return &Renderer{term: term, keys: keys}, nil
}

// Render returns the song sheet of song styled for the terminal.
func (r *Renderer) Render(song *model.Song) (string, error) {
	return r.term.Render(Markdown(song, r.keys))
}

// Markdown returns the song sheet of song as Markdown.
//
// The sheet lists the title with its pinyin, alternative titles, key and
// credits, then lyrics by label and attached resources. Empty sections are
// left out.
func Markdown(song *model.Song, keys *sortkey.Builder) string {
	if keys == nil {
		keys = sortkey.Default()
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", song.Title)
	if py := strings.Join(song.SortKey(keys), " "); py != "" && py != song.Title {
		fmt.Fprintf(&sb, "*%s*\n\n", py)
	}
	if alt := song.AlternativeTitleString(); alt != "" {
		fmt.Fprintf(&sb, "Also known as: %s\n\n", alt)
	}

	var facts []string
	if song.OriginalKey != "" {
		facts = append(facts, fmt.Sprintf("- **Key:** %s", song.OriginalKey))
	}
	if song.Lyricist != "" {
		facts = append(facts, fmt.Sprintf("- **Lyricist:** %s", song.Lyricist))
	}
	if song.Composer != "" {
		facts = append(facts, fmt.Sprintf("- **Composer:** %s", song.Composer))
	}
	if len(facts) > 0 {
		sb.WriteString(strings.Join(facts, "\n"))
		sb.WriteString("\n\n")
	}

	if len(song.Lyrics) > 0 {
		sb.WriteString("## Lyrics\n\n")
		for _, label := range slices.Sorted(maps.Keys(song.Lyrics)) {
			fmt.Fprintf(&sb, "### %s\n\n", label)
			lines := strings.Split(strings.TrimSpace(song.Lyrics[label]), "\n")
			// Two trailing spaces keep the line breaks.
			sb.WriteString(strings.Join(lines, "  \n"))
			sb.WriteString("\n\n")
		}
	}

	if len(song.Resources) > 0 {
		sb.WriteString("## Resources\n\n")
		for _, res := range song.Resources {
			fmt.Fprintf(&sb, "- %s: `%s`%s\n", res.Type, res.Location, resourceDetails(res))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func resourceDetails(res model.SongResource) string {
	var parts []string
	if res.BPM > 0 {
		parts = append(parts, fmt.Sprintf("%d BPM", res.BPM))
	}
	if res.Key != "" {
		parts = append(parts, "key "+res.Key)
	}
	if res.Artist != "" {
		parts = append(parts, res.Artist)
	}
	if res.Album != "" {
		parts = append(parts, res.Album)
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
