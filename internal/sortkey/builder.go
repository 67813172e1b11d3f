package sortkey

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultOverrides returns the readings corrected by default.
//
// The dictionary lists "mí" before "nǐ" for 祢, which is not how the
// character is pronounced in worship lyrics.
func DefaultOverrides() map[rune]string {
	return map[rune]string{
		'祢': "nǐ,mí",
	}
}

// Builder converts titles into phonetic sort keys.
//
// A Builder is immutable after construction and may be shared.
type Builder struct {
	overrides map[rune]string
	args      pinyin.Args
}

// New creates a Builder with the given character overrides.
//
// A nil map means no overrides. The map is copied.
func New(overrides map[rune]string) *Builder {
	copied := make(map[rune]string, len(overrides))
	for r, reading := range overrides {
		copied[r] = reading
	}

	args := pinyin.NewArgs()
	args.Style = pinyin.Normal
	args.Heteronym = false

	return &Builder{
		overrides: copied,
		args:      args,
	}
}

// Default returns a Builder using DefaultOverrides.
func Default() *Builder {
	return New(DefaultOverrides())
}

// Build returns the sort key for title.
//
// The title is split on whitespace, then at every change between Han and
// non-Han script. Han characters yield one capitalized syllable each; other
// runs yield one title-cased token each.
func (b *Builder) Build(title string) []string {
	caser := cases.Title(language.Und)
	tokens := make([]string, 0, len(title))

	for _, field := range strings.Fields(title) {
		for _, run := range splitScripts(field) {
			if !isHan(firstRune(run)) {
				tokens = append(tokens, caser.String(run))
				continue
			}
			for _, r := range run {
				tokens = append(tokens, capitalize(b.reading(r)))
			}
		}
	}

	return tokens
}

// reading returns the lower-case tone-less syllable for a Han rune.
func (b *Builder) reading(r rune) string {
	if override, ok := b.overrides[r]; ok {
		preferred, _, _ := strings.Cut(override, ",")
		if preferred = strings.TrimSpace(preferred); preferred != "" {
			return stripTones(preferred)
		}
	}

	readings := pinyin.LazyPinyin(string(r), b.args)
	if len(readings) == 0 || readings[0] == "" {
		// Unknown to the dictionary; keep the character itself.
		return string(r)
	}
	return readings[0]
}

// Compare orders two keys token by token. A key that is a prefix of the
// other sorts first.
func Compare(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// splitScripts cuts s wherever it switches between Han and non-Han runes.
func splitScripts(s string) []string {
	var parts []string
	start := 0
	prevHan := false

	for i, r := range s {
		han := isHan(r)
		if i > 0 && han != prevHan {
			parts = append(parts, s[start:i])
			start = i
		}
		prevHan = han
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}

	return parts
}

func isHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

var umlauts = strings.NewReplacer("ü", "v", "ǖ", "v", "ǘ", "v", "ǚ", "v", "ǜ", "v")

// stripTones removes tone marks the same way pinyin.Normal does, writing ü as v.
func stripTones(s string) string {
	s = umlauts.Replace(strings.ToLower(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
