package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipyin/lego-songbook/internal/model"
)

func testSong() *model.Song {
	return &model.Song{
		Title:             "奇异恩典",
		OriginalKey:       "G",
		AlternativeTitles: []string{"Amazing Grace"},
		Lyricist:          "John Newton",
		Lyrics: map[string]string{
			"zh": "奇异恩典\n何等甘甜",
			"en": "Amazing grace",
		},
		Resources: []model.SongResource{
			{Type: model.ResourceMedia, Location: "/lib/奇异恩典.mp3", BPM: 72, Artist: "赞美之泉"},
			{Type: model.ResourceSheet, Location: "/lib/TINY/奇异恩典.png"},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(testSong(), nil)

	assert.True(t, strings.HasPrefix(md, "# 奇异恩典\n\n*Qi Yi En Dian*\n\n"))
	assert.Contains(t, md, "Also known as: Amazing Grace")
	assert.Contains(t, md, "- **Key:** G")
	assert.Contains(t, md, "- **Lyricist:** John Newton")
	assert.NotContains(t, md, "Composer")
	assert.Contains(t, md, "奇异恩典  \n何等甘甜")
	assert.Less(t, strings.Index(md, "### en"), strings.Index(md, "### zh"))
	assert.Contains(t, md, "- media: `/lib/奇异恩典.mp3` (72 BPM, 赞美之泉)")
	assert.Contains(t, md, "- sheet: `/lib/TINY/奇异恩典.png`\n")
}

func TestMarkdown_Minimal(t *testing.T) {
	md := Markdown(model.NewSong("Way Maker", ""), nil)

	assert.Equal(t, "# Way Maker\n\n", md)
}

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer(Options{Style: "notty", Width: 60})
	require.NoError(t, err)

	out, err := r.Render(testSong())
	require.NoError(t, err)
	assert.Contains(t, out, "奇异恩典")
	assert.Contains(t, out, "Lyrics")
}
