package audio

import (
	"strings"
	"testing"

	"github.com/kipyin/lego-songbook/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	catalog := createTestCatalog()
	creator := NewPlaylistCreator(FormatM3U, false)

	content := creator.CreatePlaylist(catalog, "/site")

	want := "media/奇异恩典.mp3\nmedia/Way Maker.mp3\n"
	if content != want {
		t.Errorf("M3U = %q, want %q", content, want)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	catalog := createTestCatalog()
	creator := NewPlaylistCreator(FormatM3U, true)

	content := creator.CreatePlaylist(catalog, "/site")

	if !strings.HasPrefix(content, "#EXTM3U\n") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:-1,赞美之泉 - 奇异恩典\n") {
		t.Error("Extended M3U should credit the artist")
	}
	if !strings.Contains(content, "#EXTINF:-1,Way Maker\n") {
		t.Error("Extended M3U should fall back to the title without artist")
	}
}

func TestPlaylistCreator_SkipsSongsWithoutMedia(t *testing.T) {
	catalog := createTestCatalog()
	content := NewPlaylistCreator(FormatM3U, true).CreatePlaylist(catalog, "/site")

	if strings.Contains(content, "爱赢了") {
		t.Error("songs without a recording should not be listed")
	}
	if strings.Contains(content, ".png") {
		t.Error("sheet resources should not be listed")
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	catalog := createTestCatalog()
	creator := NewPlaylistCreator(FormatPLS, false)

	content := creator.CreatePlaylist(catalog, "/site")

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File1=media/奇异恩典.mp3") {
		t.Error("PLS should contain File1=")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should count only listed songs")
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	catalog := createTestCatalog()
	creator := NewPlaylistCreator(FormatWPL, false)

	content := creator.CreatePlaylist(catalog, "/site")

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<title>setlist</title>") {
		t.Error("WPL should be titled after the catalog")
	}
	if !strings.Contains(content, "<media src=") {
		t.Error("WPL should contain media elements")
	}
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	catalog := createTestCatalog()
	creator := NewPlaylistCreator(FormatZPL, false)

	content := creator.CreatePlaylist(catalog, "/site")

	if !strings.Contains(content, "<?zpl") {
		t.Error("ZPL should contain XML declaration")
	}
	if !strings.Contains(content, `trackArtist="赞美之泉"`) {
		t.Error("ZPL should contain trackArtist attribute")
	}
	if !strings.Contains(content, `<meta name="ItemCount" content="2"/>`) {
		t.Error("ZPL should count listed songs")
	}
}

func TestPlaylistCreator_XMLEscape(t *testing.T) {
	song := model.NewSong("Holy & \"Quote\"", "")
	song.Resources = []model.SongResource{{Type: model.ResourceMedia, Location: "/site/a&b.mp3"}}
	catalog := model.NewSongCatalog("Sunday <Special>", song)

	content := NewPlaylistCreator(FormatZPL, false).CreatePlaylist(catalog, "/site")

	if !strings.Contains(content, "a&amp;b.mp3") {
		t.Error("ZPL should escape & as &amp;")
	}
	if strings.Contains(content, "<Special>") {
		t.Error("ZPL should escape < and >")
	}
	if !strings.Contains(content, "&quot;Quote&quot;") {
		t.Error("ZPL should escape quotes")
	}
}

func TestPlaylistCreator_NoBaseDir(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, false).CreatePlaylist(createTestCatalog(), "")

	if !strings.HasPrefix(content, "/site/media/奇异恩典.mp3\n") {
		t.Errorf("paths should be kept without a base dir, got %q", content)
	}
}

func TestParsePlaylistFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    PlaylistFormat
		ext     string
		wantErr bool
	}{
		{"m3u", FormatM3U, ".m3u", false},
		{"", FormatM3U, ".m3u", false},
		{"PLS", FormatPLS, ".pls", false},
		{"wpl", FormatWPL, ".wpl", false},
		{" zpl ", FormatZPL, ".zpl", false},
		{"xspf", FormatM3U, ".m3u", true},
	}

	for _, tt := range tests {
		got, err := ParsePlaylistFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePlaylistFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want || got.Extension() != tt.ext {
			t.Errorf("ParsePlaylistFormat(%q) = %v (%s), want %v (%s)", tt.in, got, got.Extension(), tt.want, tt.ext)
		}
	}
}

func createTestCatalog() *model.SongCatalog {
	grace := model.NewSong("奇异恩典", "G")
	grace.Resources = []model.SongResource{
		{Type: model.ResourceSheet, Location: "/site/sheets/TINY/奇异恩典.png"},
		{Type: model.ResourceMedia, Location: "/site/media/奇异恩典.mp3", Artist: "赞美之泉"},
		{Type: model.ResourceMedia, Location: "/site/media/奇异恩典 live.mp3"},
	}

	love := model.NewSong("爱赢了", "C")

	maker := model.NewSong("Way Maker", "E")
	maker.Resources = []model.SongResource{
		{Type: model.ResourceMedia, Location: "/site/media/Way Maker.mp3"},
	}

	return model.NewSongCatalog("setlist", grace, love, maker)
}
