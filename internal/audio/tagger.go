package audio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/kipyin/lego-songbook/internal/model"
)

// ID3 frame identifiers written by the tagger.
const (
	frameComposer = "TCOM"
	frameLyricist = "TEXT"
	frameKey      = "TKEY"
	frameBPM      = "TBPM"
	frameLyrics   = "USLT"
	frameComment  = "COMM"
)

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the catalog.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// ParseTagEditAction parses "empty", "modify" or "keep".
func ParseTagEditAction(s string) (TagEditAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty", "clear":
		return TagEmpty, nil
	case "modify", "":
		return TagModify, nil
	case "keep", "do-not-modify":
		return TagDoNotModify, nil
	default:
		return TagModify, fmt.Errorf("%w: unknown tag action %q", model.ErrInvalidArgument, s)
	}
}

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags: true,
//	    Title:      TagModify,      // Song title
//	    Composer:   TagModify,      // Composer credit
//	    Lyricist:   TagModify,      // Lyricist credit
//	    Key:        TagModify,      // Arrangement key, else original key
//	    BPM:        TagDoNotModify, // Keep the tempo of the recording
//	    Lyrics:     TagModify,      // One USLT frame per lyric label
//	    Comments:   TagEmpty,       // Clear any existing comments
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no tags are modified.
	ModifyTags bool

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// Composer controls the TCOM (Composer) frame.
	Composer TagEditAction

	// Lyricist controls the TEXT (Lyricist/Text writer) frame.
	Lyricist TagEditAction

	// Key controls the TKEY (Initial key) frame.
	Key TagEditAction

	// BPM controls the TBPM (Beats per minute) frame.
	BPM TagEditAction

	// Lyrics controls the USLT (Unsynchronized lyrics) frames.
	Lyrics TagEditAction

	// Comments controls the COMM (Comments) frame holding alternative titles.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration.
//
// All fields are modified except comments, which are cleared.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags: true,
		Title:      TagModify,
		Composer:   TagModify,
		Lyricist:   TagModify,
		Key:        TagModify,
		BPM:        TagModify,
		Lyrics:     TagModify,
		Comments:   TagEmpty,
	}
}

// Tagger writes catalog data into the ID3 tags of MP3 recordings.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	for _, r := range song.ResourcesOf(model.ResourceMedia) {
//	    if err := tagger.SaveTags(song, r); err != nil {
//	        log.Printf("Failed to tag %s: %v", r.Location, err)
//	    }
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes the tags of song into the file of resource.
//
// The resource must be an MP3 recording, otherwise SaveTags fails with
// model.ErrInvalidArgument. A file without tags gets a new tag. Returns an
// error if the file cannot be opened or saved.
func (t *Tagger) SaveTags(song *model.Song, resource model.SongResource) error {
	if err := checkTaggable(resource); err != nil {
		return err
	}

	tag, err := id3v2.Open(resource.Location, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	if !t.config.ModifyTags {
		return nil
	}
	t.updateTags(tag, song, resource)

	return tag.Save()
}

// updateTags updates ID3 frames based on configuration.
func (t *Tagger) updateTags(tag *id3v2.Tag, song *model.Song, resource model.SongResource) {
	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(song.Title)
	}

	setTextFrame(tag, frameComposer, t.config.Composer, song.Composer)
	setTextFrame(tag, frameLyricist, t.config.Lyricist, song.Lyricist)

	key := resource.Key
	if key == "" {
		key = song.OriginalKey
	}
	setTextFrame(tag, frameKey, t.config.Key, key)

	bpm := ""
	if resource.BPM > 0 {
		bpm = strconv.Itoa(resource.BPM)
	}
	setTextFrame(tag, frameBPM, t.config.BPM, bpm)

	switch t.config.Lyrics {
	case TagEmpty:
		tag.DeleteFrames(frameLyrics)
	case TagModify:
		if len(song.Lyrics) > 0 {
			tag.DeleteFrames(frameLyrics)
			for _, label := range sortedLabels(song.Lyrics) {
				tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
					Encoding:          id3v2.EncodingUTF8,
					Language:          lyricsLanguage(label),
					ContentDescriptor: label,
					Lyrics:            song.Lyrics[label],
				})
			}
		}
	}

	switch t.config.Comments {
	case TagEmpty:
		tag.DeleteFrames(frameComment)
	case TagModify:
		tag.DeleteFrames(frameComment)
		if alt := song.AlternativeTitleString(); alt != "" {
			tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding:    id3v2.EncodingUTF8,
				Language:    "eng",
				Description: "alternative titles",
				Text:        alt,
			})
		}
	}
}

// setTextFrame applies action to a text frame. An empty value with
// TagModify leaves the frame alone.
func setTextFrame(tag *id3v2.Tag, id string, action TagEditAction, value string) {
	switch action {
	case TagEmpty:
		tag.DeleteFrames(id)
	case TagModify:
		if value != "" {
			tag.AddTextFrame(id, id3v2.EncodingUTF8, value)
		}
	}
}

// lyricsLanguage maps a lyric label to an ISO 639-2 code.
func lyricsLanguage(label string) string {
	if strings.HasPrefix(strings.ToLower(label), "zh") {
		return "chi"
	}
	return "eng"
}

func checkTaggable(resource model.SongResource) error {
	if resource.Type != model.ResourceMedia {
		return fmt.Errorf("%w: %s is not a media resource", model.ErrInvalidArgument, resource.Location)
	}
	if !strings.HasSuffix(strings.ToLower(resource.Location), ".mp3") {
		return fmt.Errorf("%w: %s is not an mp3 file", model.ErrInvalidArgument, resource.Location)
	}
	return nil
}
