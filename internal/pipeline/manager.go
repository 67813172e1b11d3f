package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kipyin/lego-songbook/internal/audio"
	"github.com/kipyin/lego-songbook/internal/config"
	ioutils "github.com/kipyin/lego-songbook/internal/io"
	"github.com/kipyin/lego-songbook/internal/library"
	"github.com/kipyin/lego-songbook/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lower-case level name.
func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// ProgressEvent represents a build progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Steps selects the build steps Run executes.
type Steps struct {
	Thumbnails    bool
	ScanResources bool
	ReadTags      bool
	WriteTags     bool
	Pages         bool
	ExportInfo    bool
	Playlist      bool
}

// AllSteps enables every step except WriteTags, which modifies recordings.
func AllSteps() Steps {
	return Steps{
		Thumbnails:    true,
		ScanResources: true,
		ReadTags:      true,
		Pages:         true,
		ExportInfo:    true,
		Playlist:      true,
	}
}

func (s Steps) count() int32 {
	var n int32
	for _, on := range []bool{s.Thumbnails, s.ScanResources, s.ReadTags, s.WriteTags, s.Pages, s.ExportInfo, s.Playlist} {
		if on {
			n++
		}
	}
	return n
}

// Manager coordinates site builds.
type Manager struct {
	settings     *config.Settings
	searcher     *library.Searcher
	reader       *audio.TagReader
	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService
	format       audio.PlaylistFormat

	catalog *model.SongCatalog

	totalSteps int32
	doneSteps  int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new build Manager.
//
// Fails if settings hold an invalid tag action or playlist format.
func NewManager(settings *config.Settings, logger *zap.Logger, onProgress func(ProgressEvent)) (*Manager, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	tagCfg, err := settings.TagConfig()
	if err != nil {
		return nil, err
	}
	format, err := settings.PlaylistFormat()
	if err != nil {
		return nil, err
	}

	thumbCfg := settings.ThumbnailConfig()
	searcher := library.NewSearcher(logger)
	searcher.ThumbnailDir = thumbCfg.DirName

	return &Manager{
		settings:     settings,
		searcher:     searcher,
		reader:       audio.NewTagReader(),
		tagger:       audio.NewTagger(tagCfg),
		playlist:     audio.NewPlaylistCreator(format, settings.Playlist.Extended),
		imageService: ioutils.NewImageService(thumbCfg),
		format:       format,
		onProgress:   onProgress,
	}, nil
}

// Initialize imports the catalog and merges the song info document.
//
// A missing song info document is not an error.
func (m *Manager) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	catalog, err := model.ImportCSV(m.settings.Catalog, m.settings.Format())
	if err != nil {
		return fmt.Errorf("import catalog: %w", err)
	}
	m.catalog = catalog
	m.progress(ProgressEvent{Message: fmt.Sprintf("Loaded catalog %s (%d songs)", catalog.Name, catalog.Len()), Level: LevelInfo})

	if m.settings.SongInfo == "" {
		return nil
	}
	err = catalog.LoadInfoFromDocument(m.settings.SongInfo)
	switch {
	case err == nil:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Merged song info from %s", m.settings.SongInfo), Level: LevelVerbose})
	case errors.Is(err, fs.ErrNotExist):
		m.progress(ProgressEvent{Message: fmt.Sprintf("No song info at %s", m.settings.SongInfo), Level: LevelVerbose})
	default:
		return fmt.Errorf("load song info: %w", err)
	}

	return nil
}

// SetCatalog replaces the catalog built by Initialize.
func (m *Manager) SetCatalog(catalog *model.SongCatalog) {
	m.catalog = catalog
}

// Catalog returns the catalog being built, nil before Initialize.
func (m *Manager) Catalog() *model.SongCatalog {
	return m.catalog
}

// Run executes the selected steps in order.
//
// Run must follow Initialize or SetCatalog. The context is checked
// between steps.
func (m *Manager) Run(ctx context.Context, steps Steps) error {
	if m.catalog == nil {
		return fmt.Errorf("%w: no catalog loaded", model.ErrInvalidArgument)
	}

	atomic.StoreInt32(&m.totalSteps, steps.count())
	atomic.StoreInt32(&m.doneSteps, 0)

	plan := []struct {
		enabled bool
		name    string
		run     func() error
	}{
		{steps.Thumbnails, "thumbnails", m.writeThumbnails},
		{steps.ScanResources, "scan resources", m.scanResources},
		{steps.ReadTags, "read tags", m.readTags},
		{steps.WriteTags, "write tags", m.writeTags},
		{steps.Pages, "pages", m.createPages},
		{steps.ExportInfo, "export song info", m.exportInfo},
		{steps.Playlist, "playlist", m.writePlaylist},
	}

	for _, step := range plan {
		if !step.enabled {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.run(); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Step %s failed: %v", step.name, err), Level: LevelError})
			return fmt.Errorf("%s: %w", step.name, err)
		}
		atomic.AddInt32(&m.doneSteps, 1)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Successfully built %s", m.catalog.Name), Level: LevelSuccess})
	return nil
}

// GetProgress returns finished and total steps of the current run.
func (m *Manager) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&m.doneSteps), atomic.LoadInt32(&m.totalSteps)
}

// writeThumbnails resizes sheet scans of catalog songs into the thumbnail
// directory. Existing thumbnails are kept.
func (m *Manager) writeThumbnails() error {
	var sources []string
	err := filepath.WalkDir(m.settings.LibraryRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || m.imageService.IsThumbnail(path) || !isImage(path) {
			return nil
		}
		if m.ownedBySong(d.Name()) {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	written := 0
	for _, src := range sources {
		if _, err := os.Stat(m.imageService.ThumbnailPath(src)); err == nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing thumbnail: %s", filepath.Base(src)), Level: LevelVerbose})
			continue
		}
		dst, err := m.imageService.WriteThumbnail(src)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating thumbnail of %s: %v", src, err), Level: LevelWarning})
			continue
		}
		written++
		m.progress(ProgressEvent{Message: fmt.Sprintf("Created thumbnail: %s", dst), Level: LevelVerbose})
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Created %d thumbnails", written), Level: LevelInfo})
	return nil
}

func (m *Manager) ownedBySong(name string) bool {
	for _, song := range m.catalog.Songs {
		if song.Title != "" && strings.Contains(name, song.Title) {
			return true
		}
	}
	return false
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

// scanResources attaches sheets and recordings to their songs.
func (m *Manager) scanResources() error {
	attached := 0
	for _, kind := range []model.ResourceType{model.ResourceSheet, model.ResourceMedia} {
		byTitle, err := m.searcher.FindBySong(kind, m.settings.LibraryRoot, m.catalog)
		if err != nil {
			return err
		}
		for _, song := range m.catalog.Songs {
			for _, path := range byTitle[song.Title] {
				r := model.SongResource{Type: kind, Location: path}
				if song.HasResource(r) {
					continue
				}
				song.Resources = append(song.Resources, r)
				attached++
			}
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Attached %d resources", attached), Level: LevelInfo})
	return nil
}

// readTags fills recording metadata from ID3 tags.
func (m *Manager) readTags() error {
	changed := 0
	for _, song := range m.catalog.Songs {
		n, err := m.reader.Enrich(song)
		changed += n
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error reading tags of %s: %v", song.Title, err), Level: LevelWarning})
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Read tags of %d recordings", changed), Level: LevelInfo})
	return nil
}

// writeTags writes catalog data into every MP3 recording.
func (m *Manager) writeTags() error {
	tagged := 0
	for _, song := range m.catalog.Songs {
		for _, r := range song.ResourcesOf(model.ResourceMedia) {
			if !strings.EqualFold(filepath.Ext(r.Location), ".mp3") {
				continue
			}
			if err := m.tagger.SaveTags(song, r); err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", r.Location, err), Level: LevelWarning})
				continue
			}
			tagged++
			m.progress(ProgressEvent{Message: fmt.Sprintf("Tagged: %s", filepath.Base(r.Location)), Level: LevelVerbose})
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Tagged %d recordings", tagged), Level: LevelInfo})
	return nil
}

// createPages writes missing page stubs.
func (m *Manager) createPages() error {
	if err := ioutils.EnsureDir(m.settings.PageDir); err != nil {
		return err
	}

	created := 0
	for _, song := range m.catalog.Songs {
		ok, err := song.CreatePage(m.settings.PageDir, true)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating page of %s: %v", song.Title, err), Level: LevelWarning})
			continue
		}
		if ok {
			created++
			m.progress(ProgressEvent{Message: fmt.Sprintf("Created page: %s", song.PagePath(m.settings.PageDir)), Level: LevelVerbose})
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Created %d pages", created), Level: LevelInfo})
	return nil
}

func (m *Manager) exportInfo() error {
	if m.settings.SongInfo == "" {
		m.progress(ProgressEvent{Message: "No song info path configured", Level: LevelWarning})
		return nil
	}
	if err := m.catalog.ExportSongInfo(m.settings.SongInfo); err != nil {
		return err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Exported song info to %s", m.settings.SongInfo), Level: LevelInfo})
	return nil
}

// PlaylistPath returns where the setlist playlist is written.
func (m *Manager) PlaylistPath() string {
	name := ioutils.SanitizeFileName(m.settings.Playlist.Name)
	if name == "" {
		name = "setlist"
	}
	return filepath.Join(m.settings.LibraryRoot, name+m.format.Extension())
}

func (m *Manager) writePlaylist() error {
	path := m.PlaylistPath()
	content := m.playlist.CreatePlaylist(m.catalog, filepath.Dir(path))
	if err := ioutils.WriteFile(path, []byte(content)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return nil
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", path), Level: LevelSuccess})
	return nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
