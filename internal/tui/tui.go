package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kipyin/lego-songbook/internal/config"
	"github.com/kipyin/lego-songbook/internal/model"
	"github.com/kipyin/lego-songbook/internal/pipeline"
	"github.com/kipyin/lego-songbook/internal/render"
	"github.com/kipyin/lego-songbook/internal/sortkey"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateLoading State = iota
	StateBrowse
	StateDetails
	StateBuilding
	StateComplete
	StateError
)

// maxLogs is how many progress events the build screen keeps.
const maxLogs = 10

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   pipeline.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state       State
	table       table.Model
	filterInput textinput.Model
	spinner     spinner.Model
	progress    progress.Model
	settings    *config.Settings
	keys        *sortkey.Builder
	logger      *zap.Logger
	logs        []LogEntry
	err         error

	catalog *model.SongCatalog
	visible []*model.Song

	filterFocused bool
	sortByKey     bool
	descending    bool
	verbose       bool

	details string

	// Build context
	ctx     context.Context
	cancel  context.CancelFunc
	manager *pipeline.Manager
	events  chan pipeline.ProgressEvent

	doneSteps  int32
	totalSteps int32

	width  int
	height int
}

// NewModel creates a new TUI model for settings.
//
// Nil settings mean defaults and a nil logger disables logging.
func NewModel(settings *config.Settings, logger *zap.Logger) (Model, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	keys, err := settings.KeyBuilder()
	if err != nil {
		return Model{}, err
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Title", Width: 24},
			{Title: "Pinyin", Width: 28},
			{Title: "Key", Width: 5},
			{Title: "Files", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	fi := textinput.New()
	fi.Placeholder = "Filter by title or pinyin..."
	fi.CharLimit = 50
	fi.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	return Model{
		state:       StateLoading,
		table:       t,
		filterInput: fi,
		spinner:     sp,
		progress:    prog,
		settings:    settings,
		keys:        keys,
		logger:      logger,
		logs:        make([]LogEntry, 0),
	}, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCatalog(), m.spinner.Tick)
}

// Message types
type (
	// CatalogLoadedMsg is sent when the catalog has been imported.
	CatalogLoadedMsg struct {
		Catalog *model.SongCatalog
		Err     error
	}

	// ProgressMsg is sent when build progress updates.
	ProgressMsg struct {
		Event pipeline.ProgressEvent
	}

	// BuildDoneMsg is sent when the build finishes.
	BuildDoneMsg struct {
		Done  int32
		Total int32
		Err   error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		m.table.SetWidth(max(msg.Width-4, 20))
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil

	case tea.KeyMsg:
		if m.filterFocused {
			return m.updateFilter(msg)
		}
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case CatalogLoadedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			return m, nil
		}
		m.catalog = msg.Catalog
		m.state = StateBrowse
		m.refresh()
		return m, nil

	case ProgressMsg:
		if msg.Event.Level != pipeline.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{
				Message: msg.Event.Message,
				Level:   msg.Event.Level,
			})
			// Keep only the latest logs
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		}
		if m.state == StateBuilding {
			cmds = append(cmds, m.waitForEvent())
		}

	case BuildDoneMsg:
		m.doneSteps = msg.Done
		m.totalSteps = msg.Total
		switch {
		case m.ctx != nil && m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
			if m.manager != nil {
				m.catalog = m.manager.Catalog()
				m.refresh()
			}
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateBuilding {
			m.doneSteps, m.totalSteps = m.manager.GetProgress()
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateBrowse {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes keys outside the filter input. handled reports
// whether the key was consumed.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit, true

	case "q":
		if m.state != StateBuilding {
			return m, tea.Quit, true
		}

	case "esc":
		switch m.state {
		case StateDetails:
			m.state = StateBrowse
			return m, nil, true
		case StateBuilding:
			m.cancel()
			return m, nil, true
		case StateBrowse:
			if m.filterInput.Value() != "" {
				m.filterInput.SetValue("")
				m.refresh()
				return m, nil, true
			}
		}

	case "/":
		if m.state == StateBrowse {
			m.filterFocused = true
			m.filterInput.Focus()
			return m, textinput.Blink, true
		}

	case "s":
		if m.state == StateBrowse {
			m.sortByKey = !m.sortByKey
			m.refresh()
			return m, nil, true
		}

	case "o":
		if m.state == StateBrowse {
			m.descending = !m.descending
			m.refresh()
			return m, nil, true
		}

	case "v":
		if m.state != StateBuilding {
			m.verbose = !m.verbose
			return m, nil, true
		}

	case "enter":
		switch m.state {
		case StateBrowse:
			if song := m.Selected(); song != nil {
				m.details = m.renderDetails(song)
				m.state = StateDetails
			}
			return m, nil, true
		case StateDetails:
			m.state = StateBrowse
			return m, nil, true
		}

	case "b":
		if m.state == StateBrowse && m.catalog != nil {
			m.state = StateBuilding
			m.logs = nil
			m.err = nil
			m.doneSteps, m.totalSteps = 0, 0
			m.ctx, m.cancel = context.WithCancel(context.Background())
			m.events = make(chan pipeline.ProgressEvent, 64)
			return m, m.startBuild(), true
		}

	case "r":
		if m.state == StateComplete || m.state == StateError {
			m.state = StateLoading
			m.err = nil
			m.manager = nil
			return m, tea.Batch(m.loadCatalog(), m.spinner.Tick), true
		}
	}

	return m, nil, false
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterFocused = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.refresh()
		return m, nil
	case "enter":
		m.filterFocused = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	// Live filtering on each keystroke
	m.refresh()
	return m, cmd
}

// refresh sorts and filters the catalog into the table.
func (m *Model) refresh() {
	if m.catalog == nil {
		m.visible = nil
		m.table.SetRows(nil)
		return
	}

	// The catalog is in memory, so the current columns apply whatever
	// format the file was read in.
	sorted, err := m.catalog.Sort(m.sortField(), model.SortOptions{
		Descending: m.descending,
		Format:     model.FormatCurrent,
		Keys:       m.keys,
	})
	if err != nil {
		m.logger.Warn("sort failed", zap.Error(err))
		sorted = m.catalog
	}

	filter := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	m.visible = nil
	rows := make([]table.Row, 0, sorted.Len())
	for _, song := range sorted.Songs {
		pinyin := strings.Join(song.SortKey(m.keys), " ")
		if filter != "" && !matchesFilter(song, pinyin, filter) {
			continue
		}
		m.visible = append(m.visible, song)
		rows = append(rows, table.Row{
			song.Title,
			pinyin,
			song.OriginalKey,
			fmt.Sprintf("%d", len(song.Resources)),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m Model) sortField() string {
	if m.sortByKey {
		return "original_key"
	}
	return "title"
}

func matchesFilter(song *model.Song, pinyin, filter string) bool {
	if strings.Contains(strings.ToLower(song.Title), filter) ||
		strings.Contains(strings.ToLower(pinyin), filter) {
		return true
	}
	for _, alt := range song.AlternativeTitles {
		if strings.Contains(strings.ToLower(alt), filter) {
			return true
		}
	}
	return false
}

// Selected returns the song under the table cursor, or nil.
func (m Model) Selected() *model.Song {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return nil
	}
	return m.visible[i]
}

// Visible returns the titles shown in the table, in order.
func (m Model) Visible() []string {
	titles := make([]string, len(m.visible))
	for i, song := range m.visible {
		titles[i] = song.Title
	}
	return titles
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

func (m Model) renderDetails(song *model.Song) string {
	width := render.DefaultWidth
	if m.width > 0 {
		width = max(m.width-4, 20)
	}
	r, err := render.NewRenderer(render.Options{Width: width, Keys: m.keys})
	if err == nil {
		if out, err := r.Render(song); err == nil {
			return out
		}
	}
	return render.Markdown(song, m.keys)
}

func (m Model) percent() float64 {
	if m.totalSteps == 0 {
		return 0
	}
	return float64(m.doneSteps) / float64(m.totalSteps)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ LEGO Worship Songbook"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Catalog: %s", m.settings.Catalog)))
	b.WriteString("\n\n")

	switch m.state {
	case StateLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Loading catalog..."))
		b.WriteString("\n")
	case StateBrowse:
		b.WriteString(m.viewBrowse())
	case StateDetails:
		b.WriteString(m.details)
	case StateBuilding:
		b.WriteString(m.viewBuilding())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	order := "ascending"
	if m.descending {
		order = "descending"
	}
	field := "title"
	if m.sortByKey {
		field = "key"
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("%d of %d songs, by %s %s", len(m.visible), m.catalog.Len(), field, order)))
	b.WriteString("\n")
	if m.filterFocused || m.filterInput.Value() != "" {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewBuilding() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Building site..."))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Steps: %d/%d", m.doneSteps, m.totalSteps)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	songs := 0
	if m.catalog != nil {
		songs = m.catalog.Len()
	}
	b.WriteString(boxStyle.Render(fmt.Sprintf(
		"✨ Build Complete!\n\n"+
			"Songs: %d\n"+
			"Steps: %d/%d",
		songs,
		m.doneSteps,
		m.totalSteps,
	)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case pipeline.LevelError:
			style = errorStyle
			prefix = "✗"
		case pipeline.LevelWarning:
			style = warningStyle
			prefix = "!"
		case pipeline.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case pipeline.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateBrowse:
		if m.filterFocused {
			return "enter: apply • esc: clear"
		}
		return "/: filter • s: sort field • o: order • enter: sheet • b: build • v: verbose • q: quit"
	case StateDetails:
		return "esc: back • q: quit"
	case StateBuilding:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: reload • q: quit"
	}
	return ""
}

// loadCatalog imports the catalog and merges song info.
func (m Model) loadCatalog() tea.Cmd {
	settings, logger := m.settings, m.logger
	return func() tea.Msg {
		manager, err := pipeline.NewManager(settings, logger, nil)
		if err != nil {
			return CatalogLoadedMsg{Err: err}
		}
		if err := manager.Initialize(context.Background()); err != nil {
			return CatalogLoadedMsg{Err: err}
		}
		return CatalogLoadedMsg{Catalog: manager.Catalog()}
	}
}

// startBuild runs every pipeline step in the background.
func (m *Model) startBuild() tea.Cmd {
	manager, err := pipeline.NewManager(m.settings, m.logger, m.forward(m.events))
	if err != nil {
		return func() tea.Msg { return BuildDoneMsg{Err: err} }
	}
	m.manager = manager
	manager.SetCatalog(m.catalog)

	ctx := m.ctx
	build := func() tea.Msg {
		err := manager.Run(ctx, pipeline.AllSteps())
		done, total := manager.GetProgress()
		return BuildDoneMsg{Done: done, Total: total, Err: err}
	}

	return tea.Batch(build, m.waitForEvent(), m.tickProgress(), m.spinner.Tick)
}

// forward sends events to the UI without blocking the build.
func (m Model) forward(events chan<- pipeline.ProgressEvent) func(pipeline.ProgressEvent) {
	return func(e pipeline.ProgressEvent) {
		select {
		case events <- e:
		default:
			m.logger.Debug("progress event dropped", zap.String("message", e.Message))
		}
	}
}

// waitForEvent delivers the next progress event.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		return ProgressMsg{Event: <-events}
	}
}

// ErrNoCatalog is returned by Run without a catalog path.
var ErrNoCatalog = errors.New("no catalog configured")

// Run starts the TUI application.
func Run(settings *config.Settings, logger *zap.Logger) error {
	if settings != nil && settings.Catalog == "" {
		return ErrNoCatalog
	}
	m, err := NewModel(settings, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
