// Package tui provides a Bubble Tea terminal user interface for browsing
// Metal Archives: search bands, walk discographies, view tracklists and
// lyrics, and prefetch a band's albums into the local cache.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/azagthoth/metallum/internal/config"
	"github.com/azagthoth/metallum/internal/metallum"
	"github.com/azagthoth/metallum/internal/model"
	"github.com/azagthoth/metallum/internal/prefetch"
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

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateSearch State = iota
	StateLoading
	StateResults
	StateBand
	StateAlbum
	StateLyrics
	StatePrefetching
	StateError
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	prev      State // where esc returns to from lyrics/error
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	client    *metallum.Client
	err       error

	// Browse context
	ctx    context.Context
	cancel context.CancelFunc

	// Browse data
	search *metallum.BandSearch
	band   *metallum.Band
	albums *metallum.AlbumCollection
	album  *model.Album
	lyrics model.Lyrics
	cursor int

	// Prefetch
	manager *prefetch.Manager

	width  int
	height int
}

// NewModel creates a new TUI model over an existing client.
func NewModel(client *metallum.Client, settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "band name, e.g. darkthrone"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateSearch,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		client:    client,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// SearchDoneMsg is sent when a band search completes.
	SearchDoneMsg struct {
		Search *metallum.BandSearch
		Err    error
	}

	// BandDoneMsg is sent when a band and its discography have loaded.
	BandDoneMsg struct {
		Band   *metallum.Band
		Albums *metallum.AlbumCollection
		Err    error
	}

	// AlbumDoneMsg is sent when an album page has loaded.
	AlbumDoneMsg struct {
		Album *model.Album
		Err   error
	}

	// LyricsDoneMsg is sent when lyrics have loaded.
	LyricsDoneMsg struct {
		Lyrics model.Lyrics
		Err    error
	}

	// PrefetchDoneMsg is sent when a discography prefetch finishes.
	PrefetchDoneMsg struct {
		Err error
	}

	// TickMsg is for periodic prefetch progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		newModel, cmd, handled := m.handleKey(msg)
		if handled {
			return newModel, cmd
		}
		m = newModel

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case SearchDoneMsg:
		if msg.Err != nil {
			m.fail(msg.Err)
		} else {
			m.search = msg.Search
			m.cursor = 0
			m.state = StateResults
		}

	case BandDoneMsg:
		if msg.Err != nil {
			m.fail(msg.Err)
		} else {
			m.band = msg.Band
			m.albums = msg.Albums
			m.cursor = 0
			m.state = StateBand
		}

	case AlbumDoneMsg:
		if msg.Err != nil {
			m.fail(msg.Err)
		} else {
			m.album = msg.Album
			m.cursor = 0
			m.state = StateAlbum
		}

	case LyricsDoneMsg:
		if msg.Err != nil {
			m.fail(msg.Err)
		} else {
			m.lyrics = msg.Lyrics
			m.prev = StateAlbum
			m.state = StateLyrics
		}

	case PrefetchDoneMsg:
		if msg.Err != nil && m.ctx.Err() == nil {
			m.fail(msg.Err)
		} else {
			m.state = StateBand
		}

	case TickMsg:
		if m.manager != nil && m.state == StatePrefetching {
			fetched, total := m.manager.Progress()
			var percent float64
			if total > 0 {
				percent = float64(fetched) / float64(total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateSearch {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit, true

	case "esc":
		switch m.state {
		case StateSearch:
			return m, tea.Quit, true
		case StateLoading, StatePrefetching:
			m.cancel()
			m.ctx, m.cancel = context.WithCancel(context.Background())
			m.state = StateSearch
		case StateResults:
			m.state = StateSearch
			m.textInput.Focus()
		case StateBand:
			if m.search != nil {
				m.state = StateResults
			} else {
				m.state = StateSearch
				m.textInput.Focus()
			}
			m.cursor = 0
		case StateAlbum:
			m.state = StateBand
			m.cursor = 0
		case StateLyrics, StateError:
			m.state = m.prev
		}
		return m, nil, true

	case "up", "k":
		if m.cursor > 0 && m.listLength() > 0 {
			m.cursor--
		}
		return m, nil, true

	case "down", "j":
		if m.cursor < m.listLength()-1 {
			m.cursor++
		}
		return m, nil, true

	case "enter":
		return m.handleEnter()

	case "p":
		if m.state == StateBand && m.band != nil {
			m.state = StatePrefetching
			return m, tea.Batch(m.startPrefetch(), m.tickProgress(), m.spinner.Tick), true
		}

	case "q":
		if m.state != StateSearch {
			m.cancel()
			return m, tea.Quit, true
		}
	}
	return m, nil, false
}

func (m Model) handleEnter() (Model, tea.Cmd, bool) {
	switch m.state {
	case StateSearch:
		if m.textInput.Value() != "" {
			m.prev = StateSearch
			m.state = StateLoading
			return m, tea.Batch(m.runSearch(m.textInput.Value()), m.spinner.Tick), true
		}

	case StateResults:
		if m.search != nil && m.cursor < len(m.search.Results) {
			m.prev = StateResults
			m.state = StateLoading
			return m, tea.Batch(m.openBand(m.search.Results[m.cursor]), m.spinner.Tick), true
		}

	case StateBand:
		if m.albums != nil && m.cursor < m.albums.Len() {
			m.prev = StateBand
			m.state = StateLoading
			return m, tea.Batch(m.openAlbum(m.albums.At(m.cursor)), m.spinner.Tick), true
		}

	case StateAlbum:
		if m.album != nil && m.cursor < len(m.album.Tracks) {
			track := m.album.Tracks[m.cursor]
			if track.HasLyrics {
				m.prev = StateAlbum
				m.state = StateLoading
				return m, tea.Batch(m.fetchLyrics(track.ID), m.spinner.Tick), true
			}
		}
	}
	return m, nil, true
}

// listLength returns the length of whatever list the cursor moves over.
func (m Model) listLength() int {
	switch m.state {
	case StateResults:
		if m.search != nil {
			return len(m.search.Results)
		}
	case StateBand:
		if m.albums != nil {
			return m.albums.Len()
		}
	case StateAlbum:
		if m.album != nil {
			return len(m.album.Tracks)
		}
	}
	return 0
}

func (m *Model) fail(err error) {
	m.prev = m.state
	if m.prev == StateLoading || m.prev == StatePrefetching {
		m.prev = StateSearch
	}
	m.err = err
	m.state = StateError
}

// tickProgress returns a command to tick prefetch progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Metal Archives"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Browse the Encyclopaedia Metallum"))
	b.WriteString("\n\n")

	switch m.state {
	case StateSearch:
		b.WriteString(m.viewSearch())
	case StateLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Loading..."))
		b.WriteString("\n")
	case StateResults:
		b.WriteString(m.viewResults())
	case StateBand:
		b.WriteString(m.viewBand())
	case StateAlbum:
		b.WriteString(m.viewAlbum())
	case StateLyrics:
		b.WriteString(m.viewLyrics())
	case StatePrefetching:
		b.WriteString(m.viewPrefetching())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Search for a band:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewResults() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf(
		"%d of %d matches:", len(m.search.Results), m.search.TotalRecords)))
	b.WriteString("\n\n")

	for i, result := range m.search.Results {
		line := fmt.Sprintf("%-25s %-15s %s", result.Name, result.Country, strings.Join(result.Genres, ", "))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewBand() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(m.band.Name))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s, %s", m.band.Country, m.band.Status)))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(strings.Join(m.band.Genres, ", ")))
	b.WriteString("\n\n")

	if m.albums == nil || m.albums.Len() == 0 {
		b.WriteString(dimStyle.Render("(no releases)"))
		b.WriteString("\n")
		return b.String()
	}

	for i, album := range m.albums.All() {
		line := fmt.Sprintf("%-35s %-15s %d", album.Title(), album.Type(), album.Year())
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewAlbum() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(m.album.Title))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s, %d", m.album.Type, m.album.Year())))
	b.WriteString("\n\n")

	discs := m.album.DiscCount()
	for i, track := range m.album.Tracks {
		number := fmt.Sprintf("%d.", track.Number)
		if discs > 1 {
			number = fmt.Sprintf("%d.%02d", track.DiscNumber, track.Number)
		}
		lyricsMark := " "
		if track.HasLyrics {
			lyricsMark = "¶"
		}
		line := fmt.Sprintf("%-6s %-40s %s %s", number, track.Title, formatSeconds(track.Duration), lyricsMark)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewLyrics() string {
	var b strings.Builder
	if m.lyrics.Empty() {
		b.WriteString(dimStyle.Render("(no lyrics)"))
	} else {
		b.WriteString(boxStyle.Render(m.lyrics.String()))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewPrefetching() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Prefetching %s...", m.band.Name)))
	b.WriteString("\n\n")
	b.WriteString(m.progress.View())
	b.WriteString("\n")

	if m.manager != nil {
		fetched, total := m.manager.Progress()
		b.WriteString(infoStyle.Render(fmt.Sprintf("Albums: %d/%d", fetched, total)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Error:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateSearch:
		return "enter: search • esc: quit"
	case StateLoading, StatePrefetching:
		return "esc: cancel"
	case StateResults:
		return "enter: open band • esc: back • q: quit"
	case StateBand:
		return "enter: open album • p: prefetch discography • esc: back • q: quit"
	case StateAlbum:
		return "enter: lyrics (¶ marks tracks that have them) • esc: back • q: quit"
	case StateLyrics, StateError:
		return "esc: back • q: quit"
	}
	return ""
}

// runSearch searches bands by name.
func (m *Model) runSearch(name string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		search, err := client.SearchBands(ctx, metallum.BandQuery{Name: name})
		return SearchDoneMsg{Search: search, Err: err}
	}
}

// openBand loads a search result's band page and discography.
func (m *Model) openBand(result *metallum.BandResult) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		band, err := result.Get(ctx)
		if err != nil {
			return BandDoneMsg{Err: err}
		}
		albums, err := band.Albums(ctx)
		if err != nil {
			return BandDoneMsg{Err: err}
		}
		return BandDoneMsg{Band: band, Albums: albums}
	}
}

// openAlbum escalates a discography entry to its full record.
func (m *Model) openAlbum(album *metallum.Album) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		full, err := album.Full(ctx)
		return AlbumDoneMsg{Album: full, Err: err}
	}
}

// fetchLyrics loads a track's lyrics.
func (m *Model) fetchLyrics(trackID string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		lyrics, err := client.LyricsForID(ctx, trackID)
		return LyricsDoneMsg{Lyrics: lyrics, Err: err}
	}
}

// startPrefetch warms the cache for the current band's discography.
func (m *Model) startPrefetch() tea.Cmd {
	m.manager = prefetch.NewManager(m.client, m.settings, nil)
	ctx, manager, band, concurrency := m.ctx, m.manager, m.band, m.settings.PrefetchConcurrency
	return func() tea.Msg {
		if err := manager.Initialize(ctx, []string{band.ID}); err != nil {
			return PrefetchDoneMsg{Err: err}
		}
		return PrefetchDoneMsg{Err: manager.Run(ctx, concurrency)}
	}
}

// formatSeconds renders a duration in seconds as MM:SS.
func formatSeconds(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Run starts the TUI application.
func Run(client *metallum.Client, settings *config.Settings) error {
	p := tea.NewProgram(NewModel(client, settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
