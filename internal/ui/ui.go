package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/services"
	"github.com/maestro-studio/maestro-cli/internal/tasks"
)

// bannerDuration is how long notification banners stay visible.
const bannerDuration = 4 * time.Second

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ReleaseListView ViewState = iota
	SongListView
	ConfirmView
	ExportView
	ResultView
	LoginView
)

// ReleaseLister is the slice of the release service the TUI needs.
type ReleaseLister interface {
	List(ctx context.Context, limit, offset int) (*services.Paginated[models.Release], error)
	Get(ctx context.Context, id string) (*models.Release, error)
}

// SongFetcher resolves individual songs for release previews.
type SongFetcher interface {
	Get(ctx context.Context, id string) (*models.Song, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx             context.Context
	view            ViewState
	releases        ReleaseLister
	songs           SongFetcher
	engine          tasks.Engine
	exportFormat    string
	width           int
	height          int
	releaseList     list.Model
	releaseLibrary  []models.Release
	songList        list.Model
	selectedRelease *models.ReleaseExport
	progressChan    chan tasks.ProgressUpdate
	progress        tasks.ProgressUpdate
	result          *tasks.BulkExportResult
	resultErr       error
	err             error
	banner          string
	bannerBottom    bool
	help            help.Model
	keys            keyMap
}

// ModelOption configures optional Model behavior.
type ModelOption func(*Model)

// WithExportFormat sets the format used when exporting a release (default json).
func WithExportFormat(format string) ModelOption {
	return func(m *Model) { m.exportFormat = format }
}

// WithBannerAtBottom renders notification banners below the content
// instead of above it. Driven by the ui.banner_position preference.
func WithBannerAtBottom() ModelOption {
	return func(m *Model) { m.bannerBottom = true }
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, releases ReleaseLister, songs SongFetcher, engine tasks.Engine, opts ...ModelOption) *Model {
	m := &Model{
		ctx:          ctx,
		view:         ReleaseListView,
		releases:     releases,
		songs:        songs,
		engine:       engine,
		exportFormat: "json",
		help:         help.New(),
		keys:         newKeyMap(),
	}
	for _, opt := range opts {
		opt(m)
	}

	w, h := m.listSize()
	m.releaseList = list.New([]list.Item{}, list.NewDefaultDelegate(), w, h)
	m.releaseList.Title = "Releases"
	m.songList = list.New([]list.Item{}, list.NewDefaultDelegate(), w, h)

	return m
}

// listSize computes the list viewport from the terminal size, falling back
// to a standard 80x24 terminal until the first window size message arrives.
func (m *Model) listSize() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return width - 4, height - 8
}

// Init initializes the TUI by fetching the release library.
func (m *Model) Init() tea.Cmd {
	return m.fetchReleases()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.listSize()
		m.releaseList.SetSize(w, h)
		m.songList.SetSize(w, h)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ReleaseListView:
			return m.handleReleaseListKeys(msg)
		case SongListView:
			return m.handleSongListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		case LoginView:
			return m.handleLoginKeys(msg)
		}

	case releasesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.releaseLibrary = msg.releases
		items := make([]list.Item, len(msg.releases))
		for i, rel := range msg.releases {
			items[i] = releaseItem{release: rel}
		}
		return m, m.releaseList.SetItems(items)

	case releaseSongsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ReleaseListView
			return m, nil
		}
		m.selectedRelease = msg.export
		items := make([]list.Item, len(msg.export.Songs))
		for i, song := range msg.export.Songs {
			items[i] = songItem{song: song}
		}
		m.songList.Title = fmt.Sprintf("Songs on '%s'", msg.export.Release.Title)
		m.view = SongListView
		return m, m.songList.SetItems(items)

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case exportCompleteMsg:
		m.result = msg.result
		m.resultErr = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil

	case bannerMsg:
		m.banner = msg.message
		return m, tea.Tick(bannerDuration, func(time.Time) tea.Msg {
			return bannerExpiredMsg{}
		})

	case bannerExpiredMsg:
		m.banner = ""
		return m, nil

	case navigateMsg:
		if msg.route == "/login" {
			m.view = LoginView
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return m.withBanner(styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err)))
	}

	var content string
	switch m.view {
	case ReleaseListView:
		content = m.renderReleaseList()
	case SongListView:
		content = m.renderSongList()
	case ConfirmView:
		content = m.renderConfirm()
	case ExportView:
		content = m.renderExport()
	case ResultView:
		content = m.renderResult()
	case LoginView:
		content = m.renderLogin()
	}

	return m.withBanner(content)
}

// withBanner attaches the active notification banner to rendered content.
func (m *Model) withBanner(content string) string {
	if m.banner == "" {
		return content
	}
	banner := styles.banner.Render(m.banner)
	if m.bannerBottom {
		return fmt.Sprintf("%s\n\n%s", content, banner)
	}
	return fmt.Sprintf("%s\n\n%s", banner, content)
}

func (m *Model) handleReleaseListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.releaseList.SelectedItem()
		if selected != nil {
			if rel, ok := selected.(releaseItem); ok {
				return m, m.fetchReleaseSongs(rel.release.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.releaseList, cmd = m.releaseList.Update(msg)
	return m, cmd
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ReleaseListView
		return m, nil
	case "enter":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n":
		m.view = SongListView
		return m, nil
	case "y":
		m.view = ExportView
		return m, m.startExport()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = ReleaseListView
		m.selectedRelease = nil
		m.result = nil
		m.resultErr = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ReleaseListView:
		m.releaseList, cmd = m.releaseList.Update(msg)
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchReleases() tea.Cmd {
	return func() tea.Msg {
		page, err := m.releases.List(m.ctx, 50, 0)
		if err != nil {
			return releasesFetchedMsg{err: err}
		}
		return releasesFetchedMsg{releases: page.Items}
	}
}

func (m *Model) fetchReleaseSongs(releaseID string) tea.Cmd {
	return func() tea.Msg {
		release, err := m.releases.Get(m.ctx, releaseID)
		if err != nil {
			return releaseSongsFetchedMsg{err: err}
		}

		export := &models.ReleaseExport{Release: *release}
		for _, songID := range release.SongIDs {
			song, err := m.songs.Get(m.ctx, songID)
			if err != nil {
				continue
			}
			export.Songs = append(export.Songs, *song)
		}
		return releaseSongsFetchedMsg{export: export}
	}
}

func (m *Model) startExport() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	go func() {
		result, err := m.engine.BulkExport(m.ctx, progress, []string{m.selectedRelease.Release.ID}, tasks.BulkExportOpts{
			Format: m.exportFormat,
		})
		m.result = result
		m.resultErr = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return exportCompleteMsg{result: m.result, err: m.resultErr}
		}

		update, ok := <-m.progressChan
		if !ok {
			return exportCompleteMsg{result: m.result, err: m.resultErr}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderReleaseList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.releaseList.View(), helpView)
}

func (m *Model) renderSongList() string {
	helpKeys := []key.Binding{m.keys.export, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Export '%s' as %s?", m.selectedRelease.Release.Title, m.exportFormat))
	info := fmt.Sprintf("\nRelease: %s\nSongs: %d\n", m.selectedRelease.Release.Title, len(m.selectedRelease.Songs))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderExport() string {
	title := styles.title.Render("Exporting Release")

	var phase string
	switch m.progress.Phase {
	case tasks.ExportRelease:
		phase = fmt.Sprintf("Exporting (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.resultErr != nil {
		return styles.err.Render(fmt.Sprintf("Export failed: %v\n\nPress r to retry, q to quit", m.resultErr))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Export Complete!")
	info := fmt.Sprintf(
		"\nOutput: %s\nExported: %d/%d releases",
		m.result.OutputDirectory,
		m.result.SuccessfulExports,
		m.result.TotalReleases,
	)

	var failed string
	if m.result.FailedExports > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("Failed to export %d releases:", m.result.FailedExports)))
		for _, res := range m.result.Results {
			if res.Error != nil {
				failed += fmt.Sprintf("\n  • %s: %v", res.ReleaseTitle, res.Error)
			}
		}
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}

func (m *Model) renderLogin() string {
	title := styles.warn.Render("Session ended")
	body := "Your session is no longer valid.\n\nRun `maestro auth login` to sign in again, then restart the TUI."
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, styles.help.Render("press q to quit"))
}
