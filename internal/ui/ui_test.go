package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/services"
)

type stubReleaseLister struct {
	releases []models.Release
}

func (s *stubReleaseLister) List(_ context.Context, limit, offset int) (*services.Paginated[models.Release], error) {
	return &services.Paginated[models.Release]{Items: s.releases, Total: len(s.releases)}, nil
}

func (s *stubReleaseLister) Get(_ context.Context, id string) (*models.Release, error) {
	for _, rel := range s.releases {
		if rel.ID == id {
			cp := rel
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("release %s not found", id)
}

type stubSongFetcher struct{}

func (s *stubSongFetcher) Get(_ context.Context, id string) (*models.Song, error) {
	return &models.Song{ID: id, Title: "Song " + id, Style: "ambient", Duration: 120}, nil
}

func newTestModel() *Model {
	releases := &stubReleaseLister{releases: []models.Release{
		{ID: "rel-1", Title: "Night Drive EP", Status: "draft", SongIDs: []string{"s1", "s2"}},
	}}
	return NewModel(context.Background(), releases, &stubSongFetcher{}, nil)
}

func TestModelViews(t *testing.T) {
	t.Run("populates the release list from the fetch message", func(t *testing.T) {
		m := newTestModel()
		m.width, m.height = 80, 24

		updated, _ := m.Update(releasesFetchedMsg{releases: []models.Release{
			{ID: "rel-1", Title: "Night Drive EP", SongIDs: []string{"s1"}},
		}})
		model := updated.(*Model)

		if model.view != ReleaseListView {
			t.Errorf("expected ReleaseListView, got %d", model.view)
		}
		if !strings.Contains(model.View(), "Night Drive EP") {
			t.Error("release list should show the release title")
		}
	})

	t.Run("lists are usable before the first window size arrives", func(t *testing.T) {
		m := newTestModel()

		updated, _ := m.Update(releasesFetchedMsg{releases: []models.Release{
			{ID: "rel-1", Title: "Night Drive EP", SongIDs: []string{"s1"}},
		}})
		model := updated.(*Model)

		if w := model.releaseList.Width(); w <= 0 {
			t.Errorf("expected a positive fallback width, got %d", w)
		}
		if !strings.Contains(model.View(), "Night Drive EP") {
			t.Error("release list should render with the fallback size")
		}
	})

	t.Run("tracks every window resize", func(t *testing.T) {
		m := newTestModel()
		m.Update(releasesFetchedMsg{releases: []models.Release{
			{ID: "rel-1", Title: "Night Drive EP"},
		}})

		m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
		if m.releaseList.Width() != 96 {
			t.Errorf("expected width 96 after first resize, got %d", m.releaseList.Width())
		}

		m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
		if m.releaseList.Width() != 56 {
			t.Errorf("expected width 56 after second resize, got %d", m.releaseList.Width())
		}
		if m.songList.Width() != 56 {
			t.Errorf("expected the song list to resize too, got %d", m.songList.Width())
		}
	})

	t.Run("moves to the song list when a release resolves", func(t *testing.T) {
		m := newTestModel()

		export := &models.ReleaseExport{
			Release: models.Release{ID: "rel-1", Title: "Night Drive EP"},
			Songs:   []models.Song{{ID: "s1", Title: "Midnight Freeway", Style: "synthwave", Duration: 214}},
		}
		updated, _ := m.Update(releaseSongsFetchedMsg{export: export})
		model := updated.(*Model)

		if model.view != SongListView {
			t.Errorf("expected SongListView, got %d", model.view)
		}
		if !strings.Contains(model.View(), "Midnight Freeway") {
			t.Error("song list should show the song title")
		}
		if !strings.Contains(model.View(), "export") {
			t.Error("song list help should offer the export binding")
		}
	})

	t.Run("shows and dismisses notification banners", func(t *testing.T) {
		m := newTestModel()
		m.Update(releasesFetchedMsg{})

		updated, cmd := m.Update(bannerMsg{message: "Session has expired. Please sign in again."})
		model := updated.(*Model)

		if cmd == nil {
			t.Error("banner should schedule its own dismissal")
		}
		if !strings.Contains(model.View(), "Session has expired") {
			t.Error("banner text should render")
		}

		updated, _ = model.Update(bannerExpiredMsg{})
		model = updated.(*Model)
		if strings.Contains(model.View(), "Session has expired") {
			t.Error("banner should be gone after expiry")
		}
	})

	t.Run("renders the banner below content when configured", func(t *testing.T) {
		releases := &stubReleaseLister{}
		m := NewModel(context.Background(), releases, &stubSongFetcher{}, nil, WithBannerAtBottom())
		m.Update(releasesFetchedMsg{})
		updated, _ := m.Update(bannerMsg{message: "heads up"})
		model := updated.(*Model)

		view := model.View()
		bannerAt := strings.Index(view, "heads up")
		listAt := strings.Index(view, "Releases")
		if bannerAt == -1 || listAt == -1 {
			t.Fatalf("view missing banner or list: %s", view)
		}
		if bannerAt < listAt {
			t.Error("banner should render below the content")
		}
	})

	t.Run("routes to the login view on navigation", func(t *testing.T) {
		m := newTestModel()
		updated, _ := m.Update(navigateMsg{route: "/login"})
		model := updated.(*Model)

		if model.view != LoginView {
			t.Errorf("expected LoginView, got %d", model.view)
		}
		if !strings.Contains(model.View(), "maestro auth login") {
			t.Error("login view should tell the user how to re-authenticate")
		}
	})

	t.Run("ignores unknown routes", func(t *testing.T) {
		m := newTestModel()
		updated, _ := m.Update(navigateMsg{route: "/elsewhere"})
		model := updated.(*Model)

		if model.view != ReleaseListView {
			t.Errorf("unknown routes should not change the view, got %d", model.view)
		}
	})

	t.Run("confirm view offers the export prompt", func(t *testing.T) {
		m := newTestModel()
		m.selectedRelease = &models.ReleaseExport{
			Release: models.Release{ID: "rel-1", Title: "Night Drive EP"},
			Songs:   []models.Song{{ID: "s1"}},
		}
		m.view = ConfirmView

		if !strings.Contains(m.View(), "Export 'Night Drive EP' as json?") {
			t.Errorf("unexpected confirm view: %s", m.View())
		}

		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
		model := updated.(*Model)
		if model.view != SongListView {
			t.Errorf("declining should return to the song list, got %d", model.view)
		}
	})

	t.Run("result view lists export failures", func(t *testing.T) {
		m := newTestModel()
		m.view = ResultView
		m.result = nil
		m.resultErr = nil

		if !strings.Contains(m.View(), "No result available") {
			t.Error("missing result should be reported")
		}
	})
}
