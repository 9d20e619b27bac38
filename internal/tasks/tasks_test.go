package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/services"
)

type mockSongClient struct {
	songs    map[string]*models.Song
	getCalls []string
}

func (m *mockSongClient) Get(_ context.Context, id string) (*models.Song, error) {
	m.getCalls = append(m.getCalls, id)
	song, ok := m.songs[id]
	if !ok {
		return nil, fmt.Errorf("song %s not found", id)
	}
	return song, nil
}

func (m *mockSongClient) List(_ context.Context, limit, offset int) (*services.Paginated[models.Song], error) {
	items := make([]models.Song, 0, len(m.songs))
	for _, s := range m.songs {
		items = append(items, *s)
	}
	return &services.Paginated[models.Song]{Items: items, Total: len(items), Limit: limit, Offset: offset}, nil
}

type mockReleaseClient struct {
	release       *models.Release
	getErr        error
	addSongsErr   error
	updateErr     error
	addedSongs    []string
	updateReqs    []services.ReleaseRequest
	addSongsCalls int
}

func (m *mockReleaseClient) Get(_ context.Context, id string) (*models.Release, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.release == nil || m.release.ID != id {
		return nil, fmt.Errorf("release %s not found", id)
	}
	cp := *m.release
	return &cp, nil
}

func (m *mockReleaseClient) Update(_ context.Context, id string, req services.ReleaseRequest) (*models.Release, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.updateReqs = append(m.updateReqs, req)
	if req.ArtworkID != "" {
		m.release.ArtworkID = req.ArtworkID
	}
	cp := *m.release
	return &cp, nil
}

func (m *mockReleaseClient) AddSongs(_ context.Context, id string, songIDs []string) (*models.Release, error) {
	m.addSongsCalls++
	if m.addSongsErr != nil {
		return nil, m.addSongsErr
	}
	m.addedSongs = append(m.addedSongs, songIDs...)
	m.release.SongIDs = append(m.release.SongIDs, songIDs...)
	cp := *m.release
	return &cp, nil
}

type mockImageClient struct {
	images map[string]*models.Image
}

func (m *mockImageClient) Get(_ context.Context, id string) (*models.Image, error) {
	img, ok := m.images[id]
	if !ok {
		return nil, fmt.Errorf("image %s not found", id)
	}
	return img, nil
}

type mockAPIClient struct {
	responses map[string]*services.APIResponse
	errs      map[string]error
	paths     []string
}

func (m *mockAPIClient) Get(_ context.Context, path string) (*services.APIResponse, error) {
	m.paths = append(m.paths, path)
	if err, ok := m.errs[path]; ok {
		return nil, err
	}
	if resp, ok := m.responses[path]; ok {
		return resp, nil
	}
	return &services.APIResponse{StatusCode: 200, IsJSON: true, JSONData: map[string]any{"path": path}}, nil
}

type mockSongCache struct {
	cached []string
	err    error
}

func (m *mockSongCache) CacheSong(song *models.Song) error {
	if m.err != nil {
		return m.err
	}
	m.cached = append(m.cached, song.ID)
	return nil
}

func sampleSongs() map[string]*models.Song {
	return map[string]*models.Song{
		"song-1": {ID: "song-1", Title: "Midnight Freeway", Style: "synthwave", Status: "complete", Duration: 214},
		"song-2": {ID: "song-2", Title: "Neon Rain", Style: "synthwave", Status: "complete", Duration: 187},
	}
}

func TestAssembleRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches verified songs to the release", func(t *testing.T) {
		songs := &mockSongClient{songs: sampleSongs()}
		releases := &mockReleaseClient{release: &models.Release{ID: "rel-1", Title: "Night Drive EP", Status: "draft"}}
		cache := &mockSongCache{}
		engine := NewStudioEngine(songs, releases, nil, nil).WithSongCache(cache)

		result, err := engine.AssembleRelease(ctx, nil, "rel-1", AssembleOpts{SongIDs: []string{"song-1", "song-2"}})
		if err != nil {
			t.Fatalf("AssembleRelease failed: %v", err)
		}
		if result.SuccessCount != 2 || result.FailedCount != 0 {
			t.Errorf("expected 2 successes, got %d success / %d failed", result.SuccessCount, result.FailedCount)
		}
		if len(releases.addedSongs) != 2 {
			t.Errorf("expected 2 songs attached, got %v", releases.addedSongs)
		}
		if len(result.Release.SongIDs) != 2 {
			t.Errorf("expected release to carry 2 songs, got %d", len(result.Release.SongIDs))
		}
		if len(cache.cached) != 2 {
			t.Errorf("expected both songs cached, got %v", cache.cached)
		}
	})

	t.Run("skips songs that cannot be resolved", func(t *testing.T) {
		songs := &mockSongClient{songs: sampleSongs()}
		releases := &mockReleaseClient{release: &models.Release{ID: "rel-1", Title: "Night Drive EP"}}
		engine := NewStudioEngine(songs, releases, nil, nil)

		result, err := engine.AssembleRelease(ctx, nil, "rel-1", AssembleOpts{SongIDs: []string{"song-1", "missing"}})
		if err != nil {
			t.Fatalf("AssembleRelease failed: %v", err)
		}
		if result.SuccessCount != 1 || result.FailedCount != 1 {
			t.Errorf("expected 1 success and 1 failure, got %d / %d", result.SuccessCount, result.FailedCount)
		}
		if len(releases.addedSongs) != 1 || releases.addedSongs[0] != "song-1" {
			t.Errorf("expected only song-1 attached, got %v", releases.addedSongs)
		}
		if len(result.SongResults) != 2 {
			t.Fatalf("expected 2 song results, got %d", len(result.SongResults))
		}
		if result.SongResults[1].Error == nil {
			t.Error("expected error recorded for missing song")
		}
	})

	t.Run("fails when no songs resolve", func(t *testing.T) {
		songs := &mockSongClient{songs: map[string]*models.Song{}}
		releases := &mockReleaseClient{release: &models.Release{ID: "rel-1"}}
		engine := NewStudioEngine(songs, releases, nil, nil)

		result, err := engine.AssembleRelease(ctx, nil, "rel-1", AssembleOpts{SongIDs: []string{"a", "b"}})
		if err == nil {
			t.Fatal("expected error when no songs resolve")
		}
		if result.FailedCount != 2 {
			t.Errorf("expected 2 failures, got %d", result.FailedCount)
		}
		if releases.addSongsCalls != 0 {
			t.Error("release should not be mutated when nothing resolved")
		}
	})

	t.Run("resolves and sets artwork", func(t *testing.T) {
		songs := &mockSongClient{songs: sampleSongs()}
		releases := &mockReleaseClient{release: &models.Release{ID: "rel-1", Title: "Night Drive EP"}}
		images := &mockImageClient{images: map[string]*models.Image{
			"img-1": {ID: "img-1", Title: "Cover", URL: "https://cdn.example.com/img-1.jpg"},
		}}
		engine := NewStudioEngine(songs, releases, images, nil)

		result, err := engine.AssembleRelease(ctx, nil, "rel-1", AssembleOpts{
			SongIDs:   []string{"song-1"},
			ArtworkID: "img-1",
		})
		if err != nil {
			t.Fatalf("AssembleRelease failed: %v", err)
		}
		if result.Artwork == nil || result.Artwork.ID != "img-1" {
			t.Errorf("expected resolved artwork img-1, got %+v", result.Artwork)
		}
		if result.Release.ArtworkID != "img-1" {
			t.Errorf("expected release artwork set, got %q", result.Release.ArtworkID)
		}
		if len(releases.updateReqs) != 1 || releases.updateReqs[0].ArtworkID != "img-1" {
			t.Errorf("expected one update with artwork, got %v", releases.updateReqs)
		}
	})

	t.Run("fails when artwork does not exist", func(t *testing.T) {
		songs := &mockSongClient{songs: sampleSongs()}
		releases := &mockReleaseClient{release: &models.Release{ID: "rel-1"}}
		images := &mockImageClient{images: map[string]*models.Image{}}
		engine := NewStudioEngine(songs, releases, images, nil)

		_, err := engine.AssembleRelease(ctx, nil, "rel-1", AssembleOpts{
			SongIDs:   []string{"song-1"},
			ArtworkID: "img-missing",
		})
		if err == nil {
			t.Fatal("expected error for missing artwork")
		}
	})

	t.Run("fails fast when the release cannot be fetched", func(t *testing.T) {
		songs := &mockSongClient{songs: sampleSongs()}
		releases := &mockReleaseClient{getErr: errors.New("backend down")}
		engine := NewStudioEngine(songs, releases, nil, nil)

		_, err := engine.AssembleRelease(ctx, nil, "rel-1", AssembleOpts{SongIDs: []string{"song-1"}})
		if err == nil {
			t.Fatal("expected error when release fetch fails")
		}
		if len(songs.getCalls) != 0 {
			t.Error("songs should not be fetched when the release is missing")
		}
	})

	t.Run("reports progress through the channel", func(t *testing.T) {
		songs := &mockSongClient{songs: sampleSongs()}
		releases := &mockReleaseClient{release: &models.Release{ID: "rel-1", Title: "Night Drive EP"}}
		engine := NewStudioEngine(songs, releases, nil, nil)

		progress := make(chan ProgressUpdate, 32)
		_, err := engine.AssembleRelease(ctx, progress, "rel-1", AssembleOpts{SongIDs: []string{"song-1", "song-2"}})
		if err != nil {
			t.Fatalf("AssembleRelease failed: %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) == 0 {
			t.Fatal("expected progress updates")
		}
		if phases[0] != FetchRelease {
			t.Errorf("expected first phase FetchRelease, got %s", phases[0])
		}
		if phases[len(phases)-1] != Assembled {
			t.Errorf("expected final phase Assembled, got %s", phases[len(phases)-1])
		}
	})
}

func TestDump(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches every library endpoint", func(t *testing.T) {
		api := &mockAPIClient{
			responses: map[string]*services.APIResponse{
				"/api/v1/user/profile": {StatusCode: 200, IsJSON: true, JSONData: map[string]any{"email": "a@b.c"}},
			},
		}
		engine := NewStudioEngine(nil, nil, nil, api)

		result, err := engine.Dump(ctx, nil)
		if err != nil {
			t.Fatalf("Dump failed: %v", err)
		}
		if len(api.paths) != 7 {
			t.Errorf("expected 7 endpoint fetches, got %d: %v", len(api.paths), api.paths)
		}
		if result.Profile == nil {
			t.Error("expected profile data")
		}
		if len(result.Errors) != 0 {
			t.Errorf("expected no errors, got %v", result.Errors)
		}
	})

	t.Run("collects endpoint failures without aborting", func(t *testing.T) {
		api := &mockAPIClient{
			errs: map[string]error{
				"/api/v1/lyrics": errors.New("timeout"),
			},
			responses: map[string]*services.APIResponse{
				"/api/v1/equipment": {StatusCode: 500},
			},
		}
		engine := NewStudioEngine(nil, nil, nil, api)

		result, err := engine.Dump(ctx, nil)
		if err != nil {
			t.Fatalf("Dump failed: %v", err)
		}
		if len(result.Errors) != 2 {
			t.Fatalf("expected 2 endpoint errors, got %d", len(result.Errors))
		}
		if result.Songs == nil || result.Releases == nil {
			t.Error("healthy endpoints should still be populated")
		}
		if result.Lyrics != nil || result.Equipment != nil {
			t.Error("failed endpoints should stay nil")
		}
	})

	t.Run("requires an API client", func(t *testing.T) {
		engine := NewStudioEngine(nil, nil, nil, nil)
		if _, err := engine.Dump(ctx, nil); err == nil {
			t.Fatal("expected error without API client")
		}
	})
}
