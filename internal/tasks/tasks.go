// package tasks implements multi-request studio operations.
//
// The core abstraction is Engine, which orchestrates release assembly, bulk
// exports, and full library dumps. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/services"
	"github.com/maestro-studio/maestro-cli/internal/shared"
)

// SongClient is the slice of SongService the engine needs.
type SongClient interface {
	Get(ctx context.Context, id string) (*models.Song, error)
	List(ctx context.Context, limit, offset int) (*services.Paginated[models.Song], error)
}

// ReleaseClient is the slice of ReleaseService the engine needs.
type ReleaseClient interface {
	Get(ctx context.Context, id string) (*models.Release, error)
	Update(ctx context.Context, id string, req services.ReleaseRequest) (*models.Release, error)
	AddSongs(ctx context.Context, id string, songIDs []string) (*models.Release, error)
}

// ImageClient resolves artwork for releases.
type ImageClient interface {
	Get(ctx context.Context, id string) (*models.Image, error)
}

// APIClient defines the interface for raw API requests.
// This abstraction allows for easier testing and decoupling from concrete implementation.
type APIClient interface {
	Get(ctx context.Context, path string) (*services.APIResponse, error)
}

// SongCacher persists fetched songs locally so later runs can skip the
// network. Implemented by repositories.SongCacheRepository.
type SongCacher interface {
	CacheSong(song *models.Song) error
}

// SongAttachResult records one song attachment attempt during assembly.
type SongAttachResult struct {
	SongID string
	Song   *models.Song // nil if the song could not be fetched
	Error  error
}

// AssembleResult contains all data from a release assembly run.
type AssembleResult struct {
	Release      *models.Release    // Final release state
	Artwork      *models.Image      // Resolved cover image (nil when none requested)
	SongResults  []SongAttachResult // Individual song fetch results
	SuccessCount int                // Songs verified and attached
	FailedCount  int                // Songs that could not be resolved
}

// AssembleOpts configures a release assembly run.
type AssembleOpts struct {
	SongIDs   []string // Songs to attach
	ArtworkID string   // Optional cover image
}

// EndpointResult represents the result of fetching data from a single API endpoint.
type EndpointResult struct {
	Endpoint string
	Data     any
	Error    error
}

// DumpResult contains all data fetched from the studio API.
type DumpResult struct {
	Profile   any              // Account profile
	Songs     any              // Song library
	Images    any              // Artwork library
	Lyrics    any              // Lyric sheets
	Equipment any              // Gear presets
	Releases  any              // Releases
	Projects  any              // Projects
	Errors    []EndpointResult // Failed endpoint fetches
}

type endpointOperation struct {
	name    string
	path    string
	target  *any
	phase   Phase
	message string
}

// Engine defines the studio's long-running operations.
type Engine interface {
	// AssembleRelease attaches songs and artwork to a release, verifying each
	// piece exists before mutating the release.
	AssembleRelease(ctx context.Context, progress chan<- ProgressUpdate, releaseID string, opts AssembleOpts) (*AssembleResult, error)

	// BulkExport exports many releases concurrently to the requested format.
	BulkExport(ctx context.Context, progress chan<- ProgressUpdate, ids []string, opts BulkExportOpts) (*BulkExportResult, error)

	// Dump fetches every library endpoint for a full state snapshot.
	Dump(ctx context.Context, progress chan<- ProgressUpdate) (*DumpResult, error)
}

// StudioEngine implements Engine over the resource services.
type StudioEngine struct {
	songs    SongClient
	releases ReleaseClient
	images   ImageClient
	api      APIClient
	cache    SongCacher
}

// NewStudioEngine creates a StudioEngine with the provided services.
func NewStudioEngine(songs SongClient, releases ReleaseClient, images ImageClient, api APIClient) *StudioEngine {
	return &StudioEngine{
		songs:    songs,
		releases: releases,
		images:   images,
		api:      api,
	}
}

// WithSongCache enables local caching of songs fetched during engine runs.
func (e *StudioEngine) WithSongCache(cache SongCacher) *StudioEngine {
	e.cache = cache
	return e
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *StudioEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// cacheSong stores a fetched song locally when a cache is configured.
// Cache failures never fail the operation.
func (e *StudioEngine) cacheSong(song *models.Song) {
	if e.cache == nil || song == nil {
		return
	}
	_ = e.cache.CacheSong(song)
}

// AssembleRelease verifies each song, attaches them to the release, and
// sets the cover image. Songs that cannot be resolved are reported in the
// result rather than aborting the run; the release is only mutated with
// the songs that resolved.
func (e *StudioEngine) AssembleRelease(ctx context.Context, progress chan<- ProgressUpdate, releaseID string, opts AssembleOpts) (*AssembleResult, error) {
	if e.releases == nil || e.songs == nil {
		return nil, fmt.Errorf("%w: release engine not initialized", shared.ErrServiceUnavailable)
	}

	result := &AssembleResult{}

	e.sendProgress(progress, fetchReleaseUpdate(1, 1, releaseID))
	release, err := e.releases.Get(ctx, releaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release: %w", err)
	}
	result.Release = release

	total := len(opts.SongIDs)
	result.SongResults = make([]SongAttachResult, 0, total)
	attachable := make([]string, 0, total)

	for i, songID := range opts.SongIDs {
		e.sendProgress(progress, verifySongUpdate(i+1, total, songID))

		song, err := e.songs.Get(ctx, songID)
		result.SongResults = append(result.SongResults, SongAttachResult{
			SongID: songID,
			Song:   song,
			Error:  err,
		})

		if err != nil {
			result.FailedCount++
			continue
		}

		e.cacheSong(song)
		result.SuccessCount++
		attachable = append(attachable, songID)
	}

	if total > 0 && result.SuccessCount == 0 {
		return result, fmt.Errorf("no songs could be resolved - nothing to attach")
	}

	if len(attachable) > 0 {
		e.sendProgress(progress, attachSongsUpdate(1, 1, len(attachable)))
		release, err = e.releases.AddSongs(ctx, releaseID, attachable)
		if err != nil {
			return result, fmt.Errorf("failed to attach songs: %w", err)
		}
		result.Release = release
	}

	if opts.ArtworkID != "" {
		e.sendProgress(progress, attachArtworkUpdate(1, 1, opts.ArtworkID))

		if e.images != nil {
			artwork, err := e.images.Get(ctx, opts.ArtworkID)
			if err != nil {
				return result, fmt.Errorf("failed to resolve artwork: %w", err)
			}
			result.Artwork = artwork
		}

		release, err = e.releases.Update(ctx, releaseID, services.ReleaseRequest{ArtworkID: opts.ArtworkID})
		if err != nil {
			return result, fmt.Errorf("failed to set artwork: %w", err)
		}
		result.Release = release
	}

	e.sendProgress(progress, assembledUpdate(1, 1, result.Release))
	return result, nil
}

// Dump fetches all library data from the studio API.
func (e *StudioEngine) Dump(ctx context.Context, progress chan<- ProgressUpdate) (*DumpResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}

	result := &DumpResult{
		Errors: []EndpointResult{},
	}

	endpoints := []endpointOperation{
		{name: "profile", path: "/api/v1/user/profile", target: &result.Profile, phase: FetchProfile, message: "Fetching profile..."},
		{name: "songs", path: "/api/v1/songs", target: &result.Songs, phase: FetchSongs, message: "Fetching songs..."},
		{name: "images", path: "/api/v1/images", target: &result.Images, phase: FetchImages, message: "Fetching images..."},
		{name: "lyrics", path: "/api/v1/lyrics", target: &result.Lyrics, phase: FetchLyrics, message: "Fetching lyrics..."},
		{name: "equipment", path: "/api/v1/equipment", target: &result.Equipment, phase: FetchEquipment, message: "Fetching equipment..."},
		{name: "releases", path: "/api/v1/releases", target: &result.Releases, phase: FetchReleases, message: "Fetching releases..."},
		{name: "projects", path: "/api/v1/projects", target: &result.Projects, phase: FetchProjects, message: "Fetching projects..."},
	}

	totalSteps := len(endpoints)

	for i, endpoint := range endpoints {
		e.sendProgress(progress, operationUpdate(endpoint, i+1, totalSteps))

		resp, err := e.api.Get(ctx, endpoint.path)
		if err != nil || resp.StatusCode < 200 || resp.StatusCode >= 300 {
			errMsg := ""
			if err != nil {
				errMsg = err.Error()
			} else {
				errMsg = fmt.Sprintf("status %d", resp.StatusCode)
			}
			result.Errors = append(result.Errors, EndpointResult{
				Endpoint: endpoint.path,
				Error:    fmt.Errorf("%s", errMsg),
			})
		} else {
			*endpoint.target = resp.JSONData
		}
	}

	return result, nil
}
