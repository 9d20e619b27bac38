package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/shared"
)

// ReleaseRequest is the payload for creating or updating a release.
type ReleaseRequest struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	SongIDs     []string `json:"song_ids,omitempty"`
	ArtworkID   string   `json:"artwork_id,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
}

// ReleaseService manages song collections published as releases.
type ReleaseService struct {
	client *Client
}

// NewReleaseService creates a release service over the shared client.
func NewReleaseService(client *Client) *ReleaseService {
	return &ReleaseService{client: client}
}

// List retrieves a page of releases.
func (s *ReleaseService) List(ctx context.Context, limit, offset int) (*Paginated[models.Release], error) {
	var page Paginated[models.Release]
	endpoint := "/api/v1/releases" + listQuery(limit, offset)
	if err := s.client.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	return &page, nil
}

// Get retrieves a release by ID.
func (s *ReleaseService) Get(ctx context.Context, id string) (*models.Release, error) {
	var release models.Release
	endpoint := fmt.Sprintf("/api/v1/releases/%s", id)
	if err := s.client.doRequest(ctx, http.MethodGet, endpoint, nil, &release); err != nil {
		return nil, fmt.Errorf("failed to fetch release %s: %w", id, err)
	}
	return &release, nil
}

// Create starts a new draft release.
func (s *ReleaseService) Create(ctx context.Context, req ReleaseRequest) (*models.Release, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: release title is required", shared.ErrInvalidInput)
	}

	var release models.Release
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/releases", req, &release); err != nil {
		return nil, fmt.Errorf("failed to create release: %w", err)
	}
	return &release, nil
}

// Update modifies a draft release.
func (s *ReleaseService) Update(ctx context.Context, id string, req ReleaseRequest) (*models.Release, error) {
	var release models.Release
	endpoint := fmt.Sprintf("/api/v1/releases/%s", id)
	if err := s.client.doRequest(ctx, http.MethodPut, endpoint, req, &release); err != nil {
		return nil, fmt.Errorf("failed to update release %s: %w", id, err)
	}
	return &release, nil
}

// Delete removes a release.
func (s *ReleaseService) Delete(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/v1/releases/%s", id)
	if err := s.client.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to delete release %s: %w", id, err)
	}
	return nil
}

// AddSongs appends songs to a draft release.
func (s *ReleaseService) AddSongs(ctx context.Context, id string, songIDs []string) (*models.Release, error) {
	if len(songIDs) == 0 {
		return nil, fmt.Errorf("%w: no songs to add", shared.ErrInvalidInput)
	}

	body := map[string][]string{"song_ids": songIDs}

	var release models.Release
	endpoint := fmt.Sprintf("/api/v1/releases/%s/songs", id)
	if err := s.client.doRequest(ctx, http.MethodPost, endpoint, body, &release); err != nil {
		return nil, fmt.Errorf("failed to add songs to release %s: %w", id, err)
	}
	return &release, nil
}

// Publish finalizes a draft release. Publishing is restricted to the
// release owner; the backend answers 403 for anyone else.
func (s *ReleaseService) Publish(ctx context.Context, id string) (*models.Release, error) {
	var release models.Release
	endpoint := fmt.Sprintf("/api/v1/releases/%s/publish", id)
	if err := s.client.doRequest(ctx, http.MethodPost, endpoint, nil, &release); err != nil {
		return nil, fmt.Errorf("failed to publish release %s: %w", id, err)
	}
	return &release, nil
}
