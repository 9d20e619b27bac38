package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/shared"
)

// LyricsRequest is the payload for creating or updating a lyric sheet.
type LyricsRequest struct {
	Title     string `json:"title,omitempty"`
	Body      string `json:"body,omitempty"`
	Prompt    string `json:"prompt,omitempty"`
	SongID    string `json:"song_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Language  string `json:"language,omitempty"`
}

// LyricsService manages lyric sheets.
type LyricsService struct {
	client *Client
}

// NewLyricsService creates a lyrics service over the shared client.
func NewLyricsService(client *Client) *LyricsService {
	return &LyricsService{client: client}
}

// List retrieves a page of lyric sheets.
func (s *LyricsService) List(ctx context.Context, limit, offset int) (*Paginated[models.LyricSheet], error) {
	var page Paginated[models.LyricSheet]
	endpoint := "/api/v1/lyrics" + listQuery(limit, offset)
	if err := s.client.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list lyrics: %w", err)
	}
	return &page, nil
}

// Get retrieves a lyric sheet by ID.
func (s *LyricsService) Get(ctx context.Context, id string) (*models.LyricSheet, error) {
	var sheet models.LyricSheet
	endpoint := fmt.Sprintf("/api/v1/lyrics/%s", id)
	if err := s.client.doRequest(ctx, http.MethodGet, endpoint, nil, &sheet); err != nil {
		return nil, fmt.Errorf("failed to fetch lyrics %s: %w", id, err)
	}
	return &sheet, nil
}

// Create writes a new lyric sheet. A prompt without a body asks the
// backend to generate the lyrics.
func (s *LyricsService) Create(ctx context.Context, req LyricsRequest) (*models.LyricSheet, error) {
	if req.Body == "" && req.Prompt == "" {
		return nil, fmt.Errorf("%w: lyrics need a body or a prompt", shared.ErrInvalidInput)
	}

	var sheet models.LyricSheet
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/lyrics", req, &sheet); err != nil {
		return nil, fmt.Errorf("failed to create lyrics: %w", err)
	}
	return &sheet, nil
}

// Update modifies a lyric sheet.
func (s *LyricsService) Update(ctx context.Context, id string, req LyricsRequest) (*models.LyricSheet, error) {
	var sheet models.LyricSheet
	endpoint := fmt.Sprintf("/api/v1/lyrics/%s", id)
	if err := s.client.doRequest(ctx, http.MethodPut, endpoint, req, &sheet); err != nil {
		return nil, fmt.Errorf("failed to update lyrics %s: %w", id, err)
	}
	return &sheet, nil
}

// Delete removes a lyric sheet.
func (s *LyricsService) Delete(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/v1/lyrics/%s", id)
	if err := s.client.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to delete lyrics %s: %w", id, err)
	}
	return nil
}
