package services

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/shared"
)

// SongRequest is the payload for creating or updating a song.
type SongRequest struct {
	Title     string `json:"title,omitempty"`
	Style     string `json:"style,omitempty"`
	Prompt    string `json:"prompt,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	LyricsID  string `json:"lyrics_id,omitempty"`
	ArtworkID string `json:"artwork_id,omitempty"`
}

// SongService manages songs in the studio library.
type SongService struct {
	client *Client
}

// NewSongService creates a song service over the shared client.
func NewSongService(client *Client) *SongService {
	return &SongService{client: client}
}

// List retrieves a page of songs.
func (s *SongService) List(ctx context.Context, limit, offset int) (*Paginated[models.Song], error) {
	var page Paginated[models.Song]
	endpoint := "/api/v1/songs" + listQuery(limit, offset)
	if err := s.client.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return &page, nil
}

// Get retrieves a song by ID.
func (s *SongService) Get(ctx context.Context, id string) (*models.Song, error) {
	var song models.Song
	endpoint := fmt.Sprintf("/api/v1/songs/%s", id)
	if err := s.client.doRequest(ctx, http.MethodGet, endpoint, nil, &song); err != nil {
		return nil, fmt.Errorf("failed to fetch song %s: %w", id, err)
	}
	return &song, nil
}

// Create submits a new song generation request.
func (s *SongService) Create(ctx context.Context, req SongRequest) (*models.Song, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: song title is required", shared.ErrInvalidInput)
	}

	var song models.Song
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/songs", req, &song); err != nil {
		return nil, fmt.Errorf("failed to create song: %w", err)
	}
	return &song, nil
}

// Update modifies song metadata.
func (s *SongService) Update(ctx context.Context, id string, req SongRequest) (*models.Song, error) {
	var song models.Song
	endpoint := fmt.Sprintf("/api/v1/songs/%s", id)
	if err := s.client.doRequest(ctx, http.MethodPut, endpoint, req, &song); err != nil {
		return nil, fmt.Errorf("failed to update song %s: %w", id, err)
	}
	return &song, nil
}

// Delete removes a song from the library.
func (s *SongService) Delete(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/v1/songs/%s", id)
	if err := s.client.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to delete song %s: %w", id, err)
	}
	return nil
}

// UploadAudio attaches an audio file to a song as a multipart upload.
func (s *SongService) UploadAudio(ctx context.Context, id, filename string, file io.Reader) (*models.Song, error) {
	var song models.Song
	endpoint := fmt.Sprintf("/api/v1/songs/%s/audio", id)
	if err := s.client.doUpload(ctx, endpoint, "audio", filename, file, nil, &song); err != nil {
		return nil, fmt.Errorf("failed to upload audio for song %s: %w", id, err)
	}
	return &song, nil
}

// Download fetches the rendered audio for a song.
func (s *SongService) Download(ctx context.Context, song *models.Song) ([]byte, error) {
	if song.AudioURL == "" {
		return nil, fmt.Errorf("%w: song %s has no audio yet", shared.ErrNotFound, song.ID)
	}
	return s.client.Download(ctx, song.AudioURL)
}
