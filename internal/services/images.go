package services

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/shared"
)

// ImageService manages artwork in the studio library.
type ImageService struct {
	client *Client
}

// NewImageService creates an image service over the shared client.
func NewImageService(client *Client) *ImageService {
	return &ImageService{client: client}
}

// List retrieves a page of images.
func (s *ImageService) List(ctx context.Context, limit, offset int) (*Paginated[models.Image], error) {
	var page Paginated[models.Image]
	endpoint := "/api/v1/images" + listQuery(limit, offset)
	if err := s.client.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return &page, nil
}

// Get retrieves an image by ID.
func (s *ImageService) Get(ctx context.Context, id string) (*models.Image, error) {
	var image models.Image
	endpoint := fmt.Sprintf("/api/v1/images/%s", id)
	if err := s.client.doRequest(ctx, http.MethodGet, endpoint, nil, &image); err != nil {
		return nil, fmt.Errorf("failed to fetch image %s: %w", id, err)
	}
	return &image, nil
}

// Generate requests AI-generated artwork from a prompt.
func (s *ImageService) Generate(ctx context.Context, title, prompt, projectID string) (*models.Image, error) {
	if prompt == "" {
		return nil, fmt.Errorf("%w: image prompt is required", shared.ErrInvalidInput)
	}

	body := map[string]string{
		"title":      title,
		"prompt":     prompt,
		"project_id": projectID,
	}

	var image models.Image
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/images", body, &image); err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}
	return &image, nil
}

// Upload stores a user-supplied image as a multipart upload.
func (s *ImageService) Upload(ctx context.Context, title, filename string, file io.Reader) (*models.Image, error) {
	fields := map[string]string{"title": title}

	var image models.Image
	if err := s.client.doUpload(ctx, "/api/v1/images/upload", "image", filename, file, fields, &image); err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	return &image, nil
}

// Delete removes an image.
func (s *ImageService) Delete(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/v1/images/%s", id)
	if err := s.client.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", id, err)
	}
	return nil
}

// Download fetches the image bytes from the studio CDN.
func (s *ImageService) Download(ctx context.Context, image *models.Image) ([]byte, error) {
	if image.URL == "" {
		return nil, fmt.Errorf("%w: image %s has no file yet", shared.ErrNotFound, image.ID)
	}
	return s.client.Download(ctx, image.URL)
}
