package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/shared"
)

// ProjectRequest is the payload for creating or updating a project.
type ProjectRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProjectService manages workspaces grouping songs, lyrics, and gear.
type ProjectService struct {
	client *Client
}

// NewProjectService creates a project service over the shared client.
func NewProjectService(client *Client) *ProjectService {
	return &ProjectService{client: client}
}

// List retrieves a page of projects.
func (s *ProjectService) List(ctx context.Context, limit, offset int) (*Paginated[models.Project], error) {
	var page Paginated[models.Project]
	endpoint := "/api/v1/projects" + listQuery(limit, offset)
	if err := s.client.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return &page, nil
}

// Get retrieves a project by ID.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	endpoint := fmt.Sprintf("/api/v1/projects/%s", id)
	if err := s.client.doRequest(ctx, http.MethodGet, endpoint, nil, &project); err != nil {
		return nil, fmt.Errorf("failed to fetch project %s: %w", id, err)
	}
	return &project, nil
}

// Create adds a new project.
func (s *ProjectService) Create(ctx context.Context, req ProjectRequest) (*models.Project, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: project name is required", shared.ErrInvalidInput)
	}

	var project models.Project
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/projects", req, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

// Update modifies a project.
func (s *ProjectService) Update(ctx context.Context, id string, req ProjectRequest) (*models.Project, error) {
	var project models.Project
	endpoint := fmt.Sprintf("/api/v1/projects/%s", id)
	if err := s.client.doRequest(ctx, http.MethodPut, endpoint, req, &project); err != nil {
		return nil, fmt.Errorf("failed to update project %s: %w", id, err)
	}
	return &project, nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/v1/projects/%s", id)
	if err := s.client.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return nil
}

// Archive marks a project inactive without deleting its contents.
func (s *ProjectService) Archive(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	endpoint := fmt.Sprintf("/api/v1/projects/%s/archive", id)
	if err := s.client.doRequest(ctx, http.MethodPost, endpoint, nil, &project); err != nil {
		return nil, fmt.Errorf("failed to archive project %s: %w", id, err)
	}
	return &project, nil
}
