package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/shared"
)

// EquipmentRequest is the payload for creating or updating a gear preset.
type EquipmentRequest struct {
	Name        string `json:"name,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Description string `json:"description,omitempty"`
	Settings    string `json:"settings,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
}

// EquipmentService manages virtual studio gear presets.
type EquipmentService struct {
	client *Client
}

// NewEquipmentService creates an equipment service over the shared client.
func NewEquipmentService(client *Client) *EquipmentService {
	return &EquipmentService{client: client}
}

// List retrieves a page of equipment presets.
func (s *EquipmentService) List(ctx context.Context, limit, offset int) (*Paginated[models.Equipment], error) {
	var page Paginated[models.Equipment]
	endpoint := "/api/v1/equipment" + listQuery(limit, offset)
	if err := s.client.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return &page, nil
}

// Get retrieves a preset by ID.
func (s *EquipmentService) Get(ctx context.Context, id string) (*models.Equipment, error) {
	var gear models.Equipment
	endpoint := fmt.Sprintf("/api/v1/equipment/%s", id)
	if err := s.client.doRequest(ctx, http.MethodGet, endpoint, nil, &gear); err != nil {
		return nil, fmt.Errorf("failed to fetch equipment %s: %w", id, err)
	}
	return &gear, nil
}

// Create adds a new preset.
func (s *EquipmentService) Create(ctx context.Context, req EquipmentRequest) (*models.Equipment, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: equipment name is required", shared.ErrInvalidInput)
	}

	var gear models.Equipment
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/equipment", req, &gear); err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}
	return &gear, nil
}

// Update modifies a preset.
func (s *EquipmentService) Update(ctx context.Context, id string, req EquipmentRequest) (*models.Equipment, error) {
	var gear models.Equipment
	endpoint := fmt.Sprintf("/api/v1/equipment/%s", id)
	if err := s.client.doRequest(ctx, http.MethodPut, endpoint, req, &gear); err != nil {
		return nil, fmt.Errorf("failed to update equipment %s: %w", id, err)
	}
	return &gear, nil
}

// Delete removes a preset.
func (s *EquipmentService) Delete(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/v1/equipment/%s", id)
	if err := s.client.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to delete equipment %s: %w", id, err)
	}
	return nil
}
