package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/shared"
)

// PreferenceRepository implements [models.Repository] for [models.Preference] persistence.
//
// Preferences are the terminal client's stand-in for the web app's
// localStorage settings: page size, default view, notification position.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new [PreferenceRepository] with the given database connection
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Create inserts a new preference with generated ID and sequence
func (r *PreferenceRepository) Create(pref *models.Preference) error {
	sequence, err := NextSequence(r.db, "preferences")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	pref.SetID(id)

	if err := pref.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO preferences (id, sequence, scope, key, value, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, pref.Scope(), pref.Key(), pref.Value(), pref.CreatedAt(), pref.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert preference: %w", err)
	}

	return nil
}

// Get retrieves a preference by ID, excluding soft-deleted rows
func (r *PreferenceRepository) Get(id string) (*models.Preference, error) {
	query := `
		SELECT id, sequence, scope, key, value, created_at, updated_at, deleted_at
		FROM preferences
		WHERE id = ? AND deleted_at IS NULL
	`
	return r.scanRow(r.db.QueryRow(query, id), id)
}

// GetByKey retrieves a preference by scope and key, the common lookup path
func (r *PreferenceRepository) GetByKey(scope, key string) (*models.Preference, error) {
	query := `
		SELECT id, sequence, scope, key, value, created_at, updated_at, deleted_at
		FROM preferences
		WHERE scope = ? AND key = ? AND deleted_at IS NULL
	`
	return r.scanRow(r.db.QueryRow(query, scope, key), scope+"/"+key)
}

// Set writes a preference value, creating or updating as needed
func (r *PreferenceRepository) Set(scope, key, value string) (*models.Preference, error) {
	existing, err := r.GetByKey(scope, key)
	if err == nil && existing != nil {
		existing.SetValue(value)
		if uerr := r.Update(existing); uerr != nil {
			return nil, uerr
		}
		return existing, nil
	}

	pref := models.NewPreference(0, scope, key, value)
	if err := r.Create(pref); err != nil {
		return nil, err
	}
	return pref, nil
}

// Update modifies an existing preference
func (r *PreferenceRepository) Update(pref *models.Preference) error {
	if err := pref.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	pref.SetUpdatedAt(now)

	query := `
		UPDATE preferences
		SET value = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, pref.Value(), now, pref.ID())
	if err != nil {
		return fmt.Errorf("failed to update preference: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("preference not found or already deleted: %s", pref.ID())
	}

	return nil
}

// Delete soft-deletes a preference by ID
func (r *PreferenceRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE preferences
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("preference not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves preferences matching the given criteria, excluding soft-deleted rows
func (r *PreferenceRepository) List(criteria map[string]any) ([]*models.Preference, error) {
	query := `
		SELECT id, sequence, scope, key, value, created_at, updated_at, deleted_at
		FROM preferences
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if scope, ok := criteria["scope"].(string); ok && scope != "" {
		query += " AND scope = ?"
		args = append(args, scope)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	var prefs []*models.Preference
	for rows.Next() {
		pref, err := scanPreference(rows)
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, pref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return prefs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PreferenceRepository) scanRow(row *sql.Row, label string) (*models.Preference, error) {
	pref, err := scanPreference(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("preference not found: %s", label)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query preference: %w", err)
	}
	return pref, nil
}

func scanPreference(row rowScanner) (*models.Preference, error) {
	var (
		id        string
		sequence  int
		scope     string
		key       string
		value     string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := row.Scan(&id, &sequence, &scope, &key, &value, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	pref := models.NewPreference(sequence, scope, key, value)
	pref.SetID(id)
	pref.SetCreatedAt(createdAt)
	pref.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		pref.SetDeletedAt(&deletedAt.Time)
	}

	return pref, nil
}
