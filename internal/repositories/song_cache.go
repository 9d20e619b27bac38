package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/shared"
)

// SongCacheRepository implements [models.Repository] for [models.CachedSong] persistence.
//
// The cache keeps a local snapshot of songs fetched from the studio so
// listings work offline and bulk exports skip unchanged records.
// Deduplication rides on the remote_id UNIQUE constraint.
type SongCacheRepository struct {
	db *sql.DB
}

// NewSongCacheRepository creates a new [SongCacheRepository] with the given database connection
func NewSongCacheRepository(db *sql.DB) *SongCacheRepository {
	return &SongCacheRepository{db: db}
}

// Create inserts a new cached song with generated ID and sequence
func (r *SongCacheRepository) Create(song *models.CachedSong) error {
	sequence, err := NextSequence(r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	song.SetID(id)

	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO songs (id, sequence, remote_id, title, style, status, project_id, duration_seconds, audio_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, song.RemoteID(), song.Title(), song.Style(), song.Status(),
		song.ProjectID(), song.Duration(), song.AudioURL(), song.CreatedAt(), song.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert cached song: %w", err)
	}

	return nil
}

// Get retrieves a cached song by ID, excluding soft-deleted rows
func (r *SongCacheRepository) Get(id string) (*models.CachedSong, error) {
	query := `
		SELECT id, sequence, remote_id, title, style, status, project_id, duration_seconds, audio_url, created_at, updated_at, deleted_at
		FROM songs
		WHERE id = ? AND deleted_at IS NULL
	`

	song, err := scanCachedSong(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("cached song not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cached song: %w", err)
	}
	return song, nil
}

// GetByRemoteID looks a cached song up by its studio-side ID
func (r *SongCacheRepository) GetByRemoteID(remoteID string) (*models.CachedSong, error) {
	query := `
		SELECT id, sequence, remote_id, title, style, status, project_id, duration_seconds, audio_url, created_at, updated_at, deleted_at
		FROM songs
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	song, err := scanCachedSong(r.db.QueryRow(query, remoteID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("cached song not found: %s", remoteID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cached song: %w", err)
	}
	return song, nil
}

// Update modifies an existing cached song
func (r *SongCacheRepository) Update(song *models.CachedSong) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	song.SetUpdatedAt(now)

	query := `
		UPDATE songs
		SET title = ?, style = ?, status = ?, project_id = ?, duration_seconds = ?, audio_url = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, song.Title(), song.Style(), song.Status(), song.ProjectID(),
		song.Duration(), song.AudioURL(), now, song.ID())
	if err != nil {
		return fmt.Errorf("failed to update cached song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("cached song not found or already deleted: %s", song.ID())
	}

	return nil
}

// Delete soft-deletes a cached song by ID
func (r *SongCacheRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE songs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete cached song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("cached song not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves cached songs matching the given criteria, excluding soft-deleted rows
func (r *SongCacheRepository) List(criteria map[string]any) ([]*models.CachedSong, error) {
	query := `
		SELECT id, sequence, remote_id, title, style, status, project_id, duration_seconds, audio_url, created_at, updated_at, deleted_at
		FROM songs
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if projectID, ok := criteria["project_id"].(string); ok && projectID != "" {
		query += " AND project_id = ?"
		args = append(args, projectID)
	}
	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.CachedSong
	for rows.Next() {
		song, err := scanCachedSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cached song: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// CacheSong upserts a remote song snapshot.
//
// An existing row is refreshed in place; a concurrent insert losing the
// UNIQUE race is treated as already cached.
func (r *SongCacheRepository) CacheSong(song *models.Song) error {
	existing, err := r.GetByRemoteID(song.ID)
	if err == nil && existing != nil {
		existing.SetFields(song)
		return r.Update(existing)
	}

	cached := models.NewCachedSong(0, song)
	if err := r.Create(cached); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache song: %w", err)
	}

	return nil
}

func scanCachedSong(row rowScanner) (*models.CachedSong, error) {
	var (
		id        string
		sequence  int
		remoteID  string
		title     string
		style     sql.NullString
		status    sql.NullString
		projectID sql.NullString
		duration  int
		audioURL  sql.NullString
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := row.Scan(&id, &sequence, &remoteID, &title, &style, &status, &projectID,
		&duration, &audioURL, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	song := models.NewCachedSong(sequence, &models.Song{
		ID:        remoteID,
		Title:     title,
		Style:     style.String,
		Status:    status.String,
		ProjectID: projectID.String,
		Duration:  duration,
		AudioURL:  audioURL.String,
	})
	song.SetID(id)
	song.SetCreatedAt(createdAt)
	song.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		song.SetDeletedAt(&deletedAt.Time)
	}

	return song, nil
}
