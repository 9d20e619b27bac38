package models

import (
	"fmt"
	"strings"
	"time"
)

// Preference is a locally persisted key-value setting scoped to a feature
// area (for example "ui" or "export"). Values are stored as strings and
// interpreted by the reader.
type Preference struct {
	id        string
	sequence  int
	scope     string
	key       string
	value     string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPreference creates a preference with timestamps set to now.
func NewPreference(sequence int, scope, key, value string) *Preference {
	now := time.Now()
	return &Preference{
		sequence:  sequence,
		scope:     scope,
		key:       key,
		value:     value,
		createdAt: now,
		updatedAt: now,
	}
}

func (p *Preference) ID() string            { return p.id }
func (p *Preference) Sequence() int         { return p.sequence }
func (p *Preference) Scope() string         { return p.scope }
func (p *Preference) Key() string           { return p.key }
func (p *Preference) Value() string         { return p.value }
func (p *Preference) CreatedAt() time.Time  { return p.createdAt }
func (p *Preference) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Preference) DeletedAt() *time.Time { return p.deletedAt }

func (p *Preference) SetID(id string)           { p.id = id }
func (p *Preference) SetValue(value string)     { p.value = value }
func (p *Preference) SetUpdatedAt(t time.Time)  { p.updatedAt = t }
func (p *Preference) SetDeletedAt(t *time.Time) { p.deletedAt = t }
func (p *Preference) SetCreatedAt(t time.Time)  { p.createdAt = t }

// Validate checks that the preference has a scope and a key.
func (p *Preference) Validate() error {
	if strings.TrimSpace(p.scope) == "" {
		return fmt.Errorf("preference scope is required")
	}
	if strings.TrimSpace(p.key) == "" {
		return fmt.Errorf("preference key is required")
	}
	return nil
}

// CachedSong is a locally persisted snapshot of a remote [Song], kept so
// song metadata survives offline sessions and bulk exports do not re-fetch
// unchanged records.
type CachedSong struct {
	id        string
	sequence  int
	remoteID  string
	title     string
	style     string
	status    string
	projectID string
	duration  int
	audioURL  string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewCachedSong creates a cache row from a remote song snapshot.
func NewCachedSong(sequence int, song *Song) *CachedSong {
	now := time.Now()
	return &CachedSong{
		sequence:  sequence,
		remoteID:  song.ID,
		title:     song.Title,
		style:     song.Style,
		status:    song.Status,
		projectID: song.ProjectID,
		duration:  song.Duration,
		audioURL:  song.AudioURL,
		createdAt: now,
		updatedAt: now,
	}
}

func (c *CachedSong) ID() string            { return c.id }
func (c *CachedSong) Sequence() int         { return c.sequence }
func (c *CachedSong) RemoteID() string      { return c.remoteID }
func (c *CachedSong) Title() string         { return c.title }
func (c *CachedSong) Style() string         { return c.style }
func (c *CachedSong) Status() string        { return c.status }
func (c *CachedSong) ProjectID() string     { return c.projectID }
func (c *CachedSong) Duration() int         { return c.duration }
func (c *CachedSong) AudioURL() string      { return c.audioURL }
func (c *CachedSong) CreatedAt() time.Time  { return c.createdAt }
func (c *CachedSong) UpdatedAt() time.Time  { return c.updatedAt }
func (c *CachedSong) DeletedAt() *time.Time { return c.deletedAt }

func (c *CachedSong) SetID(id string)           { c.id = id }
func (c *CachedSong) SetUpdatedAt(t time.Time)  { c.updatedAt = t }
func (c *CachedSong) SetDeletedAt(t *time.Time) { c.deletedAt = t }
func (c *CachedSong) SetCreatedAt(t time.Time)  { c.createdAt = t }

// SetFields refreshes the mutable metadata columns from a remote snapshot.
func (c *CachedSong) SetFields(song *Song) {
	c.title = song.Title
	c.style = song.Style
	c.status = song.Status
	c.projectID = song.ProjectID
	c.duration = song.Duration
	c.audioURL = song.AudioURL
}

// Validate checks that the cached song references a remote record.
func (c *CachedSong) Validate() error {
	if strings.TrimSpace(c.remoteID) == "" {
		return fmt.Errorf("cached song remote id is required")
	}
	if strings.TrimSpace(c.title) == "" {
		return fmt.Errorf("cached song title is required")
	}
	return nil
}

// Song converts the cache row back to the remote DTO shape.
func (c *CachedSong) Song() *Song {
	return &Song{
		ID:        c.remoteID,
		Title:     c.title,
		Style:     c.style,
		Status:    c.status,
		ProjectID: c.projectID,
		Duration:  c.duration,
		AudioURL:  c.audioURL,
	}
}
