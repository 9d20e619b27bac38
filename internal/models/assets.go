package models

// Song represents an AI-generated song from the studio backend.
type Song struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Style       string `json:"style"`
	Prompt      string `json:"prompt"`
	Status      string `json:"status"`
	ProjectID   string `json:"project_id"`
	LyricsID    string `json:"lyrics_id,omitempty"`
	ArtworkID   string `json:"artwork_id,omitempty"`
	Duration    int    `json:"duration_seconds"` // Duration in seconds
	AudioURL    string `json:"audio_url,omitempty"`
	CreatedDate string `json:"created_date,omitempty"`
}

// Image represents artwork attached to songs and releases.
type Image struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Prompt      string `json:"prompt"`
	URL         string `json:"url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ContentType string `json:"content_type,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
}

// LyricSheet represents generated lyrics for a song.
//
// Body is HTML as delivered by the backend editor; use formatter.HTMLToText
// for terminal display.
type LyricSheet struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	SongID    string `json:"song_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Body      string `json:"body"`
	Language  string `json:"language,omitempty"`
}

// Equipment represents a virtual studio gear preset.
type Equipment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"` // synth, drum machine, amp, pedal, ...
	Description string `json:"description,omitempty"`
	Settings    string `json:"settings,omitempty"` // opaque preset blob
	ProjectID   string `json:"project_id,omitempty"`
}

// Release represents a published collection of songs.
type Release struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"` // draft, published
	SongIDs     []string `json:"song_ids"`
	ArtworkID   string   `json:"artwork_id,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
}

// ReleaseExport bundles a release with its resolved songs for export.
type ReleaseExport struct {
	Release Release `json:"release"`
	Songs   []Song  `json:"songs"`
}

// Project represents a workspace grouping songs, lyrics, and equipment.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SongCount   int    `json:"song_count"`
	Archived    bool   `json:"archived"`
}

// User represents the authenticated account profile.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Plan        string `json:"plan,omitempty"`
}
