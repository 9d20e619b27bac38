// Package repositories persists local-only state in sqlite.
//
// # Repositories
//
// [PreferenceRepository] stores scoped key/value settings (page size,
// default view, notification position). [SongCacheRepository] keeps
// snapshots of songs fetched from the studio, deduplicated by remote ID.
//
// # Conventions
//
// All repositories use soft deletes (deleted_at) and per-table sequence
// counters incremented through [NextSequence]. IDs are uuids from
// shared.GenerateID. Schema lives in embedded SQL migrations under
// internal/shared/sql.
package repositories
