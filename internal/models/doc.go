// Package models defines domain entities and persistence interfaces for the Maestro studio client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs mirroring studio backend resources
//   - [Song] : An AI-generated song with audio and generation metadata
//   - [Image] : Artwork (covers, promo shots) attached to songs and releases
//   - [LyricSheet] : Generated lyrics, delivered as HTML by the backend
//   - [Equipment] : Virtual studio gear presets referenced by projects
//   - [Release] : A published collection of songs with artwork
//   - [Project] : A workspace grouping songs, lyrics, and equipment
//   - [User] : The authenticated account profile
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Preference] : Locally cached UI preferences (the web client keeps these in localStorage)
//   - [CachedSong] : Songs cached locally for offline listing
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
