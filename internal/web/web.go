// Package web implements an HTMX-based web application mirroring the TUI functionality.
//
// # HTMX Web Application Implementation Plan
//
// # Architecture
//
// The web app replicates the TUI's export workflow using server-side rendering
// with HTMX for dynamic updates. Each view corresponds to a template and handler:
//
//  1. Release List: Server-rendered table with hx-get for song preview
//  2. Song Preview: HTMX partial swap showing songs + export button
//  3. Export Confirm: Modal confirmation with hx-post trigger
//  4. Progress Monitor: SSE (Server-Sent Events) streaming progress updates
//  5. Results Display: Final status with written files and failures breakdown
//
// Core Components
//
//   - HTTP Server: net/http server with html/template rendering
//   - Service Integration: Uses the same resource services and tasks.StudioEngine as the TUI
//   - Session Management: Cookie-based sessions carrying the studio bearer token
//   - SSE Handler: Streams real-time progress during exports
//
// Routes
//
//	GET  /                      → Release list view (requires auth)
//	GET  /auth/login            → Redirect to the studio web sign-in
//	GET  /auth/callback         → Login completion (token delivery)
//	GET  /releases/{id}/songs   → HTMX partial: song list
//	POST /export                → Start export, return SSE endpoint
//	GET  /export/{id}/stream    → SSE progress stream
//	GET  /export/{id}/result    → Final result view
//
// Templates
//
//   - base.html: Layout with navigation, auth status
//   - releases.html: Table with hx-get on rows
//   - songs.html: Partial template for song preview
//   - progress.html: SSE consumer with progress bar
//   - results.html: Success/failure breakdown
//
// # State Management
//
// Unlike the TUI's in-memory state, the web app persists state in:
//   - Session cookies: Bearer token, user ID
//   - Preference records: Export format and output defaults
//   - In-memory channels: SSE connections for active exports
//
// # Progress Streaming
//
// Export progress uses Server-Sent Events:
//  1. POST /export records the job, returns a job ID
//  2. Client opens SSE connection to /export/{id}/stream
//  3. Handler launches goroutine running StudioEngine.BulkExport
//  4. Progress channel updates stream as SSE events
//  5. On completion, send "done" event with redirect URL
//
// Authentication Flow
//
//  1. User visits /, redirected to /auth/login if not authenticated
//  2. The studio web app delivers the bearer token to /auth/callback
//  3. Session middleware validates tokens on protected routes
//  4. Expired tokens trigger the coordinator's re-validation before logout
//
// Dependencies
//
//   - html/template: Server-side rendering
//   - net/http: HTTP server and SSE
//   - gorilla/sessions or similar: Cookie management
//
// Implementation Tasks
//
//  1. HTTP server setup with route registration
//  2. Template structure with HTMX integration
//  3. Session middleware for auth state
//  4. Release list handler with service integration
//  5. Song preview handler (HTMX partial)
//  6. Export endpoint recording the job
//  7. SSE handler streaming progress updates
//  8. Result handler displaying the export outcome
//  9. Login handlers wrapping the existing token callback flow
//  10. Error handling and validation
//
// # Testing Strategy
//
// Use httptest:
//   - Mock the release and song services for library data
//   - Mock tasks.Engine for exports
//   - Validate HTMX headers and response structure
//   - Test SSE stream formatting
package web
