// Package services implements the HTTP client for the Maestro studio API.
//
// # Client
//
// [Client] owns the base URL and the [http.Client] carrying the auth
// transport. All resource services share one client; its doRequest helper
// handles JSON encoding, decoding, and error classification.
//
// # Account Operations
//
// [AccountService] covers the public account surface: login, account
// creation, and token validation. These endpoints are allow-listed by the
// auth transport, so they run without a bearer header and a 401 from them
// never triggers recovery. Login stores the returned token in the session
// store for every later request.
//
// # Resource Services
//
// One service per backend collection: [SongService], [ImageService],
// [LyricsService], [EquipmentService], [ReleaseService], [ProjectService].
// Listing endpoints take limit/offset and return a [Paginated] envelope.
// Binary payloads (song audio, artwork) go up as multipart form uploads
// with replayable bodies so the auth transport can retry them.
//
// # Error Handling
//
// Non-2xx responses are mapped to typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : 401
//   - [shared.ErrForbidden] : 403
//   - [shared.ErrNotFound] : 404
//   - [shared.ErrServiceUnavailable] : 5xx
//   - [shared.ErrAPIRequest] : any other failure
package services
