// Package auth implements bearer token handling for the Maestro API client.
//
// # Transport
//
// [Transport] is an [http.RoundTripper] that wraps every API request. It
// attaches the stored session token as an Authorization header, skips the
// public account endpoints, and reacts to auth failures:
//   - 401 responses trigger a single shared token validation through the
//     [Coordinator], then retry the request once with the refreshed token.
//   - 403 responses end the session immediately without validation.
//   - All other responses pass through untouched.
//
// # Coordinator
//
// [Coordinator] serializes token validation. When several requests fail
// with 401 at the same time, exactly one validation call runs; the rest
// wait for its result. Each waiter gives up after the validation timeout
// and receives [shared.ErrValidationTimeout]. Whatever happens, the
// coordinator returns to idle so the next 401 can start a fresh cycle.
//
// # Session Storage
//
// [FileSessionStore] persists the session token as an [oauth2.Token] JSON
// document under the user's home directory, mirroring how the web client
// keeps its token in browser storage.
//
// # Error Handling
//
// Auth failures surface as typed errors from the shared package:
//   - [shared.ErrTokenInvalid] : the backend rejected the session token
//   - [shared.ErrValidationTimeout] : validation took longer than the limit
//   - [shared.ErrForbidden] : the backend returned 403 for the account
package auth
