// Package server provides HTTP routing, middleware, and the browser login callback handler.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Login Callback Handler
//
// [TokenHandler] implements the studio's browser login flow. The CLI starts a
// temporary HTTP server on localhost, opens the studio web app's sign-in page
// with a redirect back to the local /callback route, and the web app delivers
// the bearer token as a query parameter.
//
// The handler validates the state parameter (CSRF protection) and sends the
// wrapped token through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Current Usage
//
// When the user runs `maestro auth login --browser`, a temporary HTTP server
// starts on localhost, handles the callback, and shuts down after receiving
// the token. The token is then persisted through the session store so the
// API transport can attach it to subsequent requests.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
