// Package server provides HTTP routing, middleware, and the web surface of the
// playlist generation service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with a
// per-pattern method table, so one pattern can serve different handlers for
// GET and POST.
//
// # Web Application
//
// [App] registers the job-facing routes:
//
//	GET  /                    → Submission form (requires credentials)
//	POST /                    → Enqueue generation job, redirect to status page
//	GET  /status/{id}         → Polling status page
//	GET  /status/{id}/check   → JSON lifecycle snapshot, never 404
//	GET  /config              → Credential form
//	POST /config              → Save credential bundle into the session
//	POST /reset_config        → Clear the session, returns {"success": true}
//
// Credentials live in signed session cookies ([SessionStore], backed by
// gorilla/sessions) and are captured into each job at submission time, so a
// running job is unaffected by later session changes.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow for
// the CLI auth command. The handler validates the state parameter (CSRF
// protection), exchanges the authorization code for tokens, and sends the
// result through a channel. It only processes one callback to prevent replay
// attacks.
package server
