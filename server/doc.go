// Package server provides the gateway's HTTP server: a gin engine served over
// HTTP/1.1 and h2c, managed as a lifecycle component.
//
// # Middleware
//
// ApplyMiddleware installs, outermost first:
//
//   - Recovery: panics become an UnknownValidator error body
//   - RequestID: X-Request-Id generation and propagation into the context
//   - CORS: cross-origin headers for configured origins
//   - BodySizeLimit: RequestBodyTooLarge for bodies over max_body_size
//   - RequestLogger (inside gin): span, request metrics and access log
//
// Routes must be registered after ApplyMiddleware.
//
// # Responses
//
// RespondWithError is the single error renderer: every failure is written
// as {code, title, message} with the status of its error kind.
//
// # Endpoints
//
// RegisterDefaultEndpoints adds /health, /ready and /info (server/endpoint).
package server
