// Package client contains client-side building blocks for the DevBoard CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the DevBoard backend: auth flows, profile and onboarding reads and
//     writes, and a liveness probe.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that attaches
//     the bearer token and a request id to every call and maps transport
//     conditions to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     wiring the SQLite session cache and applying embedded goose
//     migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrInvalidCredentials.
// Other non-2xx responses surface as *APIError carrying the server message.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
