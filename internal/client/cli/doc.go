// Package cli provides the interactive DevBoard command-line client.
//
// It wires configuration, the local session cache, API services, and an
// interactive REPL. Typical flow: restore a cached session (or prompt for
// credentials), start a background connectivity watcher, and execute user
// commands.
//
// Key features:
//   - Login / Signup / Logout with a locally cached session
//   - Password reset (request and apply)
//   - A step-by-step onboarding wizard with resumable progress
//   - Profile view refreshed from the server
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
