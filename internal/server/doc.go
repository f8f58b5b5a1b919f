// Package server runs the demo HTTP server of the subdomains command.
//
// A [State] bundles everything derived from one settings file: the routing
// table, the per-configuration chi routers and the reverser. The [Reloader]
// holds the current State behind an atomic pointer and swaps in a new one
// when the settings file changes, so requests never observe a half-built
// configuration. [Run] serves a handler until its context is cancelled and
// then shuts down gracefully.
package server
