// Package timeouts defines shared timeout constants for storefront processes.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// TelemetryShutdown caps the span flush performed when a process exits.
const TelemetryShutdown = 5 * time.Second
