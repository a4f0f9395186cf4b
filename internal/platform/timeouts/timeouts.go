// Package timeouts defines shared timeout constants used across the service.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreLookup caps a single organization store read made while serving a page.
const StoreLookup = 2 * time.Second

// RedisDial caps the startup connectivity check against the cache.
const RedisDial = 2 * time.Second
