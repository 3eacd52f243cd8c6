// Package constants centralizes the library's default timeouts and limits.
package constants

import "time"

// Version is the library's own release version, reported in
// DefaultUserAgent and re-exported as the root package's Version.
const Version = "1.0.0"

// Connection timeouts and limits
const (
	// DefaultConnectTimeout bounds a single connect attempt.
	DefaultConnectTimeout = 30 * time.Second
	// DefaultReadTimeout bounds each individual socket read.
	DefaultReadTimeout = 30 * time.Second
	// DefaultMaxHeaders caps the number of response headers accepted.
	DefaultMaxHeaders = 100
	// DefaultMaxRedirections caps redirect hops before TooManyRedirections.
	DefaultMaxRedirections = 5
	// MaxLineLength bounds a single status/header line in the response head.
	MaxLineLength = 16 * 1024
	// RaceDelay is the happy-eyeballs staggered dispatch interval.
	RaceDelay = 200 * time.Millisecond
	// DefaultUserAgent is sent when the caller hasn't set a User-Agent.
	DefaultUserAgent = "attohttpc-go/" + Version
)
