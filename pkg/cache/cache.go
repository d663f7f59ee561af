// Package cache provides caching for emitted option documents and data
// payloads.
//
// Boards hash their rendered option document and store it under a keyed
// entry, letting serving layers return the last emitted option without
// re-running an update cycle, and letting boards skip re-emission when the
// document is unchanged.
//
// Three backends are provided: a file cache for CLI usage, a Redis cache
// for serving deployments, and a null cache that disables caching.
package cache

import (
	"context"
	"strconv"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the cacheable artifacts.
type Keyer interface {
	// OptionKey generates a key for a rendered option document. The key is
	// content-addressed: identical payloads map to identical keys.
	OptionKey(board string, payload []byte) string

	// DataKey generates a key for one transmitted data payload, addressed
	// by its serial.
	DataKey(board string, serial int) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// OptionKey generates a content-addressed key for an option document.
func (DefaultKeyer) OptionKey(board string, payload []byte) string {
	return hashKey("option", board, payload)
}

// DataKey generates a key for a data payload by serial.
func (DefaultKeyer) DataKey(board string, serial int) string {
	return "data:" + board + ":" + strconv.Itoa(serial)
}
