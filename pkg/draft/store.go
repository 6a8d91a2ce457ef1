// Package draft persists in-progress goal configurations for
// unauthenticated users so the wizard can re-hydrate after sign-up.
package draft

import (
	"context"
	"time"
)

// DefaultTTL bounds how long a parked draft survives. A draft only
// needs to outlive the sign-up flow; stale drafts expire on their own.
const DefaultTTL = 7 * 24 * time.Hour

// Store is a durable key-value draft store. Keys are device-scoped
// (the user has no account yet), values are the serialized
// configuration.
type Store interface {
	// SetItem stores a serialized draft under the key.
	SetItem(ctx context.Context, key string, value []byte) error

	// GetItem retrieves a serialized draft. Returns (nil, nil) when no
	// draft exists for the key.
	GetItem(ctx context.Context, key string) ([]byte, error)

	// RemoveItem deletes a draft once it has been consumed.
	RemoveItem(ctx context.Context, key string) error
}

// Key builds the draft key for a device.
func Key(deviceID string) string {
	return "goal_draft:" + deviceID
}
