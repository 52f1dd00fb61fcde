// Package store persists interview session records. Every Load and Save
// round-trips durable storage; the store is the single source of truth between
// requests and no backend keeps session state in memory.
package store

import (
	"context"
	"errors"

	"github.com/yungbote/mockmentor-backend/internal/types"
)

// Sentinel errors for session store operations. Backends wrap these with
// detail so callers can match with errors.Is.
var (
	ErrNotFound = errors.New("session not found")
	ErrCorrupt  = errors.New("session record corrupt")
	ErrStorage  = errors.New("session storage failed")
)

// Store is the durable session record keyed by session id.
//
// Save must be atomic from the perspective of a concurrent Load: a reader
// never observes a partially written record. Backends achieve this with a
// temp-file rename, a single-row UPDATE, or a single SET.
type Store interface {
	// Create persists a brand-new record under its id. Fails with ErrStorage
	// if the destination cannot be written or the id is already taken.
	Create(ctx context.Context, record *types.SessionRecord) error
	// Load retrieves the record at id. Fails with ErrNotFound when absent and
	// ErrCorrupt when the persisted data does not parse into a valid record.
	Load(ctx context.Context, id string) (*types.SessionRecord, error)
	// Save overwrites the record at id. Fails with ErrStorage on write failure.
	Save(ctx context.Context, record *types.SessionRecord) error
}
