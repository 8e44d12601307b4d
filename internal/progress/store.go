package progress

import "context"

// Store persists progress records. Upserts must be atomic per
// (user, module) composite key; concurrent submissions resolve as
// last-write-wins with no partially applied record ever visible.
type Store interface {
	// Find returns all records of one user, in no particular order.
	Find(ctx context.Context, userID string) ([]Record, error)
	// FindOne returns (Record, true) when a record exists.
	FindOne(ctx context.Context, userID string, moduleID int64) (Record, bool, error)
	// Upsert creates or overwrites the record for (userID, moduleID).
	Upsert(ctx context.Context, r Record) error
	// ResetAll reverts every record of the user to the initial state
	// (in_progress, not validated, no score). Idempotent; records are
	// kept, never deleted.
	ResetAll(ctx context.Context, userID string) error
	// CreateInitial inserts initial records for the given modules,
	// skipping any that already exist.
	CreateInitial(ctx context.Context, userID string, moduleIDs []int64) error
}
