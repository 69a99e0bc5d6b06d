package ports

import (
	"context"

	"github.com/samirrijal/textmaps/internal/core/domain"
)

// LocationRepository persists per-user map state. All state lives in the
// shared store; implementations must re-read on every call rather than
// caching in-process.
type LocationRepository interface {
	// Get returns the stored state, or (nil, nil) when the user has never
	// sent a location.
	Get(ctx context.Context, userID string) (*domain.LocationState, error)
	// Put unconditionally overwrites. Last writer wins; a single user's
	// messages arrive in order, so no optimistic concurrency is needed.
	Put(ctx context.Context, userID string, state domain.LocationState) error
}

// StepQueueRepository persists the pending direction steps for a user as a
// durable FIFO list.
type StepQueueRepository interface {
	// Replace atomically discards any prior queue and stores the new
	// sequence. Must not interleave with a concurrent TakePage for the
	// same user.
	Replace(ctx context.Context, userID string, steps []domain.DirectionStep) error
	// TakePage removes and returns up to pageSize items from the head in
	// order, plus the count still remaining. An absent or empty queue
	// yields an empty page and remaining 0; that is not an error. The
	// read-and-trim must be one atomic storage operation so a duplicate
	// trigger can never double-send or skip a page.
	TakePage(ctx context.Context, userID string, pageSize int) ([]domain.DirectionStep, int, error)
	// Len reports how many steps are pending.
	Len(ctx context.Context, userID string) (int, error)
}
