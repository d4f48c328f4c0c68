package repository

import (
	"context"
	"time"

	"github.com/avolkov/fittrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// WorkoutRepository provides access to logged workouts and their nested
// exercises and sets. Nested writes are atomic.
type WorkoutRepository interface {
	// Create inserts the workout with all exercises and sets in one
	// transaction, filling assigned IDs in place.
	Create(ctx context.Context, w *model.Workout) error

	// ListSince returns the user's workouts dated at or after cutoff,
	// newest first, with children loaded.
	ListSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]model.Workout, error)

	// Get returns a single owned workout with children loaded.
	Get(ctx context.Context, userID uuid.UUID, id int64) (*model.Workout, error)

	// Update applies a partial update; a non-nil exercise list replaces the
	// entire existing child set within the same transaction.
	Update(ctx context.Context, userID uuid.UUID, id int64, upd model.WorkoutUpdate) error

	// Delete removes an owned workout; children are removed by cascade.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}
