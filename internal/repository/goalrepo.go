package repository

import (
	"context"

	"github.com/avolkov/fittrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// GoalRepository provides access to fitness goals.
type GoalRepository interface {
	// Create inserts a goal, filling the assigned ID and creation time in place.
	Create(ctx context.Context, g *model.Goal) error
	// List returns the user's goals, optionally filtered by completion status.
	List(ctx context.Context, userID uuid.UUID, completed *bool) ([]model.Goal, error)
	// Get returns a single owned goal.
	Get(ctx context.Context, userID uuid.UUID, id int64) (*model.Goal, error)
	// Update applies a partial update to an owned goal.
	Update(ctx context.Context, userID uuid.UUID, id int64, upd model.GoalUpdate) error
	// Delete removes an owned goal.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}
