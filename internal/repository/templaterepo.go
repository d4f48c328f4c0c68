package repository

import (
	"context"

	"github.com/avolkov/fittrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// TemplateRepository provides access to workout templates and their exercises.
type TemplateRepository interface {
	// Create inserts the template with all exercises in one transaction,
	// filling assigned IDs in place.
	Create(ctx context.Context, t *model.WorkoutTemplate) error

	// List returns all templates owned by the user, with exercises loaded.
	List(ctx context.Context, userID uuid.UUID) ([]model.WorkoutTemplate, error)

	// Get returns a single owned template with exercises loaded.
	Get(ctx context.Context, userID uuid.UUID, id int64) (*model.WorkoutTemplate, error)

	// Update applies a partial update; a non-nil exercise list replaces the
	// entire existing child set within the same transaction.
	Update(ctx context.Context, userID uuid.UUID, id int64, upd model.TemplateUpdate) error

	// Delete removes an owned template; exercises are removed by cascade.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}
