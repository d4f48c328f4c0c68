package repository

import (
	"context"
	"time"

	"github.com/avolkov/fittrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// NutritionRepository provides access to daily nutrition logs.
type NutritionRepository interface {
	// Create inserts a log, filling the assigned ID in place.
	Create(ctx context.Context, l *model.NutritionLog) error
	// ListSince returns the user's logs dated at or after cutoff, newest first.
	ListSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]model.NutritionLog, error)
	// Get returns a single owned log.
	Get(ctx context.Context, userID uuid.UUID, id int64) (*model.NutritionLog, error)
	// Update applies a partial update to an owned log.
	Update(ctx context.Context, userID uuid.UUID, id int64, upd model.NutritionUpdate) error
	// Delete removes an owned log.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}
