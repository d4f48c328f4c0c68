package repository

import (
	"context"
	"time"

	"github.com/avolkov/fittrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// WeightRepository provides access to body-weight logs.
type WeightRepository interface {
	// Create inserts a log, filling the assigned ID in place.
	Create(ctx context.Context, l *model.WeightLog) error
	// ListSince returns the user's logs dated at or after cutoff, newest first.
	ListSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]model.WeightLog, error)
	// Get returns a single owned log.
	Get(ctx context.Context, userID uuid.UUID, id int64) (*model.WeightLog, error)
	// Update applies a partial update to an owned log.
	Update(ctx context.Context, userID uuid.UUID, id int64, upd model.WeightUpdate) error
	// Delete removes an owned log.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}
