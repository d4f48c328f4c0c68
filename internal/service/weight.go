package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
	"github.com/avolkov/fittrack/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// DefaultWeightLookbackDays bounds weight listings when no filter is given.
const DefaultWeightLookbackDays = 90

// WeightService defines operations over body-weight logs.
type WeightService interface {
	// Log validates and stores a weight log.
	Log(ctx context.Context, userID uuid.UUID, in model.NewWeightLog) (*model.WeightLog, error)
	// List returns logs from the last `days` days, newest first.
	List(ctx context.Context, userID uuid.UUID, days int) ([]model.WeightLog, error)
	// Get returns a single owned log.
	Get(ctx context.Context, userID uuid.UUID, id int64) (*model.WeightLog, error)
	// Update applies a partial update with the same value constraints as create.
	Update(ctx context.Context, userID uuid.UUID, id int64, upd model.WeightUpdate) (*model.WeightLog, error)
	// Delete removes an owned log.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type WeightServiceImpl struct {
	repo repository.WeightRepository
}

// NewWeightService constructs WeightService.
func NewWeightService(repo repository.WeightRepository) *WeightServiceImpl {
	return &WeightServiceImpl{repo: repo}
}

// Log validates positivity and stores the log.
func (s *WeightServiceImpl) Log(ctx context.Context, userID uuid.UUID, in model.NewWeightLog) (*model.WeightLog, error) {
	if in.Weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", errs.ErrValidation)
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	l := &model.WeightLog{UserID: userID, Date: date, Weight: in.Weight}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// List returns logs from the lookback window, newest first.
func (s *WeightServiceImpl) List(ctx context.Context, userID uuid.UUID, days int) ([]model.WeightLog, error) {
	if days <= 0 {
		days = DefaultWeightLookbackDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	return s.repo.ListSince(ctx, userID, cutoff)
}

// Get returns a single owned log.
func (s *WeightServiceImpl) Get(ctx context.Context, userID uuid.UUID, id int64) (*model.WeightLog, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update re-checks positivity of a supplied weight before any write.
func (s *WeightServiceImpl) Update(ctx context.Context, userID uuid.UUID, id int64, upd model.WeightUpdate) (*model.WeightLog, error) {
	if upd.Weight != nil && *upd.Weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", errs.ErrValidation)
	}
	if err := s.repo.Update(ctx, userID, id, upd); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, id)
}

// Delete removes an owned log.
func (s *WeightServiceImpl) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}
