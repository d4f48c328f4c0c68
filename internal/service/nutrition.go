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

// DefaultNutritionLookbackDays bounds nutrition listings when no filter is given.
const DefaultNutritionLookbackDays = 30

// NutritionService defines operations over daily nutrition logs.
type NutritionService interface {
	// Log validates and stores a nutrition log.
	Log(ctx context.Context, userID uuid.UUID, in model.NewNutritionLog) (*model.NutritionLog, error)
	// List returns logs from the last `days` days, newest first.
	List(ctx context.Context, userID uuid.UUID, days int) ([]model.NutritionLog, error)
	// Get returns a single owned log.
	Get(ctx context.Context, userID uuid.UUID, id int64) (*model.NutritionLog, error)
	// Update applies a partial update with the same value constraints as create.
	Update(ctx context.Context, userID uuid.UUID, id int64, upd model.NutritionUpdate) (*model.NutritionLog, error)
	// Delete removes an owned log.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type NutritionServiceImpl struct {
	repo repository.NutritionRepository
}

// NewNutritionService constructs NutritionService.
func NewNutritionService(repo repository.NutritionRepository) *NutritionServiceImpl {
	return &NutritionServiceImpl{repo: repo}
}

// Log validates non-negativity of all four macros and stores the log.
func (s *NutritionServiceImpl) Log(ctx context.Context, userID uuid.UUID, in model.NewNutritionLog) (*model.NutritionLog, error) {
	if in.Protein < 0 || in.Carbs < 0 || in.Fats < 0 || in.Calories < 0 {
		return nil, fmt.Errorf("%w: protein, carbs, fats and calories must be non-negative", errs.ErrValidation)
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	l := &model.NutritionLog{
		UserID:   userID,
		Date:     date,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fats:     in.Fats,
		Calories: in.Calories,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// List returns logs from the lookback window, newest first.
func (s *NutritionServiceImpl) List(ctx context.Context, userID uuid.UUID, days int) ([]model.NutritionLog, error) {
	if days <= 0 {
		days = DefaultNutritionLookbackDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	return s.repo.ListSince(ctx, userID, cutoff)
}

// Get returns a single owned log.
func (s *NutritionServiceImpl) Get(ctx context.Context, userID uuid.UUID, id int64) (*model.NutritionLog, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update re-checks non-negativity of supplied fields before any write.
func (s *NutritionServiceImpl) Update(ctx context.Context, userID uuid.UUID, id int64, upd model.NutritionUpdate) (*model.NutritionLog, error) {
	for _, v := range []*float64{upd.Protein, upd.Carbs, upd.Fats, upd.Calories} {
		if v != nil && *v < 0 {
			return nil, fmt.Errorf("%w: protein, carbs, fats and calories must be non-negative", errs.ErrValidation)
		}
	}
	if err := s.repo.Update(ctx, userID, id, upd); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, id)
}

// Delete removes an owned log.
func (s *NutritionServiceImpl) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}
