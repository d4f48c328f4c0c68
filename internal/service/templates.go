package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
	"github.com/avolkov/fittrack/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// DefaultTemplateName is used when a template is created with a blank name.
const DefaultTemplateName = "Default Template"

// TemplateService defines operations over workout templates.
type TemplateService interface {
	// Create validates and stores a template with its exercises atomically.
	Create(ctx context.Context, userID uuid.UUID, in model.NewTemplate) (*model.WorkoutTemplate, error)
	// List returns all templates owned by the user.
	List(ctx context.Context, userID uuid.UUID) ([]model.WorkoutTemplate, error)
	// Get returns a single owned template.
	Get(ctx context.Context, userID uuid.UUID, id int64) (*model.WorkoutTemplate, error)
	// Update applies a partial update; a present exercise list replaces all children.
	Update(ctx context.Context, userID uuid.UUID, id int64, upd model.TemplateUpdate) (*model.WorkoutTemplate, error)
	// Delete removes an owned template and its exercises.
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type TemplateServiceImpl struct {
	repo repository.TemplateRepository
}

// NewTemplateService constructs TemplateService.
func NewTemplateService(repo repository.TemplateRepository) *TemplateServiceImpl {
	return &TemplateServiceImpl{repo: repo}
}

func validateTemplateExercises(exs []model.NewTemplateExercise) error {
	if len(exs) == 0 {
		return fmt.Errorf("%w: at least one exercise is required", errs.ErrValidation)
	}
	for i := range exs {
		if exs[i].Name == "" {
			return fmt.Errorf("%w: each exercise needs a name", errs.ErrValidation)
		}
	}
	return nil
}

// Create validates and stores a template. A blank name gets the default.
func (s *TemplateServiceImpl) Create(ctx context.Context, userID uuid.UUID, in model.NewTemplate) (*model.WorkoutTemplate, error) {
	if err := validateTemplateExercises(in.Exercises); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = DefaultTemplateName
	}

	t := &model.WorkoutTemplate{
		UserID:    userID,
		Name:      name,
		Exercises: make([]model.TemplateExercise, len(in.Exercises)),
	}
	for i, ex := range in.Exercises {
		t.Exercises[i] = model.TemplateExercise{Name: ex.Name, Sets: ex.Sets, Reps: ex.Reps, Alternatives: ex.Alternatives}
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all templates owned by the user.
func (s *TemplateServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.WorkoutTemplate, error) {
	return s.repo.List(ctx, userID)
}

// Get returns a single owned template.
func (s *TemplateServiceImpl) Get(ctx context.Context, userID uuid.UUID, id int64) (*model.WorkoutTemplate, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update validates present fields, applies the update and returns the new state.
func (s *TemplateServiceImpl) Update(ctx context.Context, userID uuid.UUID, id int64, upd model.TemplateUpdate) (*model.WorkoutTemplate, error) {
	if upd.Exercises != nil {
		if err := validateTemplateExercises(upd.Exercises); err != nil {
			return nil, err
		}
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be blank", errs.ErrValidation)
	}
	if err := s.repo.Update(ctx, userID, id, upd); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, id)
}

// Delete removes an owned template.
func (s *TemplateServiceImpl) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}
