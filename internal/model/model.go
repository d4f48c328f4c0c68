// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Goal type enumeration.
const (
	GoalTypeWeight       = "weight"
	GoalTypeCalories     = "calories"
	GoalTypeWorkoutCount = "workout_count"
)

// Goal period enumeration.
const (
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Tokens collects an issued access token and its expiry.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time
}

// User represents an account. Passwords are stored as Argon2id hashes with
// a per-user salt and never in plaintext.
type User struct {
	ID        uuid.UUID // PK
	Username  string    // unique
	Email     string    // unique
	PwdHash   []byte    // Argon2id(password, SaltAuth)
	SaltAuth  []byte    // per-user auth salt
	CreatedAt time.Time
}

// WorkoutSet is an individual set within a logged exercise.
type WorkoutSet struct {
	ID        int64
	SetNumber int
	Reps      int
	Weight    float64
}

// WorkoutExercise is an exercise within a logged workout.
type WorkoutExercise struct {
	ID   int64
	Name string
	Sets []WorkoutSet
}

// Workout is a logged workout session, optionally derived from a template.
type Workout struct {
	ID         int64
	UserID     uuid.UUID
	TemplateID *int64 // nil when not logged from a template
	Date       time.Time
	Exercises  []WorkoutExercise
}

// TemplateExercise is an exercise within a workout template. Reps is free
// text ("8-12"), Alternatives a free-text list of substitute exercises.
type TemplateExercise struct {
	ID           int64
	Name         string
	Sets         int
	Reps         string
	Alternatives string
}

// WorkoutTemplate is a reusable workout plan (e.g. "Leg Day").
type WorkoutTemplate struct {
	ID        int64
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
	Exercises []TemplateExercise
}

// NutritionLog records daily macros. All four values are non-negative.
type NutritionLog struct {
	ID       int64
	UserID   uuid.UUID
	Date     time.Time
	Protein  float64
	Carbs    float64
	Fats     float64
	Calories float64
}

// WeightLog records a body-weight measurement. Weight is strictly positive.
type WeightLog struct {
	ID     int64
	UserID uuid.UUID
	Date   time.Time
	Weight float64
}

// Goal is a user fitness goal tracked against a target value.
type Goal struct {
	ID           int64
	UserID       uuid.UUID
	GoalType     string
	TargetValue  float64
	CurrentValue float64
	Period       string
	Completed    bool
	CreatedAt    time.Time
}

// --- Write intents ---
//
// Create inputs carry required values; update inputs use pointers so that
// "field omitted" is distinguishable from "field set to its zero value".
// A nil child slice on an update means "leave children untouched"; a
// non-nil slice replaces the whole child set.

// NewSet is a set within a workout create/update request.
type NewSet struct {
	SetNumber int
	Reps      int
	Weight    float64
}

// NewExercise is an exercise within a workout create/update request.
type NewExercise struct {
	Name string
	Sets []NewSet
}

// NewWorkout is a workout create intent.
type NewWorkout struct {
	TemplateID *int64
	Date       time.Time
	Exercises  []NewExercise
}

// WorkoutUpdate is a partial workout update.
type WorkoutUpdate struct {
	Date       *time.Time
	TemplateID *int64
	// ClearTemplate removes an existing template reference (an explicit
	// null in the request, as opposed to omitting the field).
	ClearTemplate bool
	Exercises     []NewExercise
}

// NewTemplateExercise is an exercise within a template create/update request.
type NewTemplateExercise struct {
	Name         string
	Sets         int
	Reps         string
	Alternatives string
}

// NewTemplate is a template create intent.
type NewTemplate struct {
	Name      string
	Exercises []NewTemplateExercise
}

// TemplateUpdate is a partial template update.
type TemplateUpdate struct {
	Name      *string
	Exercises []NewTemplateExercise
}

// NewNutritionLog is a nutrition log create intent.
type NewNutritionLog struct {
	Date     time.Time
	Protein  float64
	Carbs    float64
	Fats     float64
	Calories float64
}

// NutritionUpdate is a partial nutrition log update.
type NutritionUpdate struct {
	Date     *time.Time
	Protein  *float64
	Carbs    *float64
	Fats     *float64
	Calories *float64
}

// NewWeightLog is a weight log create intent.
type NewWeightLog struct {
	Date   time.Time
	Weight float64
}

// WeightUpdate is a partial weight log update.
type WeightUpdate struct {
	Date   *time.Time
	Weight *float64
}

// NewGoal is a goal create intent. CurrentValue starts at 0, Completed false.
type NewGoal struct {
	GoalType    string
	TargetValue float64
	Period      string
}

// GoalUpdate is a partial goal update. GoalType is immutable.
type GoalUpdate struct {
	TargetValue  *float64
	CurrentValue *float64
	Period       *string
	Completed    *bool
}
