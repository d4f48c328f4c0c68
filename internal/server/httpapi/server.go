// Package httpapi exposes the fitness-tracking REST API.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/avolkov/fittrack/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth      service.AuthService
	workouts  service.WorkoutService
	templates service.TemplateService
	nutrition service.NutritionService
	weight    service.WeightService
	goals     service.GoalService
	signKey   []byte
	log       *zap.Logger
	cors      string
}

// New constructs a Server with injected services.
func New(
	auth service.AuthService,
	workouts service.WorkoutService,
	templates service.TemplateService,
	nutrition service.NutritionService,
	weight service.WeightService,
	goals service.GoalService,
	signKey []byte,
	log *zap.Logger,
	corsOrigin string,
) *Server {
	return &Server{
		auth:      auth,
		workouts:  workouts,
		templates: templates,
		nutrition: nutrition,
		weight:    weight,
		goals:     goals,
		signKey:   signKey,
		log:       log,
		cors:      corsOrigin,
	}
}

// Router builds the full route table with middleware applied.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(Recover(s.log), Logging(s.log), CORS(s.cors))

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	p := r.NewRoute().Subrouter()
	p.Use(s.requireAuth)
	p.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)

	p.HandleFunc("/workouts", s.handleLogWorkout).Methods(http.MethodPost)
	p.HandleFunc("/workouts", s.handleListWorkouts).Methods(http.MethodGet)
	p.HandleFunc("/workouts/{id:[0-9]+}", s.handleGetWorkout).Methods(http.MethodGet)
	p.HandleFunc("/workouts/{id:[0-9]+}", s.handleUpdateWorkout).Methods(http.MethodPut)
	p.HandleFunc("/workouts/{id:[0-9]+}", s.handleDeleteWorkout).Methods(http.MethodDelete)

	p.HandleFunc("/templates", s.handleCreateTemplate).Methods(http.MethodPost)
	p.HandleFunc("/templates", s.handleListTemplates).Methods(http.MethodGet)
	p.HandleFunc("/templates/{id:[0-9]+}", s.handleGetTemplate).Methods(http.MethodGet)
	p.HandleFunc("/templates/{id:[0-9]+}", s.handleUpdateTemplate).Methods(http.MethodPut)
	p.HandleFunc("/templates/{id:[0-9]+}", s.handleDeleteTemplate).Methods(http.MethodDelete)

	p.HandleFunc("/nutrition", s.handleLogNutrition).Methods(http.MethodPost)
	p.HandleFunc("/nutrition", s.handleListNutrition).Methods(http.MethodGet)
	p.HandleFunc("/nutrition/{id:[0-9]+}", s.handleGetNutrition).Methods(http.MethodGet)
	p.HandleFunc("/nutrition/{id:[0-9]+}", s.handleUpdateNutrition).Methods(http.MethodPut)
	p.HandleFunc("/nutrition/{id:[0-9]+}", s.handleDeleteNutrition).Methods(http.MethodDelete)

	p.HandleFunc("/weight", s.handleLogWeight).Methods(http.MethodPost)
	p.HandleFunc("/weight", s.handleListWeight).Methods(http.MethodGet)
	p.HandleFunc("/weight/{id:[0-9]+}", s.handleGetWeight).Methods(http.MethodGet)
	p.HandleFunc("/weight/{id:[0-9]+}", s.handleUpdateWeight).Methods(http.MethodPut)
	p.HandleFunc("/weight/{id:[0-9]+}", s.handleDeleteWeight).Methods(http.MethodDelete)

	p.HandleFunc("/goals", s.handleCreateGoal).Methods(http.MethodPost)
	p.HandleFunc("/goals", s.handleListGoals).Methods(http.MethodGet)
	p.HandleFunc("/goals/{id:[0-9]+}", s.handleGetGoal).Methods(http.MethodGet)
	p.HandleFunc("/goals/{id:[0-9]+}", s.handleUpdateGoal).Methods(http.MethodPut)
	p.HandleFunc("/goals/{id:[0-9]+}", s.handleDeleteGoal).Methods(http.MethodDelete)

	return r
}

// handleHealth is the unauthenticated liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "fittrack-api",
	})
}
