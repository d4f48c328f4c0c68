package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
)

type goalRequest struct {
	GoalType     *string  `json:"goal_type"`
	TargetValue  *float64 `json:"target_value"`
	CurrentValue *float64 `json:"current_value"`
	Period       *string  `json:"period"`
	Completed    *bool    `json:"completed"`
}

type goalResponse struct {
	ID           int64   `json:"id"`
	GoalType     string  `json:"goal_type"`
	TargetValue  float64 `json:"target_value"`
	CurrentValue float64 `json:"current_value"`
	Period       string  `json:"period"`
	Completed    bool    `json:"completed"`
	CreatedAt    string  `json:"created_at"`
}

func toGoalResponse(g *model.Goal) goalResponse {
	return goalResponse{
		ID:           g.ID,
		GoalType:     g.GoalType,
		TargetValue:  g.TargetValue,
		CurrentValue: g.CurrentValue,
		Period:       g.Period,
		Completed:    g.Completed,
		CreatedAt:    g.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// handleCreateGoal creates a goal. current_value always starts at zero.
func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if req.GoalType == nil || req.TargetValue == nil || req.Period == nil {
		writeServiceError(w, fmt.Errorf("%w: goal_type, target_value and period are required", errs.ErrValidation))
		return
	}

	created, err := s.goals.Create(r.Context(), userID, model.NewGoal{
		GoalType:    *req.GoalType,
		TargetValue: *req.TargetValue,
		Period:      *req.Period,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(created))
}

// handleListGoals returns goals, optionally filtered by ?completed=true|false.
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var completed *bool
	if raw := r.URL.Query().Get("completed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeServiceError(w, fmt.Errorf("%w: completed must be a boolean", errs.ErrValidation))
			return
		}
		completed = &v
	}

	list, err := s.goals.List(r.Context(), userID, completed)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := []goalResponse{}
	for i := range list {
		out = append(out, toGoalResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetGoal returns a single owned goal.
func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	g, err := s.goals.Get(r.Context(), userID, pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

// handleUpdateGoal applies a partial update. goal_type is immutable.
func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if req.GoalType != nil {
		writeServiceError(w, fmt.Errorf("%w: goal_type cannot be changed", errs.ErrValidation))
		return
	}

	updated, err := s.goals.Update(r.Context(), userID, pathID(r), model.GoalUpdate{
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Period:       req.Period,
		Completed:    req.Completed,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(updated))
}

// handleDeleteGoal removes an owned goal.
func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := s.goals.Delete(r.Context(), userID, pathID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
