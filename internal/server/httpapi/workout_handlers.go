package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
)

type setRequest struct {
	SetNumber *int     `json:"set_number"`
	Reps      *int     `json:"reps"`
	Weight    *float64 `json:"weight"`
}

type exerciseRequest struct {
	Name string       `json:"name"`
	Sets []setRequest `json:"sets"`
}

type workoutRequest struct {
	// raw so that an explicit null is distinguishable from omission
	TemplateID json.RawMessage   `json:"template_id"`
	Date       *string           `json:"date"`
	Exercises  []exerciseRequest `json:"exercises"`
}

// parseTemplateID returns the referenced template ID, or clear=true when the
// caller sent an explicit null to drop an existing reference.
func parseTemplateID(raw json.RawMessage) (id *int64, clear bool, err error) {
	if len(raw) == 0 {
		return nil, false, nil
	}
	if string(raw) == "null" {
		return nil, true, nil
	}
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false, fmt.Errorf("%w: field %q must be of type int64", errs.ErrValidation, "template_id")
	}
	return &v, false, nil
}

type setResponse struct {
	ID        int64   `json:"id"`
	SetNumber int     `json:"set_number"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
}

type exerciseResponse struct {
	ID   int64         `json:"id"`
	Name string        `json:"name"`
	Sets []setResponse `json:"sets"`
}

type workoutResponse struct {
	ID         int64              `json:"id"`
	Date       string             `json:"date"`
	TemplateID *int64             `json:"template_id"`
	Exercises  []exerciseResponse `json:"exercises"`
}

func toWorkoutResponse(w *model.Workout) workoutResponse {
	out := workoutResponse{
		ID:         w.ID,
		Date:       formatDate(w.Date),
		TemplateID: w.TemplateID,
		Exercises:  []exerciseResponse{},
	}
	for _, ex := range w.Exercises {
		er := exerciseResponse{ID: ex.ID, Name: ex.Name, Sets: []setResponse{}}
		for _, st := range ex.Sets {
			er.Sets = append(er.Sets, setResponse{ID: st.ID, SetNumber: st.SetNumber, Reps: st.Reps, Weight: st.Weight})
		}
		out.Exercises = append(out.Exercises, er)
	}
	return out
}

// toNewExercises validates presence of per-set fields during transcoding.
func toNewExercises(exs []exerciseRequest) ([]model.NewExercise, error) {
	out := make([]model.NewExercise, len(exs))
	for i, ex := range exs {
		out[i].Name = ex.Name
		out[i].Sets = make([]model.NewSet, len(ex.Sets))
		for j, st := range ex.Sets {
			if st.SetNumber == nil || st.Reps == nil || st.Weight == nil {
				return nil, fmt.Errorf("%w: each set needs set_number, reps and weight", errs.ErrValidation)
			}
			out[i].Sets[j] = model.NewSet{SetNumber: *st.SetNumber, Reps: *st.Reps, Weight: *st.Weight}
		}
	}
	return out, nil
}

// handleLogWorkout creates a workout with nested exercises and sets.
func (s *Server) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req workoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	tmplID, _, err := parseTemplateID(req.TemplateID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	in := model.NewWorkout{TemplateID: tmplID}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		in.Date = d
	}
	exs, err := toNewExercises(req.Exercises)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	in.Exercises = exs

	created, err := s.workouts.Log(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      created.ID,
		"message": "workout logged successfully",
	})
}

// handleListWorkouts returns workouts within the lookback window, newest first.
func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	list, err := s.workouts.List(r.Context(), userID, daysParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := []workoutResponse{}
	for i := range list {
		out = append(out, toWorkoutResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetWorkout returns a single owned workout.
func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	workout, err := s.workouts.Get(r.Context(), userID, pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkoutResponse(workout))
}

// handleUpdateWorkout applies a partial update; a supplied exercise list
// replaces the whole child set.
func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req workoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	tmplID, clear, err := parseTemplateID(req.TemplateID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	upd := model.WorkoutUpdate{TemplateID: tmplID, ClearTemplate: clear}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		upd.Date = &d
	}
	if req.Exercises != nil {
		exs, err := toNewExercises(req.Exercises)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		upd.Exercises = exs
	}

	updated, err := s.workouts.Update(r.Context(), userID, pathID(r), upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "workout updated successfully",
		"workout": toWorkoutResponse(updated),
	})
}

// handleDeleteWorkout removes an owned workout and its children.
func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := s.workouts.Delete(r.Context(), userID, pathID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID extracts the numeric record ID from the route. The route pattern
// restricts it to digits, so parse errors cannot occur on matched routes.
func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// daysParam parses the optional lookback filter. Malformed or non-positive
// values fall back to the resource default (services treat 0 as default).
func daysParam(r *http.Request) int {
	v := r.URL.Query().Get("days")
	if v == "" {
		return 0
	}
	days, err := strconv.Atoi(v)
	if err != nil || days <= 0 {
		return 0
	}
	return days
}
