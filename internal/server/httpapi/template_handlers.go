package httpapi

import (
	"fmt"
	"net/http"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
)

type templateExerciseRequest struct {
	Name         string  `json:"name"`
	Sets         *int    `json:"sets"`
	Reps         *string `json:"reps"`
	Alternatives *string `json:"alternatives"`
}

type templateRequest struct {
	Name      *string                   `json:"name"`
	Exercises []templateExerciseRequest `json:"exercises"`
}

type templateExerciseResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Sets         int    `json:"sets"`
	Reps         string `json:"reps"`
	Alternatives string `json:"alternatives"`
}

type templateResponse struct {
	ID        int64                      `json:"id"`
	Name      string                     `json:"name"`
	CreatedAt string                     `json:"created_at"`
	Exercises []templateExerciseResponse `json:"exercises"`
}

func toTemplateResponse(t *model.WorkoutTemplate) templateResponse {
	out := templateResponse{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: formatDate(t.CreatedAt),
		Exercises: []templateExerciseResponse{},
	}
	for _, ex := range t.Exercises {
		out.Exercises = append(out.Exercises, templateExerciseResponse{
			ID:           ex.ID,
			Name:         ex.Name,
			Sets:         ex.Sets,
			Reps:         ex.Reps,
			Alternatives: ex.Alternatives,
		})
	}
	return out
}

// toNewTemplateExercises validates presence of the set count during transcoding.
func toNewTemplateExercises(exs []templateExerciseRequest) ([]model.NewTemplateExercise, error) {
	out := make([]model.NewTemplateExercise, len(exs))
	for i, ex := range exs {
		if ex.Sets == nil {
			return nil, fmt.Errorf("%w: each exercise needs a name and a set count", errs.ErrValidation)
		}
		out[i] = model.NewTemplateExercise{Name: ex.Name, Sets: *ex.Sets}
		if ex.Reps != nil {
			out[i].Reps = *ex.Reps
		}
		if ex.Alternatives != nil {
			out[i].Alternatives = *ex.Alternatives
		}
	}
	return out, nil
}

// handleCreateTemplate creates a template with its exercises.
func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req templateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	exs, err := toNewTemplateExercises(req.Exercises)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	in := model.NewTemplate{Exercises: exs}
	if req.Name != nil {
		in.Name = *req.Name
	}

	created, err := s.templates.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTemplateResponse(created))
}

// handleListTemplates returns all templates owned by the caller.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	list, err := s.templates.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := []templateResponse{}
	for i := range list {
		out = append(out, toTemplateResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetTemplate returns a single owned template.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	t, err := s.templates.Get(r.Context(), userID, pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTemplateResponse(t))
}

// handleUpdateTemplate applies a partial update; a supplied exercise list
// replaces the whole child set.
func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req templateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	upd := model.TemplateUpdate{Name: req.Name}
	if req.Exercises != nil {
		exs, err := toNewTemplateExercises(req.Exercises)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		upd.Exercises = exs
	}

	updated, err := s.templates.Update(r.Context(), userID, pathID(r), upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTemplateResponse(updated))
}

// handleDeleteTemplate removes an owned template and its exercises.
func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := s.templates.Delete(r.Context(), userID, pathID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
