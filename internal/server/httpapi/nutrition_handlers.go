package httpapi

import (
	"fmt"
	"net/http"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
)

type nutritionRequest struct {
	Date     *string  `json:"date"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
	Calories *float64 `json:"calories"`
}

type nutritionResponse struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Calories float64 `json:"calories"`
}

func toNutritionResponse(l *model.NutritionLog) nutritionResponse {
	return nutritionResponse{
		ID:       l.ID,
		Date:     formatDate(l.Date),
		Protein:  l.Protein,
		Carbs:    l.Carbs,
		Fats:     l.Fats,
		Calories: l.Calories,
	}
}

// handleLogNutrition creates a nutrition log. All four macros are required.
func (s *Server) handleLogNutrition(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req nutritionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if req.Protein == nil || req.Carbs == nil || req.Fats == nil || req.Calories == nil {
		writeServiceError(w, fmt.Errorf("%w: protein, carbs, fats and calories are required", errs.ErrValidation))
		return
	}

	in := model.NewNutritionLog{
		Protein:  *req.Protein,
		Carbs:    *req.Carbs,
		Fats:     *req.Fats,
		Calories: *req.Calories,
	}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		in.Date = d
	}

	created, err := s.nutrition.Log(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNutritionResponse(created))
}

// handleListNutrition returns logs within the lookback window, newest first.
func (s *Server) handleListNutrition(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	list, err := s.nutrition.List(r.Context(), userID, daysParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := []nutritionResponse{}
	for i := range list {
		out = append(out, toNutritionResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetNutrition returns a single owned log.
func (s *Server) handleGetNutrition(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	l, err := s.nutrition.Get(r.Context(), userID, pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toNutritionResponse(l))
}

// handleUpdateNutrition applies a partial update.
func (s *Server) handleUpdateNutrition(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req nutritionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	upd := model.NutritionUpdate{
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fats:     req.Fats,
		Calories: req.Calories,
	}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		upd.Date = &d
	}

	updated, err := s.nutrition.Update(r.Context(), userID, pathID(r), upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toNutritionResponse(updated))
}

// handleDeleteNutrition removes an owned log.
func (s *Server) handleDeleteNutrition(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := s.nutrition.Delete(r.Context(), userID, pathID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
