package httpapi

import (
	"fmt"
	"net/http"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
)

type weightRequest struct {
	Date   *string  `json:"date"`
	Weight *float64 `json:"weight"`
}

type weightResponse struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

func toWeightResponse(l *model.WeightLog) weightResponse {
	return weightResponse{ID: l.ID, Date: formatDate(l.Date), Weight: l.Weight}
}

// handleLogWeight creates a weight log.
func (s *Server) handleLogWeight(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req weightRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if req.Weight == nil {
		writeServiceError(w, fmt.Errorf("%w: weight is required", errs.ErrValidation))
		return
	}

	in := model.NewWeightLog{Weight: *req.Weight}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		in.Date = d
	}

	created, err := s.weight.Log(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWeightResponse(created))
}

// handleListWeight returns logs within the lookback window, newest first.
func (s *Server) handleListWeight(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	list, err := s.weight.List(r.Context(), userID, daysParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := []weightResponse{}
	for i := range list {
		out = append(out, toWeightResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetWeight returns a single owned log.
func (s *Server) handleGetWeight(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	l, err := s.weight.Get(r.Context(), userID, pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWeightResponse(l))
}

// handleUpdateWeight applies a partial update.
func (s *Server) handleUpdateWeight(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req weightRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	upd := model.WeightUpdate{Weight: req.Weight}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		upd.Date = &d
	}

	updated, err := s.weight.Update(r.Context(), userID, pathID(r), upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWeightResponse(updated))
}

// handleDeleteWeight removes an owned log.
func (s *Server) handleDeleteWeight(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := s.weight.Delete(r.Context(), userID, pathID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
