package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"gymdash/internal/common"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleHistoryMerge(w, r)
	case http.MethodPost:
		s.handleHistorySave(w, r)
	case http.MethodDelete:
		s.handleHistoryClear(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleHistoryMerge serves the reconciled, newest-first plan history.
func (s *Server) handleHistoryMerge(w http.ResponseWriter, r *http.Request) {
	svc, err := s.historyFor(r.URL.Query().Get("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := svc.Merge(r.Context(), r.URL.Query().Get("user"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, common.ErrEmptyUserID) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleHistorySave records a generated plan in the local cache.
func (s *Server) handleHistorySave(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Kind       string          `json:"kind"`
		OwnerLabel string          `json:"ownerLabel"`
		UserID     string          `json:"userId"`
		Plan       json.RawMessage `json:"plan"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	svc, err := s.historyFor(body.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := svc.SaveLocalItem(r.Context(), body.OwnerLabel, body.Plan, body.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

// handleHistoryClear drops the whole local namespace for a kind.
func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	svc, err := s.historyFor(r.URL.Query().Get("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := svc.ClearLocal(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
}
