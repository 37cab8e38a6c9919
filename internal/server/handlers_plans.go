package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"gymdash/internal/common"
	"gymdash/internal/planner"
)

var errGenerationDisabled = errors.New("plan generation is not configured")

// handleGeneratePlan drafts a plan and writes it to the local cache in the
// same request, so the trainer sees it in history immediately even if the
// backend save never happens.
func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.generator == nil {
		writeError(w, http.StatusServiceUnavailable, errGenerationDisabled)
		return
	}

	var body struct {
		Kind         string   `json:"kind"`
		UserID       string   `json:"userId"`
		OwnerLabel   string   `json:"ownerLabel"`
		Goal         string   `json:"goal"`
		Restrictions []string `json:"restrictions"`
		DaysPerWeek  int      `json:"daysPerWeek"`
		Notes        string   `json:"notes"`
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
	if body.UserID == "" {
		writeError(w, http.StatusBadRequest, common.ErrEmptyUserID)
		return
	}

	plan, err := s.generator.Generate(r.Context(), planner.Request{
		Kind:         svc.Kind(),
		OwnerLabel:   body.OwnerLabel,
		Goal:         body.Goal,
		Restrictions: body.Restrictions,
		DaysPerWeek:  body.DaysPerWeek,
		Notes:        body.Notes,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	id, err := svc.SaveLocalItem(r.Context(), body.OwnerLabel, plan, body.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "plan": plan})
}

// handleSavePlan persists a plan to the backend (the canonical copy). When
// the request names the local draft it came from, that draft is dropped from
// the cache so the next merge serves only the backend copy.
func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Kind    string          `json:"kind"`
		UserID  string          `json:"userId"`
		LocalID string          `json:"localId"`
		Name    string          `json:"name"`
		Plan    json.RawMessage `json:"plan"`
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

	id, err := s.backend.SavePlan(r.Context(), svc.Kind(), body.UserID, body.Name, body.Plan)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	// The backend save is the one that matters; a failure to retire the
	// draft is logged and the draft falls out on a later clear.
	if body.LocalID != "" {
		if err := svc.RemoveLocalItem(r.Context(), body.LocalID); err != nil {
			s.logger.Error(r.Context(), "retiring local draft failed", "id", body.LocalID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

// handlePreviewPlan renders a plan's markdown notes to HTML.
func (s *Server) handlePreviewPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Notes string `json:"notes"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	html, err := renderMarkdown(body.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"html": html})
}
