package server

import (
	"context"
	"encoding/json"
	"net/http"

	"gymdash/internal/common"
)

// Gym details, attendance and membership are owned by the backend; these
// handlers only forward.

func (s *Server) handleGym(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profile, err := s.backend.GymProfile(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeRaw(w, profile)
	case http.MethodPut:
		var profile json.RawMessage
		if err := parseJSON(r, &profile); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.backend.UpdateGymProfile(r.Context(), profile); err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"updated": true})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	s.proxyUserRead(w, r, s.backend.Attendance)
}

func (s *Server) handleMembership(w http.ResponseWriter, r *http.Request) {
	s.proxyUserRead(w, r, s.backend.MembershipStatus)
}

func (s *Server) proxyUserRead(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context, userID string) (json.RawMessage, error)) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user")
	if userID == "" {
		writeError(w, http.StatusBadRequest, common.ErrEmptyUserID)
		return
	}

	payload, err := fetch(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeRaw(w, payload)
}

func writeRaw(w http.ResponseWriter, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
