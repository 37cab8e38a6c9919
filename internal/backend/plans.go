package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gymdash/internal/history"
)

// planRecord carries the fields of a saved-plan record this package
// interprets. The rest of the record (meals, exercises, and so on) rides
// along untouched as the opaque plan payload.
type planRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type listPlansResponse struct {
	Success bool              `json:"success"`
	Items   []json.RawMessage `json:"items"`
	Error   string            `json:"error"`
}

type savePlanResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Error   string `json:"error"`
}

// normalizeRecord is the single place a backend record becomes a history
// item: the numeric id is stringified and namespaced, "title" is accepted as
// a fallback for "name", and missing timestamps default to now so sorting
// never sees an empty value.
func normalizeRecord(raw json.RawMessage, userID string, now time.Time) (history.Item, error) {
	var rec planRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return history.Item{}, fmt.Errorf("unreadable plan record: %w", err)
	}

	name := rec.Name
	if name == "" {
		name = rec.Title
	}

	fallback := now.UTC().Format(time.RFC3339)
	created := rec.CreatedAt
	if created == "" {
		created = fallback
	}
	updated := rec.UpdatedAt
	if updated == "" {
		updated = fallback
	}

	native := strconv.FormatInt(rec.ID, 10)
	return history.Item{
		ID:         history.RemoteID(native),
		PlanID:     native,
		OwnerLabel: name,
		Plan:       raw,
		UserID:     userID,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}, nil
}

// PlanSource adapts the client to history.RemoteSource for one plan kind.
type PlanSource struct {
	client *Client
	kind   history.Kind
}

func NewPlanSource(c *Client, kind history.Kind) *PlanSource {
	return &PlanSource{client: c, kind: kind}
}

func plansPath(kind history.Kind, userID string) string {
	return fmt.Sprintf("/api/users/%s/%s-plans", url.PathEscape(userID), kind)
}

// ListItems fetches the user's saved plans and maps them into history items.
// A record that is not even valid JSON is logged and skipped; records with
// missing fields are included with defaults.
func (s *PlanSource) ListItems(ctx context.Context, userID string) ([]history.Item, error) {
	var resp listPlansResponse
	if err := s.client.do(ctx, http.MethodGet, plansPath(s.kind, userID), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("backend rejected %s plan listing: %s", s.kind, resp.Error)
	}

	now := s.client.now()
	items := make([]history.Item, 0, len(resp.Items))
	for _, raw := range resp.Items {
		item, err := normalizeRecord(raw, userID, now)
		if err != nil {
			s.client.logger.Warn(ctx, "skipping unreadable plan record", "kind", string(s.kind), "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// SavePlan persists a plan to the backend and returns the namespaced id of
// the stored copy. Decoupled from reconciliation: the local cache is written
// at generation time, this call only creates the canonical remote copy.
func (c *Client) SavePlan(ctx context.Context, kind history.Kind, userID, name string, plan json.RawMessage) (string, error) {
	body := map[string]any{"name": name, "plan": plan}
	var resp savePlanResponse
	if err := c.do(ctx, http.MethodPost, plansPath(kind, userID), body, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("backend rejected %s plan save: %s", kind, resp.Error)
	}
	return history.RemoteID(strconv.FormatInt(resp.ID, 10)), nil
}
