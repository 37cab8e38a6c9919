// Package planner drafts diet and workout plans with a generative model.
// The rest of the dashboard treats generation as an opaque call that either
// returns a structured plan or fails.
package planner

import (
	"context"
	"encoding/json"

	"gymdash/internal/history"
)

// Request describes the plan a trainer asked for.
type Request struct {
	Kind         history.Kind `json:"kind"`
	OwnerLabel   string       `json:"ownerLabel"`
	Goal         string       `json:"goal"`
	Restrictions []string     `json:"restrictions,omitempty"`
	DaysPerWeek  int          `json:"daysPerWeek,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

// Generator drafts a plan. The returned payload is valid JSON; its internal
// structure belongs to the model and the UI, not to the caller.
type Generator interface {
	Generate(ctx context.Context, req Request) (json.RawMessage, error)
	Close() error
}
