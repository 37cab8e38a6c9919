// Package history maintains the per-user history of generated diet and
// workout plans: a durable local cache written the moment a plan is
// generated, reconciled on read against the gym backend's saved plans.
package history

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gymdash/internal/common"

	"github.com/google/uuid"
)

// Kind selects which plan history a Service manages.
type Kind string

const (
	KindDiet    Kind = "diet"
	KindWorkout Kind = "workout"
)

// ParseKind validates a kind supplied by a caller (e.g. a query parameter).
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDiet, KindWorkout:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownKind, s)
}

// StorageKey is the fixed namespace key under which the whole collection for
// this kind is stored. One key per kind, shared by all users of the device.
func (k Kind) StorageKey() string {
	return "gymdash.history." + string(k)
}

// remoteIDPrefix namespaces backend-sourced ids so they cannot collide with
// locally generated ones.
const remoteIDPrefix = "backend-"

// Item is the unit stored and merged: an identified, named, timestamped
// wrapper around an opaque plan payload.
//
// CreatedAt and UpdatedAt are RFC 3339 strings rather than time.Time so that
// a malformed timestamp in the cache degrades to "now" at sort time instead
// of failing the read.
type Item struct {
	ID         string          `json:"id"`
	OwnerLabel string          `json:"ownerLabel"`
	Plan       json.RawMessage `json:"plan"`
	PlanID     string          `json:"planId,omitempty"`
	UserID     string          `json:"userId"`
	CreatedAt  string          `json:"createdAt"`
	UpdatedAt  string          `json:"updatedAt"`
}

// NewLocalID generates an id for a locally created item, of the form
// <kind>-<unix millis>-<random>.
func NewLocalID(kind Kind, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", kind, now.UnixMilli(), uuid.NewString()[:8])
}

// RemoteID namespaces a backend-native plan id.
func RemoteID(nativeID string) string {
	return remoteIDPrefix + nativeID
}

// Identity returns the value items are deduplicated on. For backend-sourced
// items this is the backend's native plan id; a local item that carries the
// same identity is a draft of a plan the backend already holds and loses to
// the remote copy.
func (it Item) Identity() string {
	if it.PlanID != "" {
		return it.PlanID
	}
	return strings.TrimPrefix(it.ID, remoteIDPrefix)
}

func (it Item) createdTime(fallback time.Time) time.Time {
	t, err := time.Parse(time.RFC3339, it.CreatedAt)
	if err != nil {
		return fallback
	}
	return t
}

// SortByNewest orders items by CreatedAt descending, newest first. The sort
// is stable so equal timestamps keep their relative order; unparsable
// timestamps sort as now.
func SortByNewest(items []Item, now time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].createdTime(now).After(items[j].createdTime(now))
	})
}
