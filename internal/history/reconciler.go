package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gymdash/internal/common"
	"gymdash/internal/logging"
)

// Store is the whole-value keyed store backing the local cache. The value
// under a key is a JSON-encoded array of Item. Implementations live in
// internal/localstore.
type Store interface {
	// Get returns the value for key, or common.ErrorNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes the whole value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// RemoteSource lists the backend's saved plans for a user, already mapped
// into Items (ids namespaced, timestamps defaulted).
type RemoteSource interface {
	ListItems(ctx context.Context, userID string) ([]Item, error)
}

// Result is what list views consume: the merged items plus an optional
// warning. Warning is set only when the remote fetch failed and there was no
// local fallback, so the UI can tell "no history yet" from "could not load
// history".
type Result struct {
	Items   []Item `json:"items"`
	Warning string `json:"warning,omitempty"`
}

// Service reconciles the local plan cache with the backend for one plan
// kind. Every call is independent and idempotent; there is no state beyond
// the store contents.
type Service struct {
	kind   Kind
	store  Store
	remote RemoteSource
	logger logging.Logger
	now    func() time.Time

	// mu serialises the read-modify-write in SaveLocalItem within this
	// process. Concurrent writers in other processes still race; the last
	// writer wins.
	mu sync.Mutex
}

func NewService(kind Kind, store Store, remote RemoteSource, logger logging.Logger) *Service {
	return &Service{
		kind:   kind,
		store:  store,
		remote: remote,
		logger: logger.With("kind", string(kind)),
		now:    time.Now,
	}
}

// Kind returns the plan kind this service manages.
func (s *Service) Kind() Kind { return s.kind }

// GetLocalItems returns the cached items belonging to userID. Storage that
// is empty, unavailable or malformed is treated as "no local data", logged,
// and never propagated to the caller.
func (s *Service) GetLocalItems(ctx context.Context, userID string) ([]Item, error) {
	if userID == "" {
		return nil, common.ErrEmptyUserID
	}

	all := s.readAll(ctx)
	items := make([]Item, 0, len(all))
	for _, it := range all {
		if it.UserID == userID {
			items = append(items, it)
		}
	}
	return items, nil
}

// SaveLocalItem appends a freshly generated plan to the local cache and
// returns its generated id. Persistence is best effort: if the write fails
// the failure is logged and the id is still returned, so the caller's
// in-memory view stays consistent even though durability was lost.
func (s *Service) SaveLocalItem(ctx context.Context, ownerLabel string, plan json.RawMessage, userID string) (string, error) {
	if userID == "" {
		return "", common.ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stamp := now.UTC().Format(time.RFC3339)
	item := Item{
		ID:         NewLocalID(s.kind, now),
		OwnerLabel: ownerLabel,
		Plan:       plan,
		UserID:     userID,
		CreatedAt:  stamp,
		UpdatedAt:  stamp,
	}

	all := append(s.readAll(ctx), item)
	data, err := json.Marshal(all)
	if err == nil {
		err = s.store.Set(ctx, s.kind.StorageKey(), data)
	}
	if err != nil {
		s.logger.Error(ctx, "persisting local history item failed", "id", item.ID, "error", err)
	}
	return item.ID, nil
}

// RemoveLocalItem deletes the cached item with the given id. Called after a
// draft has been persisted to the backend, so the canonical remote copy does
// not show up next to its own local draft on the next merge. Removing an
// absent id is a no-op.
func (s *Service) RemoveLocalItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.readAll(ctx)
	kept := make([]Item, 0, len(all))
	for _, it := range all {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(all) {
		return nil
	}

	data, err := json.Marshal(kept)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.kind.StorageKey(), data); err != nil {
		return fmt.Errorf("removing local item %s: %w", id, err)
	}
	return nil
}

// Merge produces the single, deduplicated, newest-first history for userID.
//
// When the remote fetch succeeds, remote items win over local drafts with
// the same identity. When it fails and local items exist, they are served as
// a fallback with no warning; only when both sources come up empty is the
// remote error surfaced.
func (s *Service) Merge(ctx context.Context, userID string) (*Result, error) {
	if userID == "" {
		return nil, common.ErrEmptyUserID
	}

	local, err := s.GetLocalItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	remote, err := s.remote.ListItems(ctx, userID)
	now := s.now()

	if err != nil {
		SortByNewest(local, now)
		if len(local) > 0 {
			s.logger.Warn(ctx, "remote fetch failed, serving local history", "user", userID, "error", err)
			return &Result{Items: local}, nil
		}
		return &Result{
			Items:   []Item{},
			Warning: fmt.Sprintf("could not load %s history: %v", s.kind, err),
		}, nil
	}

	seen := make(map[string]struct{}, len(remote))
	for _, it := range remote {
		seen[it.Identity()] = struct{}{}
	}

	merged := make([]Item, 0, len(remote)+len(local))
	merged = append(merged, remote...)
	for _, it := range local {
		if _, dup := seen[it.Identity()]; dup {
			continue
		}
		merged = append(merged, it)
	}

	SortByNewest(merged, now)
	return &Result{Items: merged}, nil
}

// ClearLocal drops the entire local namespace for this kind. The cache is
// not partitioned per user, so this clears every user's cached items.
func (s *Service) ClearLocal(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.kind.StorageKey()); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("clearing %s history: %w", s.kind, err)
	}
	return nil
}

// readAll loads the whole collection for this kind. Any failure (missing
// key, unavailable store, malformed JSON) yields an empty collection.
func (s *Service) readAll(ctx context.Context) []Item {
	data, err := s.store.Get(ctx, s.kind.StorageKey())
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "local history unreadable, treating as empty", "error", err)
		}
		return nil
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn(ctx, "local history malformed, treating as empty", "error", err)
		return nil
	}
	return items
}
