// Package memory owns memory entries: CRUD, pinning, the relevance ranking
// consulted during prompt assembly, and the heuristic extractor that grows
// the store from finished exchanges.
package memory

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dustinkb1983/nyxchat/internal/models"
	"github.com/dustinkb1983/nyxchat/internal/store"
)

// Engine fronts the memory collection. It keeps a newest-first in-memory
// mirror of the store; the store stays the source of truth and the mirror is
// refreshed by Reload.
type Engine struct {
	store  *store.MemoryStore
	logger *slog.Logger

	mu      sync.Mutex
	entries []*models.MemoryEntry // newest-first
}

// NewEngine creates the engine and loads the mirror from the store.
func NewEngine(st *store.MemoryStore, logger *slog.Logger) (*Engine, error) {
	e := &Engine{store: st, logger: logger}
	if err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload replaces the mirror with the durable state.
func (e *Engine) Reload() error {
	entries, err := e.store.GetAll()
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.entries = entries
	e.mu.Unlock()
	return nil
}

// All returns a snapshot of every entry, newest-first.
func (e *Engine) All() []*models.MemoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*models.MemoryEntry, len(e.entries))
	copy(out, e.entries)
	return out
}

// Get returns the entry with the given id, or nil.
func (e *Engine) Get(id string) *models.MemoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, m := range e.entries {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Add creates a new entry. Importance is clamped into [0,10] and an invalid
// category falls back to "other".
func (e *Engine) Add(content string, cat models.Category, importance int, tags []string) (*models.MemoryEntry, error) {
	if !cat.IsValid() {
		cat = models.CategoryOther
	}
	now := time.Now().Unix()
	entry := &models.MemoryEntry{
		ID:           uuid.New().String(),
		Content:      content,
		Category:     cat,
		Importance:   models.ClampImportance(importance),
		Tags:         tags,
		CreatedAt:    now,
		LastAccessed: now,
	}

	if err := e.store.Put(entry); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.entries = append([]*models.MemoryEntry{entry}, e.entries...)
	e.mu.Unlock()
	return entry, nil
}

// Update merges the non-nil fields into an existing entry and forces
// lastAccessed to now; touching counts as an access. Unknown ids are a no-op
// and return nil, nil.
func (e *Engine) Update(id string, req *models.UpdateMemoryRequest) (*models.MemoryEntry, error) {
	e.mu.Lock()
	var existing *models.MemoryEntry
	idx := -1
	for i, m := range e.entries {
		if m.ID == id {
			existing, idx = m, i
			break
		}
	}
	e.mu.Unlock()
	if existing == nil {
		return nil, nil
	}

	updated := *existing
	if req.Content != nil {
		updated.Content = *req.Content
	}
	if req.Category != nil && req.Category.IsValid() {
		updated.Category = *req.Category
	}
	if req.Importance != nil {
		updated.Importance = models.ClampImportance(*req.Importance)
	}
	if req.Tags != nil {
		updated.Tags = *req.Tags
	}
	updated.LastAccessed = time.Now().Unix()

	if err := e.store.Put(&updated); err != nil {
		return nil, err
	}

	e.mu.Lock()
	if idx < len(e.entries) && e.entries[idx].ID == id {
		e.entries[idx] = &updated
	}
	e.mu.Unlock()
	return &updated, nil
}

// Pin raises an entry to maximum importance so it always surfaces first.
func (e *Engine) Pin(id string) (*models.MemoryEntry, error) {
	imp := models.PinnedImportance
	return e.Update(id, &models.UpdateMemoryRequest{Importance: &imp})
}

// Unpin resets an entry to the default mid-range importance.
func (e *Engine) Unpin(id string) (*models.MemoryEntry, error) {
	imp := models.UnpinnedImportance
	return e.Update(id, &models.UpdateMemoryRequest{Importance: &imp})
}

// Delete removes one entry. Unknown ids are a no-op.
func (e *Engine) Delete(id string) error {
	if err := e.store.Delete(id); err != nil {
		return err
	}
	e.mu.Lock()
	for i, m := range e.entries {
		if m.ID == id {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			break
		}
	}
	e.mu.Unlock()
	return nil
}

// ClearAll deletes every entry one by one, continuing past individual
// failures. It returns how many were deleted and how many failed.
func (e *Engine) ClearAll() (deleted, failed int, err error) {
	var errs []error
	for _, m := range e.All() {
		if delErr := e.Delete(m.ID); delErr != nil {
			e.logger.Warn("clear: delete failed", "id", m.ID, "error", delErr)
			errs = append(errs, delErr)
			failed++
			continue
		}
		deleted++
	}
	return deleted, failed, errors.Join(errs...)
}

// Relevant returns the top-limit entries by importance descending. The sort
// is stable with insertion order (newest-first) as the tie-break, so results
// are deterministic. Pure: nothing is mutated, lastAccessed included.
func (e *Engine) Relevant(limit int) []*models.MemoryEntry {
	if limit <= 0 {
		return nil
	}
	ranked := e.All()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Importance > ranked[j].Importance
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
