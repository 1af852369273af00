// Package history keeps the user's recent searches, most recent first
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/storage"
)

const (
	// StorageKey is the key under which the list is persisted
	StorageKey = "recentSearches"
	// MaxEntries is the maximum number of recent searches kept
	MaxEntries = 10
	// MaxEntryRunes caps the length of a single stored query
	MaxEntryRunes = 200
)

// ErrMalformed is returned by Load when the stored value is not a JSON string array
var ErrMalformed = errors.New("malformed recent searches")

// History manages the recent-searches list on top of a storage.Store
type History struct {
	mu       sync.RWMutex
	store    storage.Store
	entries  []string
	degraded bool // storage failed; keep the list in memory only
}

// New creates a History backed by store
// A nil store keeps the list in memory only.
func New(store storage.Store) *History {
	return &History{
		store:    store,
		entries:  []string{},
		degraded: store == nil,
	}
}

// Load reads the persisted list
// A missing key yields an empty list. A malformed value or a storage error also
// yields an empty list and is returned for the caller to report; the history
// stays usable either way.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = []string{}
	if h.degraded {
		return nil
	}

	raw, ok, err := h.store.Get(StorageKey)
	if err != nil {
		h.degraded = true
		logger.Warn("Recent searches unavailable, keeping them for this session only: %v", err)
		return fmt.Errorf("failed to read recent searches: %w", err)
	}
	if !ok {
		return nil
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.Warn("Ignoring malformed recent searches: %v", err)
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	for _, q := range stored {
		q = normalize(q)
		if q == "" || containsFold(h.entries, q) {
			continue
		}
		h.entries = append(h.entries, q)
		if len(h.entries) == MaxEntries {
			break
		}
	}
	return nil
}

// LoadAsync loads the list in a background goroutine
// Returns a channel that will receive the Load result
func (h *History) LoadAsync() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		errCh <- h.Load()
	}()
	return errCh
}

// Entries returns a copy of the list, most recent first
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recent searches
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Add records query as the most recent search
// Blank queries are ignored; an existing entry differing only in case moves to the front.
func (h *History) Add(query string) {
	q := normalize(query)
	if q == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]string, 0, MaxEntries)
	next = append(next, q)
	for _, e := range h.entries {
		if strings.EqualFold(e, q) {
			continue
		}
		next = append(next, e)
		if len(next) == MaxEntries {
			break
		}
	}
	h.entries = next
	h.persist()
}

// Clear removes every recent search, in memory and in storage
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = []string{}
	if h.degraded {
		return
	}
	if err := h.store.Remove(StorageKey); err != nil {
		h.degraded = true
		logger.Warn("Failed to clear stored recent searches: %v", err)
	}
}

// Degraded reports whether storage failed and the list is memory-only
func (h *History) Degraded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.degraded
}

// persist writes the list; caller holds h.mu
func (h *History) persist() {
	if h.degraded {
		return
	}

	data, err := json.Marshal(h.entries)
	if err != nil {
		logger.Warn("Failed to encode recent searches: %v", err)
		return
	}
	if err := h.store.Set(StorageKey, string(data)); err != nil {
		h.degraded = true
		logger.Warn("Failed to save recent searches, keeping them for this session only: %v", err)
	}
}

// normalize trims whitespace and caps the entry length
func normalize(query string) string {
	q := strings.TrimSpace(query)
	if r := []rune(q); len(r) > MaxEntryRunes {
		q = strings.TrimSpace(string(r[:MaxEntryRunes]))
	}
	return q
}

func containsFold(list []string, s string) bool {
	for _, e := range list {
		if strings.EqualFold(e, s) {
			return true
		}
	}
	return false
}
