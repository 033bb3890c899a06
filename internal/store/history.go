package store

import (
	"sort"
	"sync"

	"github.com/ppiankov/claimflow/internal/model"
)

// History is the append-only claims history consumed by the UI/API shell.
// Implementations must serialize concurrent appends and allow concurrent
// reads. The pipeline takes a History as a collaborator; there is no
// process-wide singleton.
type History interface {
	// Append records a processed claim
	Append(result model.ClaimResult)

	// List returns recorded claims, newest first
	List() []model.ClaimResult

	// Len returns the number of recorded claims
	Len() int
}

// MemoryHistory is the in-memory History implementation. Results are held
// only for the lifetime of the process; durable storage is out of scope.
type MemoryHistory struct {
	mu       sync.RWMutex
	claims   []model.ClaimResult
	capacity int
}

// NewMemoryHistory creates a history bounded to capacity entries; the
// oldest entries are evicted first. Zero or negative capacity means
// unbounded.
func NewMemoryHistory(capacity int) *MemoryHistory {
	return &MemoryHistory{capacity: capacity}
}

// Append records a processed claim
func (h *MemoryHistory) Append(result model.ClaimResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.claims = append(h.claims, result)
	if h.capacity > 0 && len(h.claims) > h.capacity {
		h.claims = h.claims[len(h.claims)-h.capacity:]
	}
}

// List returns a copy of the recorded claims sorted newest first
func (h *MemoryHistory) List() []model.ClaimResult {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]model.ClaimResult, len(h.claims))
	copy(out, h.claims)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProcessedAt.After(out[j].ProcessedAt)
	})
	return out
}

// Len returns the number of recorded claims
func (h *MemoryHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.claims)
}
