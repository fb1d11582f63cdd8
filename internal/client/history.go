package client

import "github.com/CHANDRIKA5189/v0-image-caption-generation/internal/domain"

// DefaultHistorySize is the number of recent captions kept per session.
const DefaultHistorySize = 5

// History is a bounded, most-recent-first list of captions. It is not safe
// for concurrent use; the Orchestrator serializes access.
type History struct {
	entries  []domain.HistoryEntry
	capacity int
}

// NewHistory creates a History holding at most capacity entries.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		entries:  make([]domain.HistoryEntry, 0, capacity),
		capacity: capacity,
	}
}

// Add prepends e and drops the oldest entry once over capacity.
func (h *History) Add(e domain.HistoryEntry) {
	if len(h.entries) < h.capacity {
		h.entries = append(h.entries, domain.HistoryEntry{})
	}
	copy(h.entries[1:], h.entries[:len(h.entries)-1])
	h.entries[0] = e
}

// Entries returns a copy of the entries, most recent first.
func (h *History) Entries() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries held.
func (h *History) Len() int { return len(h.entries) }

// Capacity returns the maximum number of entries.
func (h *History) Capacity() int { return h.capacity }
