package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrNotFound is returned when no probe has been recorded for a provider.
	ErrNotFound = errors.New("no probe results for provider")
)

// ProbeResult is one reachability check of a provider.
type ProbeResult struct {
	OK        bool      `json:"ok"`
	CheckedAt time.Time `json:"checked_at"`
	Error     string    `json:"error,omitempty"`
}

// MemoryStore is a concurrency-safe, bounded in-memory history of probe
// results per provider. Results are appended in CheckedAt order.
type MemoryStore struct {
	mu sync.RWMutex

	// key: provider name, value: oldest first
	data map[string][]ProbeResult

	maxHistory int           // max results per provider
	maxAge     time.Duration // results older than this are dropped on write
}

// NewMemoryStore creates a new MemoryStore. A maxHistory or maxAge <= 0
// disables that limit.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string][]ProbeResult),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// Save appends a result for provider and enforces retention.
func (s *MemoryStore) Save(provider string, res ProbeResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.data[provider], res)

	if s.maxHistory > 0 && len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}

	if s.maxAge > 0 {
		cutoff := weather.Now().Add(-s.maxAge)
		i := sort.Search(len(history), func(i int) bool {
			return !history[i].CheckedAt.Before(cutoff)
		})
		// Always keep the newest result so Latest has an answer.
		if i >= len(history) {
			i = len(history) - 1
		}
		history = history[i:]
	}

	s.data[provider] = history
}

// Latest returns the most recent result for provider.
func (s *MemoryStore) Latest(provider string) (ProbeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[provider]
	if len(history) == 0 {
		return ProbeResult{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

// LatestAll returns the most recent result of every provider seen so far.
func (s *MemoryStore) LatestAll() map[string]ProbeResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]ProbeResult, len(s.data))
	for name, history := range s.data {
		if len(history) > 0 {
			out[name] = history[len(history)-1]
		}
	}
	return out
}

// Range returns the results for provider checked between from and to (inclusive).
func (s *MemoryStore) Range(provider string, from, to time.Time) ([]ProbeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[provider]
	if len(history) == 0 {
		return nil, ErrNotFound
	}

	var result []ProbeResult
	for _, r := range history {
		if !r.CheckedAt.Before(from) && !r.CheckedAt.After(to) {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
