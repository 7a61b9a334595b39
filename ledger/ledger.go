package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/hashkit"
)

var (
	// ErrNotFound is returned by Get when no digest was recorded for a name.
	ErrNotFound = errors.New("ledger: entry not found")

	// ErrConflict is returned by Put when a different digest is already recorded.
	ErrConflict = errors.New("ledger: conflicting digest")
)

// Entry is a recorded digest.
type Entry struct {
	Name       string
	Algorithm  hashkit.Algorithm
	Seed       uint64
	Digest     hashkit.Digest
	Size       int64
	RecordedAt time.Time
}

// Matches reports whether e and other describe the same digest.
func (e Entry) Matches(other Entry) bool {
	return e.Algorithm == other.Algorithm && e.Seed == other.Seed && e.Digest.Equal(other.Digest)
}

// ConflictError carries both sides of a rejected Put.
type ConflictError struct {
	Existing Entry
	Proposed Entry
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("ledger: %s already recorded as %s %s, refusing %s %s",
		e.Proposed.Name, e.Existing.Algorithm, e.Existing.Digest, e.Proposed.Algorithm, e.Proposed.Digest)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// Ledger records digests per blob name. Recording is write-once: putting the
// same digest again succeeds, putting a different one fails with ErrConflict.
type Ledger interface {
	Put(ctx context.Context, e Entry) error
	Get(ctx context.Context, name string) (Entry, error)
}

// Memory is an in-process Ledger.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

// Put records e, or confirms an identical earlier record.
func (m *Memory) Put(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.entries[e.Name]; ok {
		if !existing.Matches(e) {
			return &ConflictError{Existing: existing, Proposed: e}
		}
		return nil
	}

	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
	e.Digest = append(hashkit.Digest(nil), e.Digest...)
	m.entries[e.Name] = e
	return nil
}

// Get returns the entry recorded for name.
func (m *Memory) Get(_ context.Context, name string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[name]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Names returns every recorded name in lexical order.
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of recorded entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
