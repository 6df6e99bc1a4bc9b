package audit

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-process Repository used by tests of the packages that
// write audit entries.
type MemoryRepo struct {
	mu      sync.Mutex
	entries []*Entry
	Err     error
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (m *MemoryRepo) Create(_ context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *MemoryRepo) List(_ context.Context, entity string, limit, offset int) ([]*Entry, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*Entry
	for _, e := range m.entries {
		if entity == "" || e.Entity == entity {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// Entries returns a snapshot of everything recorded so far.
func (m *MemoryRepo) Entries() []*Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Entry(nil), m.entries...)
}
