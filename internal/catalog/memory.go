package catalog

import (
	"sync"
	"time"

	"github.com/ayusman/sandow/internal/pose"
)

// Memory is an in-memory reference pose catalog with the same semantics
// as the SQLite-backed repository: ErrNotFound on missing ids,
// insertion-order listing, timestamp stamping on create and update. It is
// safe for concurrent use. Dense maps are shared rather than copied; they
// are treated as immutable everywhere.
type Memory struct {
	mu    sync.RWMutex
	poses []*ReferencePose
}

// NewMemory creates an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{}
}

// Create adds a reference pose to the catalog.
func (m *Memory) Create(p *ReferencePose) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	stored := *p
	m.poses = append(m.poses, &stored)
	return nil
}

// GetByID retrieves a reference pose by its ID.
func (m *Memory) GetByID(id string) (*ReferencePose, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.poses {
		if p.ID == id {
			found := *p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// List retrieves reference poses in insertion order. An empty category
// returns the whole catalog.
func (m *Memory) List(category pose.Category) ([]*ReferencePose, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var poses []*ReferencePose
	for _, p := range m.poses {
		if category != "" && p.Category != category {
			continue
		}
		found := *p
		poses = append(poses, &found)
	}
	return poses, nil
}

// Update replaces an existing reference pose by its ID.
func (m *Memory) Update(p *ReferencePose) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.poses {
		if existing.ID == p.ID {
			p.CreatedAt = existing.CreatedAt
			p.UpdatedAt = time.Now()
			stored := *p
			m.poses[i] = &stored
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a reference pose by its ID.
func (m *Memory) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.poses {
		if p.ID == id {
			m.poses = append(m.poses[:i], m.poses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
