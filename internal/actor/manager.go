package actor

import (
	"errors"
	"sync"

	"township/internal/profiling"
)

// Manager owns the villagers of a township.
type Manager struct {
	villagers []*Villager
	mu        sync.RWMutex
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add adds a villager to the manager.
func (m *Manager) Add(v *Villager) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.villagers = append(m.villagers, v)
}

// Update advances every villager by dt seconds.
func (m *Manager) Update(dt float64) error {
	defer profiling.Track("actor.Update")()
	m.mu.RLock()
	defer m.mu.RUnlock()

	var errs []error
	for _, v := range m.villagers {
		if err := v.Update(dt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// All returns a copy of the villager list.
func (m *Manager) All() []*Villager {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Villager, len(m.villagers))
	copy(result, m.villagers)
	return result
}

// At returns every villager covering map pixel (x, y).
func (m *Manager) At(x, y int) []*Villager {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hits []*Villager
	for _, v := range m.villagers {
		if v.Contains(x, y) {
			hits = append(hits, v)
		}
	}
	return hits
}
