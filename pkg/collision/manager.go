package collision

import (
	"github.com/opd-ai/collide2d/pkg/geometry"
)

// Manager owns the shared resolver and the worlds built on it.
// StartFrame and EndFrame exist for hosts that drive every subsystem per
// frame; the collision core needs no per-frame work.
type Manager struct {
	resolver  *Resolver
	worlds    []*World
	worldOpts []WorldOption
	ready     bool
}

// NewManager creates a manager. opts are applied to every world it creates.
func NewManager(opts ...WorldOption) *Manager {
	return &Manager{worldOpts: opts}
}

// Setup builds the default resolver. Calling it again does nothing.
func (m *Manager) Setup() error {
	if m.ready {
		return nil
	}
	m.resolver = NewDefaultResolver()
	m.ready = true
	return nil
}

// StartFrame is a no-op
func (m *Manager) StartFrame() {}

// EndFrame is a no-op
func (m *Manager) EndFrame() {}

// Destroy empties every world and forgets them. The manager must be set up
// again before creating new worlds.
func (m *Manager) Destroy() {
	for _, w := range m.worlds {
		w.Clear()
	}
	m.worlds = nil
	m.resolver = nil
	m.ready = false
}

// Resolver returns the shared resolver, nil before Setup
func (m *Manager) Resolver() *Resolver { return m.resolver }

// Worlds returns the worlds created since Setup
func (m *Manager) Worlds() []*World {
	out := make([]*World, len(m.worlds))
	copy(out, m.worlds)
	return out
}

// CreateWorld creates a world using the shared resolver
func (m *Manager) CreateWorld(cellSize geometry.Vector2D) (*World, error) {
	if !m.ready {
		return nil, ErrManagerNotSetup
	}
	w := NewWorld(m.resolver, cellSize, m.worldOpts...)
	m.worlds = append(m.worlds, w)
	return w, nil
}
