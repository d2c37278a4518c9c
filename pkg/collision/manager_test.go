package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/collide2d/pkg/event"
	"github.com/opd-ai/collide2d/pkg/geometry"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()

	_, err := m.CreateWorld(vec(64, 64))
	assert.ErrorIs(t, err, ErrManagerNotSetup)
	assert.Nil(t, m.Resolver())

	require.NoError(t, m.Setup())
	resolver := m.Resolver()
	require.NotNil(t, resolver)
	require.NoError(t, m.Setup())
	assert.Same(t, resolver, m.Resolver(), "Setup must be idempotent")

	m.StartFrame()
	a, err := m.CreateWorld(vec(64, 64))
	require.NoError(t, err)
	b, err := m.CreateWorld(geometry.Vector2D{})
	require.NoError(t, err)
	m.EndFrame()

	assert.Same(t, resolver, a.Resolver())
	assert.Same(t, resolver, b.Resolver())
	assert.Equal(t, []*World{a, b}, m.Worlds())

	s := NewPointShape(vec(1, 1))
	require.NoError(t, a.AddShape(s))

	m.Destroy()
	assert.Nil(t, s.World())
	assert.Empty(t, m.Worlds())

	_, err = m.CreateWorld(vec(64, 64))
	assert.ErrorIs(t, err, ErrManagerNotSetup)
}

func TestManagerPassesWorldOptions(t *testing.T) {
	bus := event.NewEventBus()
	added := 0
	bus.Subscribe(event.ShapeAdded, func(event.Event) { added++ })

	m := NewManager(WithEventBus(bus))
	require.NoError(t, m.Setup())
	w, err := m.CreateWorld(vec(32, 32))
	require.NoError(t, err)

	require.NoError(t, w.AddShape(NewPointShape(vec(0, 0))))
	assert.Equal(t, 1, added)
}
