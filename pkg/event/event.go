// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Collision world event types
const (
	ShapeAdded        Type = "shape_added"
	ShapeRemoved      Type = "shape_removed"
	CollisionDetected Type = "collision_detected"
	WorldCleared      Type = "world_cleared"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Publishing is
// synchronous: handlers run on the publisher's goroutine in subscription order.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes the handler registered under id
func (b *Bus) Unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		kept := make([]subscriber, 0, len(subs)-1)
		kept = append(kept, subs[:i]...)
		kept = append(kept, subs[i+1:]...)
		if len(kept) == 0 {
			delete(b.handlers, eventType)
		} else {
			b.handlers[eventType] = kept
		}
		return
	}
}

// HasSubscribers reports whether any handler listens for eventType
func (b *Bus) HasSubscribers(eventType Type) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType]) > 0
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// ShapeEvent reports a shape joining or leaving a world
type ShapeEvent struct {
	BaseEvent
	ShapeID uint32
	Kind    string
}

// NewShapeEvent creates a new shape event
func NewShapeEvent(eventType Type, source interface{}, shapeID uint32, kind string) *ShapeEvent {
	return &ShapeEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShapeID: shapeID,
		Kind:    kind,
	}
}

// CollisionEvent reports a positive narrow phase test found by a query
type CollisionEvent struct {
	BaseEvent
	FirstKind   string
	SecondKind  string
	SecondID    uint32
	HasPosition bool
	X, Y        float64
}

// NewCollisionEvent creates a new collision event. The first shape is the
// query source and may not belong to any world, so only the second carries an ID.
func NewCollisionEvent(source interface{}, firstKind, secondKind string, secondID uint32) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: CollisionDetected,
			Source:    source,
		},
		FirstKind:  firstKind,
		SecondKind: secondKind,
		SecondID:   secondID,
	}
}

// WithPosition attaches a contact position
func (e *CollisionEvent) WithPosition(x, y float64) *CollisionEvent {
	e.HasPosition = true
	e.X, e.Y = x, y
	return e
}

// WorldEvent reports a change affecting a whole world
type WorldEvent struct {
	BaseEvent
	ShapeCount int
}

// NewWorldEvent creates a new world event
func NewWorldEvent(eventType Type, source interface{}, shapeCount int) *WorldEvent {
	return &WorldEvent{
		BaseEvent:  BaseEvent{EventType: eventType, Source: source},
		ShapeCount: shapeCount,
	}
}
