// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}
	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}
	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{"ShapeAdded event", ShapeAdded, "world"},
		{"CollisionDetected event", CollisionDetected, 123},
		{"Empty source", WorldCleared, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{EventType: tt.eventType, Source: tt.source}
			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}
			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

func TestBusSubscribe_MultipleHandlers_UniqueIDs(t *testing.T) {
	bus := NewEventBus()

	sub1 := bus.Subscribe(ShapeAdded, func(Event) {})
	sub2 := bus.Subscribe(ShapeAdded, func(Event) {})
	sub3 := bus.Subscribe(ShapeRemoved, func(Event) {})

	if sub1.ID == 0 || sub1.ID == sub2.ID || sub2.ID == sub3.ID {
		t.Errorf("subscription IDs not unique: %d %d %d", sub1.ID, sub2.ID, sub3.ID)
	}
	if sub1.Cancel == nil {
		t.Error("subscription Cancel function should not be nil")
	}
	if got := len(bus.handlers[ShapeAdded]); got != 2 {
		t.Errorf("expected 2 handlers for ShapeAdded, got %d", got)
	}
	if !bus.HasSubscribers(ShapeRemoved) {
		t.Error("HasSubscribers(ShapeRemoved) = false, expected true")
	}
	if bus.HasSubscribers(WorldCleared) {
		t.Error("HasSubscribers(WorldCleared) = true, expected false")
	}
}

func TestBusPublish_CallsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int

	bus.Subscribe(CollisionDetected, func(Event) { order = append(order, 1) })
	bus.Subscribe(CollisionDetected, func(Event) { order = append(order, 2) })
	bus.Subscribe(ShapeAdded, func(Event) { order = append(order, 3) })

	bus.Publish(NewCollisionEvent("world", "circle", "rect", 4))

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("handler order = %v, expected [1 2]", order)
	}
}

func TestBusPublish_NoSubscribers_NoError(t *testing.T) {
	NewEventBus().Publish(&BaseEvent{EventType: ShapeAdded})
}

func TestSubscriptionCancel_RemovesOnlyThatHandler(t *testing.T) {
	bus := NewEventBus()
	var first, second int

	sub := bus.Subscribe(ShapeRemoved, func(Event) { first++ })
	bus.Subscribe(ShapeRemoved, func(Event) { second++ })

	sub.Cancel()
	bus.Publish(&BaseEvent{EventType: ShapeRemoved})

	if first != 0 {
		t.Errorf("cancelled handler called %d times", first)
	}
	if second != 1 {
		t.Errorf("remaining handler called %d times, expected 1", second)
	}

	sub.Cancel()
	if got := len(bus.handlers[ShapeRemoved]); got != 1 {
		t.Errorf("expected 1 handler after double cancel, got %d", got)
	}
}

func TestSubscriptionCancel_LastHandler_DeletesType(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(WorldCleared, func(Event) {})
	sub.Cancel()
	if _, ok := bus.handlers[WorldCleared]; ok {
		t.Error("handlers entry kept after last subscription cancelled")
	}
}

func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	var mu sync.Mutex
	calls := 0

	handler := func(Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	}

	const subscribers = 10
	wg.Add(subscribers)
	for i := 0; i < subscribers; i++ {
		go func() {
			defer wg.Done()
			bus.Subscribe(ShapeAdded, handler)
		}()
	}
	wg.Wait()

	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func() {
			defer wg.Done()
			bus.Publish(&BaseEvent{EventType: ShapeAdded})
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != subscribers*3 {
		t.Errorf("expected %d handler calls, got %d", subscribers*3, calls)
	}
}

func TestNewShapeEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		shapeID   uint32
		kind      string
	}{
		{"added circle", ShapeAdded, 1, "circle"},
		{"removed tilemap", ShapeRemoved, 42, "tilemap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewShapeEvent(tt.eventType, "world", tt.shapeID, tt.kind)
			if e.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", e.GetType(), tt.eventType)
			}
			if e.ShapeID != tt.shapeID || e.Kind != tt.kind {
				t.Errorf("NewShapeEvent() = %d/%s, want %d/%s", e.ShapeID, e.Kind, tt.shapeID, tt.kind)
			}
		})
	}
}

func TestNewCollisionEvent_WithPosition(t *testing.T) {
	e := NewCollisionEvent(nil, "point", "rect", 9)
	if e.HasPosition {
		t.Error("new collision event should not carry a position")
	}
	e.WithPosition(3, 4)
	if !e.HasPosition || e.X != 3 || e.Y != 4 {
		t.Errorf("WithPosition() = %v,%v,%v", e.HasPosition, e.X, e.Y)
	}
	if e.GetType() != CollisionDetected {
		t.Errorf("GetType() = %v, want %v", e.GetType(), CollisionDetected)
	}
}

func TestNewWorldEvent(t *testing.T) {
	e := NewWorldEvent(WorldCleared, "world", 5)
	if e.ShapeCount != 5 || e.GetType() != WorldCleared {
		t.Errorf("NewWorldEvent() = %+v", e)
	}
}
