package collision

import (
	"fmt"

	"github.com/opd-ai/collide2d/pkg/geometry"
)

// Handler tests two shapes of fixed kinds. A handler may report a contact
// position along with a positive result.
type Handler func(first, second Shape) (collided bool, position *geometry.Vector2D)

// coarseSlack widens the bounding circle rejection so tolerance based
// handlers (point vs point, point vs line) are never skipped.
const coarseSlack = 1.5

// Resolver dispatches collision tests to the handler registered for a pair
// of shape kinds. It holds no other state and may be shared by many worlds.
type Resolver struct {
	handlers [NumKinds][NumKinds]Handler
}

// NewResolver creates a resolver with no handlers
func NewResolver() *Resolver {
	return &Resolver{}
}

// SetHandler installs fn for (a, b) and an argument swapping wrapper for
// (b, a). A later registration for either ordering replaces the earlier one.
func (r *Resolver) SetHandler(a, b Kind, fn Handler) {
	if !a.Valid() || !b.Valid() {
		return
	}
	r.handlers[a][b] = fn
	if a == b {
		return
	}
	if fn == nil {
		r.handlers[b][a] = nil
		return
	}
	r.handlers[b][a] = func(first, second Shape) (bool, *geometry.Vector2D) {
		return fn(second, first)
	}
}

// Handler returns the handler for (a, b), or nil
func (r *Resolver) Handler(a, b Kind) Handler {
	if !a.Valid() || !b.Valid() {
		return nil
	}
	return r.handlers[a][b]
}

// Test runs the registered handler for the kinds of a and b.
// It returns nil without error when the shapes do not collide.
func (r *Resolver) Test(a, b Shape) (*Result, error) {
	fn := r.Handler(a.Kind(), b.Kind())
	if fn == nil {
		return nil, fmt.Errorf("%w: %s and %s", ErrUnsupportedShapePair, a.Kind(), b.Kind())
	}
	return r.TestWithHandler(a, b, fn)
}

// TestWithHandler runs fn on a and b after a bounding circle rejection
func (r *Resolver) TestWithHandler(a, b Shape, fn Handler) (*Result, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s and %s", ErrUnsupportedShapePair, a.Kind(), b.Kind())
	}
	reach := a.Radius() + b.Radius() + coarseSlack + lineTolerance(a) + lineTolerance(b)
	if a.Center().DistanceSquared(b.Center()) > reach*reach {
		return nil, nil
	}
	collided, position := fn(a, b)
	if !collided {
		return nil, nil
	}
	return &Result{Position: position, First: a, Second: b}, nil
}

func lineTolerance(s Shape) float64 {
	if l, ok := s.(*LinesShape); ok {
		return l.threshold
	}
	return 0
}
