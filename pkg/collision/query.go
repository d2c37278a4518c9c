package collision

import (
	"cmp"
	"slices"

	"github.com/opd-ai/collide2d/pkg/event"
	"github.com/opd-ai/collide2d/pkg/geometry"
)

// Predicate filters broad phase candidates; returning false skips the shape
type Predicate func(Shape) bool

// ResultProcessor sees each positive result of TestCollisionMany;
// returning false stops the query
type ResultProcessor func(*Result) bool

type candidate struct {
	shape Shape
	dist  float64
}

// TestCollision returns the first positive result for source, or nil.
// With sortByDistance the nearest colliding shape, by center distance, wins.
// A zero mask matches every shape.
func (w *World) TestCollision(source Shape, sortByDistance bool, mask uint32, predicate Predicate) (*Result, error) {
	w.performUpdates()
	candidates := w.broadPhase(source, mask, predicate)
	if sortByDistance {
		sortCandidates(source, candidates)
	}
	for _, c := range candidates {
		res, err := w.test(source, c.shape)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}
	return nil, nil
}

// TestCollisionMany returns every positive result for source, nearest first
// when sortByDistance is set. A processor returning false ends the query
// with the results gathered so far.
func (w *World) TestCollisionMany(source Shape, sortByDistance bool, mask uint32, predicate Predicate, processor ResultProcessor) ([]*Result, error) {
	w.performUpdates()
	candidates := w.broadPhase(source, mask, predicate)
	if sortByDistance {
		sortCandidates(source, candidates)
	}
	var results []*Result
	for _, c := range candidates {
		res, err := w.test(source, c.shape)
		if err != nil {
			return results, err
		}
		if res == nil {
			continue
		}
		results = append(results, res)
		if processor != nil && !processor(res) {
			break
		}
	}
	return results, nil
}

// Pick returns the shapes under a point, or within radius of it when
// radius is larger than one unit. The probe is never added to the grid.
func (w *World) Pick(position geometry.Vector2D, radius float64, sortByDistance bool, mask uint32, predicate Predicate) ([]Shape, error) {
	var probe Shape
	if radius <= 1 {
		probe = NewPointShape(position)
	} else {
		probe = NewCircleShape(geometry.Circle{Center: position, Radius: radius})
	}
	results, err := w.TestCollisionMany(probe, sortByDistance, mask, predicate, nil)
	if err != nil {
		return nil, err
	}
	shapes := make([]Shape, 0, len(results))
	for _, res := range results {
		shapes = append(shapes, res.Second)
	}
	return shapes, nil
}

// broadPhase gathers the distinct shapes sharing a cell with source,
// in cell order (x then y) and insertion order within a cell. The cells are
// copied out before filtering so a predicate may add or remove shapes.
func (w *World) broadPhase(source Shape, mask uint32, predicate Predicate) []candidate {
	w.stats.BroadPhaseCalls++
	w.queryStamp++
	stamp := w.queryStamp

	var gathered []Shape
	for _, k := range w.cellsIn(w.queryRange(source)) {
		w.stats.CellsTouched++
		for _, id := range w.cells[k] {
			e := &w.entries[id]
			if e.shape == nil || e.stamp == stamp {
				continue
			}
			e.stamp = stamp
			gathered = append(gathered, e.shape)
		}
	}

	var candidates []candidate
	for _, s := range gathered {
		if s.World() != w {
			continue
		}
		if mask != 0 && s.Flags()&mask == 0 {
			continue
		}
		if s == source {
			continue
		}
		w.stats.BroadPhaseChecksPrePredicate++
		if predicate != nil && !predicate(s) {
			continue
		}
		w.stats.BroadPhaseChecksPostPredicate++
		candidates = append(candidates, candidate{shape: s})
	}
	return candidates
}

// cellsIn lists the live cells of r in x-major order. Large ranges over a
// sparse grid are served from the cell map instead of walking every key.
func (w *World) cellsIn(r cellRange) []cellKey {
	width := float64(r.maxX-r.minX) + 1
	height := float64(r.maxY-r.minY) + 1
	var keys []cellKey
	if width*height > float64(len(w.cells)) {
		for k, bucket := range w.cells {
			if len(bucket) > 0 && r.contains(k) {
				keys = append(keys, k)
			}
		}
		slices.SortFunc(keys, func(a, b cellKey) int {
			if c := cmp.Compare(a.X, b.X); c != 0 {
				return c
			}
			return cmp.Compare(a.Y, b.Y)
		})
		return keys
	}
	for x := r.minX; x <= r.maxX; x++ {
		for y := r.minY; y <= r.maxY; y++ {
			k := cellKey{X: x, Y: y}
			if len(w.cells[k]) > 0 {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func sortCandidates(source Shape, candidates []candidate) {
	center := source.Center()
	for i := range candidates {
		candidates[i].dist = center.DistanceSquared(candidates[i].shape.Center())
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return cmp.Compare(a.dist, b.dist)
	})
}

func (w *World) test(source, target Shape) (*Result, error) {
	w.stats.CollisionChecks++
	res, err := w.resolver.Test(source, target)
	if err != nil || res == nil {
		return nil, err
	}
	w.stats.CollisionMatches++
	if w.bus != nil {
		e := event.NewCollisionEvent(w, source.Kind().String(), target.Kind().String(), uint32(target.base().id))
		if res.Position != nil {
			e.WithPosition(res.Position.X, res.Position.Y)
		}
		w.bus.Publish(e)
	}
	return res, nil
}
