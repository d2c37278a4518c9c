package main

import (
	"context"
	"fmt"

	"github.com/opd-ai/collide2d/pkg/collision"
	"github.com/opd-ai/collide2d/pkg/config"
	"github.com/opd-ai/collide2d/pkg/event"
	"github.com/opd-ai/collide2d/pkg/geometry"
	"github.com/opd-ai/collide2d/pkg/logging"
)

// demo is a collision world built from a scene file
type demo struct {
	world  *collision.World
	shapes map[string]collision.Shape
	names  map[collision.Shape]string

	events *event.Subscription
	hits   int
}

// queryResult is what one configured query found
type queryResult struct {
	Name    string
	Hits    []string
	Contact *geometry.Vector2D
}

func buildDemo(scene *config.SceneConfig, manager *collision.Manager, bus *event.Bus) (*demo, error) {
	world, err := manager.CreateWorld(scene.World.CellSize())
	if err != nil {
		return nil, logging.WrapError(err, "failed to create world")
	}
	shapes, err := config.BuildShapes(scene)
	if err != nil {
		return nil, err
	}

	d := &demo{
		world:  world,
		shapes: make(map[string]collision.Shape, len(shapes)),
		names:  make(map[collision.Shape]string, len(shapes)),
	}
	for i, s := range shapes {
		if err := world.AddShape(s); err != nil {
			return nil, logging.WrapError(err, "failed to add shape %q", scene.Shapes[i].Name)
		}
		d.shapes[scene.Shapes[i].Name] = s
		d.names[s] = scene.Shapes[i].Name
	}
	d.events = bus.Subscribe(event.CollisionDetected, func(event.Event) { d.hits++ })
	return d, nil
}

func (d *demo) close() {
	if d.events != nil {
		d.events.Cancel()
	}
}

func (d *demo) runQueries(ctx context.Context, logger *logging.Logger, queries []config.QueryConfig) ([]queryResult, error) {
	results := make([]queryResult, 0, len(queries))
	for _, q := range queries {
		res, err := d.runQuery(q)
		if err != nil {
			return nil, logging.WrapError(err, "query %q", q.Name)
		}
		logger.Info(ctx, "query finished",
			"query", q.Name,
			"type", q.Type,
			"hits", res.Hits,
		)
		results = append(results, res)
	}
	return results, nil
}

func (d *demo) runQuery(q config.QueryConfig) (queryResult, error) {
	res := queryResult{Name: q.Name, Hits: []string{}}
	switch q.Type {
	case config.QueryPick:
		found, err := d.world.Pick(geometry.Vector2D{X: q.X, Y: q.Y}, q.Radius, q.Sort, q.Mask, nil)
		if err != nil {
			return res, err
		}
		if !q.All && len(found) > 1 {
			found = found[:1]
		}
		for _, s := range found {
			res.Hits = append(res.Hits, d.names[s])
		}
	case config.QueryTest:
		source, ok := d.shapes[q.Source]
		if !ok {
			return res, fmt.Errorf("unknown source shape %q", q.Source)
		}
		var found []*collision.Result
		if q.All {
			many, err := d.world.TestCollisionMany(source, q.Sort, q.Mask, nil, nil)
			if err != nil {
				return res, err
			}
			found = many
		} else {
			one, err := d.world.TestCollision(source, q.Sort, q.Mask, nil)
			if err != nil {
				return res, err
			}
			if one != nil {
				found = append(found, one)
			}
		}
		for _, r := range found {
			res.Hits = append(res.Hits, d.names[r.Second])
			if res.Contact == nil && r.HasPosition() {
				res.Contact = r.Position
			}
		}
	default:
		return res, fmt.Errorf("unknown query type %q", q.Type)
	}
	return res, nil
}
