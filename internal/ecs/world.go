// Package ecs adapts github.com/mlange-42/ark to the arena's needs: typed
// component tables over ark maps and destruction that is deferred to an
// explicit Flush. A World is owned by a single simulation and is not safe for
// concurrent use.
//
// Destroying an entity invalidates its handle immediately, so every lookup
// through a Table reports it as absent, but the entity stays in the ark world
// until Flush. Systems can therefore destroy entities while iterating without
// disturbing the iteration.
package ecs

import (
	ark "github.com/mlange-42/ark/ecs"
)

// Entity is an ark entity handle. The zero value is never alive.
type Entity = ark.Entity

// record is attached to every entity so that creation order survives ID
// recycling.
type record struct {
	serial uint64
}

// World owns entity lifetimes on top of an ark world.
type World struct {
	world   *ark.World
	records *ark.Map[record]
	all     *ark.Filter1[record]

	dying   map[Entity]struct{}
	pending []Entity
	serial  uint64
	live    int
}

// NewWorld creates an empty world.
func NewWorld() *World {
	w := ark.NewWorld()
	return &World{
		world:   w,
		records: ark.NewMap[record](w),
		all:     ark.NewFilter1[record](w),
		dying:   make(map[Entity]struct{}),
	}
}

// Create allocates a new entity.
func (w *World) Create() Entity {
	w.serial++
	w.live++
	return w.records.NewEntity(&record{serial: w.serial})
}

// Alive reports whether e refers to a live entity that has not been
// destroyed.
func (w *World) Alive(e Entity) bool {
	if e == (Entity{}) || !w.world.Alive(e) {
		return false
	}
	_, dying := w.dying[e]
	return !dying
}

// Serial returns the creation number of e, starting at 1. Dead handles
// return 0.
func (w *World) Serial(e Entity) uint64 {
	if !w.Alive(e) {
		return 0
	}
	return w.records.Get(e).serial
}

// Destroy invalidates e and queues it for removal on the next Flush.
// Returns false if e was already dead or destroyed.
func (w *World) Destroy(e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	w.dying[e] = struct{}{}
	w.pending = append(w.pending, e)
	w.live--
	return true
}

// Flush removes every destroyed entity from the ark world. Returns the
// number of entities released.
func (w *World) Flush() int {
	n := len(w.pending)
	for _, e := range w.pending {
		w.world.RemoveEntity(e)
		delete(w.dying, e)
	}
	w.pending = w.pending[:0]
	return n
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.live
}

// Clear removes every entity immediately. Outstanding handles become stale.
func (w *World) Clear() {
	for _, e := range entities(w.all) {
		w.world.RemoveEntity(e)
	}
	clear(w.dying)
	w.pending = w.pending[:0]
	w.live = 0
}

// entities drains a filter query into a slice. Queries lock the ark world,
// so callers that create or remove entities must range over the copy.
func entities[T any](f *ark.Filter1[T]) []Entity {
	var out []Entity
	q := f.Query()
	for q.Next() {
		out = append(out, q.Entity())
	}
	return out
}
