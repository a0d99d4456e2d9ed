package ecs

import (
	"fmt"
	"reflect"

	ark "github.com/mlange-42/ark/ecs"
)

// Table is a typed view of one component in the world. Pointers returned by
// Add and Get point into ark's archetype storage and stay valid until the
// entity they belong to changes its component set or another entity joins
// the same archetype.
type Table[T any] struct {
	world  *World
	m      *ark.Map[T]
	filter *ark.Filter1[T]
}

// NewTable creates a table for T in w.
func NewTable[T any](w *World) *Table[T] {
	return &Table[T]{
		world:  w,
		m:      ark.NewMap[T](w.world),
		filter: ark.NewFilter1[T](w.world),
	}
}

// Add attaches val to e, replacing any existing component, and returns a
// pointer to the stored value. Attaching to a dead entity is a programming
// error and panics.
func (t *Table[T]) Add(e Entity, val T) *T {
	if !t.world.Alive(e) {
		panic(fmt.Sprintf("ecs: add %s to dead entity %v", typeName[T](), e))
	}
	if t.m.Has(e) {
		p := t.m.Get(e)
		*p = val
		return p
	}
	t.m.Add(e, &val)
	return t.m.Get(e)
}

// Get returns the component of e. Dead or destroyed entities report absent.
func (t *Table[T]) Get(e Entity) (*T, bool) {
	if !t.world.Alive(e) || !t.m.Has(e) {
		return nil, false
	}
	return t.m.Get(e), true
}

// MustGet returns the component of e and panics if it is missing. Use it
// where the data model guarantees co-attachment.
func (t *Table[T]) MustGet(e Entity) *T {
	c, ok := t.Get(e)
	if !ok {
		panic(fmt.Sprintf("ecs: entity %v has no %s", e, typeName[T]()))
	}
	return c
}

// Has reports whether e is alive and carries a T.
func (t *Table[T]) Has(e Entity) bool {
	_, ok := t.Get(e)
	return ok
}

// Remove detaches T from e. Returns false if e had no T.
func (t *Table[T]) Remove(e Entity) bool {
	if !t.Has(e) {
		return false
	}
	t.m.Remove(e)
	return true
}

// Entities returns a copy of the live entities holding a T, in query order.
// The copy makes it safe to create or destroy entities while ranging over
// the result.
func (t *Table[T]) Entities() []Entity {
	all := entities(t.filter)
	out := all[:0]
	for _, e := range all {
		if t.world.Alive(e) {
			out = append(out, e)
		}
	}
	return out
}

// Each calls fn for every live entity holding a T. Entities destroyed during
// the walk are skipped; entities created during the walk are not visited.
func (t *Table[T]) Each(fn func(e Entity, c *T)) {
	for _, e := range t.Entities() {
		if c, ok := t.Get(e); ok {
			fn(e, c)
		}
	}
}

// Len returns the number of live entities holding a T.
func (t *Table[T]) Len() int {
	return len(t.Entities())
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
