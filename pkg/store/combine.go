package store

import (
	"fmt"
	"slices"
)

// Tree is an immutable composite state: named slices in declaration order.
// Reducers built by Combine return a new Tree only when a slice changed;
// unchanged slices keep their values.
type Tree struct {
	layout *layout
	values []any
}

// layout is shared by every Tree produced by one Combine call.
type layout struct {
	names []string
	index map[string]int
}

// Get returns the value of the named slice.
func (t *Tree) Get(name string) (any, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.layout.index[name]
	if !ok {
		return nil, false
	}
	return t.values[i], true
}

// Names returns slice names in declaration order.
func (t *Tree) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.layout.names)
}

// Len returns the number of slices.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}

// Select returns the named slice as a T, or the zero T when the slice is
// missing or holds another type.
func Select[T any](t *Tree, name string) T {
	v, _ := t.Get(name)
	out, _ := v.(T)
	return out
}

// Slice binds a name to a slice reducer. Build one with Bind.
type Slice interface {
	Name() string
	initial() any
	reduce(state any, action Action) (next any, changed bool)
}

type boundSlice[T any] struct {
	name    string
	init    T
	reducer Reducer[T]
}

// Bind declares a slice named name, starting at initial and owned by
// reducer. The reducer only ever sees this slice.
func Bind[T any](name string, initial T, reducer Reducer[T]) Slice {
	return &boundSlice[T]{name: name, init: initial, reducer: reducer}
}

func (b *boundSlice[T]) Name() string { return b.name }
func (b *boundSlice[T]) initial() any { return b.init }

func (b *boundSlice[T]) reduce(state any, action Action) (any, bool) {
	prev, _ := state.(T)
	next := b.reducer(prev, action)
	return next, !Same(prev, next)
}

// Combine composes slice reducers into a single Tree reducer and returns
// it with the initial Tree. Slices are reduced in the order given. It
// panics on an empty or duplicate name.
func Combine(parts ...Slice) (*Tree, Reducer[*Tree]) {
	l := &layout{index: make(map[string]int, len(parts))}
	values := make([]any, 0, len(parts))
	for i, sl := range parts {
		name := sl.Name()
		if name == "" {
			panic(fmt.Sprintf("store: slice %d has no name", i))
		}
		if _, dup := l.index[name]; dup {
			panic(fmt.Sprintf("store: duplicate slice %q", name))
		}
		l.index[name] = i
		l.names = append(l.names, name)
		values = append(values, sl.initial())
	}
	initial := &Tree{layout: l, values: values}

	reducer := func(t *Tree, action Action) *Tree {
		if t == nil || t.layout != l {
			t = initial
		}
		var next []any
		for i, sl := range parts {
			v, changed := sl.reduce(t.values[i], action)
			if !changed {
				continue
			}
			if next == nil {
				next = make([]any, len(t.values))
				copy(next, t.values)
			}
			next[i] = v
		}
		if next == nil {
			return t
		}
		return &Tree{layout: l, values: next}
	}
	return initial, reducer
}
