package catalog

import "reflect"

// Node is anything a derived value can depend on.
type Node interface {
	Version() uint64
}

// Input is a settable source value in the recomputation graph. Setting a
// value equal to the current one leaves the version alone.
type Input[T any] struct {
	value   T
	version uint64
	equal   func(a, b T) bool
}

// NewInput creates an input holding v, compared with reflect.DeepEqual
func NewInput[T any](v T) *Input[T] {
	return NewInputFunc(v, func(a, b T) bool { return reflect.DeepEqual(a, b) })
}

// NewInputFunc creates an input holding v that uses equal to detect no-op sets
func NewInputFunc[T any](v T, equal func(a, b T) bool) *Input[T] {
	return &Input[T]{value: v, version: 1, equal: equal}
}

// Get returns the current value
func (i *Input[T]) Get() T { return i.value }

// Set replaces the value and marks dependents stale. It reports whether
// the value changed.
func (i *Input[T]) Set(v T) bool {
	if i.equal != nil && i.equal(i.value, v) {
		return false
	}
	i.value = v
	i.version++
	return true
}

// Version implements Node
func (i *Input[T]) Version() uint64 { return i.version }

// Derived is a value computed from other nodes. It recomputes lazily on
// read, and only when the version of at least one dependency moved since
// the last computation.
type Derived[T any] struct {
	deps         []Node
	seen         []uint64
	compute      func() T
	value        T
	valid        bool
	version      uint64
	computations int
}

// NewDerived creates a derived node over deps
func NewDerived[T any](compute func() T, deps ...Node) *Derived[T] {
	return &Derived[T]{
		deps:    deps,
		seen:    make([]uint64, len(deps)),
		compute: compute,
	}
}

// Get returns the memoized value, recomputing it first if stale
func (d *Derived[T]) Get() T {
	d.refresh()
	return d.value
}

// Version implements Node. Reading it brings the node up to date.
func (d *Derived[T]) Version() uint64 {
	d.refresh()
	return d.version
}

// Computations reports how many times the compute function ran
func (d *Derived[T]) Computations() int { return d.computations }

func (d *Derived[T]) refresh() {
	stale := !d.valid
	for i, dep := range d.deps {
		v := dep.Version()
		if v != d.seen[i] {
			d.seen[i] = v
			stale = true
		}
	}
	if !stale {
		return
	}
	d.value = d.compute()
	d.valid = true
	d.version++
	d.computations++
}
