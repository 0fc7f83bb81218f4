// Package vector provides the growable container every list-shaped
// structure in perftop is built on: the meter registry, header columns and
// composite meter children.
//
// A Vector either owns its entries (NewOwning) and destroys them when they
// are overwritten, removed or pruned, or borrows them (NewBorrowing) and
// never destroys anything. Entries handed out by Take always transfer
// ownership to the caller.
//
// Index and ownership preconditions are programmer errors. They are checked
// only in builds tagged "debug" and are never reported as error values.
package vector

import "github.com/sumant1122/perftop/internal/debug"

// DefaultSize is used when a Vector is created with a non-positive size.
const DefaultSize = 10

// Destroyer is the capability required of entries held by an owning Vector.
// Destroy must tolerate being called on the zero value of the entry type.
type Destroyer interface {
	Destroy()
}

// Compare returns a negative number when a sorts before b, zero when they
// are equivalent and a positive number otherwise.
type Compare[T any] func(a, b T) int

// Vector is a growable array of T with an explicit physical capacity and a
// fixed growth increment.
type Vector[T any] struct {
	array    []T
	items    int
	growth   int
	release  func(T)
	compares int
}

// NewOwning returns an empty Vector that destroys entries it drops.
func NewOwning[T Destroyer](size int) *Vector[T] {
	v := newVector[T](size)
	v.release = func(item T) { item.Destroy() }
	return v
}

// NewBorrowing returns an empty Vector that never destroys its entries.
func NewBorrowing[T any](size int) *Vector[T] {
	return newVector[T](size)
}

func newVector[T any](size int) *Vector[T] {
	if size <= 0 {
		size = DefaultSize
	}
	return &Vector[T]{
		array:  make([]T, size),
		growth: size,
	}
}

// Owner reports whether the Vector destroys the entries it drops.
func (v *Vector[T]) Owner() bool {
	return v.release != nil
}

// Len returns the logical number of entries.
func (v *Vector[T]) Len() int {
	return v.items
}

// Cap returns the physical capacity of the backing array.
func (v *Vector[T]) Cap() int {
	return len(v.array)
}

// Compares returns the number of comparator invocations made by the most
// recent sort.
func (v *Vector[T]) Compares() int {
	return v.compares
}

// Get returns the entry at index.
func (v *Vector[T]) Get(index int) T {
	debug.Assert(index >= 0 && index < v.items, "vector: Get index out of range")
	return v.array[index]
}

// Items returns a copy of the live entries in order.
func (v *Vector[T]) Items() []T {
	out := make([]T, v.items)
	copy(out, v.array[:v.items])
	return out
}

func (v *Vector[T]) resizeIfNecessary(size int) {
	if size <= len(v.array) {
		return
	}
	capacity := len(v.array) + v.growth
	if capacity < size {
		capacity = size + v.growth
	}
	grown := make([]T, capacity)
	copy(grown, v.array[:v.items])
	v.array = grown
}

// Insert places value at index, shifting later entries right. An index past
// the end appends.
func (v *Vector[T]) Insert(index int, value T) {
	debug.Assert(index >= 0, "vector: Insert negative index")
	if index > v.items {
		index = v.items
	}
	v.resizeIfNecessary(v.items + 1)
	copy(v.array[index+1:v.items+1], v.array[index:v.items])
	v.array[index] = value
	v.items++
}

// Set overwrites the entry at index, destroying the previous one when the
// Vector is owning. An index at or past the end extends the length to
// index+1; skipped slots hold the zero value.
func (v *Vector[T]) Set(index int, value T) {
	debug.Assert(index >= 0, "vector: Set negative index")
	v.resizeIfNecessary(index + 1)
	if index >= v.items {
		v.items = index + 1
	} else if v.release != nil {
		v.release(v.array[index])
	}
	v.array[index] = value
}

// Add appends value.
func (v *Vector[T]) Add(value T) {
	v.Set(v.items, value)
}

// Take removes the entry at index and returns it without destroying it. The
// caller becomes its owner.
func (v *Vector[T]) Take(index int) T {
	debug.Assert(index >= 0 && index < v.items, "vector: Take index out of range")
	removed := v.array[index]
	copy(v.array[index:v.items-1], v.array[index+1:v.items])
	v.items--
	var zero T
	v.array[v.items] = zero
	return removed
}

// Remove removes the entry at index, destroying it when the Vector is owning.
func (v *Vector[T]) Remove(index int) {
	removed := v.Take(index)
	if v.release != nil {
		v.release(removed)
	}
}

// MoveUp swaps the entry at index with its predecessor.
func (v *Vector[T]) MoveUp(index int) {
	debug.Assert(index >= 0 && index < v.items, "vector: MoveUp index out of range")
	if index == 0 {
		return
	}
	v.array[index], v.array[index-1] = v.array[index-1], v.array[index]
}

// MoveDown swaps the entry at index with its successor.
func (v *Vector[T]) MoveDown(index int) {
	debug.Assert(index >= 0 && index < v.items, "vector: MoveDown index out of range")
	if index == v.items-1 {
		return
	}
	v.array[index], v.array[index+1] = v.array[index+1], v.array[index]
}

// MoveToTop rotates the entry at index to position 0, keeping the relative
// order of the others.
func (v *Vector[T]) MoveToTop(index int) {
	debug.Assert(index >= 0 && index < v.items, "vector: MoveToTop index out of range")
	if index == 0 {
		return
	}
	moved := v.array[index]
	copy(v.array[1:index+1], v.array[:index])
	v.array[0] = moved
}

// MoveToBottom rotates the entry at index to the last position, keeping the
// relative order of the others.
func (v *Vector[T]) MoveToBottom(index int) {
	debug.Assert(index >= 0 && index < v.items, "vector: MoveToBottom index out of range")
	last := v.items - 1
	if index == last {
		return
	}
	moved := v.array[index]
	copy(v.array[index:last], v.array[index+1:v.items])
	v.array[last] = moved
}

// IndexOf returns the index of the first entry equivalent to needle, or -1.
func (v *Vector[T]) IndexOf(needle T, cmp Compare[T]) int {
	for i := 0; i < v.items; i++ {
		if cmp(needle, v.array[i]) == 0 {
			return i
		}
	}
	return -1
}

// Prune drops every entry, destroying them when the Vector is owning.
func (v *Vector[T]) Prune() {
	var zero T
	for i := 0; i < v.items; i++ {
		if v.release != nil {
			v.release(v.array[i])
		}
		v.array[i] = zero
	}
	v.items = 0
}
