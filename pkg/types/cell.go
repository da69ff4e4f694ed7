package types

import "fmt"

// cellOrigin selects the casting error a cell reports.
type cellOrigin uint8

const (
	originComponent cellOrigin = iota
	originResource
)

// Cell is a shared handle to one stored value. Query results and resource
// lookups hand out cells rather than copies so that callers can mutate stored
// values in place.
//
// Access is borrow-checked at runtime: any number of read guards may be held
// at once, or exactly one write guard. Acquiring a conflicting guard panics;
// this is a usage error, not a recoverable condition. Cells are not safe for
// concurrent use.
type Cell struct {
	value   Value
	origin  cellOrigin
	readers int
	writing bool
}

// NewComponentCell wraps a component value. Casting failures on the returned
// cell report ErrCastingComponents. Panics if v is nil.
func NewComponentCell(v Value) *Cell {
	if v == nil {
		panic("types: nil component value")
	}
	return &Cell{value: v, origin: originComponent}
}

// NewResourceCell wraps a resource value. Casting failures on the returned
// cell report ErrCastingResource. Panics if v is nil.
func NewResourceCell(v Value) *Cell {
	if v == nil {
		panic("types: nil resource value")
	}
	return &Cell{value: v, origin: originResource}
}

// Kind reports the kind of the stored value.
func (c *Cell) Kind() Kind {
	return c.value.Kind()
}

// Borrowed reports whether any guard on the cell is outstanding.
func (c *Cell) Borrowed() bool {
	return c.writing || c.readers > 0
}

// Get returns a snapshot of the stored value under a short-lived read guard.
func (c *Cell) Get() Value {
	r := c.Borrow()
	defer r.Release()
	return r.Value()
}

// Set replaces the stored value under a short-lived write guard.
// Returns a casting error if v has a different kind than the stored value.
func (c *Cell) Set(v Value) error {
	w := c.BorrowMut()
	defer w.Release()
	return w.Set(v)
}

// Borrow acquires a read guard. Panics if a write guard is outstanding.
func (c *Cell) Borrow() *Ref {
	if c.writing {
		panic("types: value already mutably borrowed")
	}
	c.readers++
	return &Ref{cell: c}
}

// BorrowMut acquires the write guard. Panics if any guard is outstanding.
func (c *Cell) BorrowMut() *RefMut {
	if c.writing {
		panic("types: value already mutably borrowed")
	}
	if c.readers > 0 {
		panic("types: value already borrowed")
	}
	c.writing = true
	return &RefMut{cell: c}
}

func (c *Cell) castError(want Kind) error {
	base := ErrCastingComponents
	if c.origin == originResource {
		base = ErrCastingResource
	}
	return fmt.Errorf("%w: from %s to %s", base, c.value.Kind(), want)
}

// Ref is a read guard on a Cell.
type Ref struct {
	cell     *Cell
	released bool
}

// Value returns the guarded value. Panics after Release.
func (r *Ref) Value() Value {
	if r.released {
		panic("types: use of released borrow")
	}
	return r.cell.value
}

// Release gives the guard back. Calling it more than once has no effect.
func (r *Ref) Release() {
	if r.released {
		return
	}
	r.released = true
	r.cell.readers--
}

// RefMut is the write guard on a Cell.
type RefMut struct {
	cell     *Cell
	released bool
}

// Value returns the guarded value. Panics after Release.
func (w *RefMut) Value() Value {
	if w.released {
		panic("types: use of released borrow")
	}
	return w.cell.value
}

// Set replaces the guarded value. The kind must match the stored kind.
func (w *RefMut) Set(v Value) error {
	if w.released {
		panic("types: use of released borrow")
	}
	if v == nil || v.Kind() != w.cell.value.Kind() {
		want := Kind("nil")
		if v != nil {
			want = v.Kind()
		}
		return w.cell.castError(want)
	}
	w.cell.value = v
	return nil
}

// Release gives the guard back. Calling it more than once has no effect.
func (w *RefMut) Release() {
	if w.released {
		return
	}
	w.released = true
	w.cell.writing = false
}

// Cast returns a copy of the value stored in c as T.
// Returns ErrCastingComponents or ErrCastingResource if the kinds differ.
func Cast[T Value](c *Cell) (T, error) {
	r := c.Borrow()
	defer r.Release()
	v, ok := r.Value().(T)
	if !ok {
		var zero T
		return zero, c.castError(zero.Kind())
	}
	return v, nil
}

// Read calls fn with the value stored in c while holding a read guard.
func Read[T Value](c *Cell, fn func(T)) error {
	r := c.Borrow()
	defer r.Release()
	v, ok := r.Value().(T)
	if !ok {
		var zero T
		return c.castError(zero.Kind())
	}
	fn(v)
	return nil
}

// Write calls fn with a pointer to the value stored in c while holding the
// write guard, then stores the result back.
func Write[T Value](c *Cell, fn func(*T)) error {
	w := c.BorrowMut()
	defer w.Release()
	v, ok := w.Value().(T)
	if !ok {
		var zero T
		return c.castError(zero.Kind())
	}
	fn(&v)
	return w.Set(v)
}
