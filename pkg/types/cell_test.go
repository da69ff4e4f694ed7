package types

import (
	"errors"
	"testing"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestCellCast(t *testing.T) {
	t.Run("matching kind", func(t *testing.T) {
		c := NewComponentCell(NewPoint(10, 10))
		p, err := Cast[Point](c)
		if err != nil {
			t.Fatal(err)
		}
		if p != NewPoint(10, 10) {
			t.Fatalf("got %v", p)
		}
	})

	t.Run("component mismatch", func(t *testing.T) {
		c := NewComponentCell(F32(1))
		_, err := Cast[Point](c)
		if !errors.Is(err, ErrCastingComponents) {
			t.Fatalf("expected ErrCastingComponents, got %v", err)
		}
	})

	t.Run("resource mismatch", func(t *testing.T) {
		c := NewResourceCell(F32(1))
		_, err := Cast[U32](c)
		if !errors.Is(err, ErrCastingResource) {
			t.Fatalf("expected ErrCastingResource, got %v", err)
		}
	})

	t.Run("cast leaves no borrow behind", func(t *testing.T) {
		c := NewComponentCell(U32(3))
		_, _ = Cast[U32](c)
		_, _ = Cast[Bool](c)
		if c.Borrowed() {
			t.Fatal("cell still borrowed after Cast")
		}
	})
}

func TestCellWrite(t *testing.T) {
	c := NewComponentCell(NewPoint(0, 0))
	err := Write(c, func(p *Point) {
		p.X += 10
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Get(); got != NewPoint(10, 0) {
		t.Fatalf("got %v, want (10, 0)", got)
	}

	if err := Write(c, func(f *F32) {}); !errors.Is(err, ErrCastingComponents) {
		t.Fatalf("expected ErrCastingComponents, got %v", err)
	}
	if c.Borrowed() {
		t.Fatal("cell still borrowed after failed Write")
	}
}

func TestCellRead(t *testing.T) {
	c := NewResourceCell(Marker("hud"))
	var seen Marker
	if err := Read(c, func(m Marker) { seen = m }); err != nil {
		t.Fatal(err)
	}
	if seen != "hud" {
		t.Fatalf("got %q", seen)
	}
	if err := Read(c, func(Bool) {}); !errors.Is(err, ErrCastingResource) {
		t.Fatalf("expected ErrCastingResource, got %v", err)
	}
}

func TestCellSet(t *testing.T) {
	c := NewComponentCell(Bool(false))
	if err := c.Set(Bool(true)); err != nil {
		t.Fatal(err)
	}
	if c.Get() != Bool(true) {
		t.Fatalf("got %v", c.Get())
	}
	if err := c.Set(U32(1)); !errors.Is(err, ErrCastingComponents) {
		t.Fatalf("expected ErrCastingComponents, got %v", err)
	}
	if err := c.Set(nil); !errors.Is(err, ErrCastingComponents) {
		t.Fatalf("expected ErrCastingComponents for nil, got %v", err)
	}
}

func TestCellBorrowRules(t *testing.T) {
	t.Run("many readers", func(t *testing.T) {
		c := NewComponentCell(F32(1))
		r1 := c.Borrow()
		r2 := c.Borrow()
		if r1.Value() != r2.Value() {
			t.Fatal("readers disagree")
		}
		r1.Release()
		r2.Release()
		if c.Borrowed() {
			t.Fatal("cell still borrowed")
		}
	})

	t.Run("write while reading panics", func(t *testing.T) {
		c := NewComponentCell(F32(1))
		r := c.Borrow()
		defer r.Release()
		mustPanic(t, "BorrowMut", func() { c.BorrowMut() })
	})

	t.Run("two writers panic", func(t *testing.T) {
		c := NewComponentCell(F32(1))
		w := c.BorrowMut()
		defer w.Release()
		mustPanic(t, "BorrowMut", func() { c.BorrowMut() })
	})

	t.Run("read while writing panics", func(t *testing.T) {
		c := NewComponentCell(F32(1))
		w := c.BorrowMut()
		defer w.Release()
		mustPanic(t, "Borrow", func() { c.Borrow() })
		mustPanic(t, "Get", func() { c.Get() })
	})

	t.Run("release is idempotent", func(t *testing.T) {
		c := NewComponentCell(F32(1))
		r := c.Borrow()
		r.Release()
		r.Release()
		w := c.BorrowMut()
		w.Release()
		w.Release()
		if c.Borrowed() {
			t.Fatal("cell still borrowed")
		}
	})

	t.Run("released guard panics on use", func(t *testing.T) {
		c := NewComponentCell(F32(1))
		r := c.Borrow()
		r.Release()
		mustPanic(t, "Value", func() { r.Value() })
	})

	t.Run("different cells are independent", func(t *testing.T) {
		a := NewComponentCell(F32(1))
		b := NewComponentCell(F32(2))
		wa := a.BorrowMut()
		wb := b.BorrowMut()
		wa.Release()
		wb.Release()
	})

	t.Run("nil value panics", func(t *testing.T) {
		mustPanic(t, "NewComponentCell", func() { NewComponentCell(nil) })
		mustPanic(t, "NewResourceCell", func() { NewResourceCell(nil) })
	})
}

func TestQueryResultGet(t *testing.T) {
	q := QueryResult{"size": {NewComponentCell(F32(1)), NewComponentCell(F32(2))}}
	cells, err := q.Get("size")
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 2 || q.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", len(cells))
	}
	if _, err := q.Get("location"); !errors.Is(err, ErrComponentNotFound) {
		t.Fatalf("expected ErrComponentNotFound, got %v", err)
	}
	if (QueryResult{}).Len() != 0 {
		t.Fatal("empty result should have no rows")
	}
}
