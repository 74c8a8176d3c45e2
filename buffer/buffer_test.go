package buffer

import (
	"testing"

	"github.com/fox0430/celina-core/color"
	"github.com/fox0430/celina-core/geometry"
)

func area(w, h int) geometry.Rect { return geometry.Rect{Width: w, Height: h} }

func TestNewBufferEmpty(t *testing.T) {
	b := New(area(10, 5))
	if len(b.cells) != 50 {
		t.Fatalf("expected 50 cells, got %d", len(b.cells))
	}
	if !b.Dirty().Empty() {
		t.Errorf("new buffer should have empty dirty region")
	}
	c := b.Get(0, 0)
	if c.Symbol != " " || c.Width != 1 || !c.Style.IsDefault() {
		t.Errorf("expected empty cell, got %+v", c)
	}
}

func TestSetGetOutOfBounds(t *testing.T) {
	b := New(area(3, 3))
	b.Set(-1, 0, Cell{Symbol: "x", Width: 1})
	b.Set(3, 0, Cell{Symbol: "x", Width: 1})
	if !b.Dirty().Empty() {
		t.Errorf("out-of-bounds writes should not mark dirty")
	}
	if got := b.Get(100, 100); got != (Cell{}) {
		t.Errorf("out-of-bounds get should return zero Cell, got %+v", got)
	}
}

func TestSetMarksDirty(t *testing.T) {
	b := New(area(5, 5))
	b.Set(2, 3, Cell{Symbol: "x", Width: 1})
	d := b.Dirty()
	if !d.Contains(geometry.Position{X: 2, Y: 3}) {
		t.Errorf("dirty region %+v should contain (2,3)", d)
	}
	b.ClearDirty()
	if !b.Dirty().Empty() {
		t.Errorf("ClearDirty should reset dirty region")
	}
}

func TestSetStringWideGlyph(t *testing.T) {
	b := New(area(10, 1))
	b.SetString(0, 0, "中x", color.DefaultStyle(), "")

	wide := b.Get(0, 0)
	if wide.Width != 2 || wide.Symbol != "中" {
		t.Errorf("expected wide cell at (0,0), got %+v", wide)
	}
	cont := b.Get(1, 0)
	if cont.Width != 0 {
		t.Errorf("expected continuation cell at (1,0), got %+v", cont)
	}
	narrow := b.Get(2, 0)
	if narrow.Symbol != "x" || narrow.Width != 1 {
		t.Errorf("expected narrow cell 'x' at (2,0), got %+v", narrow)
	}
}

func TestSetStringClipsWideAtEdge(t *testing.T) {
	b := New(area(3, 1))
	b.SetString(0, 0, "a中", color.DefaultStyle(), "")
	// 'a' at col0, wide glyph would need col1+col2 but only col1,col2 exist... width 3 total ok actually.
	// Force a clip: width-1 buffer room.
	b2 := New(area(2, 1))
	b2.SetString(0, 0, "a中", color.DefaultStyle(), "")
	// col0 = 'a', col1 would need wide glyph spanning col1-2 but buffer right edge is 2 (exclusive),
	// so continuation at col2 is out of range -> replaced with a single space.
	c1 := b2.Get(1, 0)
	if c1.Symbol != " " || c1.Width != 1 {
		t.Errorf("expected clipped wide glyph to become a space, got %+v", c1)
	}
}

func TestClearFillsEntireBuffer(t *testing.T) {
	b := New(area(3, 3))
	b.Set(1, 1, Cell{Symbol: "x", Width: 1})
	b.ClearDirty()
	b.Clear(Cell{})
	if b.Get(1, 1).Symbol != " " {
		t.Errorf("expected cell reset after Clear")
	}
	if b.Dirty() != b.Area() {
		t.Errorf("Clear should mark entire area dirty, got %+v want %+v", b.Dirty(), b.Area())
	}
}

func TestFillIntersection(t *testing.T) {
	b := New(area(5, 5))
	b.Fill(geometry.Rect{X: -2, Y: -2, Width: 4, Height: 4}, Cell{Symbol: "#", Width: 1})
	if b.Get(1, 1).Symbol != "#" {
		t.Errorf("expected fill to cover (1,1)")
	}
	if b.Get(2, 2).Symbol == "#" {
		t.Errorf("fill should not extend past the intersection")
	}
}

func TestMergeTransparency(t *testing.T) {
	dst := New(area(3, 3))
	dst.Fill(dst.Area(), Cell{Symbol: "X", Width: 1, Style: color.DefaultStyle()})

	src := New(area(3, 3))
	src.Set(1, 1, Cell{Symbol: "Y", Width: 1, Style: color.DefaultStyle()})
	// src's other cells are default empty cells (space/default style):
	// they must be treated as transparent and NOT overwrite dst's 'X's.

	dst.Merge(src, geometry.Position{X: 0, Y: 0})

	if dst.Get(1, 1).Symbol != "Y" {
		t.Errorf("expected overwrite at (1,1), got %+v", dst.Get(1, 1))
	}
	if dst.Get(0, 0).Symbol != "X" {
		t.Errorf("expected transparent src cell to leave dst untouched, got %+v", dst.Get(0, 0))
	}
}

func TestResizePreservesOverlap(t *testing.T) {
	b := New(area(4, 4))
	b.Set(0, 0, Cell{Symbol: "x", Width: 1})
	b.Resize(area(2, 2))
	if b.Get(0, 0).Symbol != "x" {
		t.Errorf("expected preserved cell at (0,0) after resize")
	}
	if b.Dirty() != b.Area() {
		t.Errorf("resize should mark new area dirty")
	}
}

func TestDiffSelfIsEmpty(t *testing.T) {
	b := New(area(4, 4))
	b.SetString(0, 0, "hello", color.DefaultStyle(), "")
	if d := b.Diff(b); len(d) != 0 {
		t.Errorf("diffing a buffer with itself should be empty, got %d entries", len(d))
	}
}

func TestDiffCompleteness(t *testing.T) {
	a := New(area(5, 3))
	b := New(area(5, 3))
	b.SetString(0, 0, "Hi", color.DefaultStyle(), "")
	b.SetString(1, 2, "!", color.DefaultStyle(), "")

	diffs := a.Diff(b)
	if len(diffs) == 0 {
		t.Fatal("expected non-empty diff")
	}

	applied := a.Clone()
	for _, d := range diffs {
		applied.Set(d.Pos.X, d.Pos.Y, d.Cell)
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if applied.Get(x, y) != b.Get(x, y) {
				t.Errorf("mismatch at (%d,%d): got %+v want %+v", x, y, applied.Get(x, y), b.Get(x, y))
			}
		}
	}
}

func TestDiffRowMajorOrder(t *testing.T) {
	a := New(area(3, 2))
	b := New(area(3, 2))
	b.Set(2, 0, Cell{Symbol: "a", Width: 1})
	b.Set(0, 1, Cell{Symbol: "b", Width: 1})

	diffs := a.Diff(b)
	if len(diffs) != 2 {
		t.Fatalf("expected 2 diffs, got %d", len(diffs))
	}
	if diffs[0].Pos != (geometry.Position{X: 2, Y: 0}) {
		t.Errorf("expected first diff at (2,0), got %+v", diffs[0].Pos)
	}
	if diffs[1].Pos != (geometry.Position{X: 0, Y: 1}) {
		t.Errorf("expected second diff at (0,1), got %+v", diffs[1].Pos)
	}
}
