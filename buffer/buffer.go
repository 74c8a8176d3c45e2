// Package buffer implements the cell grid: a rectangular array of Cells with
// dirty-region tracking and the merge/diff operations the renderer and
// window manager build on.
package buffer

import (
	runewidth "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/fox0430/celina-core/color"
	"github.com/fox0430/celina-core/geometry"
)

// Buffer is a dense row-major grid of Cells covering Area, plus the
// bounding rectangle of every cell written since the last ClearDirty.
type Buffer struct {
	area  geometry.Rect
	cells []Cell
	dirty geometry.Rect
}

// New allocates a width x height buffer of empty cells with an empty dirty
// region.
func New(area geometry.Rect) *Buffer {
	b := &Buffer{area: area}
	b.cells = make([]Cell, area.Width*area.Height)
	for i := range b.cells {
		b.cells[i] = EmptyCell()
	}
	return b
}

// Area returns the buffer's rectangle.
func (b *Buffer) Area() geometry.Rect { return b.area }

// Dirty returns the bounding rectangle of all writes since the last
// ClearDirty. It is the zero Rect iff no write has occurred.
func (b *Buffer) Dirty() geometry.Rect { return b.dirty }

// ClearDirty resets the dirty region to empty.
func (b *Buffer) ClearDirty() { b.dirty = geometry.Rect{} }

func (b *Buffer) index(x, y int) (int, bool) {
	if x < b.area.X || x >= b.area.Right() || y < b.area.Y || y >= b.area.Bottom() {
		return 0, false
	}
	row := y - b.area.Y
	col := x - b.area.X
	return row*b.area.Width + col, true
}

func (b *Buffer) markDirty(x, y int) {
	p := geometry.Rect{X: x, Y: y, Width: 1, Height: 1}
	b.dirty = b.dirty.Union(p)
}

// Get returns the cell at (x, y). Out-of-bounds coordinates return the zero
// Cell{} (not EmptyCell()) and do nothing else.
func (b *Buffer) Get(x, y int) Cell {
	idx, ok := b.index(x, y)
	if !ok {
		return Cell{}
	}
	return b.cells[idx]
}

// Set writes cell at (x, y). Out-of-bounds coordinates are silently
// ignored. A successful write extends the dirty rect to include (x, y).
func (b *Buffer) Set(x, y int, cell Cell) {
	idx, ok := b.index(x, y)
	if !ok {
		return
	}
	b.cells[idx] = cell
	b.markDirty(x, y)
}

// SetString writes text starting at (x, y), one Cell per grapheme cluster,
// respecting East-Asian Wide display widths: a width-2 grapheme occupies
// two adjacent columns (glyph in the first, a width-0 continuation in the
// second). Writes clip at the row's right edge; a wide glyph that would
// have its continuation cell clipped is replaced by a single space instead.
func (b *Buffer) SetString(x, y int, text string, style color.Style, hyperlink string) {
	col := x
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		w := graphemeWidth(cluster)
		if w == 0 {
			// Zero-width grapheme (e.g. combining mark with no base):
			// still occupies exactly the column it's placed at as a
			// single-width cell so it's never silently dropped.
			w = 1
		}

		if w == 2 {
			if col+1 >= b.area.Right() {
				// Continuation would be clipped: draw a single space
				// instead of a truncated wide glyph.
				b.Set(col, y, Cell{Symbol: " ", Style: style, Width: 1})
				col++
				continue
			}
			b.Set(col, y, Cell{Symbol: cluster, Style: style, Hyperlink: hyperlink, Width: 2})
			b.Set(col+1, y, continuationCell(style))
			col += 2
			continue
		}

		if col >= b.area.Right() {
			break
		}
		b.Set(col, y, Cell{Symbol: cluster, Style: style, Hyperlink: hyperlink, Width: 1})
		col++
	}
}

// graphemeWidth reports the terminal display width (0, 1, or 2) of a single
// grapheme cluster: the width of its widest rune (combining marks within
// the cluster contribute 0), using go-runewidth's East-Asian-Width table.
func graphemeWidth(cluster string) int {
	width := 0
	for _, r := range cluster {
		if w := runewidth.RuneWidth(r); w > width {
			width = w
		}
	}
	return width
}

// Clear resets every cell to fill (EmptyCell() if fill is the zero value)
// and marks the entire buffer dirty.
func (b *Buffer) Clear(fill Cell) {
	if fill == (Cell{}) {
		fill = EmptyCell()
	}
	for i := range b.cells {
		b.cells[i] = fill
	}
	b.dirty = b.area
}

// Fill writes cell to every position in the intersection of rect and the
// buffer's area.
func (b *Buffer) Fill(rect geometry.Rect, cell Cell) {
	target := b.area.Intersect(rect)
	if target.Empty() {
		return
	}
	for y := target.Y; y < target.Bottom(); y++ {
		for x := target.X; x < target.Right(); x++ {
			b.Set(x, y, cell)
		}
	}
}

// Merge overlays src onto b at destPos, treating cells whose Symbol is " "
// and Style is the default style as transparent (no write), so windows and
// other overlays composite correctly over whatever is already present.
func (b *Buffer) Merge(src *Buffer, destPos geometry.Position) {
	srcArea := src.area
	for y := 0; y < srcArea.Height; y++ {
		for x := 0; x < srcArea.Width; x++ {
			cell := src.Get(srcArea.X+x, srcArea.Y+y)
			if isTransparent(cell) {
				continue
			}
			b.Set(destPos.X+x, destPos.Y+y, cell)
		}
	}
}

func isTransparent(c Cell) bool {
	return c.Symbol == " " && c.Style == color.DefaultStyle() && c.Hyperlink == ""
}

// Resize preserves cells in the intersection of the old and new area, fills
// the rest with empty cells, and marks the entire new area dirty.
func (b *Buffer) Resize(newArea geometry.Rect) {
	newCells := make([]Cell, newArea.Width*newArea.Height)
	for i := range newCells {
		newCells[i] = EmptyCell()
	}

	overlap := b.area.Intersect(newArea)
	if !overlap.Empty() {
		for y := overlap.Y; y < overlap.Bottom(); y++ {
			for x := overlap.X; x < overlap.Right(); x++ {
				oldIdx, ok := b.index(x, y)
				if !ok {
					continue
				}
				row := y - newArea.Y
				col := x - newArea.X
				newCells[row*newArea.Width+col] = b.cells[oldIdx]
			}
		}
	}

	b.area = newArea
	b.cells = newCells
	b.dirty = newArea
}

// CellDiff is one position where two buffers of equal area disagree, paired
// with the cell value the "other" buffer holds there.
type CellDiff struct {
	Pos  geometry.Position
	Cell Cell
}

// Diff returns, in row-major order, every cell in other that differs from
// the corresponding cell in b. Buffers must share the same Area; Diff does
// not resize or translate. The result is stable and deterministic:
// diffing a buffer against itself always yields nil, and applying every
// returned (pos, cell) to a copy of b reproduces other exactly.
func (b *Buffer) Diff(other *Buffer) []CellDiff {
	var out []CellDiff
	if b.area != other.area {
		return out
	}
	for y := b.area.Y; y < b.area.Bottom(); y++ {
		for x := b.area.X; x < b.area.Right(); x++ {
			idx, _ := b.index(x, y)
			oidx, _ := other.index(x, y)
			if b.cells[idx] != other.cells[oidx] {
				out = append(out, CellDiff{Pos: geometry.Position{X: x, Y: y}, Cell: other.cells[oidx]})
			}
		}
	}
	return out
}

// Clone returns a deep copy of b, including its dirty region.
func (b *Buffer) Clone() *Buffer {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Buffer{area: b.area, cells: cells, dirty: b.dirty}
}
