package buffer

import "github.com/fox0430/celina-core/color"

// Cell is one terminal character position: a grapheme cluster, a style, an
// optional hyperlink URI, and a display width.
//
// Invariants (enforced by Buffer, not by Cell itself): a width-2 cell is
// always followed by a width-0 continuation cell in the same row; no cell
// straddles a row boundary; an empty cell has Symbol " ", DefaultStyle(),
// and Width 1.
type Cell struct {
	Symbol    string
	Style     color.Style
	Hyperlink string
	Width     int
}

// EmptyCell is the blank cell every Buffer position starts and resets to.
// It differs from the zero Cell{}, which has an empty Symbol and Width 0.
func EmptyCell() Cell {
	return Cell{Symbol: " ", Style: color.DefaultStyle(), Width: 1}
}

// continuationCell is the width-0 placeholder written after a wide glyph.
func continuationCell(style color.Style) Cell {
	return Cell{Symbol: "", Style: style, Width: 0}
}
