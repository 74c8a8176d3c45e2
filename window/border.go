package window

import (
	"github.com/fox0430/celina-core/buffer"
	"github.com/fox0430/celina-core/color"
)

// ellipsis is appended to a title too long to fit the top border.
const ellipsis = '…'

// drawBorder draws b's frame into scratch (a buffer local to the window,
// origin at (0,0)) and, if the top edge is enabled, the window's title
// inset by 2 from the left, truncated with an ellipsis if it would
// overflow. A corner is only drawn where both of
// its adjacent edges are enabled.
func drawBorder(scratch *buffer.Buffer, b Border, title string) {
	area := scratch.Area()
	w, h := area.Width, area.Height
	if w == 0 || h == 0 {
		return
	}
	right, bottom := w-1, h-1

	if b.Top {
		for x := 1; x < right; x++ {
			scratch.Set(x, 0, buffer.Cell{Symbol: string(b.Chars.Horizontal), Style: b.Style, Width: 1})
		}
	}
	if b.Bottom {
		for x := 1; x < right; x++ {
			scratch.Set(x, bottom, buffer.Cell{Symbol: string(b.Chars.Horizontal), Style: b.Style, Width: 1})
		}
	}
	if b.Left {
		for y := 1; y < bottom; y++ {
			scratch.Set(0, y, buffer.Cell{Symbol: string(b.Chars.Vertical), Style: b.Style, Width: 1})
		}
	}
	if b.Right {
		for y := 1; y < bottom; y++ {
			scratch.Set(right, y, buffer.Cell{Symbol: string(b.Chars.Vertical), Style: b.Style, Width: 1})
		}
	}

	if b.Top && b.Left {
		scratch.Set(0, 0, buffer.Cell{Symbol: string(b.Chars.TopLeft), Style: b.Style, Width: 1})
	}
	if b.Top && b.Right {
		scratch.Set(right, 0, buffer.Cell{Symbol: string(b.Chars.TopRight), Style: b.Style, Width: 1})
	}
	if b.Bottom && b.Left {
		scratch.Set(0, bottom, buffer.Cell{Symbol: string(b.Chars.BottomLeft), Style: b.Style, Width: 1})
	}
	if b.Bottom && b.Right {
		scratch.Set(right, bottom, buffer.Cell{Symbol: string(b.Chars.BottomRight), Style: b.Style, Width: 1})
	}

	if b.Top && title != "" {
		drawTitle(scratch, title, b.Style, w)
	}
}

// drawTitle writes title starting at column 2, truncating with an
// ellipsis if it exceeds width-4.
func drawTitle(scratch *buffer.Buffer, title string, style color.Style, maxWidth int) {
	budget := maxWidth - 4
	if budget <= 0 {
		return
	}

	runes := []rune(title)
	if len(runes) > budget {
		if budget == 1 {
			runes = []rune{ellipsis}
		} else {
			runes = append(runes[:budget-1], ellipsis)
		}
	}

	scratch.SetString(2, 0, string(runes), style, "")
}
