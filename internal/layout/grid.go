package layout

import "math"

// Grid is the static placement geometry for one document run: how many cards
// fit on a page and where each slot and cut guideline sits.
type Grid struct {
	Page    PageSize
	Card    CardSize
	Gap     float64
	Columns int
	Rows    int
}

// Plan computes the grid for a page format, card size and gap. The same
// formula serves every format and card size; a card larger than the page
// still yields one slot per page, never zero. The grid anchors at the page's
// top-left corner with no centering inset.
func Plan(page PageSize, card CardSize, gap float64) Grid {
	columns := int(math.Floor((page.Width + gap) / (card.Width + gap)))
	rows := int(math.Floor((page.Height + gap) / (card.Height + gap)))
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}
	return Grid{Page: page, Card: card, Gap: gap, Columns: columns, Rows: rows}
}

// SlotsPerPage returns how many cards one page holds
func (g Grid) SlotsPerPage() int {
	return g.Columns * g.Rows
}

// SlotRect returns the top-left-origin rectangle of the slot at (column, row)
func (g Grid) SlotRect(column, row int) Rect {
	return Rect{
		X: float64(column) * (g.Card.Width + g.Gap),
		Y: float64(row) * (g.Card.Height + g.Gap),
		W: g.Card.Width,
		H: g.Card.Height,
	}
}

// VerticalGuide returns the gap-wide cut line immediately left of column col,
// spanning the full page height. col ranges 0..Columns inclusive so the outer
// grid edges get a line too; the col 0 line sits one gap-width before the
// first card.
func (g Grid) VerticalGuide(col int) Rect {
	return Rect{
		X: float64(col)*(g.Card.Width+g.Gap) - g.Gap,
		Y: 0,
		W: g.Gap,
		H: g.Page.Height,
	}
}

// HorizontalGuide returns the gap-high cut line immediately above row,
// spanning the full page width. row ranges 0..Rows inclusive.
func (g Grid) HorizontalGuide(row int) Rect {
	return Rect{
		X: 0,
		Y: float64(row)*(g.Card.Height+g.Gap) - g.Gap,
		W: g.Page.Width,
		H: g.Gap,
	}
}
