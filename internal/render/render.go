package render

import (
	"fmt"

	"github.com/proxysheet/proxysheet/internal/layout"
	"github.com/proxysheet/proxysheet/internal/pagination"
)

// Renderer drives one document generation: it walks the placement sequence,
// opens pages, draws each card copy into its slot and closes every page with
// a guideline pass. A Renderer holds the counters of a single run; concurrent
// generations need separate Renderers and Documents.
type Renderer struct {
	Grid layout.Grid
	// Guidelines toggles the cut guideline pass. A zero gap suppresses it
	// regardless, since a zero-width separator cannot host a visible line.
	Guidelines bool
	// Debug enables progress logging to stdout
	Debug bool
}

// New creates a renderer for the given grid
func New(grid layout.Grid, guidelines bool) *Renderer {
	return &Renderer{Grid: grid, Guidelines: guidelines}
}

// Run renders every placement of items into doc. Zero items render zero
// pages. The document is left unsaved; the caller finalizes it.
func (r *Renderer) Run(items []pagination.Item, doc Document) error {
	if err := pagination.ValidateItems(items); err != nil {
		return err
	}

	open := false
	for p, boundary := range pagination.Sequence(items, r.Grid) {
		if !open {
			doc.NewPage()
			open = true
			if r.Debug {
				fmt.Printf("Opened page %d\n", p.Page)
			}
		}

		rect := r.Grid.Page.ToPDFSpace(r.Grid.SlotRect(p.Column, p.Row))
		if err := doc.DrawImage(p.Image, rect.X, rect.Y, rect.W, rect.H); err != nil {
			return fmt.Errorf("failed to draw card on page %d slot (%d,%d): %w", p.Page, p.Column, p.Row, err)
		}

		if boundary {
			r.drawGuidelines(doc)
			open = false
		}
	}
	return nil
}

// drawGuidelines fills one gap-sized rectangle per grid boundary, outer edges
// included, so the sheet can be cut with a straightedge along every card edge.
func (r *Renderer) drawGuidelines(doc Document) {
	if !r.Guidelines || r.Grid.Gap <= 0 {
		return
	}
	for col := 0; col <= r.Grid.Columns; col++ {
		rect := r.Grid.Page.ToPDFSpace(r.Grid.VerticalGuide(col))
		doc.FillRect(rect.X, rect.Y, rect.W, rect.H)
	}
	for row := 0; row <= r.Grid.Rows; row++ {
		rect := r.Grid.Page.ToPDFSpace(r.Grid.HorizontalGuide(row))
		doc.FillRect(rect.X, rect.Y, rect.W, rect.H)
	}
}
