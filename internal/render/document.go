package render

import (
	"github.com/proxysheet/proxysheet/internal/pagination"
)

// Document is the drawing capability the renderer writes into. Coordinates
// are bottom-left-origin millimetres (PDF user space); backends whose canvas
// uses another origin convert internally. A Document accumulates pages and
// serializes them on Save; it is not reusable across runs.
type Document interface {
	// DrawImage places the encoded image to fill the given rectangle
	DrawImage(img pagination.CardImage, x, y, w, h float64) error
	// FillRect draws a filled hairline rectangle, used for cut guidelines
	FillRect(x, y, w, h float64)
	// NewPage opens the next page; drawing before the first call is invalid
	NewPage()
	// Save finalizes the document and writes it to the given path
	Save(path string) error
}
