package pagination

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/proxysheet/proxysheet/internal/layout"
)

// CardImage is an opaque reference to a decodable image resource. The
// paginator never reads the pixels; only the document backend does.
type CardImage interface {
	// Key identifies the resource within one document, for caching
	Key() string
	// ImageType is the encoded format as the backend names it ("PNG", "JPG", "GIF")
	ImageType() string
	// Reader returns a fresh reader over the encoded image bytes
	Reader() io.Reader
}

// Item is one card image with its requested print-copy count
type Item struct {
	Image  CardImage
	Copies int
}

// Placement assigns one physical copy of a card to a page/column/row slot.
// Columns and rows are counted left-to-right, top-to-bottom.
type Placement struct {
	Image  CardImage
	Page   int
	Column int
	Row    int
}

// ErrInvalidCopies rejects items whose copy count is below one
var ErrInvalidCopies = errors.New("print copies must be at least 1")

// ValidateItems checks every copy count up front, so a bad item fails the
// whole run before anything is drawn.
func ValidateItems(items []Item) error {
	for i, item := range items {
		if item.Copies < 1 {
			return fmt.Errorf("item %d: %w (got %d)", i, ErrInvalidCopies, item.Copies)
		}
	}
	return nil
}

// TotalCopies returns the number of placements the items expand to
func TotalCopies(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Copies
	}
	return total
}

// PageCount returns how many pages the items fill, zero for no items
func PageCount(items []Item, grid layout.Grid) int {
	per := grid.SlotsPerPage()
	return (TotalCopies(items) + per - 1) / per
}

// Sequence flattens items into their placements: input order preserved,
// copies expanded contiguously, slots filled row-major. The yielded bool
// marks a page boundary, set when the page is full or the placement is the
// last of the whole run. The sequence is a pure function of its inputs and
// may be ranged over any number of times.
func Sequence(items []Item, grid layout.Grid) iter.Seq2[Placement, bool] {
	per := grid.SlotsPerPage()
	last := TotalCopies(items) - 1
	return func(yield func(Placement, bool) bool) {
		index := 0
		for _, item := range items {
			for c := 0; c < item.Copies; c++ {
				slot := index % per
				p := Placement{
					Image:  item.Image,
					Page:   index / per,
					Column: slot % grid.Columns,
					Row:    slot / grid.Columns,
				}
				if !yield(p, slot == per-1 || index == last) {
					return
				}
				index++
			}
		}
	}
}
