package layout

// PageSize describes a physical sheet in millimetres. Orientation is part of
// the format: A4 sheets print portrait, A3 sheets landscape.
type PageSize struct {
	Width       float64
	Height      float64
	Name        string
	Orientation string // "P" for portrait, "L" for landscape, as the PDF backend expects
}

// Supported page formats
var (
	PageSizeA4 = PageSize{Width: 210, Height: 297, Name: "A4", Orientation: "P"}
	PageSizeA3 = PageSize{Width: 420, Height: 297, Name: "A3", Orientation: "L"}
)

// CardSize is the physical size of one card in millimetres
type CardSize struct {
	Width  float64
	Height float64
}

// StandardCard is the common trading card size
var StandardCard = CardSize{Width: 63.5, Height: 88.9}

// MaxCardDimension is the upper bound for custom card dimensions in millimetres
const MaxCardDimension = 500.0

// Rect is an axis-aligned rectangle. Which corner of the page (0,0) refers to
// depends on context: the grid produces top-left-origin rects and ToPDFSpace
// converts them to the bottom-left origin of PDF user space.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// ToPDFSpace flips a top-left-origin rect into the bottom-left-origin page
// coordinates consumed by the document backend. Applying the conversion twice
// yields the original rect.
func (p PageSize) ToPDFSpace(r Rect) Rect {
	return Rect{X: r.X, Y: p.Height - r.Y - r.H, W: r.W, H: r.H}
}
