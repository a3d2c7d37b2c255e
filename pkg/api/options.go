package api

// Options represents configuration options for sheet generation
type Options struct {
	// Page format; orientation is fixed per format (A4 portrait, A3 landscape)
	PageFormat PageFormat

	// Physical card size in millimetres
	CardWidth  float64
	CardHeight float64

	// Gap between adjacent cards in millimetres; also the guideline thickness
	Gap float64

	// Guidelines toggles cut guideline drawing. A zero Gap suppresses
	// guidelines regardless of this flag.
	Guidelines bool

	// Debug enables verbose logging
	Debug bool

	// Resource paths to search for bare image filenames
	ResourcePaths []string

	// UserAgent overrides the default browser user agent on remote fetches
	UserAgent string

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string
}

// Option is a function that modifies Options
type Option func(*Options)

// PageFormat represents a supported sheet format
type PageFormat string

const (
	// PageFormatA4 is a portrait A4 sheet, 210x297mm
	PageFormatA4 PageFormat = "A4"
	// PageFormatA3 is a landscape A3 sheet, 420x297mm
	PageFormatA3 PageFormat = "A3"
)

// Standard physical sizes in millimetres
const (
	// StandardCardWidth and StandardCardHeight are the common trading card size
	StandardCardWidth  = 63.5
	StandardCardHeight = 88.9

	// MaxCardDimension bounds custom card dimensions
	MaxCardDimension = 500.0

	// DefaultGap is the default inter-card spacing
	DefaultGap = 1.0
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		PageFormat: PageFormatA4,
		CardWidth:  StandardCardWidth,
		CardHeight: StandardCardHeight,
		Gap:        DefaultGap,
		Guidelines: true,

		Debug: false,

		ResourcePaths: []string{},
	}
}

// WithPageFormat sets the page format
func WithPageFormat(format PageFormat) Option {
	return func(o *Options) {
		o.PageFormat = format
	}
}

// WithPageFormatA4 sets the page format to portrait A4
func WithPageFormatA4() Option {
	return WithPageFormat(PageFormatA4)
}

// WithPageFormatA3 sets the page format to landscape A3
func WithPageFormatA3() Option {
	return WithPageFormat(PageFormatA3)
}

// WithCardSize sets a custom card size in millimetres
func WithCardSize(width, height float64) Option {
	return func(o *Options) {
		o.CardWidth = width
		o.CardHeight = height
	}
}

// WithStandardCardSize sets the standard trading card size
func WithStandardCardSize() Option {
	return WithCardSize(StandardCardWidth, StandardCardHeight)
}

// WithGap sets the inter-card gap in millimetres
func WithGap(gap float64) Option {
	return func(o *Options) {
		o.Gap = gap
	}
}

// WithGuidelines sets whether cut guidelines are drawn
func WithGuidelines(enabled bool) Option {
	return func(o *Options) {
		o.Guidelines = enabled
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithResourcePath adds a path to search for images
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithUserAgent sets the user agent for remote fetches
func WithUserAgent(userAgent string) Option {
	return func(o *Options) {
		o.UserAgent = userAgent
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}
