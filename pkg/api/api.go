package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/proxysheet/proxysheet/internal/layout"
	"github.com/proxysheet/proxysheet/internal/pagination"
	"github.com/proxysheet/proxysheet/internal/render"
	"github.com/proxysheet/proxysheet/internal/render/pdf"
	"github.com/proxysheet/proxysheet/internal/res"
)

// Item is one requested card: where to find the image (file path, remote
// URL, vendor detail-page URL or data URL) and how many copies to print.
type Item struct {
	Source string
	Copies int
}

// ErrNoItems is returned when generation is asked for zero cards
var ErrNoItems = errors.New("no card images to lay out")

// Generator is the main API for turning card images into a print sheet PDF
type Generator struct {
	options Options
	loader  *res.Loader
}

// New creates a generator with default options
func New() *Generator {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a generator with the specified options
func NewWithOptions(options Options) *Generator {
	return &Generator{
		options: options,
		loader:  res.NewLoader(),
	}
}

// WithOptions returns a new generator with the specified options
func (g *Generator) WithOptions(options Options) *Generator {
	return NewWithOptions(options)
}

// WithOption returns a new generator with the specified option set
func (g *Generator) WithOption(option Option) *Generator {
	newOptions := g.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// Close releases the temporary files the generator downloaded
func (g *Generator) Close() error {
	if g.loader == nil {
		return nil
	}
	return g.loader.Close()
}

// ImportDeck fetches a deck page and returns one Item per distinct card,
// with copies matching how often the card appears in the deck.
func (g *Generator) ImportDeck(ctx context.Context, deckURL string) ([]Item, error) {
	g.configureLoader()
	entries, err := g.loader.FetchDeck(ctx, deckURL)
	if err != nil {
		return nil, fmt.Errorf("failed to import deck: %w", err)
	}
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{Source: entry.URL, Copies: entry.Copies})
	}
	return items, nil
}

// GenerateFile lays out every item and writes the PDF to outputPath
func (g *Generator) GenerateFile(items []Item, outputPath string) error {
	if err := g.validateConfig(); err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrNoItems
	}
	g.configureLoader()

	printItems := make([]pagination.Item, 0, len(items))
	ctx := context.Background()
	for i, item := range items {
		if item.Copies < 1 {
			return fmt.Errorf("item %d (%s): %w (got %d)", i, item.Source, pagination.ErrInvalidCopies, item.Copies)
		}
		resource, err := g.loader.Resolve(ctx, item.Source)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", item.Source, err)
		}
		printItems = append(printItems, pagination.Item{Image: resource, Copies: item.Copies})
	}

	page := g.pageSize()
	card := layout.CardSize{Width: g.options.CardWidth, Height: g.options.CardHeight}
	grid := layout.Plan(page, card, g.options.Gap)
	if g.options.Debug {
		fmt.Printf("Planned %s grid: %dx%d (%d slots/page) for %d placements on %d pages\n",
			page.Name, grid.Columns, grid.Rows, grid.SlotsPerPage(),
			pagination.TotalCopies(printItems), pagination.PageCount(printItems, grid))
	}

	doc := pdf.NewDocument(page, pdf.Metadata{
		Title:    g.options.Title,
		Author:   g.options.Author,
		Subject:  g.options.Subject,
		Keywords: g.options.Keywords,
	})
	doc.Debug = g.options.Debug

	renderer := render.New(grid, g.options.Guidelines)
	renderer.Debug = g.options.Debug
	if err := renderer.Run(printItems, doc); err != nil {
		return fmt.Errorf("failed to render sheet: %w", err)
	}
	return doc.Save(outputPath)
}

// Generate lays out every item and writes the PDF to the given writer
func (g *Generator) Generate(items []Item, output io.Writer) error {
	tempFile, err := os.CreateTemp("", "proxysheet-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if err := g.GenerateFile(items, tempFile.Name()); err != nil {
		return err
	}

	if _, err := tempFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to seek temporary file: %w", err)
	}
	if _, err := io.Copy(output, tempFile); err != nil {
		return fmt.Errorf("failed to copy PDF to output: %w", err)
	}
	return nil
}

// GenerateBytes lays out every item and returns the PDF bytes
func (g *Generator) GenerateBytes(items []Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.Generate(items, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// configureLoader pushes the current options into the resource loader
func (g *Generator) configureLoader() {
	if g.loader == nil {
		g.loader = res.NewLoader()
	}
	for _, path := range g.options.ResourcePaths {
		g.loader.AddSearchPath(path)
	}
	if g.options.UserAgent != "" {
		g.loader.UserAgent = g.options.UserAgent
	}
	g.loader.Debug = g.options.Debug
}

// validateConfig checks the layout configuration before any work starts
func (g *Generator) validateConfig() error {
	switch g.options.PageFormat {
	case PageFormatA4, PageFormatA3:
	default:
		return fmt.Errorf("unsupported page format: %q", g.options.PageFormat)
	}
	for _, dim := range []float64{g.options.CardWidth, g.options.CardHeight} {
		if dim <= 0 || dim > MaxCardDimension {
			return fmt.Errorf("card dimensions must lie in (0, %v] mm, got %vx%v",
				MaxCardDimension, g.options.CardWidth, g.options.CardHeight)
		}
	}
	if g.options.Gap < 0 {
		return fmt.Errorf("gap must not be negative, got %v", g.options.Gap)
	}
	return nil
}

func (g *Generator) pageSize() layout.PageSize {
	if g.options.PageFormat == PageFormatA3 {
		return layout.PageSizeA3
	}
	return layout.PageSizeA4
}
