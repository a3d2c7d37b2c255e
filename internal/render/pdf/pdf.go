package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"

	"github.com/proxysheet/proxysheet/internal/layout"
	"github.com/proxysheet/proxysheet/internal/pagination"
)

// Metadata carries the PDF document information fields
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
}

// Document implements render.Document over an fpdf canvas. fpdf puts its
// origin at the top-left corner of the page, so the bottom-left coordinates
// the renderer hands in are flipped back before every draw call.
type Document struct {
	pdf        *fpdf.Fpdf
	page       layout.PageSize
	registered map[string]bool
	// Debug enables verbose logging to stdout
	Debug bool
}

// NewDocument creates an empty document sized to the given page format
func NewDocument(page layout.PageSize, meta Metadata) *Document {
	p := fpdf.New(page.Orientation, "mm", page.Name, "")
	p.SetAutoPageBreak(false, 0)
	p.SetMargins(0, 0, 0)
	p.SetTitle(meta.Title, true)
	p.SetAuthor(meta.Author, true)
	p.SetSubject(meta.Subject, true)
	p.SetKeywords(meta.Keywords, true)
	p.SetCreator("proxysheet", true)
	p.SetProducer("proxysheet", true)
	p.SetFillColor(0, 0, 0)

	return &Document{
		pdf:        p,
		page:       page,
		registered: make(map[string]bool),
	}
}

// flipY converts a bottom-left-origin y into fpdf's top-left space
func (d *Document) flipY(y, h float64) float64 {
	return d.page.Height - y - h
}

// DrawImage places an encoded card image. Each distinct resource registers
// with the canvas once and is referenced by key afterwards, so repeated
// copies of one card do not re-embed the image data.
func (d *Document) DrawImage(img pagination.CardImage, x, y, w, h float64) error {
	name := img.Key()
	options := fpdf.ImageOptions{ImageType: img.ImageType()}

	if !d.registered[name] {
		d.pdf.RegisterImageOptionsReader(name, options, img.Reader())
		if d.pdf.Err() {
			return fmt.Errorf("failed to register image %s: %w", name, d.pdf.Error())
		}
		d.registered[name] = true
		if d.Debug {
			fmt.Printf("Registered image %s (%s)\n", name, options.ImageType)
		}
	}

	d.pdf.ImageOptions(name, x, d.flipY(y, h), w, h, false, options, 0, "")
	if d.pdf.Err() {
		return fmt.Errorf("failed to place image %s: %w", name, d.pdf.Error())
	}
	return nil
}

// FillRect draws a filled black rectangle, used for cut guidelines. Rects
// that extend past the page edge are clipped by the viewer.
func (d *Document) FillRect(x, y, w, h float64) {
	d.pdf.Rect(x, d.flipY(y, h), w, h, "F")
}

// NewPage opens the next page of the document
func (d *Document) NewPage() {
	d.pdf.AddPage()
}

// PageCount returns the number of pages opened so far
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// Save finalizes the document and writes it to outputPath, creating the
// output directory if needed. The document cannot be drawn into afterwards.
func (d *Document) Save(outputPath string) error {
	outputDir := filepath.Dir(outputPath)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return d.pdf.OutputFileAndClose(outputPath)
}
