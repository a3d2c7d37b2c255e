package res

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// svgRasterSize is the longest edge, in pixels, SVG sources rasterize to.
// Cards print at 63.5mm wide, so this lands near 400dpi.
const svgRasterSize = 1024

// rasterizeSVG renders SVG bytes into a PNG the PDF backend can embed
func rasterizeSVG(data []byte) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = svgRasterSize, svgRasterSize
	}
	scale := svgRasterSize / w
	if h > w {
		scale = svgRasterSize / h
	}
	pw := int(w * scale)
	ph := int(h * scale)
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}

	icon.SetTarget(0, 0, float64(pw), float64(ph))
	rgba := image.NewRGBA(image.Rect(0, 0, pw, ph))
	scanner := rasterx.NewScannerGV(pw, ph, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(pw, ph, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode rasterized SVG: %w", err)
	}
	return buf.Bytes(), nil
}
