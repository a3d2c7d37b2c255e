package res

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestResolveLocalFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "card.png", encodePNG(t, 4, 6))

	l := NewLoader()
	res, err := l.Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Format != "png" {
		t.Errorf("Expected png format, got %s", res.Format)
	}
	if res.ImageType() != "PNG" {
		t.Errorf("Expected image type PNG, got %s", res.ImageType())
	}
	if res.Width != 4 || res.Height != 6 {
		t.Errorf("Expected 4x6 pixels, got %dx%d", res.Width, res.Height)
	}
	if res.Key() != path {
		t.Errorf("Expected key %q, got %q", path, res.Key())
	}
}

func TestResolveCaches(t *testing.T) {
	path := writeFile(t, t.TempDir(), "card.png", encodePNG(t, 2, 2))

	l := NewLoader()
	first, err := l.Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, err := l.Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Second resolve failed: %v", err)
	}
	if first != second {
		t.Error("Expected cached resource on second resolve")
	}
}

func TestResolveSearchPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "card.png", encodePNG(t, 2, 2))

	l := NewLoader()
	l.AddSearchPath(dir)
	res, err := l.Resolve(context.Background(), "card.png")
	if err != nil {
		t.Fatalf("Resolve via search path failed: %v", err)
	}
	if res.Path != filepath.Join(dir, "card.png") {
		t.Errorf("Expected path in search dir, got %s", res.Path)
	}
}

func TestResolveMissingFile(t *testing.T) {
	l := NewLoader()
	if _, err := l.Resolve(context.Background(), "no-such-card.png"); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestResolveRejectsNonImage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "card.png", []byte("not an image"))

	l := NewLoader()
	_, err := l.Resolve(context.Background(), path)
	if err == nil {
		t.Fatal("Expected error for undecodable data")
	}
}

func TestResolveDataURL(t *testing.T) {
	data := encodePNG(t, 3, 3)
	source := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)

	l := NewLoader()
	res, err := l.Resolve(context.Background(), source)
	if err != nil {
		t.Fatalf("Resolve data URL failed: %v", err)
	}
	if res.Format != "png" || res.Width != 3 {
		t.Errorf("Expected 3px png, got %dpx %s", res.Width, res.Format)
	}
}

// Formats the PDF backend cannot embed re-encode to PNG at resolve time
func TestResolveReencodesBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	path := writeFile(t, t.TempDir(), "card.bmp", buf.Bytes())

	l := NewLoader()
	res, err := l.Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Format != "png" {
		t.Errorf("Expected bmp to re-encode as png, got %s", res.Format)
	}
	if _, format, err := image.DecodeConfig(res.Reader()); err != nil || format != "png" {
		t.Errorf("Expected resource bytes to decode as png, got %s (%v)", format, err)
	}
}

func TestResolveSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="20" viewBox="0 0 10 20"><rect width="10" height="20" fill="#336699"/></svg>`)
	path := writeFile(t, t.TempDir(), "card.svg", svg)

	l := NewLoader()
	res, err := l.Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Resolve SVG failed: %v", err)
	}
	if res.Format != "png" {
		t.Errorf("Expected rasterized png, got %s", res.Format)
	}
	if res.Height <= res.Width {
		t.Errorf("Expected portrait raster preserving aspect, got %dx%d", res.Width, res.Height)
	}
}

func TestResolveRemote(t *testing.T) {
	data := encodePNG(t, 5, 7)
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/cards/foo.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer server.Close()

	l := NewLoader()
	defer l.Close()
	res, err := l.Resolve(context.Background(), server.URL+"/cards/foo.png")
	if err != nil {
		t.Fatalf("Resolve remote failed: %v", err)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("Expected default user agent, got %q", gotUA)
	}
	if res.Width != 5 || res.Height != 7 {
		t.Errorf("Expected 5x7 pixels, got %dx%d", res.Width, res.Height)
	}
	if res.Path == "" {
		t.Fatal("Expected remote resource to spool to disk")
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Errorf("Expected spooled file to exist: %v", err)
	}

	spooled := res.Path
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stat(spooled); !os.IsNotExist(err) {
		t.Errorf("Expected spooled file removed on Close, got %v", err)
	}
}

// An extensionless URL probes .jpg then .png until one succeeds
func TestResolveRemoteCandidateProbing(t *testing.T) {
	data := encodePNG(t, 2, 2)
	var requested []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		if r.URL.Path == "/cards/foo.png" {
			w.Write(data)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	l := NewLoader()
	defer l.Close()
	if _, err := l.Resolve(context.Background(), server.URL+"/cards/foo"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(requested) != 2 || requested[0] != "/cards/foo.jpg" || requested[1] != "/cards/foo.png" {
		t.Errorf("Expected jpg then png probe, got %v", requested)
	}
}

func TestResolveRemoteHTTPError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	l := NewLoader()
	if _, err := l.Resolve(context.Background(), server.URL+"/gone.png"); err == nil {
		t.Fatal("Expected error for HTTP 404")
	}
}
