package res

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultUserAgent is sent on remote fetches; some card image hosts refuse
// requests without a browser user agent.
const DefaultUserAgent = "Mozilla/5.0"

// ErrNotAnImage reports data that does not decode as a supported image
var ErrNotAnImage = errors.New("resource does not decode as an image")

// Resource is a resolved, validated card image. It satisfies the renderer's
// CardImage contract: an opaque, read-only reference to encoded image bytes.
type Resource struct {
	// Source is the string the caller supplied (path, URL or data URL)
	Source string
	// Path is where a spooled copy lives on disk, empty for in-memory sources.
	// Spooled files belong to the Loader and disappear on Close.
	Path string
	// Data holds the encoded bytes in a format the PDF backend can embed
	Data []byte
	// Format is the decode registration name: "png", "jpeg" or "gif"
	Format string
	// Width and Height are the pixel dimensions from the decoded config
	Width  int
	Height int
}

// Key identifies the resource within one document
func (r *Resource) Key() string { return r.Source }

// ImageType names the encoded format the way the PDF backend expects
func (r *Resource) ImageType() string {
	switch r.Format {
	case "jpeg":
		return "JPG"
	case "gif":
		return "GIF"
	default:
		return "PNG"
	}
}

// Reader returns a fresh reader over the encoded image bytes
func (r *Resource) Reader() io.Reader { return bytes.NewReader(r.Data) }

// Loader resolves user-supplied sources into validated card image resources.
// Local paths, remote URLs (including vendor detail-page URLs), and data URLs
// are supported. One Loader owns one temp spool directory for downloads;
// Close releases it together with every spooled file.
type Loader struct {
	// BaseURL prefixes root-relative sources dropped from a vendor site
	BaseURL string
	// UserAgent overrides DefaultUserAgent on remote fetches when set
	UserAgent string
	// Referer is sent on remote fetches when set; FetchDeck records the deck
	// page here because the card image host checks it
	Referer string
	// Debug enables verbose logging to stdout
	Debug bool

	cache     map[string]*Resource
	cacheLock sync.RWMutex

	searchPaths []string

	client *http.Client

	tempDir  string
	tempLock sync.Mutex
}

// NewLoader creates a new resource loader
func NewLoader() *Loader {
	return &Loader{
		BaseURL:     VendorBaseURL,
		cache:       make(map[string]*Resource),
		searchPaths: []string{},
		client:      &http.Client{},
	}
}

// AddSearchPath adds a directory to search for bare local filenames
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Close removes the spool directory and every downloaded file in it. The
// Loader stays usable; the next download recreates the directory.
func (l *Loader) Close() error {
	l.tempLock.Lock()
	dir := l.tempDir
	l.tempDir = ""
	l.tempLock.Unlock()

	l.cacheLock.Lock()
	l.cache = make(map[string]*Resource)
	l.cacheLock.Unlock()

	if dir == "" {
		return nil
	}
	return os.RemoveAll(dir)
}

// Resolve turns a source string into a validated image resource. Results are
// cached per source, so repeated items resolve and download once.
func (l *Loader) Resolve(ctx context.Context, source string) (*Resource, error) {
	l.cacheLock.RLock()
	if res, ok := l.cache[source]; ok {
		l.cacheLock.RUnlock()
		return res, nil
	}
	l.cacheLock.RUnlock()

	var res *Resource
	var err error
	switch {
	case strings.HasPrefix(source, "data:"):
		res, err = l.resolveDataURL(source)
	case isRemote(l.BaseURL, source):
		res, err = l.resolveRemote(ctx, source)
	default:
		res, err = l.resolveLocal(source)
	}
	if err != nil {
		return nil, err
	}

	l.cacheLock.Lock()
	l.cache[source] = res
	l.cacheLock.Unlock()
	return res, nil
}

func isRemote(base, source string) bool {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return true
	}
	// Root-relative drops from a vendor page resolve against the base URL
	return base != "" && strings.HasPrefix(source, "/") && !filepathExists(source)
}

func filepathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// resolveLocal loads an image from disk, falling back to the search paths
// when the path alone does not exist.
func (l *Loader) resolveLocal(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l.resolveFromSearchPaths(path)
		}
		return nil, err
	}
	return l.finish(path, path, data, isSVGPath(path))
}

// resolveFromSearchPaths tries the registered directories for a bare filename
func (l *Loader) resolveFromSearchPaths(source string) (*Resource, error) {
	base := filepath.Base(source)
	for _, dir := range l.searchPaths {
		path := filepath.Join(dir, base)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return l.finish(source, path, data, isSVGPath(path))
	}
	return nil, fmt.Errorf("image not found: %s", source)
}

// resolveRemote rewrites vendor URLs, then fetches each candidate URL in
// order until one downloads and validates.
func (l *Loader) resolveRemote(ctx context.Context, source string) (*Resource, error) {
	resolved := RewriteVendorURL(l.BaseURL, source)
	if l.Debug && resolved != source {
		fmt.Printf("Rewrote %s to %s\n", source, resolved)
	}

	var lastErr error
	for _, candidate := range CandidateURLs(resolved) {
		data, err := l.fetch(ctx, candidate)
		if err != nil {
			lastErr = err
			continue
		}
		res, err := l.finish(source, "", data, isSVGPath(candidate))
		if err != nil {
			lastErr = err
			continue
		}
		if err := l.spool(res, candidate); err != nil {
			return nil, err
		}
		return res, nil
	}
	return nil, fmt.Errorf("failed to download image %s: %w", source, lastErr)
}

func (l *Loader) fetch(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}
	ua := l.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	if l.Referer != "" {
		req.Header.Set("Referer", l.Referer)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// resolveDataURL decodes an RFC 2397 data URL, e.g. data:image/png;base64,...
func (l *Loader) resolveDataURL(source string) (*Resource, error) {
	meta, dataPart, ok := strings.Cut(strings.TrimPrefix(source, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URL")
	}

	isBase64 := false
	mime := ""
	for i, comp := range strings.Split(meta, ";") {
		if i == 0 {
			mime = comp
		} else if strings.EqualFold(strings.TrimSpace(comp), "base64") {
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(dataPart)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
		data = decoded
	} else {
		if unescaped, err := url.QueryUnescape(dataPart); err == nil {
			data = []byte(unescaped)
		} else {
			data = []byte(dataPart)
		}
	}
	return l.finish(source, "", data, mime == "image/svg+xml")
}

// finish validates raw bytes and normalizes them into a form the PDF backend
// can embed. SVG rasterizes to PNG; raster formats the backend cannot embed
// (webp, bmp, tiff) re-encode to PNG; png/jpeg/gif pass through untouched.
func (l *Loader) finish(source, path string, data []byte, svg bool) (*Resource, error) {
	if svg {
		rasterized, err := rasterizeSVG(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		data = rasterized
	}

	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", source, ErrNotAnImage, err)
	}

	switch format {
	case "png", "jpeg", "gif":
	default:
		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", source, ErrNotAnImage, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, decoded); err != nil {
			return nil, fmt.Errorf("failed to re-encode %s: %w", source, err)
		}
		if l.Debug {
			fmt.Printf("Re-encoded %s from %s to png\n", source, format)
		}
		data = buf.Bytes()
		format = "png"
	}

	return &Resource{
		Source: source,
		Path:   path,
		Data:   data,
		Format: format,
		Width:  config.Width,
		Height: config.Height,
	}, nil
}

// spool writes a downloaded resource into the loader's temp directory so the
// caller can open it for preview. The file's lifetime is the Loader's.
func (l *Loader) spool(res *Resource, urlStr string) error {
	l.tempLock.Lock()
	if l.tempDir == "" {
		dir, err := os.MkdirTemp("", "proxysheet-")
		if err != nil {
			l.tempLock.Unlock()
			return fmt.Errorf("failed to create spool directory: %w", err)
		}
		l.tempDir = dir
	}
	tempDir := l.tempDir
	l.tempLock.Unlock()

	file, err := os.CreateTemp(tempDir, "card-*."+res.Format)
	if err != nil {
		return fmt.Errorf("failed to spool download: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(res.Data); err != nil {
		return fmt.Errorf("failed to spool download: %w", err)
	}
	res.Path = file.Name()
	if l.Debug {
		fmt.Printf("Spooled %s to %s\n", urlStr, res.Path)
	}
	return nil
}

func isSVGPath(path string) bool {
	if u, err := url.Parse(path); err == nil && u.Path != "" {
		path = u.Path
	}
	return strings.EqualFold(filepath.Ext(path), ".svg")
}
