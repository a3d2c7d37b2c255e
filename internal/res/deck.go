package res

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
)

// Deck pages embed their card images from this host path. Small list
// thumbnails live under the /img/s/ prefix of the same host and are skipped
// in favor of the full-resolution modal images.
const (
	deckImageHost = "storage.googleapis.com/ka-nabell-card-images/img/card/"
	deckThumbPath = "/img/s/"
)

// DeckEntry is one distinct card on a deck page with its occurrence count
type DeckEntry struct {
	URL    string
	Copies int
}

// FetchDeck downloads a deck page and returns its cards in first-seen order,
// one entry per distinct card with the number of times it appears in the
// list. The deck URL is recorded as the Referer for the image downloads that
// follow, because the image host checks it.
func (l *Loader) FetchDeck(ctx context.Context, deckURL string) ([]DeckEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, deckURL, nil)
	if err != nil {
		return nil, err
	}
	ua := l.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deck page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch deck page %s: HTTP error: %s", deckURL, resp.Status)
	}

	entries, err := ParseDeck(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse deck page %s: %w", deckURL, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no card images found on %s", deckURL)
	}
	if l.Debug {
		fmt.Printf("Found %d distinct cards on %s\n", len(entries), deckURL)
	}

	l.Referer = deckURL
	return entries, nil
}

// ParseDeck walks deck page HTML and collects the full-resolution card
// images: every <img> whose source (src, or the first srcset candidate when
// src is empty) sits under the card image host. Duplicate filenames count as
// extra copies of the same card; the last URL seen for a filename wins.
func ParseDeck(r io.Reader) ([]DeckEntry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var order []string
	counts := make(map[string]int)
	sources := make(map[string]string)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "img") {
			var src, srcset string
			for _, a := range n.Attr {
				if strings.EqualFold(a.Key, "src") {
					src = a.Val
				} else if strings.EqualFold(a.Key, "srcset") {
					srcset = a.Val
				}
			}
			if src == "" {
				if fields := strings.Fields(srcset); len(fields) > 0 {
					src = fields[0]
				}
			}
			if src != "" && strings.Contains(src, deckImageHost) && !strings.Contains(src, deckThumbPath) {
				name := cardFilename(src)
				if counts[name] == 0 {
					order = append(order, name)
				}
				counts[name]++
				sources[name] = src
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	entries := make([]DeckEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, DeckEntry{URL: sources[name], Copies: counts[name]})
	}
	return entries, nil
}

// cardFilename extracts the unescaped base filename that identifies a card
func cardFilename(src string) string {
	parsed, err := url.Parse(src)
	if err != nil {
		return path.Base(src)
	}
	name := path.Base(parsed.Path)
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}
