package res

import (
	"net/url"
	"path"
	"strings"
)

// VendorBaseURL is the card database site whose pages users drag images from
const VendorBaseURL = "https://dm.takaratomy.co.jp"

const vendorThumbPath = "/wp-content/card/cardthumb/"

// RewriteVendorURL applies the vendor's URL conventions: root-relative paths
// gain the base URL, and card detail-page URLs carrying an id query are
// rewritten to the card thumbnail image they display. Anything else passes
// through unchanged.
func RewriteVendorURL(base, source string) string {
	if base != "" && strings.HasPrefix(source, "/") {
		source = base + source
	}
	if !strings.Contains(source, "card/detail/") {
		return source
	}
	parsed, err := url.Parse(source)
	if err != nil {
		return source
	}
	id := parsed.Query().Get("id")
	if id == "" {
		return source
	}
	return base + vendorThumbPath + id + ".jpg"
}

// CandidateURLs returns the download URLs to try in order. A URL that already
// names a file extension is the only candidate; an extensionless one probes
// the common card image extensions.
func CandidateURLs(source string) []string {
	parsed, err := url.Parse(source)
	if err != nil || path.Ext(parsed.Path) != "" {
		return []string{source}
	}
	return []string{source + ".jpg", source + ".png"}
}
