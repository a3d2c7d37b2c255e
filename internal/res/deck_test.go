package res

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const deckPage = `<!DOCTYPE html>
<html><body>
<div class="deck">
  <img src="https://storage.googleapis.com/ka-nabell-card-images/img/card/100001.jpg">
  <img src="https://storage.googleapis.com/ka-nabell-card-images/img/s/100001.jpg">
  <img src="https://storage.googleapis.com/ka-nabell-card-images/img/card/100002.jpg">
  <img src="https://storage.googleapis.com/ka-nabell-card-images/img/card/100001.jpg">
  <img srcset="https://storage.googleapis.com/ka-nabell-card-images/img/card/100001.jpg 2x">
  <img src="https://example.com/banner.png">
</div>
</body></html>`

func TestParseDeck(t *testing.T) {
	entries, err := ParseDeck(strings.NewReader(deckPage))
	if err != nil {
		t.Fatalf("ParseDeck failed: %v", err)
	}

	want := []DeckEntry{
		{URL: "https://storage.googleapis.com/ka-nabell-card-images/img/card/100001.jpg", Copies: 3},
		{URL: "https://storage.googleapis.com/ka-nabell-card-images/img/card/100002.jpg", Copies: 1},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Deck entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDeckEmptyPage(t *testing.T) {
	entries, err := ParseDeck(strings.NewReader("<html><body><p>no cards</p></body></html>"))
	if err != nil {
		t.Fatalf("ParseDeck failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestCardFilename(t *testing.T) {
	got := cardFilename("https://storage.googleapis.com/ka-nabell-card-images/img/card/dm24%20ex.jpg?v=2")
	if got != "dm24 ex.jpg" {
		t.Errorf("Expected unescaped base name, got %q", got)
	}
}
