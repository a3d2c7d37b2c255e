package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/proxysheet/proxysheet"
)

func main() {
	var (
		outputFile string
		pageFormat string
		cardSize   string
		gap        float64
		noGuides   bool
		deckURL    string
		title      string
		verbose    bool
	)

	flag.StringVar(&outputFile, "output", "output.pdf", "Output PDF file path")
	flag.StringVar(&pageFormat, "page", "A4", "Page format: A4 or A3")
	flag.StringVar(&cardSize, "card", "standard", "Card size in mm as WxH, or \"standard\" (63.5x88.9)")
	flag.Float64Var(&gap, "gap", proxysheet.DefaultGap, "Gap between cards in mm; 0 also disables guidelines")
	flag.BoolVar(&noGuides, "no-guides", false, "Disable cut guidelines")
	flag.StringVar(&deckURL, "deck", "", "Deck page URL to import cards from")
	flag.StringVar(&title, "title", "", "PDF document title")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	opts := proxysheet.DefaultOptions()
	switch strings.ToUpper(pageFormat) {
	case "A4":
		opts.PageFormat = proxysheet.PageFormatA4
	case "A3":
		opts.PageFormat = proxysheet.PageFormatA3
	default:
		fmt.Printf("Error: unknown page format %q (use A4 or A3)\n", pageFormat)
		os.Exit(1)
	}
	if !strings.EqualFold(cardSize, "standard") && cardSize != "" {
		width, height, err := parseCardSize(cardSize)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		opts.CardWidth = width
		opts.CardHeight = height
	}
	opts.Gap = gap
	opts.Guidelines = !noGuides
	opts.Title = title
	opts.Debug = verbose

	generator := proxysheet.NewWithOptions(opts)
	defer generator.Close()

	var items []proxysheet.Item
	if deckURL != "" {
		deckItems, err := generator.ImportDeck(context.Background(), deckURL)
		if err != nil {
			fmt.Printf("Error importing deck: %v\n", err)
			os.Exit(1)
		}
		items = deckItems
	}
	for _, arg := range flag.Args() {
		source, copies := parseItemArg(arg)
		items = append(items, proxysheet.Item{Source: source, Copies: copies})
	}

	if len(items) == 0 {
		fmt.Println("Error: no card images given (pass image paths or -deck)")
		flag.Usage()
		os.Exit(1)
	}

	if err := generator.GenerateFile(items, outputFile); err != nil {
		fmt.Printf("Error generating sheet: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		fmt.Printf("Wrote %s\n", outputFile)
	}
}

// parseCardSize parses "63.5x88.9" into width and height in millimetres
func parseCardSize(s string) (float64, float64, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("card size must be WxH in mm, got %q", s)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid card width %q", parts[0])
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid card height %q", parts[1])
	}
	return width, height, nil
}

// parseItemArg parses "source" or "source=copies". A trailing "=..." that is
// not a number stays part of the source, since URLs carry query parameters.
func parseItemArg(arg string) (string, int) {
	if i := strings.LastIndex(arg, "="); i >= 0 {
		if n, err := strconv.Atoi(arg[i+1:]); err == nil {
			return arg[:i], n
		}
	}
	return arg, 1
}
