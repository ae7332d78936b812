package render

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
)

// SlideKind distinguishes the five slide roles in a generated deck.
type SlideKind int

const (
	SlideTitle SlideKind = iota
	SlideDivider
	SlideContent
	SlideKeyPoints
	SlideCitations
)

// Slide is one rendered slide: a title line plus body lines in order.
type Slide struct {
	Kind  SlideKind
	Title string
	Lines []string
}

// BuildDeck lays the structured content out into slides. The rules here
// determine slide count:
//   - one title slide;
//   - a divider before each section after the first when the deck has more
//     than DividerMinSections sections;
//   - section content packed greedily into chunks of at most
//     MaxItemsPerSlide items, except that an item longer than LongItemChars
//     flushes any pending chunk and takes a slide of its own;
//   - a key-points slide per section with bullets (first MaxKeyPoints);
//   - one citations slide iff citations exist (first MaxCitationsPerSlide).
func BuildDeck(title string, content domain.StructuredContent, opts Options, now time.Time) []Slide {
	opts = opts.normalized()

	deck := []Slide{{
		Kind:  SlideTitle,
		Title: title,
		Lines: []string{documentSubtitle, "Generated on " + now.Format(generatedOnLayout)},
	}}

	for idx, section := range content.Sections {
		sectionIndex := idx + 1

		if sectionIndex > 1 && len(content.Sections) > opts.DividerMinSections {
			deck = append(deck, Slide{Kind: SlideDivider, Title: section.Title})
		}

		chunks := packChunks(section.Body.SlideItems(), opts)
		for chunkIdx, chunk := range chunks {
			slideTitle := section.Title
			if len(chunks) > 1 {
				slideTitle = fmt.Sprintf("%s (%d/%d)", section.Title, chunkIdx+1, len(chunks))
			}
			deck = append(deck, Slide{Kind: SlideContent, Title: slideTitle, Lines: chunk})
		}

		if len(section.Bullets) > 0 {
			bullets := section.Bullets
			if len(bullets) > opts.MaxKeyPoints {
				bullets = bullets[:opts.MaxKeyPoints]
			}
			deck = append(deck, Slide{
				Kind:  SlideKeyPoints,
				Title: section.Title + " - Key Points",
				Lines: bullets,
			})
		}
	}

	if len(content.Citations) > 0 {
		citations := content.Citations
		if len(citations) > opts.MaxCitationsPerSlide {
			citations = citations[:opts.MaxCitationsPerSlide]
		}
		lines := make([]string, 0, len(citations))
		for i, citation := range citations {
			lines = append(lines, fmt.Sprintf("[%d] %s", i+1, citation))
		}
		deck = append(deck, Slide{Kind: SlideCitations, Title: "References and Citations", Lines: lines})
	}

	return deck
}

// packChunks applies the greedy packing rule in item order.
func packChunks(items []string, opts Options) [][]string {
	var chunks [][]string
	var current []string

	for _, item := range items {
		if utf8.RuneCountInString(item) > opts.LongItemChars {
			if len(current) > 0 {
				chunks = append(chunks, current)
				current = nil
			}
			chunks = append(chunks, []string{item})
			continue
		}
		current = append(current, item)
		if len(current) >= opts.MaxItemsPerSlide {
			chunks = append(chunks, current)
			current = nil
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

// RenderPPT writes the slide deck into outputDir and returns its path. Any
// assembly fault is returned as an error, never propagated as a panic.
func RenderPPT(outputDir, title string, content domain.StructuredContent, filename string, opts Options) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ppt render panic: %v", r)
		}
	}()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := deriveFilename(title, filename, "pptx", time.Now())
	path = filepath.Join(outputDir, name)

	deck := BuildDeck(title, content, opts, time.Now())
	if err := writePPTX(path, deck); err != nil {
		return "", err
	}

	log.Printf("[render] pptx written path=%s slides=%d", path, len(deck))
	return path, nil
}
