package render

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
)

// Fixed subtitle shared by both document formats.
const documentSubtitle = "Educational Content from Knowledge Graph"

const generatedOnLayout = "January 2, 2006"

type blockKind int

const (
	blockTitle blockKind = iota
	blockSubtitle
	blockPageBreak
	blockHeading
	blockParagraph
	blockSubheading
	blockBullet
	blockCitation
)

// block is one layout element of the paged document. The story is built
// separately from the file write so layout rules stay testable.
type block struct {
	kind blockKind
	text string
}

// buildStory lays out the document deterministically: title block, page
// break, numbered sections in order, and a citations page iff citations
// exist.
func buildStory(title string, content domain.StructuredContent, now time.Time) []block {
	story := []block{
		{blockTitle, title},
		{blockSubtitle, documentSubtitle},
		{blockSubtitle, "Generated on " + now.Format(generatedOnLayout)},
		{blockPageBreak, ""},
	}

	for idx, section := range content.Sections {
		story = append(story, block{blockHeading, fmt.Sprintf("%d. %s", idx+1, section.Title)})

		for _, paragraph := range section.Body.DocumentParagraphs() {
			if strings.TrimSpace(paragraph) == "" {
				continue
			}
			story = append(story, block{blockParagraph, paragraph})
		}

		if len(section.Bullets) > 0 {
			story = append(story, block{blockSubheading, "Key Points:"})
			for _, bullet := range section.Bullets {
				story = append(story, block{blockBullet, bullet})
			}
		}
	}

	if len(content.Citations) > 0 {
		story = append(story, block{blockPageBreak, ""})
		story = append(story, block{blockHeading, "References and Citations"})
		for i, citation := range content.Citations {
			story = append(story, block{blockCitation, fmt.Sprintf("[%d] %s", i+1, citation)})
		}
	}

	return story
}

// RenderPDF writes the paged document into outputDir and returns its path.
// Any assembly fault is returned as an error, never propagated as a panic.
func RenderPDF(outputDir, title string, content domain.StructuredContent, filename string) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf render panic: %v", r)
		}
	}()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := deriveFilename(title, filename, "pdf", time.Now())
	path = filepath.Join(outputDir, name)

	if err := writePDF(path, buildStory(title, content, time.Now())); err != nil {
		return "", err
	}

	log.Printf("[render] pdf written path=%s", path)
	return path, nil
}

func writePDF(path string, story []block) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(25, 25, 25)
	pdf.SetAutoPageBreak(true, 25)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	for _, b := range story {
		switch b.kind {
		case blockTitle:
			pdf.Ln(25)
			pdf.SetFont("Helvetica", "B", 28)
			pdf.SetTextColor(26, 84, 144)
			pdf.MultiCell(0, 12, tr(b.text), "", "C", false)
			pdf.Ln(8)
		case blockSubtitle:
			pdf.SetFont("Helvetica", "I", 14)
			pdf.SetTextColor(85, 85, 85)
			pdf.MultiCell(0, 8, tr(b.text), "", "C", false)
			pdf.Ln(4)
		case blockPageBreak:
			pdf.AddPage()
		case blockHeading:
			pdf.SetFont("Helvetica", "B", 18)
			pdf.SetTextColor(44, 90, 160)
			pdf.MultiCell(0, 9, tr(b.text), "", "L", false)
			pdf.Ln(3)
		case blockParagraph:
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(44, 62, 80)
			pdf.MultiCell(0, 6, tr(b.text), "", "L", false)
			pdf.Ln(3)
		case blockSubheading:
			pdf.SetFont("Helvetica", "B", 14)
			pdf.SetTextColor(52, 73, 94)
			pdf.MultiCell(0, 7, tr(b.text), "", "L", false)
			pdf.Ln(2)
		case blockBullet:
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(192, 57, 43)
			pdf.SetX(pdf.GetX() + 5)
			pdf.MultiCell(0, 6, tr("• "+b.text), "", "L", false)
			pdf.Ln(1)
		case blockCitation:
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(127, 140, 141)
			pdf.SetX(pdf.GetX() + 5)
			pdf.MultiCell(0, 5, tr(b.text), "", "L", false)
			pdf.Ln(1)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
