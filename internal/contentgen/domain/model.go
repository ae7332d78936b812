package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// GenerationRequest is the accepted form of a content-generation call.
// It is immutable once accepted by the service.
type GenerationRequest struct {
	Requirements string `json:"requirements"`
	IncludePDF   bool   `json:"include_pdf"`
	IncludePPT   bool   `json:"include_ppt"`
	OutputDir    string `json:"output_dir,omitempty"`
}

// DefaultOutputDir is used when a request does not name an output directory.
const DefaultOutputDir = "./output"

// RetrievalResult is the normalized outcome of one knowledge-engine call.
// A failed call carries Err plus an empty Context and Sources so the
// orchestrator can keep going.
type RetrievalResult struct {
	Query   string   `json:"query"`
	Context string   `json:"context"`
	Sources []string `json:"sources"`
	Err     string   `json:"error,omitempty"`
}

// Failed reports whether the underlying engine call failed.
func (r RetrievalResult) Failed() bool { return r.Err != "" }

// SectionBody holds a section's prose. Upstream payloads carry it either
// as an ordered list of paragraph strings or as one bare string; both
// shapes round-trip through JSON unchanged.
type SectionBody struct {
	Paragraphs []string
	Raw        string
	IsRaw      bool
}

// UnmarshalJSON accepts either a JSON array of strings or a single string.
func (b *SectionBody) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		b.Raw = s
		b.IsRaw = true
		b.Paragraphs = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	b.Paragraphs = list
	b.Raw = ""
	b.IsRaw = false
	return nil
}

// MarshalJSON emits the body in the same shape it arrived in.
func (b SectionBody) MarshalJSON() ([]byte, error) {
	if b.IsRaw {
		return json.Marshal(b.Raw)
	}
	if b.Paragraphs == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(b.Paragraphs)
}

// DocumentParagraphs returns the body as ordered paragraphs for the paged
// renderer. A raw string body is one paragraph.
func (b SectionBody) DocumentParagraphs() []string {
	if b.IsRaw {
		return []string{b.Raw}
	}
	return b.Paragraphs
}

// SlideItems returns the body as ordered slide items. A raw string body is
// split into sentence-like items on the period character, dropping empties.
func (b SectionBody) SlideItems() []string {
	if !b.IsRaw {
		return b.Paragraphs
	}
	var items []string
	for _, part := range strings.Split(b.Raw, ".") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// IsEmpty reports whether the body holds no renderable text.
func (b SectionBody) IsEmpty() bool {
	if b.IsRaw {
		return strings.TrimSpace(b.Raw) == ""
	}
	return len(b.Paragraphs) == 0
}

// Section is one titled block of structured content. A section with an
// empty body and no bullets still renders as a bare heading.
type Section struct {
	Title   string      `json:"title"`
	Body    SectionBody `json:"content"`
	Bullets []string    `json:"bullets,omitempty"`
}

// StructuredContent is the normalized schema shared by both renderers.
// Section order is significant and preserved through rendering.
type StructuredContent struct {
	Title     string    `json:"title"`
	Sections  []Section `json:"sections"`
	Citations []string  `json:"citations"`
}

// File formats of generated documents.
const (
	FormatPDF  = "pdf"
	FormatPPTX = "pptx"
)

// GeneratedFile is one rendered artifact. Verified is true iff the path
// existed on disk at extraction time.
type GeneratedFile struct {
	Path     string `json:"path"`
	Format   string `json:"format"`
	Verified bool   `json:"verified"`
}

// Workflow outcome statuses.
const (
	StatusSuccess   = "success"
	StatusPartial   = "partial"
	StatusCompleted = "completed"
	StatusError     = "error"
)

// WorkflowOutcome is the caller-facing result of one generation workflow.
type WorkflowOutcome struct {
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	GeneratedFiles []string `json:"generated_files"`
	DownloadURLs   []string `json:"download_urls"`
	TopicsCovered  []string `json:"topics_covered"`
	TraceID        string   `json:"agent_trace_id,omitempty"`
	Error          string   `json:"error,omitempty"`
}
