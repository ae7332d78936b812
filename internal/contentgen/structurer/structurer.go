// Package structurer converts raw retrieved text into the section/citation
// schema shared by both renderers. The generative-text reply is untrusted
// input: its shape is validated before use and any failure resolves to a
// deterministic fallback, never an error.
package structurer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
	"github.com/jaltareyr/edumind-api/internal/contentgen/llm"
)

const fallbackContextLimit = 1000

// defaultCitation is attributed when the engine supplied no sources but
// structuring succeeded.
const defaultCitation = "Knowledge Graph Database"

type Structurer struct {
	client llm.Client
}

func New(client llm.Client) *Structurer {
	return &Structurer{client: client}
}

// rawPayload recovers context/sources from a prior retrieval result that
// was serialized into the raw content.
type rawPayload struct {
	Context string   `json:"context"`
	Sources []string `json:"sources"`
}

type llmReply struct {
	Sections []domain.Section `json:"sections"`
}

// Structure produces a StructuredContent for the given topic. It never
// fails: when the generative call or its reply is unusable, the
// deterministic fallback is returned instead.
func (s *Structurer) Structure(ctx context.Context, topic, rawContent, audience, contentType string) domain.StructuredContent {
	contextText := rawContent
	var sources []string

	var payload rawPayload
	if err := json.Unmarshal([]byte(rawContent), &payload); err == nil && payload.Context != "" {
		contextText = payload.Context
		sources = payload.Sources
	}

	sections, err := s.requestSections(ctx, topic, contextText, audience, contentType)
	if err != nil {
		log.Printf("[structurer] falling back topic=%q err=%v", topic, err)
		return Fallback(topic, contextText, audience, sources)
	}

	citations := sources
	if len(citations) == 0 {
		citations = []string{defaultCitation}
	}

	return domain.StructuredContent{
		Title:     topic,
		Sections:  sections,
		Citations: citations,
	}
}

func (s *Structurer) requestSections(ctx context.Context, topic, contextText, audience, contentType string) ([]domain.Section, error) {
	if s.client == nil {
		return nil, fmt.Errorf("llm client not configured")
	}

	reply, err := s.client.CompleteJSON(ctx, systemPrompt, buildPrompt(topic, contextText, audience, contentType))
	if err != nil {
		return nil, fmt.Errorf("structuring call: %w", err)
	}

	var parsed llmReply
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		return nil, fmt.Errorf("parse structuring reply: %w", err)
	}
	if len(parsed.Sections) == 0 {
		return nil, fmt.Errorf("structuring reply has no sections")
	}
	for _, sec := range parsed.Sections {
		if strings.TrimSpace(sec.Title) == "" {
			return nil, fmt.Errorf("structuring reply has an untitled section")
		}
	}
	return parsed.Sections, nil
}

// Fallback builds the minimal deterministic structure: an overview naming
// topic and audience, plus at most the first 1000 characters of context.
// It has no external dependency and always succeeds.
func Fallback(topic, contextText, audience string, sources []string) domain.StructuredContent {
	excerpt := contextText
	if utf8.RuneCountInString(excerpt) > fallbackContextLimit {
		excerpt = string([]rune(excerpt)[:fallbackContextLimit])
	}

	citations := sources
	if citations == nil {
		citations = []string{}
	}

	return domain.StructuredContent{
		Title: topic,
		Sections: []domain.Section{
			{
				Title: "Overview",
				Body:  domain.SectionBody{Paragraphs: []string{fmt.Sprintf("This document covers %s for %s.", topic, audience)}},
			},
			{
				Title: "Content",
				Body:  domain.SectionBody{Paragraphs: []string{excerpt}},
			},
		},
		Citations: citations,
	}
}
