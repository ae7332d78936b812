package structurer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaltareyr/edumind-api/internal/contentgen/llm"
)

// fakeClient scripts CompleteJSON; StartConversation is unused here.
type fakeClient struct {
	reply string
	err   error

	lastSystem string
	lastUser   string
}

func (f *fakeClient) CompleteJSON(_ context.Context, system, user string) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	return f.reply, f.err
}

func (f *fakeClient) StartConversation(string, string, []llm.Tool) llm.Conversation {
	return nil
}

func TestStructureSuccess(t *testing.T) {
	client := &fakeClient{reply: `{"sections":[
		{"title":"Basics","content":["p1","p2"],"bullets":["b1"]},
		{"title":"Advanced","content":"one raw paragraph"}
	]}`}
	s := New(client)

	got := s.Structure(context.Background(), "Graph Theory", "retrieved text", "undergraduates", "document")

	assert.Equal(t, "Graph Theory", got.Title)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "Basics", got.Sections[0].Title)
	assert.Equal(t, []string{"p1", "p2"}, got.Sections[0].Body.DocumentParagraphs())
	assert.Equal(t, []string{"b1"}, got.Sections[0].Bullets)
	assert.True(t, got.Sections[1].Body.IsRaw)
	assert.Equal(t, []string{"Knowledge Graph Database"}, got.Citations)

	assert.Contains(t, client.lastUser, "Graph Theory")
	assert.Contains(t, client.lastUser, "undergraduates")
}

func TestStructureKeepsRetrievedSources(t *testing.T) {
	client := &fakeClient{reply: `{"sections":[{"title":"S","content":["p"]}]}`}
	s := New(client)

	raw := `{"context":"ctx body","sources":["doc-1.pdf","doc-2.pdf"]}`
	got := s.Structure(context.Background(), "T", raw, "students", "document")

	assert.Equal(t, []string{"doc-1.pdf", "doc-2.pdf"}, got.Citations)
	assert.Contains(t, client.lastUser, "ctx body")
	assert.NotContains(t, client.lastUser, `"sources"`)
}

func TestStructureFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		client llm.Client
	}{
		{"call failure", &fakeClient{err: errors.New("boom")}},
		{"malformed reply", &fakeClient{reply: "not json at all"}},
		{"empty sections", &fakeClient{reply: `{"sections":[]}`}},
		{"untitled section", &fakeClient{reply: `{"sections":[{"title":"  ","content":["p"]}]}`}},
		{"nil client", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.client)
			got := s.Structure(context.Background(), "Sorting", "the context", "beginners", "document")

			require.Len(t, got.Sections, 2)
			assert.Equal(t, "Overview", got.Sections[0].Title)
			assert.Equal(t, []string{"This document covers Sorting for beginners."}, got.Sections[0].Body.DocumentParagraphs())
			assert.Equal(t, "Content", got.Sections[1].Title)
			assert.Equal(t, []string{"the context"}, got.Sections[1].Body.DocumentParagraphs())
			assert.Equal(t, []string{}, got.Citations)
		})
	}
}

func TestFallbackTruncatesContext(t *testing.T) {
	long := strings.Repeat("x", 1500)
	got := Fallback("T", long, "students", []string{"s1"})

	require.Len(t, got.Sections, 2)
	body := got.Sections[1].Body.DocumentParagraphs()
	require.Len(t, body, 1)
	assert.Len(t, body[0], 1000)
	assert.Equal(t, []string{"s1"}, got.Citations)
}

func TestFallbackTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("x", 999) + strings.Repeat("é", 500)
	got := Fallback("T", long, "students", nil)

	body := got.Sections[1].Body.DocumentParagraphs()
	require.Len(t, body, 1)
	assert.True(t, utf8.ValidString(body[0]))
	assert.Equal(t, 1000, utf8.RuneCountInString(body[0]))
	assert.Equal(t, "é", string([]rune(body[0])[999]))
}
