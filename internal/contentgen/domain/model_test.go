package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionBodyAcceptsBothShapes(t *testing.T) {
	var listSection Section
	require.NoError(t, json.Unmarshal([]byte(`{"title":"S","content":["p1","p2"]}`), &listSection))
	assert.False(t, listSection.Body.IsRaw)
	assert.Equal(t, []string{"p1", "p2"}, listSection.Body.DocumentParagraphs())

	var rawSection Section
	require.NoError(t, json.Unmarshal([]byte(`{"title":"S","content":"one blob"}`), &rawSection))
	assert.True(t, rawSection.Body.IsRaw)
	assert.Equal(t, []string{"one blob"}, rawSection.Body.DocumentParagraphs())

	var bad Section
	assert.Error(t, json.Unmarshal([]byte(`{"title":"S","content":42}`), &bad))
}

func TestSectionBodyShapePreservedOnMarshal(t *testing.T) {
	out, err := json.Marshal(Section{Title: "S", Body: SectionBody{Raw: "blob", IsRaw: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"S","content":"blob"}`, string(out))

	out, err = json.Marshal(Section{Title: "S", Body: SectionBody{Paragraphs: []string{"a"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"S","content":["a"]}`, string(out))

	out, err = json.Marshal(Section{Title: "S"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"S","content":[]}`, string(out))
}

func TestSectionBodySlideItems(t *testing.T) {
	raw := SectionBody{Raw: "First idea. Second idea.. Third", IsRaw: true}
	assert.Equal(t, []string{"First idea", "Second idea", "Third"}, raw.SlideItems())

	list := SectionBody{Paragraphs: []string{"kept. as-is"}}
	assert.Equal(t, []string{"kept. as-is"}, list.SlideItems())
}

func TestSectionBodyIsEmpty(t *testing.T) {
	assert.True(t, SectionBody{}.IsEmpty())
	assert.True(t, SectionBody{Raw: "   ", IsRaw: true}.IsEmpty())
	assert.False(t, SectionBody{Raw: "x", IsRaw: true}.IsEmpty())
	assert.False(t, SectionBody{Paragraphs: []string{""}}.IsEmpty())
}

func TestRetrievalResultFailed(t *testing.T) {
	assert.False(t, RetrievalResult{Context: "ok"}.Failed())
	assert.True(t, RetrievalResult{Err: "down"}.Failed())
}
