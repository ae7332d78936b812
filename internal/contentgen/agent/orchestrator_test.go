package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
	"github.com/jaltareyr/edumind-api/internal/contentgen/knowledge"
	"github.com/jaltareyr/edumind-api/internal/contentgen/llm"
	"github.com/jaltareyr/edumind-api/internal/contentgen/render"
)

// scriptedConv replays a fixed sequence of turns; once exhausted it keeps
// returning the last one, which lets budget-exhaustion tests loop forever.
type scriptedConv struct {
	turns   []llm.Turn
	nextErr error

	idx     int
	results []string
}

func (c *scriptedConv) Next(context.Context) (llm.Turn, error) {
	if c.nextErr != nil {
		return llm.Turn{}, c.nextErr
	}
	turn := c.turns[c.idx]
	if c.idx < len(c.turns)-1 {
		c.idx++
	}
	return turn, nil
}

func (c *scriptedConv) AppendToolResult(_, content string) {
	c.results = append(c.results, content)
}

type fakeLLM struct {
	conv *scriptedConv

	tools  []llm.Tool
	system string
}

func (f *fakeLLM) CompleteJSON(context.Context, string, string) (string, error) {
	return `{"sections":[{"title":"S","content":["p"]}]}`, nil
}

func (f *fakeLLM) StartConversation(system, _ string, tools []llm.Tool) llm.Conversation {
	f.system = system
	f.tools = tools
	return f.conv
}

type fakeEngine struct {
	result domain.RetrievalResult
	err    error

	queries []string
}

func (f *fakeEngine) Query(_ context.Context, query, _ string) (domain.RetrievalResult, error) {
	f.queries = append(f.queries, query)
	return f.result, f.err
}

func newToolContext(t *testing.T, engine knowledge.Engine) *ToolContext {
	t.Helper()
	return &ToolContext{
		Adapter:   knowledge.NewAdapter(engine),
		OutputDir: t.TempDir(),
		Render:    render.DefaultOptions(),
	}
}

func TestStepBudget(t *testing.T) {
	tests := []struct {
		name         string
		requirements string
		want         int
	}{
		{"empty hits the floor", "", 15},
		{"three topics hit the floor", "A, B, C", 15},
		{"eight topics scale", "a,b,c,d,e,f,g,h", 22},
		{"many topics hit the ceiling", strings.Repeat("t,", 24) + "t", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StepBudget(tt.requirements))
		})
	}
}

func TestRunToolLoopThenFinalText(t *testing.T) {
	engine := &fakeEngine{result: domain.RetrievalResult{Context: "ctx", Sources: []string{"s1"}}}
	conv := &scriptedConv{turns: []llm.Turn{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: toolQueryKnowledge, Arguments: `{"query":"graph theory","mode":"local"}`}}},
		{Content: "  Done generating.  "},
	}}
	client := &fakeLLM{conv: conv}
	tc := newToolContext(t, engine)

	result, err := New(client).Run(context.Background(), domain.GenerationRequest{
		Requirements: "graph theory",
		IncludePDF:   true,
		IncludePPT:   true,
	}, tc)

	require.NoError(t, err)
	assert.Equal(t, "Done generating.", result.FinalText)
	assert.Equal(t, 2, result.Steps)
	assert.False(t, result.BudgetExceeded)
	assert.NotEmpty(t, result.TraceID)

	assert.Equal(t, []string{"graph theory"}, engine.queries)
	assert.Equal(t, []string{"graph theory"}, tc.Topics())
	require.Len(t, conv.results, 1)
	assert.Contains(t, conv.results[0], `"context":"ctx"`)
}

func TestRunBudgetExceededKeepsRenderedFiles(t *testing.T) {
	contentJSON := `{"title":"T","sections":[{"title":"S","content":["p"]}],"citations":[]}`
	args := fmt.Sprintf(`{"title":"T","content_json":%q,"filename":"out.pdf"}`, contentJSON)
	conv := &scriptedConv{turns: []llm.Turn{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: toolRenderPDF, Arguments: args}}},
	}}
	client := &fakeLLM{conv: conv}
	tc := newToolContext(t, &fakeEngine{})

	result, err := New(client).Run(context.Background(), domain.GenerationRequest{
		Requirements: "short",
		IncludePDF:   true,
	}, tc)

	require.NoError(t, err)
	assert.True(t, result.BudgetExceeded)
	assert.Empty(t, result.FinalText)
	// One render per budgeted step; the work survives the exhausted loop.
	assert.Len(t, tc.RenderedPaths(), 15)
	assert.FileExists(t, tc.RenderedPaths()[0])
}

func TestRunConversationFailure(t *testing.T) {
	client := &fakeLLM{conv: &scriptedConv{nextErr: errors.New("upstream down")}}
	tc := newToolContext(t, &fakeEngine{})

	_, err := New(client).Run(context.Background(), domain.GenerationRequest{Requirements: "x"}, tc)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestRunWithoutClient(t *testing.T) {
	tc := newToolContext(t, &fakeEngine{})

	result, err := New(nil).Run(context.Background(), domain.GenerationRequest{Requirements: "x"}, tc)

	require.Error(t, err)
	assert.NotEmpty(t, result.TraceID)
}

func TestToolDefinitionsFollowFormatFlags(t *testing.T) {
	names := func(tools []llm.Tool) []string {
		var out []string
		for _, tool := range tools {
			out = append(out, tool.Name)
		}
		return out
	}

	both := (&toolSet{includePDF: true, includePPT: true}).definitions()
	assert.Equal(t, []string{toolQueryKnowledge, toolStructureContent, toolRenderPDF, toolRenderPPT}, names(both))

	pdfOnly := (&toolSet{includePDF: true}).definitions()
	assert.Equal(t, []string{toolQueryKnowledge, toolStructureContent, toolRenderPDF}, names(pdfOnly))

	neither := (&toolSet{}).definitions()
	assert.Equal(t, []string{toolQueryKnowledge, toolStructureContent}, names(neither))
}

func TestExecuteReportsFailuresInline(t *testing.T) {
	ts := &toolSet{tc: newToolContext(t, &fakeEngine{err: errors.New("engine down")})}

	t.Run("unknown tool", func(t *testing.T) {
		out := ts.execute(context.Background(), llm.ToolCall{Name: "mystery"})
		assert.JSONEq(t, `{"error":"unknown tool: mystery"}`, out)
	})

	t.Run("missing query argument", func(t *testing.T) {
		out := ts.execute(context.Background(), llm.ToolCall{Name: toolQueryKnowledge, Arguments: `{}`})
		assert.Contains(t, out, "requires a query argument")
	})

	t.Run("engine failure becomes payload", func(t *testing.T) {
		out := ts.execute(context.Background(), llm.ToolCall{Name: toolQueryKnowledge, Arguments: `{"query":"q"}`})
		assert.Contains(t, out, `"error":"engine down"`)
	})

	t.Run("bad content json", func(t *testing.T) {
		out := ts.execute(context.Background(), llm.ToolCall{Name: toolRenderPDF, Arguments: `{"title":"T","content_json":"not json"}`})
		assert.Contains(t, out, "not valid structured content")
	})
}
