package agent

import (
	"sync"

	"github.com/jaltareyr/edumind-api/internal/contentgen/knowledge"
	"github.com/jaltareyr/edumind-api/internal/contentgen/render"
)

// ToolContext carries everything a tool invocation needs for one request:
// the retrieval adapter, the resolved output directory, and render options.
// It is constructed per request and passed explicitly; sharing one across
// concurrent workflows would let their outputs interfere.
type ToolContext struct {
	Adapter   *knowledge.Adapter
	OutputDir string
	Render    render.Options

	mu       sync.Mutex
	rendered []string
	topics   []string
}

// RecordRendered registers a renderer's output path so extraction can read
// it directly instead of mining the agent's prose.
func (tc *ToolContext) RecordRendered(path string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.rendered = append(tc.rendered, path)
}

// RenderedPaths returns the registered output paths in render order.
func (tc *ToolContext) RenderedPaths() []string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return append([]string{}, tc.rendered...)
}

// RecordTopic notes a knowledge query for best-effort topic reporting.
func (tc *ToolContext) RecordTopic(topic string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.topics = append(tc.topics, topic)
}

// Topics returns the queried topics in order.
func (tc *ToolContext) Topics() []string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return append([]string{}, tc.topics...)
}
