package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
	"github.com/jaltareyr/edumind-api/internal/contentgen/llm"
	"github.com/jaltareyr/edumind-api/internal/contentgen/render"
	"github.com/jaltareyr/edumind-api/internal/contentgen/structurer"
)

// Tool names offered to the agent.
const (
	toolQueryKnowledge   = "query_knowledge_base"
	toolStructureContent = "structure_content"
	toolRenderPDF        = "render_pdf"
	toolRenderPPT        = "render_ppt"
)

// toolSet dispatches the agent's tool calls through a per-request
// ToolContext. Tool failures are reported back to the model as payloads,
// never as loop-breaking errors.
type toolSet struct {
	tc         *ToolContext
	structurer *structurer.Structurer
	includePDF bool
	includePPT bool
}

func (ts *toolSet) definitions() []llm.Tool {
	tools := []llm.Tool{
		{
			Name:        toolQueryKnowledge,
			Description: "Query the knowledge base for information on a topic. Returns retrieved context and source references.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string", "description": "The search query to execute"},
					"mode": map[string]any{
						"type":        "string",
						"enum":        []string{"local", "global", "mix", "naive"},
						"description": "Query mode: local for entity-focused, global for relationship-focused, mix for both (default), naive for plain search",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        toolStructureContent,
			Description: "Format raw retrieved content into structured educational material with sections and citations. Call once with all gathered content.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topic":           map[string]any{"type": "string", "description": "The main topic of the content"},
					"raw_content":     map[string]any{"type": "string", "description": "Raw content gathered from knowledge base queries"},
					"target_audience": map[string]any{"type": "string", "description": "Target audience, e.g. students"},
					"content_type":    map[string]any{"type": "string", "description": "comprehensive, summary, or exam-focused"},
				},
				"required": []string{"topic", "raw_content"},
			},
		},
	}

	renderParams := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":        map[string]any{"type": "string", "description": "Document title"},
			"content_json": map[string]any{"type": "string", "description": "Structured content JSON from structure_content"},
			"filename":     map[string]any{"type": "string", "description": "Optional custom filename"},
		},
		"required": []string{"title", "content_json"},
	}

	if ts.includePDF {
		tools = append(tools, llm.Tool{
			Name:        toolRenderPDF,
			Description: "Generate a formatted PDF document from structured content. Returns the file path.",
			Parameters:  renderParams,
		})
	}
	if ts.includePPT {
		tools = append(tools, llm.Tool{
			Name:        toolRenderPPT,
			Description: "Generate a PowerPoint presentation from structured content. Returns the file path.",
			Parameters:  renderParams,
		})
	}
	return tools
}

func (ts *toolSet) execute(ctx context.Context, call llm.ToolCall) string {
	switch call.Name {
	case toolQueryKnowledge:
		return ts.queryKnowledge(ctx, call.Arguments)
	case toolStructureContent:
		return ts.structureContent(ctx, call.Arguments)
	case toolRenderPDF:
		return ts.render(call.Arguments, domain.FormatPDF)
	case toolRenderPPT:
		return ts.render(call.Arguments, domain.FormatPPTX)
	default:
		return errorPayload(fmt.Sprintf("unknown tool: %s", call.Name))
	}
}

func (ts *toolSet) queryKnowledge(ctx context.Context, arguments string) string {
	var args struct {
		Query string `json:"query"`
		Mode  string `json:"mode"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil || args.Query == "" {
		return errorPayload("query_knowledge_base requires a query argument")
	}

	ts.tc.RecordTopic(args.Query)
	result := ts.tc.Adapter.Query(ctx, args.Query, args.Mode)
	data, _ := json.Marshal(result)
	return string(data)
}

func (ts *toolSet) structureContent(ctx context.Context, arguments string) string {
	var args struct {
		Topic          string `json:"topic"`
		RawContent     string `json:"raw_content"`
		TargetAudience string `json:"target_audience"`
		ContentType    string `json:"content_type"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil || args.Topic == "" {
		return errorPayload("structure_content requires topic and raw_content arguments")
	}
	if args.TargetAudience == "" {
		args.TargetAudience = "students"
	}
	if args.ContentType == "" {
		args.ContentType = "comprehensive"
	}

	content := ts.structurer.Structure(ctx, args.Topic, args.RawContent, args.TargetAudience, args.ContentType)
	data, _ := json.Marshal(content)
	return string(data)
}

func (ts *toolSet) render(arguments, format string) string {
	var args struct {
		Title       string `json:"title"`
		ContentJSON string `json:"content_json"`
		Filename    string `json:"filename"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil || args.Title == "" {
		return errorPayload("render requires title and content_json arguments")
	}

	var content domain.StructuredContent
	if err := json.Unmarshal([]byte(args.ContentJSON), &content); err != nil {
		return errorPayload(fmt.Sprintf("content_json is not valid structured content: %v", err))
	}

	var path string
	var err error
	if format == domain.FormatPDF {
		path, err = render.RenderPDF(ts.tc.OutputDir, args.Title, content, args.Filename)
	} else {
		path, err = render.RenderPPT(ts.tc.OutputDir, args.Title, content, args.Filename, ts.tc.Render)
	}
	if err != nil {
		log.Printf("[agent] render failed format=%s err=%v", format, err)
		return errorPayload(err.Error())
	}

	ts.tc.RecordRendered(path)
	return path
}

func errorPayload(msg string) string {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return string(data)
}
