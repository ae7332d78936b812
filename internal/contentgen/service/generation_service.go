package service

import (
	"context"
	"log"
	"path/filepath"

	"github.com/jaltareyr/edumind-api/internal/contentgen/agent"
	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
	"github.com/jaltareyr/edumind-api/internal/contentgen/extract"
	"github.com/jaltareyr/edumind-api/internal/contentgen/knowledge"
	"github.com/jaltareyr/edumind-api/internal/contentgen/render"
)

// GenerationService runs one content-generation workflow per request:
// orchestrate, extract, verify, classify.
type GenerationService struct {
	orchestrator *agent.Orchestrator
	engine       knowledge.Engine
	outputDir    string
	renderOpts   render.Options
}

func NewGenerationService(orchestrator *agent.Orchestrator, engine knowledge.Engine, outputDir string, renderOpts render.Options) *GenerationService {
	if outputDir == "" {
		outputDir = domain.DefaultOutputDir
	}
	return &GenerationService{
		orchestrator: orchestrator,
		engine:       engine,
		outputDir:    outputDir,
		renderOpts:   renderOpts,
	}
}

// Generate executes the workflow and always returns a well-formed outcome.
// Only a fault from the agent runtime yields status=error.
func (s *GenerationService) Generate(ctx context.Context, req domain.GenerationRequest) domain.WorkflowOutcome {
	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = s.outputDir
	}
	if abs, err := filepath.Abs(outputDir); err == nil {
		outputDir = abs
	}

	// Per-request tool context: never shared across workflows.
	tc := &agent.ToolContext{
		Adapter:   knowledge.NewAdapter(s.engine),
		OutputDir: outputDir,
		Render:    s.renderOpts,
	}

	result, err := s.orchestrator.Run(ctx, req, tc)
	if err != nil {
		log.Printf("[service] generation failed trace=%s err=%v", result.TraceID, err)
		return domain.WorkflowOutcome{
			Status:         domain.StatusError,
			Message:        "Content generation failed",
			Error:          err.Error(),
			GeneratedFiles: []string{},
			DownloadURLs:   []string{},
			TopicsCovered:  []string{},
			TraceID:        result.TraceID,
		}
	}

	// Paths registered by the render tools come first; text mining over the
	// agent's summary is the fallback.
	extracted := extract.ExtractAndVerify(result.FinalText, outputDir, tc.RenderedPaths())

	message := extracted.Message
	if result.BudgetExceeded {
		message += " (step budget reached before the agent finished)"
	}

	paths := make([]string, 0, len(extracted.Files))
	for _, f := range extracted.Files {
		paths = append(paths, f.Path)
	}

	urls := extracted.DownloadURLs
	if urls == nil {
		urls = []string{}
	}

	return domain.WorkflowOutcome{
		Status:         extracted.Status,
		Message:        message,
		GeneratedFiles: paths,
		DownloadURLs:   urls,
		TopicsCovered:  tc.Topics(),
		TraceID:        result.TraceID,
	}
}
