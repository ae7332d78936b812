// Package agent runs the bounded tool-calling workflow that drives content
// generation. The orchestrator's only externally visible output is the
// agent's final free text plus a trace identifier; recovering structured
// information from it is the caller's job.
package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
	"github.com/jaltareyr/edumind-api/internal/contentgen/llm"
	"github.com/jaltareyr/edumind-api/internal/contentgen/structurer"
)

// Step budget bounds.
const (
	minSteps = 15
	maxSteps = 40
)

// StepBudget computes the per-request bound on orchestration steps. The
// topic count is a rough proxy: comma-separated clauses in the requirements
// plus a constant offset for the format/generate calls.
func StepBudget(requirements string) int {
	estimatedTopics := len(strings.Split(requirements, ",")) + 3
	budget := estimatedTopics * 2
	if budget < minSteps {
		budget = minSteps
	}
	if budget > maxSteps {
		budget = maxSteps
	}
	return budget
}

// Result is the orchestrator's output: the agent's final message, a trace
// identifier, and whether the run hit its step budget before finishing.
type Result struct {
	FinalText      string
	TraceID        string
	Steps          int
	BudgetExceeded bool
}

// Orchestrator owns the reasoning/tool loop against the generative-text
// service.
type Orchestrator struct {
	client     llm.Client
	structurer *structurer.Structurer
}

func New(client llm.Client) *Orchestrator {
	return &Orchestrator{
		client:     client,
		structurer: structurer.New(client),
	}
}

// Run executes the workflow for one request using the given per-request
// tool context. Exceeding the step budget is recoverable: work done so far
// (rendered files, queried topics) stays in the tool context and the
// partial result is returned without error. Only a fault from the agent
// runtime itself is returned as an error.
func (o *Orchestrator) Run(ctx context.Context, req domain.GenerationRequest, tc *ToolContext) (Result, error) {
	result := Result{TraceID: uuid.New().String()}
	if o.client == nil {
		return result, fmt.Errorf("agent runtime: generator client not configured")
	}
	budget := StepBudget(req.Requirements)

	tools := &toolSet{
		tc:         tc,
		structurer: o.structurer,
		includePDF: req.IncludePDF,
		includePPT: req.IncludePPT,
	}

	conv := o.client.StartConversation(buildInstructions(req.IncludePDF, req.IncludePPT), req.Requirements, tools.definitions())

	log.Printf("[agent] workflow start trace=%s budget=%d", result.TraceID, budget)
	start := time.Now()

	for step := 0; step < budget; step++ {
		turn, err := conv.Next(ctx)
		if err != nil {
			return result, fmt.Errorf("agent runtime: %w", err)
		}
		result.Steps = step + 1

		if len(turn.ToolCalls) == 0 {
			result.FinalText = strings.TrimSpace(turn.Content)
			log.Printf("[agent] workflow complete trace=%s steps=%d elapsed=%s",
				result.TraceID, result.Steps, time.Since(start))
			return result, nil
		}

		for _, call := range turn.ToolCalls {
			toolStart := time.Now()
			output := tools.execute(ctx, call)
			log.Printf("[agent] tool=%s step=%d elapsed=%s result_bytes=%d",
				call.Name, step, time.Since(toolStart), len(output))
			conv.AppendToolResult(call.ID, output)
		}
	}

	// Budget exhausted: files already rendered remain on disk and stay
	// eligible for extraction and verification.
	result.BudgetExceeded = true
	log.Printf("[agent] step budget exhausted trace=%s budget=%d rendered=%d",
		result.TraceID, budget, len(tc.RenderedPaths()))
	return result, nil
}
