package knowledge

import (
	"context"
	"log"

	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
)

// Adapter wraps one retrieval call and normalizes success and failure into
// a uniform RetrievalResult. Engine failures never cross this boundary:
// they come back as an inline error payload so the orchestrator can keep
// going. No retries happen here; retry policy belongs to the caller's
// step budget.
type Adapter struct {
	engine Engine
}

func NewAdapter(engine Engine) *Adapter {
	return &Adapter{engine: engine}
}

func (a *Adapter) Query(ctx context.Context, query, mode string) domain.RetrievalResult {
	if a.engine == nil {
		return errorResult(query, "retrieval engine not configured")
	}

	result, err := a.engine.Query(ctx, query, NormalizeMode(mode))
	if err != nil {
		log.Printf("[knowledge] query failed query=%q mode=%s err=%v", query, mode, err)
		return errorResult(query, err.Error())
	}

	result.Query = query
	if result.Sources == nil {
		result.Sources = []string{}
	}
	return result
}

func errorResult(query, msg string) domain.RetrievalResult {
	return domain.RetrievalResult{
		Query:   query,
		Context: "",
		Sources: []string{},
		Err:     msg,
	}
}
