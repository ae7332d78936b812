package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
)

// Retrieval modes understood by the knowledge engine.
const (
	ModeLocal  = "local"
	ModeGlobal = "global"
	ModeMix    = "mix"
	ModeNaive  = "naive"
)

// NormalizeMode maps unknown mode strings to the default mix strategy.
func NormalizeMode(mode string) string {
	switch mode {
	case ModeLocal, ModeGlobal, ModeMix, ModeNaive:
		return mode
	default:
		return ModeMix
	}
}

// Engine is a handle to the knowledge-retrieval engine. Implementations
// return either free text or a structured payload normalized into a
// RetrievalResult.
type Engine interface {
	Query(ctx context.Context, query, mode string) (domain.RetrievalResult, error)
}

// HTTPEngine talks to a LightRAG-style /query endpoint.
type HTTPEngine struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewHTTPEngine(baseURL, apiKey string, timeout time.Duration) *HTTPEngine {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HTTPEngine{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type queryRequest struct {
	Query           string `json:"query"`
	Mode            string `json:"mode"`
	OnlyNeedContext bool   `json:"only_need_context"`
}

type queryResponse struct {
	Response string   `json:"response"`
	Context  string   `json:"context"`
	Sources  []string `json:"sources"`
}

func (e *HTTPEngine) Query(ctx context.Context, query, mode string) (domain.RetrievalResult, error) {
	body, _ := json.Marshal(queryRequest{
		Query:           query,
		Mode:            NormalizeMode(mode),
		OnlyNeedContext: true,
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("retrieval request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if e.APIKey != "" {
		httpReq.Header.Set("X-API-Key", e.APIKey)
	}

	resp, err := e.HTTP.Do(httpReq)
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("retrieval query: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("retrieval read: %w", err)
	}
	if resp.StatusCode >= 400 {
		return domain.RetrievalResult{}, fmt.Errorf("retrieval error (status %d)", resp.StatusCode)
	}

	// The engine may answer with structured JSON or with plain text.
	var out queryResponse
	if err := json.Unmarshal(raw, &out); err == nil && (out.Context != "" || out.Response != "") {
		contextText := out.Context
		if contextText == "" {
			contextText = out.Response
		}
		return domain.RetrievalResult{Query: query, Context: contextText, Sources: out.Sources}, nil
	}

	return domain.RetrievalResult{Query: query, Context: string(raw)}, nil
}
