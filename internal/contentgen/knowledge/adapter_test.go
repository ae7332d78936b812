package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
)

type stubEngine struct {
	result domain.RetrievalResult
	err    error

	gotQuery string
	gotMode  string
}

func (s *stubEngine) Query(_ context.Context, query, mode string) (domain.RetrievalResult, error) {
	s.gotQuery = query
	s.gotMode = mode
	return s.result, s.err
}

func TestAdapterQuerySuccess(t *testing.T) {
	engine := &stubEngine{result: domain.RetrievalResult{Context: "ctx", Sources: []string{"s"}}}
	adapter := NewAdapter(engine)

	result := adapter.Query(context.Background(), "trees", "weird")

	assert.False(t, result.Failed())
	assert.Equal(t, "trees", result.Query)
	assert.Equal(t, "ctx", result.Context)
	assert.Equal(t, ModeMix, engine.gotMode, "unknown modes normalize before the engine")
}

func TestAdapterQueryFailureBecomesPayload(t *testing.T) {
	adapter := NewAdapter(&stubEngine{err: errors.New("connection refused")})

	result := adapter.Query(context.Background(), "trees", ModeLocal)

	assert.True(t, result.Failed())
	assert.Equal(t, "connection refused", result.Err)
	assert.Equal(t, "trees", result.Query)
	assert.Empty(t, result.Context)
	assert.NotNil(t, result.Sources)
	assert.Empty(t, result.Sources)
}

func TestAdapterNilSourcesNormalized(t *testing.T) {
	adapter := NewAdapter(&stubEngine{result: domain.RetrievalResult{Context: "ctx"}})

	result := adapter.Query(context.Background(), "q", ModeMix)

	assert.NotNil(t, result.Sources)
}

func TestAdapterWithoutEngine(t *testing.T) {
	result := NewAdapter(nil).Query(context.Background(), "q", ModeMix)

	assert.True(t, result.Failed())
	assert.Equal(t, "retrieval engine not configured", result.Err)
}
