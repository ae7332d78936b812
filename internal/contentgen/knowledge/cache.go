package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
)

const cacheKeyPrefix = "edumind:retrieval:" // edumind:retrieval:{mode}:{query}

// CachedEngine memoizes retrieval results in Redis. Retrieval calls are the
// expensive part of a workflow, and repeated requests for the same topics
// hit the same queries. Cache failures fall through to the inner engine.
type CachedEngine struct {
	inner  Engine
	client *redis.Client
	ttl    time.Duration
}

func NewCachedEngine(inner Engine, client *redis.Client, ttl time.Duration) *CachedEngine {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CachedEngine{inner: inner, client: client, ttl: ttl}
}

func (c *CachedEngine) Query(ctx context.Context, query, mode string) (domain.RetrievalResult, error) {
	mode = NormalizeMode(mode)
	key := fmt.Sprintf("%s%s:%s", cacheKeyPrefix, mode, query)

	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var cached domain.RetrievalResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	result, err := c.inner.Query(ctx, query, mode)
	if err != nil {
		return result, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Printf("[knowledge] cache write failed key=%s err=%v", key, err)
		}
	}

	return result, nil
}
