// File: services/retrieval/cache.go
package retrieval

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"adeonabot/models"
	"adeonabot/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const retrievalCachePrefix = "retrieval:"

// ResultCache keeps recent query results in Redis so repeated questions
// skip the embedding, index, and web-search round trips. Cache failures
// degrade to a miss.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl}
}

type cachedResult struct {
	Chunks       []models.KnowledgeChunk `json:"chunks"`
	UsedFallback bool                    `json:"usedFallback"`
}

func cacheKey(query string, topK int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", query, topK)))
	return retrievalCachePrefix + hex.EncodeToString(sum[:16])
}

// Get returns a cached result set if one exists.
func (c *ResultCache) Get(ctx context.Context, query string, topK int) ([]models.KnowledgeChunk, bool, bool) {
	data, err := c.client.Get(ctx, cacheKey(query, topK)).Result()
	if err == redis.Nil {
		return nil, false, false
	}
	if err != nil {
		utils.GetLogger().Warn("retrieval cache read failed", zap.Error(err))
		return nil, false, false
	}

	var cached cachedResult
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		return nil, false, false
	}
	return cached.Chunks, cached.UsedFallback, true
}

// Put stores a result set with the configured TTL.
func (c *ResultCache) Put(ctx context.Context, query string, topK int, chunks []models.KnowledgeChunk, usedFallback bool) {
	b, err := json.Marshal(cachedResult{Chunks: chunks, UsedFallback: usedFallback})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(query, topK), b, c.ttl).Err(); err != nil {
		utils.GetLogger().Warn("retrieval cache write failed", zap.Error(err))
	}
}
