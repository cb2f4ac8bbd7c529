// File: services/retrieval/indexer.go
package retrieval

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"adeonabot/models"
	"adeonabot/utils"

	"go.uber.org/zap"
)

const upsertBatchSize = 50

// Indexer loads local content chunks into the knowledge index. Used at
// bootstrap and by the admin reload endpoint.
type Indexer struct {
	Embedder Embedder
	Index    KnowledgeIndex
}

// LoadChunks embeds and upserts chunks into the local namespace in
// batches. Chunks that fail to embed are skipped, not fatal.
func (ix *Indexer) LoadChunks(ctx context.Context, chunks []models.ContentChunk) (int, error) {
	logger := utils.GetLogger()

	var batch []IndexVector
	loaded := 0

	for _, chunk := range chunks {
		vector, err := ix.Embedder.Embed(ctx, chunk.Text)
		if err != nil {
			logger.Warn("embedding failed for chunk, skipping",
				zap.String("pageType", chunk.PageType), zap.Int("index", chunk.Index), zap.Error(err))
			continue
		}

		sum := md5.Sum([]byte(chunk.Text))
		text := chunk.Text
		if len(text) > 4000 {
			text = text[:4000]
		}
		batch = append(batch, IndexVector{
			ID:     fmt.Sprintf("local_%s_%d_%s", chunk.PageType, chunk.Index, hex.EncodeToString(sum[:])[:8]),
			Values: vector,
			Metadata: map[string]string{
				"text":      text,
				"page_type": chunk.PageType,
				"loaded_at": time.Now().Format(time.RFC3339),
			},
		})

		if len(batch) >= upsertBatchSize {
			if err := ix.Index.Upsert(ctx, batch, LocalNamespace); err != nil {
				return loaded, fmt.Errorf("upsert batch: %w", err)
			}
			loaded += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := ix.Index.Upsert(ctx, batch, LocalNamespace); err != nil {
			return loaded, fmt.Errorf("upsert final batch: %w", err)
		}
		loaded += len(batch)
	}

	logger.Info("knowledge index loaded", zap.Int("vectors", loaded))
	return loaded, nil
}
