package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"adeonabot/models"
)

type recordingIndex struct {
	upserts [][]IndexVector
}

func (r *recordingIndex) Query(ctx context.Context, vector []float32, topK int, namespace string) ([]models.KnowledgeChunk, error) {
	return nil, nil
}

func (r *recordingIndex) Upsert(ctx context.Context, vectors []IndexVector, namespace string) error {
	batch := make([]IndexVector, len(vectors))
	copy(batch, vectors)
	r.upserts = append(r.upserts, batch)
	return nil
}

type selectiveEmbedder struct {
	failOn string
}

func (s *selectiveEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.failOn != "" && strings.Contains(text, s.failOn) {
		return nil, errors.New("embedding failed")
	}
	return []float32{0.5}, nil
}

func TestLoadChunksBatches(t *testing.T) {
	index := &recordingIndex{}
	ix := &Indexer{Embedder: &selectiveEmbedder{}, Index: index}

	chunks := make([]models.ContentChunk, 120)
	for i := range chunks {
		chunks[i] = models.ContentChunk{
			Text:     strings.Repeat("content ", 10),
			PageType: "services",
			Index:    i,
		}
	}

	loaded, err := ix.LoadChunks(context.Background(), chunks)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != 120 {
		t.Fatalf("expected 120 loaded, got %d", loaded)
	}
	if len(index.upserts) != 3 {
		t.Fatalf("expected 3 batches (50+50+20), got %d", len(index.upserts))
	}
	if len(index.upserts[2]) != 20 {
		t.Fatalf("final batch should hold 20 vectors, got %d", len(index.upserts[2]))
	}

	first := index.upserts[0][0]
	if !strings.HasPrefix(first.ID, "local_services_0_") {
		t.Fatalf("unexpected vector id %q", first.ID)
	}
	if first.Metadata["page_type"] != "services" || first.Metadata["text"] == "" {
		t.Fatalf("metadata incomplete: %+v", first.Metadata)
	}
}

func TestLoadChunksSkipsFailedEmbeddings(t *testing.T) {
	index := &recordingIndex{}
	ix := &Indexer{Embedder: &selectiveEmbedder{failOn: "poison"}, Index: index}

	chunks := []models.ContentChunk{
		{Text: "healthy chunk of content", PageType: "home", Index: 0},
		{Text: "poison chunk that cannot embed", PageType: "home", Index: 1},
		{Text: "another healthy chunk", PageType: "home", Index: 2},
	}

	loaded, err := ix.LoadChunks(context.Background(), chunks)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != 2 {
		t.Fatalf("expected 2 loaded, got %d", loaded)
	}
}

func TestLoadChunksTruncatesLongText(t *testing.T) {
	index := &recordingIndex{}
	ix := &Indexer{Embedder: &selectiveEmbedder{}, Index: index}

	long := strings.Repeat("a", 5000)
	if _, err := ix.LoadChunks(context.Background(), []models.ContentChunk{{Text: long, PageType: "home", Index: 0}}); err != nil {
		t.Fatal(err)
	}
	if got := len(index.upserts[0][0].Metadata["text"]); got != 4000 {
		t.Fatalf("metadata text should truncate to 4000 chars, got %d", got)
	}
}
