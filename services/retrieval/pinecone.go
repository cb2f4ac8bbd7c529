// File: services/retrieval/pinecone.go
package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"adeonabot/models"
)

// IndexVector is one vector prepared for upsert into the index.
type IndexVector struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// PineconeIndex talks to a Pinecone serverless index over its REST API.
type PineconeIndex struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewPineconeIndex creates a client for the given index host
// (e.g. "https://my-index-abc123.svc.us-east-1.pinecone.io").
func NewPineconeIndex(apiKey, indexHost string) *PineconeIndex {
	return &PineconeIndex{
		apiKey:  apiKey,
		baseURL: indexHost,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

type pineconeQueryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	Namespace       string    `json:"namespace,omitempty"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type pineconeMatch struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata"`
}

type pineconeQueryResponse struct {
	Matches []pineconeMatch `json:"matches"`
}

// Query returns the topK nearest chunks in the given namespace.
func (p *PineconeIndex) Query(ctx context.Context, vector []float32, topK int, namespace string) ([]models.KnowledgeChunk, error) {
	reqBody := pineconeQueryRequest{
		Vector:          vector,
		TopK:            topK,
		Namespace:       namespace,
		IncludeMetadata: true,
	}

	var resp pineconeQueryResponse
	if err := p.post(ctx, "/query", reqBody, &resp); err != nil {
		return nil, err
	}

	results := make([]models.KnowledgeChunk, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		results = append(results, models.KnowledgeChunk{
			Text:       m.Metadata["text"],
			Score:      m.Score,
			SourceKind: models.SourceLocal,
			Metadata:   m.Metadata,
		})
	}
	return results, nil
}

type pineconeUpsertRequest struct {
	Vectors   []IndexVector `json:"vectors"`
	Namespace string        `json:"namespace,omitempty"`
}

// Upsert writes a batch of vectors into the given namespace.
func (p *PineconeIndex) Upsert(ctx context.Context, vectors []IndexVector, namespace string) error {
	reqBody := pineconeUpsertRequest{Vectors: vectors, Namespace: namespace}
	return p.post(ctx, "/vectors/upsert", reqBody, nil)
}

func (p *PineconeIndex) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal pinecone request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("build pinecone request: %w", err)
	}
	req.Header.Set("Api-Key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("pinecone request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pinecone returned status %d", resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode pinecone response: %w", err)
		}
	}
	return nil
}
