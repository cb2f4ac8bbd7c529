// File: services/generation/gemini.go
package generation

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Service is the natural-language generation boundary: prompt in, text out.
type Service interface {
	Generate(ctx context.Context, pc PromptContext) (string, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}

type GeminiClient struct {
	model    *genai.GenerativeModel
	embedder *genai.EmbeddingModel
}

func NewGeminiClient(apiKey, modelName, embeddingModelName string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		model:    client.GenerativeModel(modelName),
		embedder: client.EmbeddingModel(embeddingModelName),
	}, nil
}

// Generate renders the prompt context and produces a response.
func (g *GeminiClient) Generate(ctx context.Context, pc PromptContext) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(pc.Render()))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// Embed produces an embedding vector for the given text.
func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := g.embedder.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed error: %w", err)
	}
	if resp.Embedding == nil {
		return nil, fmt.Errorf("gemini returned no embedding")
	}
	return resp.Embedding.Values, nil
}
