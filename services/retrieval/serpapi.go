// File: services/retrieval/serpapi.go
package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SerpAPIClient implements WebSearchProvider using SerpAPI's Google engine,
// scoped to the company domain so results stay on-topic.
type SerpAPIClient struct {
	apiKey  string
	domain  string
	baseURL string
	client  *http.Client
}

func NewSerpAPIClient(apiKey, domain string) *SerpAPIClient {
	return &SerpAPIClient{
		apiKey:  apiKey,
		domain:  domain,
		baseURL: "https://serpapi.com/search",
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

type serpOrganicResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type serpResponse struct {
	OrganicResults []serpOrganicResult `json:"organic_results"`
}

// Search runs a site-scoped query and returns filtered organic hits.
func (s *SerpAPIClient) Search(ctx context.Context, query string) ([]WebHit, error) {
	params := url.Values{}
	params.Set("api_key", s.apiKey)
	params.Set("engine", "google")
	params.Set("q", fmt.Sprintf("site:%s %s", s.domain, query))
	params.Set("num", "10")
	params.Set("hl", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build serpapi request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi returned status %d", resp.StatusCode)
	}

	var data serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode serpapi response: %w", err)
	}

	var hits []WebHit
	for _, r := range data.OrganicResults {
		if !s.isValidHit(r) {
			continue
		}
		hits = append(hits, WebHit{
			Title:   r.Title,
			Snippet: r.Snippet,
			Link:    r.Link,
		})
	}
	return hits, nil
}

// isValidHit filters out off-domain, thin, and error-page results.
func (s *SerpAPIClient) isValidHit(r serpOrganicResult) bool {
	if !strings.Contains(strings.ToLower(r.Link), strings.ToLower(s.domain)) {
		return false
	}
	if len(strings.TrimSpace(r.Snippet)) < 30 {
		return false
	}
	content := strings.ToLower(r.Title + " " + r.Snippet)
	for _, term := range []string{"error", "404", "not found", "under construction"} {
		if strings.Contains(content, term) {
			return false
		}
	}
	return true
}
