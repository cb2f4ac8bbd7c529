// File: services/retrieval/orchestrator.go
package retrieval

import (
	"context"
	"sort"
	"strings"
	"time"

	"adeonabot/models"
	"adeonabot/utils"

	"go.uber.org/zap"
)

// Quality tiers for local search results.
const (
	MinSearchScore     = 0.6
	GoodThreshold      = 0.75
	ExcellentThreshold = 0.85

	// LocalNamespace holds the permanently indexed site content.
	LocalNamespace = "adeona_local"

	externalCallTimeout = 15 * time.Second
)

// Embedder turns text into a vector for index queries.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// KnowledgeIndex is the local vector index boundary.
type KnowledgeIndex interface {
	Query(ctx context.Context, vector []float32, topK int, namespace string) ([]models.KnowledgeChunk, error)
	Upsert(ctx context.Context, vectors []IndexVector, namespace string) error
}

// WebHit is one result from the live web-search provider.
type WebHit struct {
	Title   string
	Snippet string
	Link    string
}

// WebSearchProvider is the live search boundary used as fallback.
type WebSearchProvider interface {
	Search(ctx context.Context, query string) ([]WebHit, error)
}

// Orchestrator blends the local knowledge index with a web-search
// fallback, merging and deduplicating into one ranked result set.
type Orchestrator struct {
	Embedder Embedder
	Index    KnowledgeIndex
	Web      WebSearchProvider
	Cache    *ResultCache

	CompanyName string
	AnchorTerms string // appended to service/company queries to bias similarity
}

// SearchWithFallback returns up to topK ranked chunks and whether the web
// fallback was attempted. Failures in either source are treated as empty
// results from that source; a partial outage never aborts the other side.
func (o *Orchestrator) SearchWithFallback(ctx context.Context, query string, topK int) ([]models.KnowledgeChunk, bool, error) {
	logger := utils.GetLogger()

	if o.Cache != nil {
		if chunks, usedFallback, ok := o.Cache.Get(ctx, query, topK); ok {
			return chunks, usedFallback, nil
		}
	}

	expanded := o.expandQuery(query)
	local := o.searchLocal(ctx, expanded, topK)

	if !o.needsFallback(local, query) {
		results := truncate(dedupe(sortByScore(local)), topK)
		o.cachePut(ctx, query, topK, results, false)
		return results, false, nil
	}

	webResults := o.searchWeb(ctx, query)
	logger.Debug("retrieval fallback executed",
		zap.Int("local", len(local)), zap.Int("web", len(webResults)))

	merged := mergeResults(local, webResults)
	results := truncate(merged, topK)
	o.cachePut(ctx, query, topK, results, true)
	return results, true, nil
}

func (o *Orchestrator) cachePut(ctx context.Context, query string, topK int, chunks []models.KnowledgeChunk, usedFallback bool) {
	if o.Cache != nil {
		o.Cache.Put(ctx, query, topK, chunks, usedFallback)
	}
}

// expandQuery substitutes contextual references with the canonical company
// name and appends anchor terms so embeddings land in the right corpus.
func (o *Orchestrator) expandQuery(query string) string {
	lower := strings.ToLower(query)

	replacements := []string{
		"this company", "the company", "your company", "you guys",
	}
	for _, phrase := range replacements {
		if idx := strings.Index(lower, phrase); idx >= 0 {
			query = query[:idx] + o.CompanyName + query[idx+len(phrase):]
			lower = strings.ToLower(query)
		}
	}

	if isServiceRelated(lower) {
		query += " " + o.CompanyName + " " + o.AnchorTerms
	} else if containsAnyWord(lower, "company", "about", "information", "details") {
		query += " " + o.CompanyName + " company information"
	}

	if !strings.Contains(strings.ToLower(query), strings.ToLower(o.CompanyName)) {
		query += " " + o.CompanyName
	}
	return query
}

func (o *Orchestrator) searchLocal(ctx context.Context, expanded string, topK int) []models.KnowledgeChunk {
	logger := utils.GetLogger()

	ectx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	defer cancel()

	vector, err := o.Embedder.Embed(ectx, expanded)
	if err != nil {
		logger.Warn("embedding failed, skipping local search", zap.Error(err))
		return nil
	}

	qctx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	defer cancel()

	candidates, err := o.Index.Query(qctx, vector, topK*2, LocalNamespace)
	if err != nil {
		logger.Warn("local index query failed", zap.Error(err))
		return nil
	}

	var results []models.KnowledgeChunk
	for _, c := range candidates {
		if c.Score >= MinSearchScore {
			c.SourceKind = models.SourceLocal
			results = append(results, c)
		}
	}
	return results
}

// needsFallback decides deterministically whether the web fallback is
// required given the local result set.
func (o *Orchestrator) needsFallback(local []models.KnowledgeChunk, query string) bool {
	if len(local) == 0 {
		return true
	}

	var excellent, good int
	for _, r := range local {
		if r.Score >= ExcellentThreshold {
			excellent++
		}
		if r.Score >= GoodThreshold {
			good++
		}
	}
	if excellent >= 2 || good >= 3 {
		return false
	}

	if isServiceRelated(strings.ToLower(query)) && len(local) < 3 {
		return true
	}

	allBelowGood := true
	for _, r := range local {
		if r.Score >= GoodThreshold {
			allBelowGood = false
			break
		}
	}
	return allBelowGood
}

func (o *Orchestrator) searchWeb(ctx context.Context, query string) []models.KnowledgeChunk {
	logger := utils.GetLogger()

	wctx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	defer cancel()

	hits, err := o.Web.Search(wctx, query)
	if err != nil {
		logger.Warn("web search fallback failed", zap.Error(err))
		return nil
	}

	var results []models.KnowledgeChunk
	for i, hit := range hits {
		score := webHitScore(i, relevanceHeuristic(hit.Title, hit.Snippet))
		results = append(results, models.KnowledgeChunk{
			Text:       hit.Snippet,
			Score:      score,
			SourceKind: models.SourceWebFallback,
			Metadata: map[string]string{
				"title": hit.Title,
				"url":   hit.Link,
			},
		})
	}
	return results
}

// webHitScore assigns a rank-decaying score folded with a relevance boost,
// capped below the excellent tier so fallback results can never displace
// local results of equal textual quality.
func webHitScore(rank int, relevance float64) float64 {
	score := 0.75 - float64(rank)*0.05 + relevance*0.1
	if score > ExcellentThreshold {
		score = ExcellentThreshold
	}
	if score < 0 {
		score = 0
	}
	return score
}

// relevanceHeuristic scores a hit in [0,1] from lexical signals.
func relevanceHeuristic(title, snippet string) float64 {
	content := strings.ToLower(title + " " + snippet)

	var score float64
	for _, term := range []string{"adeona", "software development", "crm", "mobile app", "it solutions"} {
		if strings.Contains(content, term) {
			score += 0.25
		}
	}
	if len(snippet) > 100 {
		score += 0.25
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// mergeResults boosts local scores to preserve precedence, concatenates
// with fallback results, sorts, and deduplicates.
func mergeResults(local, web []models.KnowledgeChunk) []models.KnowledgeChunk {
	merged := make([]models.KnowledgeChunk, 0, len(local)+len(web))
	for _, r := range local {
		r.Score += 0.1
		if r.Score > 1.0 {
			r.Score = 1.0
		}
		merged = append(merged, r)
	}
	merged = append(merged, web...)
	return dedupe(sortByScore(merged))
}

func sortByScore(results []models.KnowledgeChunk) []models.KnowledgeChunk {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// dedupe collapses chunks sharing a normalized content prefix, keeping the
// highest-scored occurrence. Input must already be sorted by score.
func dedupe(results []models.KnowledgeChunk) []models.KnowledgeChunk {
	seen := make(map[string]struct{}, len(results))
	unique := results[:0]
	for _, r := range results {
		key := fingerprint(r.Text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}

// fingerprint normalizes the first 100 characters of content for
// duplicate detection: lowercase with spaces and newlines stripped.
func fingerprint(text string) string {
	if len(text) > 100 {
		text = text[:100]
	}
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, "\n", "")
	return text
}

func truncate(results []models.KnowledgeChunk, topK int) []models.KnowledgeChunk {
	if len(results) > topK {
		return results[:topK]
	}
	return results
}

func isServiceRelated(lower string) bool {
	return containsAnyWord(lower, "service", "services", "solution", "solutions", "what do", "what are")
}

func containsAnyWord(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
