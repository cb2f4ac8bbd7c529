package models

// Source kinds for knowledge chunks.
const (
	SourceLocal       = "local"
	SourceWebFallback = "webFallback"
)

// KnowledgeChunk is a single retrieval result: a piece of text with a
// relevance score in [0,1] and the source it came from. Produced per query,
// never persisted.
type KnowledgeChunk struct {
	Text       string
	Score      float64
	SourceKind string
	Metadata   map[string]string
}

// ContentChunk is a unit of local knowledge content prepared for indexing.
type ContentChunk struct {
	Text     string `json:"text"`
	PageType string `json:"page_type"`
	Index    int    `json:"index"`
}
