package vectorindex

import "context"

// Match is one nearest-neighbor result with its metadata passed through.
type Match struct {
	ID       string                 `json:"id"`
	Score    float64                `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Item is one (id, vector, metadata) tuple for upsert.
type Item struct {
	ID       string                 `json:"id"`
	Values   []float64              `json:"values"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Index is a vector similarity index. Matches come back score-descending.
type Index interface {
	EnsureIndex(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, items []Item) (int, error)
	Query(ctx context.Context, vector []float64, topK int) ([]Match, error)
}
