package recommend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const searchDefaultTopK = 5

func (s *Service) HandleSearch(w http.ResponseWriter, r *http.Request) {
	reqID := fmt.Sprintf("search-%d", time.Now().UnixNano())

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if len(query) < 3 {
		log.Printf("search req=%s query too short", reqID)
		writeError(w, http.StatusBadRequest, "query must be at least 3 characters")
		return
	}
	topK := parseIntDefault(r.URL.Query().Get("top_k"), searchDefaultTopK)
	if topK <= 0 {
		topK = searchDefaultTopK
	}

	resp, err := s.search(r.Context(), reqID, query, topK)
	if err != nil {
		log.Printf("search req=%s failed: %v", reqID, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// search is the plain keyword path: retrieval plus enrichment with no intent
// extraction, no price filtering, and no cap beyond topK.
func (s *Service) search(ctx context.Context, reqID, query string, topK int) (SearchResponse, error) {
	embedStart := time.Now()
	vector, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("embedding failed: %w", err)
	}
	log.Printf("search req=%s embedding ok dims=%d took=%s", reqID, len(vector), time.Since(embedStart))

	queryStart := time.Now()
	matches, err := s.Index.Query(ctx, vector, topK)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("vector search failed: %w", err)
	}
	log.Printf("search req=%s matches ok count=%d took=%s", reqID, len(matches), time.Since(queryStart))

	results := make([]Recommendation, 0, len(matches))
	for _, m := range matches {
		md := m.Metadata
		if md == nil {
			md = map[string]interface{}{}
		}
		results = append(results, s.buildRecommendation(ctx, m, parsePrice(md["price"])))
	}

	return SearchResponse{Query: query, Count: len(results), Results: results}, nil
}
