package recommend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"furnihome/go_backend/internal/domain/catalog"
	"furnihome/go_backend/internal/infra/vectorindex"
)

func (s *Service) HandleIndex(w http.ResponseWriter, r *http.Request) {
	reqID := fmt.Sprintf("index-%d", time.Now().UnixNano())

	count, err := s.indexCatalog(r.Context(), reqID)
	if err != nil {
		log.Printf("index req=%s failed: %v", reqID, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"indexed": count})
}

// indexCatalog embeds the full catalog and upserts it into the vector index,
// creating the index on first use with the embedding dimension.
func (s *Service) indexCatalog(ctx context.Context, reqID string) (int, error) {
	loadStart := time.Now()
	products, err := s.Catalog.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("catalog load failed: %w", err)
	}
	log.Printf("index req=%s catalog ok count=%d took=%s", reqID, len(products), time.Since(loadStart))

	items := make([]vectorindex.Item, 0, len(products))
	embedStart := time.Now()
	for i, p := range products {
		vector, err := s.Embedder.Embed(ctx, catalog.SearchText(p))
		if err != nil {
			return 0, fmt.Errorf("embedding product %s failed: %w", p.ID, err)
		}
		if i == 0 {
			if err := s.Index.EnsureIndex(ctx, len(vector)); err != nil {
				return 0, fmt.Errorf("ensure index failed: %w", err)
			}
		}
		items = append(items, vectorindex.Item{
			ID:     p.ID,
			Values: vector,
			Metadata: map[string]interface{}{
				"title":       p.Title,
				"brand":       p.Brand,
				"description": p.Description,
				"categories":  p.Categories,
				"material":    p.Material,
				"color":       p.Color,
				"price":       p.Price,
				"images":      p.Images,
			},
		})
	}
	log.Printf("index req=%s embeddings ok count=%d took=%s", reqID, len(items), time.Since(embedStart))

	upsertStart := time.Now()
	count, err := s.Index.Upsert(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("upsert failed: %w", err)
	}
	log.Printf("index req=%s upsert ok count=%d took=%s", reqID, count, time.Since(upsertStart))
	return count, nil
}
