package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"furnihome/go_backend/internal/domain/ai/describe"
	"furnihome/go_backend/internal/domain/ai/embed"
	"furnihome/go_backend/internal/domain/ai/textgen"
	"furnihome/go_backend/internal/domain/catalog"
	"furnihome/go_backend/internal/infra/vectorindex"
)

const (
	chatTopK        = 8
	chatMaxResults  = 6
	chatMessage     = "Here are some options I found for you!"
	defaultTitle    = "Furniture item"
	defaultBrand    = "Unknown brand"
	defaultMaterial = "premium materials"
)

// Service orchestrates the retrieval pipeline: intent extraction, search
// text assembly, vector query, constraint filtering, and per-result
// description generation. Everything runs sequentially within a request.
type Service struct {
	Catalog  catalog.Store
	Embedder embed.Embedder
	Index    vectorindex.Index
	Gen      textgen.Generator
	Describe *describe.Generator
}

func New(store catalog.Store, embedder embed.Embedder, index vectorindex.Index, gen textgen.Generator, desc *describe.Generator) *Service {
	return &Service{
		Catalog:  store,
		Embedder: embedder,
		Index:    index,
		Gen:      gen,
		Describe: desc,
	}
}

func (s *Service) HandleChat(w http.ResponseWriter, r *http.Request) {
	reqID := fmt.Sprintf("chat-%d", time.Now().UnixNano())

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("chat req=%s bad request: %v", reqID, err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		log.Printf("chat req=%s empty user_message", reqID)
		writeError(w, http.StatusBadRequest, "user_message is required")
		return
	}

	resp, err := s.chat(r.Context(), reqID, req)
	if err != nil {
		log.Printf("chat req=%s failed: %v", reqID, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) chat(ctx context.Context, reqID string, req ChatRequest) (ChatResponse, error) {
	intentStart := time.Now()
	intent := s.extractIntent(ctx, req.UserMessage, historyText(req.History))
	log.Printf("chat req=%s intent ok took=%s", reqID, time.Since(intentStart))

	searchText := buildSearchText(intent, req.UserMessage)

	embedStart := time.Now()
	vector, err := s.Embedder.Embed(ctx, searchText)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("embedding failed: %w", err)
	}
	log.Printf("chat req=%s embedding ok dims=%d took=%s", reqID, len(vector), time.Since(embedStart))

	queryStart := time.Now()
	matches, err := s.Index.Query(ctx, vector, chatTopK)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("vector search failed: %w", err)
	}
	log.Printf("chat req=%s matches ok count=%d took=%s", reqID, len(matches), time.Since(queryStart))

	recs := make([]Recommendation, 0, chatMaxResults)
	for _, m := range matches {
		md := m.Metadata
		if md == nil {
			md = map[string]interface{}{}
		}

		price := parsePrice(md["price"])
		if skipByPrice(price, intent.MinPrice, intent.MaxPrice) {
			continue
		}

		recs = append(recs, s.buildRecommendation(ctx, m, price))
		if len(recs) >= chatMaxResults {
			break
		}
	}

	return ChatResponse{
		Message:         chatMessage,
		Intent:          intent,
		SearchText:      searchText,
		Recommendations: recs,
	}, nil
}

// buildSearchText starts from the extracted query (or the raw message) and
// appends each known constraint as a plain word.
func buildSearchText(intent Intent, message string) string {
	parts := []string{message}
	if intent.Query != nil && strings.TrimSpace(*intent.Query) != "" {
		parts[0] = *intent.Query
	}
	for _, v := range []*string{intent.Room, intent.Style, intent.Material, intent.Color} {
		if v != nil && strings.TrimSpace(*v) != "" {
			parts = append(parts, *v)
		}
	}
	return strings.Join(parts, " ")
}

// skipByPrice applies min/max constraints. A product whose price could not
// be parsed is never excluded on price grounds.
func skipByPrice(price, min, max *float64) bool {
	if price == nil {
		return false
	}
	if min != nil && *price < *min {
		return true
	}
	if max != nil && *price > *max {
		return true
	}
	return false
}

// buildRecommendation normalizes match metadata and enriches the result with
// a generated description.
func (s *Service) buildRecommendation(ctx context.Context, m vectorindex.Match, price *float64) Recommendation {
	md := m.Metadata
	if md == nil {
		md = map[string]interface{}{}
	}

	title := metaString(md, "title")
	if title == "" {
		title = defaultTitle
	}
	brand := metaString(md, "brand")
	if brand == "" {
		brand = defaultBrand
	}
	categories := normalizeCategories(md["categories"])
	material := metaString(md, "material")
	if material == "" {
		material = defaultMaterial
	}

	var color *string
	if c := metaString(md, "color"); c != "" {
		color = &c
	}
	var description *string
	if d := metaString(md, "description"); d != "" {
		description = &d
	}

	descPrice := 0.0
	if price != nil {
		descPrice = *price
	}
	generated := s.Describe.Generate(ctx, describe.ProductInput{
		Title:      title,
		Brand:      brand,
		Categories: categories,
		Material:   material,
		Price:      descPrice,
	})

	return Recommendation{
		ID:                   m.ID,
		Score:                m.Score,
		Title:                title,
		Brand:                brand,
		Price:                price,
		Categories:           categories,
		Material:             material,
		Color:                color,
		Images:               cleanImages(md["images"]),
		Description:          description,
		GeneratedDescription: generated,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
