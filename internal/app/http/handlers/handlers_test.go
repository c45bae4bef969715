package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"furnihome/go_backend/internal/app/config"
	apphttp "furnihome/go_backend/internal/app/http"
	"furnihome/go_backend/internal/app/http/handlers"
	"furnihome/go_backend/internal/app/http/handlers/recommend"
	"furnihome/go_backend/internal/domain/ai/describe"
	"furnihome/go_backend/internal/domain/ai/textgen"
	"furnihome/go_backend/internal/domain/catalog"
	"furnihome/go_backend/internal/infra/vectorindex"
)

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return []float64{0.1, 0.2}, nil
}

type fakeIndex struct {
	matches []vectorindex.Match
}

func (f fakeIndex) EnsureIndex(ctx context.Context, dimension int) error { return nil }
func (f fakeIndex) Upsert(ctx context.Context, items []vectorindex.Item) (int, error) {
	return len(items), nil
}
func (f fakeIndex) Query(ctx context.Context, vector []float64, topK int) ([]vectorindex.Match, error) {
	return f.matches, nil
}

type fakeGen struct{}

func (fakeGen) Complete(ctx context.Context, prompt string, opts textgen.Options) (string, error) {
	if strings.Contains(prompt, "Return JSON with keys") {
		return `{"query":"sofa","room":"living room"}`, nil
	}
	return "A comfortable piece that works well in most rooms and lasts for years", nil
}

func newTestRouter(t *testing.T, cfg config.Config, products []catalog.Product, matches []vectorindex.Match) http.Handler {
	t.Helper()
	store := catalog.NewMemoryStore(products)
	gen := fakeGen{}
	desc := describe.New(gen, 0)
	rec := recommend.New(store, fakeEmbedder{}, fakeIndex{matches: matches}, gen, desc)
	return apphttp.NewRouter(cfg, handlers.New(cfg, store, rec, desc))
}

func doRequest(t *testing.T, router http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rr.Body.String())
	}
}

func TestRootAndHealth(t *testing.T) {
	router := newTestRouter(t, config.Config{}, nil, nil)

	rr := doRequest(t, router, http.MethodGet, "/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("root status = %d", rr.Code)
	}
	var root map[string]string
	decodeBody(t, rr, &root)
	if !strings.Contains(root["message"], "running") {
		t.Fatalf("root message = %q", root["message"])
	}

	rr = doRequest(t, router, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("health = %d %q", rr.Code, rr.Body.String())
	}
}

func TestSearchValidation(t *testing.T) {
	router := newTestRouter(t, config.Config{}, nil, nil)

	rr := doRequest(t, router, http.MethodGet, "/search?query=ab", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("short query status = %d, want 400", rr.Code)
	}
	var errBody map[string]string
	decodeBody(t, rr, &errBody)
	if errBody["error"] == "" {
		t.Fatalf("expected error body, got %s", rr.Body.String())
	}
}

func TestSearchOK(t *testing.T) {
	matches := []vectorindex.Match{
		{ID: "p1", Score: 0.9, Metadata: map[string]interface{}{"title": "Sofa", "price": "$100"}},
		{ID: "p2", Score: 0.8, Metadata: map[string]interface{}{"title": "Chair"}},
	}
	router := newTestRouter(t, config.Config{}, nil, matches)

	rr := doRequest(t, router, http.MethodGet, "/search?query=sofa", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("search status = %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Query   string                   `json:"query"`
		Count   int                      `json:"count"`
		Results []map[string]interface{} `json:"results"`
	}
	decodeBody(t, rr, &resp)
	if resp.Query != "sofa" || resp.Count != 2 || len(resp.Results) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Results[0]["generated_description"] == "" {
		t.Fatal("missing generated_description")
	}
}

func TestRecommendChat(t *testing.T) {
	matches := []vectorindex.Match{
		{ID: "p1", Score: 0.9, Metadata: map[string]interface{}{"title": "Sofa", "price": "300"}},
	}
	router := newTestRouter(t, config.Config{}, nil, matches)

	body := strings.NewReader(`{"user_message":"a sofa for my living room","history":[{"role":"user","content":"hi"}]}`)
	rr := doRequest(t, router, http.MethodPost, "/recommend/chat", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("chat status = %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Message    string `json:"message"`
		SearchText string `json:"search_text"`
		Intent     struct {
			Query *string `json:"query"`
			Room  *string `json:"room"`
		} `json:"intent"`
		Recommendations []map[string]interface{} `json:"recommendations"`
	}
	decodeBody(t, rr, &resp)
	if resp.Message == "" || len(resp.Recommendations) != 1 {
		t.Fatalf("unexpected response: %s", rr.Body.String())
	}
	if resp.Intent.Query == nil || *resp.Intent.Query != "sofa" {
		t.Fatalf("intent query = %v", resp.Intent.Query)
	}
	if resp.SearchText != "sofa living room" {
		t.Fatalf("search_text = %q", resp.SearchText)
	}
}

func TestRecommendChatValidation(t *testing.T) {
	router := newTestRouter(t, config.Config{}, nil, nil)

	rr := doRequest(t, router, http.MethodPost, "/recommend/chat", strings.NewReader(`{"user_message":""}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty message status = %d, want 400", rr.Code)
	}
	rr = doRequest(t, router, http.MethodPost, "/recommend/chat", strings.NewReader(`not json`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad body status = %d, want 400", rr.Code)
	}
}

func TestDataPreviewAndAnalytics(t *testing.T) {
	products := []catalog.Product{
		{ID: "u1", Title: "Sofa", Price: "100"},
		{ID: "u2", Title: "Chair", Price: ""},
		{ID: "u3", Title: "Table", Price: "250"},
		{ID: "u4", Title: "Lamp", Price: "30"},
		{ID: "u5", Title: "Desk", Price: "80"},
		{ID: "u6", Title: "Stool", Price: "20"},
	}
	router := newTestRouter(t, config.Config{}, products, nil)

	rr := doRequest(t, router, http.MethodGet, "/data/preview", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("preview status = %d", rr.Code)
	}
	var preview struct {
		Sample []map[string]interface{} `json:"sample"`
	}
	decodeBody(t, rr, &preview)
	if len(preview.Sample) != 5 {
		t.Fatalf("sample size = %d, want 5", len(preview.Sample))
	}

	rr = doRequest(t, router, http.MethodGet, "/analytics/summary", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("analytics status = %d", rr.Code)
	}
	var analytics struct {
		Summary struct {
			TotalProducts int `json:"total_products"`
			WithPrice     int `json:"with_price"`
		} `json:"summary"`
	}
	decodeBody(t, rr, &analytics)
	if analytics.Summary.TotalProducts != 6 || analytics.Summary.WithPrice != 5 {
		t.Fatalf("summary = %+v", analytics.Summary)
	}
}

func TestGenerateDescription(t *testing.T) {
	router := newTestRouter(t, config.Config{}, nil, nil)

	body := strings.NewReader(`{"title":"Sofa","brand":"Acme","categories":"Living Room","material":"oak","price":499}`)
	rr := doRequest(t, router, http.MethodPost, "/generate/description", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	decodeBody(t, rr, &resp)
	if resp["generated_description"] == "" || !strings.HasSuffix(resp["generated_description"], ".") {
		t.Fatalf("generated_description = %q", resp["generated_description"])
	}

	rr = doRequest(t, router, http.MethodPost, "/generate/description", strings.NewReader(`{"brand":"Acme"}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing title status = %d, want 400", rr.Code)
	}
}

func TestEmbedIndexAuth(t *testing.T) {
	router := newTestRouter(t, config.Config{InternalToken: "secret"}, []catalog.Product{{ID: "u1", Title: "Sofa"}}, nil)

	rr := doRequest(t, router, http.MethodGet, "/embed/index", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/embed/index", nil)
	req.Header.Set("X-Internal-Token", "secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["indexed"] != 1 {
		t.Fatalf("indexed = %d, want 1", resp["indexed"])
	}
}

func TestEmbedIndexOpenWithoutToken(t *testing.T) {
	router := newTestRouter(t, config.Config{}, []catalog.Product{{ID: "u1", Title: "Sofa"}}, nil)

	rr := doRequest(t, router, http.MethodGet, "/embed/index", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
}
