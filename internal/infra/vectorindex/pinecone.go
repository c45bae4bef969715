package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const upsertBatchSize = 100

// Pinecone talks to the Pinecone REST API: the control plane for index
// lookup/creation, the per-index data plane for upsert and query. The data
// plane host is resolved once on first use and cached for the process
// lifetime.
type Pinecone struct {
	APIKey     string
	IndexName  string
	ControlURL string
	Host       string
	HTTP       *http.Client

	mu   sync.Mutex
	host string
}

func NewPinecone(apiKey, indexName, controlURL, host string, httpClient *http.Client) *Pinecone {
	return &Pinecone{
		APIKey:     apiKey,
		IndexName:  indexName,
		ControlURL: controlURL,
		Host:       host,
		HTTP:       httpClient,
	}
}

func (p *Pinecone) EnsureIndex(ctx context.Context, dimension int) error {
	if err := p.checkConfigured(); err != nil {
		return err
	}
	status, _, err := p.control(ctx, http.MethodGet, "/indexes/"+p.IndexName, nil)
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("pinecone describe index status %d", status)
	}

	payload := map[string]interface{}{
		"name":      p.IndexName,
		"dimension": dimension,
		"metric":    "cosine",
		"spec": map[string]interface{}{
			"serverless": map[string]interface{}{
				"cloud":  "aws",
				"region": "us-east-1",
			},
		},
	}
	status, body, err := p.control(ctx, http.MethodPost, "/indexes", payload)
	if err != nil {
		return err
	}
	if status != http.StatusCreated && status != http.StatusOK && status != http.StatusConflict {
		return fmt.Errorf("pinecone create index status %d: %s", status, body)
	}
	return nil
}

func (p *Pinecone) Upsert(ctx context.Context, items []Item) (int, error) {
	if err := p.checkConfigured(); err != nil {
		return 0, err
	}
	total := 0
	for start := 0; start < len(items); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(items) {
			end = len(items)
		}
		payload := map[string]interface{}{"vectors": items[start:end]}
		var out struct {
			UpsertedCount int `json:"upsertedCount"`
		}
		if err := p.data(ctx, "/vectors/upsert", payload, &out); err != nil {
			return total, err
		}
		total += out.UpsertedCount
	}
	return total, nil
}

func (p *Pinecone) Query(ctx context.Context, vector []float64, topK int) ([]Match, error) {
	if err := p.checkConfigured(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = 5
	}
	payload := map[string]interface{}{
		"vector":          vector,
		"topK":            topK,
		"includeMetadata": true,
	}
	var out struct {
		Matches []Match `json:"matches"`
	}
	if err := p.data(ctx, "/query", payload, &out); err != nil {
		return nil, err
	}
	return out.Matches, nil
}

func (p *Pinecone) checkConfigured() error {
	if strings.TrimSpace(p.APIKey) == "" {
		return errors.New("pinecone api key is not configured")
	}
	if strings.TrimSpace(p.IndexName) == "" {
		return errors.New("pinecone index name is not configured")
	}
	return nil
}

// control issues a control-plane request and returns the status code plus a
// truncated body for error reporting.
func (p *Pinecone) control(ctx context.Context, method, path string, payload interface{}) (int, string, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, "", err
		}
		body = bytes.NewReader(b)
	}

	urlStr := strings.TrimRight(p.ControlURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Api-Key", p.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return resp.StatusCode, strings.TrimSpace(string(msg)), nil
}

func (p *Pinecone) data(ctx context.Context, path string, payload interface{}, out interface{}) error {
	host, err := p.ensureHost(ctx)
	if err != nil {
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	urlStr := strings.TrimRight(host, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", p.APIKey)

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("pinecone status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (p *Pinecone) ensureHost(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.host != "" {
		return p.host, nil
	}
	if strings.TrimSpace(p.Host) != "" {
		p.host = normalizeHost(p.Host)
		return p.host, nil
	}

	status, body, err := p.control(ctx, http.MethodGet, "/indexes/"+p.IndexName, nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("pinecone describe index status %d: %s", status, body)
	}
	var desc struct {
		Host string `json:"host"`
	}
	if err := json.Unmarshal([]byte(body), &desc); err != nil {
		return "", err
	}
	if strings.TrimSpace(desc.Host) == "" {
		return "", errors.New("pinecone index has no host")
	}
	p.host = normalizeHost(desc.Host)
	return p.host, nil
}

func normalizeHost(host string) string {
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}
