package catalog

import (
	"context"
	"strings"
)

// Product is one catalog record as it arrives from the product source.
// Price and Images are kept raw here; parsing and normalization happen in
// the retrieval pipeline where fallback rules apply.
type Product struct {
	ID          string `json:"uniq_id"`
	Title       string `json:"title"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
	Categories  string `json:"categories"`
	Material    string `json:"material"`
	Color       string `json:"color"`
	Price       string `json:"price"`
	Images      string `json:"images"`
}

type Store interface {
	Load(ctx context.Context) ([]Product, error)
}

// SearchText is the text embedded for a product when indexing.
func SearchText(p Product) string {
	parts := []string{p.Title, p.Brand, p.Description, p.Categories, p.Material, p.Color}
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}
