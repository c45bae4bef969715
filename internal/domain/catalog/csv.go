package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVStore reads products from a CSV file with a header row. Column order is
// not significant; unknown columns are ignored.
type CSVStore struct {
	Path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{Path: path}
}

func (s *CSVStore) Load(ctx context.Context) ([]Product, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog csv %s is empty", s.Path)
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	products := make([]Product, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		products = append(products, Product{
			ID:          field(row, "uniq_id"),
			Title:       field(row, "title"),
			Brand:       field(row, "brand"),
			Description: field(row, "description"),
			Categories:  field(row, "categories"),
			Material:    field(row, "material"),
			Color:       field(row, "color"),
			Price:       field(row, "price"),
			Images:      field(row, "images"),
		})
	}
	return products, nil
}
