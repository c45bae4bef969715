package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVStoreLoad(t *testing.T) {
	// Header order differs from struct order on purpose.
	path := writeCSV(t, "title,uniq_id,brand,price,images,categories,material,color,description\n"+
		"Oak Sofa ,p1, Acme ,\"$1,299.00\",http://img/1.jpg,\"Living Room, Sofas\",oak,brown,A sturdy sofa\n"+
		"Lamp,p2,,,,,,,\n")

	store := NewCSVStore(path)
	products, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("len = %d, want 2", len(products))
	}

	p := products[0]
	if p.ID != "p1" || p.Title != "Oak Sofa" || p.Brand != "Acme" {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.Price != "$1,299.00" || p.Categories != "Living Room, Sofas" {
		t.Fatalf("unexpected price/categories: %+v", p)
	}

	if products[1].ID != "p2" || products[1].Brand != "" {
		t.Fatalf("unexpected second product: %+v", products[1])
	}
}

func TestCSVStoreIgnoresUnknownColumns(t *testing.T) {
	path := writeCSV(t, "uniq_id,title,stock_count\np1,Chair,12\n")

	products, err := NewCSVStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(products) != 1 || products[0].Title != "Chair" {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestCSVStoreMissingFile(t *testing.T) {
	_, err := NewCSVStore(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCSVStoreEmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	_, err := NewCSVStore(path).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestSearchText(t *testing.T) {
	p := Product{Title: "Oak Sofa", Brand: "Acme", Description: "A sturdy sofa", Categories: "Living Room", Material: "oak", Color: "brown"}
	got := SearchText(p)
	want := "Oak Sofa Acme A sturdy sofa Living Room oak brown"
	if got != want {
		t.Fatalf("SearchText = %q, want %q", got, want)
	}

	sparse := Product{Title: "Lamp"}
	if got := SearchText(sparse); got != "Lamp" {
		t.Fatalf("SearchText sparse = %q", got)
	}
}
