package catalog

import "context"

// MemoryStore serves a fixed product list. Used in tests.
type MemoryStore struct {
	Products []Product
	Err      error
}

func NewMemoryStore(products []Product) *MemoryStore {
	return &MemoryStore{Products: products}
}

func (s *MemoryStore) Load(ctx context.Context) ([]Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]Product, len(s.Products))
	copy(out, s.Products)
	return out, nil
}
