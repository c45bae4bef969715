package catalog

import (
	"context"
	"fmt"

	"furnihome/go_backend/internal/infra/db/postgres"
)

// PostgresStore reads products from a `products` table carrying the same
// columns as the CSV source.
type PostgresStore struct {
	DB *postgres.DB
}

func NewPostgresStore(db *postgres.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Load(ctx context.Context) ([]Product, error) {
	const q = `
SELECT uniq_id,
       COALESCE(title, ''),
       COALESCE(brand, ''),
       COALESCE(description, ''),
       COALESCE(categories, ''),
       COALESCE(material, ''),
       COALESCE(color, ''),
       COALESCE(price, ''),
       COALESCE(images, '')
FROM products
ORDER BY uniq_id`

	rows, err := s.DB.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Brand, &p.Description,
			&p.Categories, &p.Material, &p.Color, &p.Price, &p.Images); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	return products, nil
}
