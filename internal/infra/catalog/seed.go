package catalog

import (
	"context"

	"catalog/internal/domain/entity"
	"catalog/internal/errors"
)

type demoProduct struct {
	name        string
	description string
	price       float64
	category    string
	stock       int
}

var demoProducts = []demoProduct{
	{"Laptop", "High-performance laptop for professionals", 1299.99, "Electronics", 15},
	{"Wireless Mouse", "Ergonomic wireless mouse with precision tracking", 29.99, "Electronics", 50},
	{"Mechanical Keyboard", "RGB mechanical keyboard with blue switches", 89.99, "Electronics", 25},
	{"HD Monitor 27\"", "27-inch Full HD monitor with IPS panel", 249.99, "Electronics", 10},
	{"USB-C Hub", "7-in-1 USB-C hub with power delivery", 49.99, "Accessories", 30},
	{"Webcam 1080p", "Full HD webcam with auto-focus", 79.99, "Electronics", 20},
	{"Desk Lamp LED", "Adjustable LED desk lamp with touch control", 39.99, "Office", 40},
	{"Noise-Cancelling Headphones", "Over-ear headphones with active noise cancellation", 199.99, "Audio", 12},
}

// Seed loads the demo catalog. Ids 1 through 8 are assigned in order on an empty store.
func Seed(ctx context.Context, store *Store) error {
	for _, demo := range demoProducts {
		description := demo.description
		product := &entity.Product{
			Name:        demo.name,
			Description: &description,
			Price:       demo.price,
			Category:    demo.category,
			Stock:       demo.stock,
			IsActive:    true,
		}
		if err := store.Create(ctx, product); err != nil {
			return errors.Wrapf(err, "seed product %q", demo.name)
		}
	}

	return nil
}
