package repository

import (
	"context"
	"errors"

	"catalog/internal/domain/entity"
)

var (
	// ErrProductNotFound is returned when no product has the requested id.
	ErrProductNotFound = errors.New("product not found")

	// ErrProductNameTaken is returned when another product already uses the name.
	ErrProductNameTaken = errors.New("product name already exists")
)

// ProductFilter narrows List results. Nil fields match everything.
type ProductFilter struct {
	Category *string
	IsActive *bool
}

// ProductRepository stores the product catalog. Returned products are copies.
type ProductRepository interface {
	// List returns one page of products ordered by id, plus the filtered total.
	List(ctx context.Context, filter ProductFilter, offset, limit int) ([]*entity.Product, int, error)

	// Search matches query case-insensitively against name, description and category.
	Search(ctx context.Context, query string, offset, limit int) ([]*entity.Product, int, error)

	// FindByID retrieves a single product.
	FindByID(ctx context.Context, id int64) (*entity.Product, error)

	// Create assigns the next id and stores the product.
	Create(ctx context.Context, product *entity.Product) error

	// Modify applies fn to the stored product atomically and returns the result.
	// When fn returns an error nothing is stored.
	Modify(ctx context.Context, id int64, fn func(product *entity.Product) error) (*entity.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored products.
	Count(ctx context.Context) (int, error)
}
