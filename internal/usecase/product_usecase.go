// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"catalog/internal/domain/entity"
)

// --- Input DTOs ---

// ListProductsInput selects one page of the catalog.
type ListProductsInput struct {
	Skip     int
	Limit    int
	Category *string
}

// CreateProductInput holds a validated new product.
type CreateProductInput struct {
	Name        string
	Description *string
	Price       float64
	Category    string
	Stock       int
	IsActive    bool
}

// UpdateProductInput is a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Stock       *int
	IsActive    *bool
}

// --- Output DTOs ---

// ProductPage is one slice of products plus the size of the full result.
type ProductPage struct {
	Items []*entity.Product
	Total int
}

// ProductUsecase defines the catalog operations exposed to the delivery layer.
type ProductUsecase interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductPage, error)
	SearchProducts(ctx context.Context, query string, skip, limit int) (*ProductPage, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, input *UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	UpdateStock(ctx context.Context, id int64, quantity int) (*entity.Product, error)
	DecreaseStock(ctx context.Context, id int64, quantity int) (*entity.Product, error)
}
