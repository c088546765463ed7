// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/errors"
	"catalog/internal/usecase"

	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	Repo   repository.ProductRepository
	Logger *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		repo:   params.Repo,
		logger: params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns one page of the catalog, optionally narrowed to a category.
func (srv *productService) ListProducts(ctx context.Context, input usecase.ListProductsInput) (*usecase.ProductPage, error) {
	items, total, err := srv.repo.List(ctx, repository.ProductFilter{Category: input.Category}, input.Skip, input.Limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return &usecase.ProductPage{Items: items, Total: total}, nil
}

// SearchProducts matches query against name, description and category.
func (srv *productService) SearchProducts(ctx context.Context, query string, skip, limit int) (*usecase.ProductPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.ErrMissingQuery
	}

	items, total, err := srv.repo.Search(ctx, query, skip, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return &usecase.ProductPage{Items: items, Total: total}, nil
}

// GetProduct returns a single product.
func (srv *productService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := srv.repo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.translate(err, id, "failed to get product")
	}

	return product, nil
}

// CreateProduct stores a new product after checking its name is free.
func (srv *productService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Category:    strings.TrimSpace(input.Category),
		Stock:       input.Stock,
		IsActive:    input.IsActive,
	}

	if err := srv.repo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNameTaken) {
			srv.log(ctx).Warn("Duplicate product name", slog.String("name", product.Name))

			return nil, duplicateName(product.Name)
		}

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Int64("productID", product.ID), slog.String("name", product.Name))

	return product, nil
}

// UpdateProduct applies the supplied fields only.
func (srv *productService) UpdateProduct(ctx context.Context, id int64, input *usecase.UpdateProductInput) (*entity.Product, error) {
	updated, err := srv.repo.Modify(ctx, id, func(p *entity.Product) error {
		if input.Name != nil {
			p.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			description := *input.Description
			p.Description = &description
		}
		if input.Price != nil {
			p.Price = *input.Price
		}
		if input.Category != nil {
			p.Category = strings.TrimSpace(*input.Category)
		}
		if input.Stock != nil {
			p.Stock = *input.Stock
		}
		if input.IsActive != nil {
			p.IsActive = *input.IsActive
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNameTaken) && input.Name != nil {
			return nil, duplicateName(*input.Name)
		}

		return nil, srv.translate(err, id, "failed to update product")
	}

	srv.log(ctx).Info("Product updated", slog.Int64("productID", id))

	return updated, nil
}

// DeleteProduct removes a product.
func (srv *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := srv.repo.Delete(ctx, id); err != nil {
		return srv.translate(err, id, "failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.Int64("productID", id))

	return nil
}

// UpdateStock sets the stock level to quantity.
func (srv *productService) UpdateStock(ctx context.Context, id int64, quantity int) (*entity.Product, error) {
	if quantity < 0 {
		return nil, domainerrors.ProductInvalidData("Stock quantity cannot be negative")
	}

	updated, err := srv.repo.Modify(ctx, id, func(p *entity.Product) error {
		p.Stock = quantity

		return nil
	})
	if err != nil {
		return nil, srv.translate(err, id, "failed to update stock")
	}

	return updated, nil
}

// DecreaseStock removes quantity units, refusing to go below zero.
func (srv *productService) DecreaseStock(ctx context.Context, id int64, quantity int) (*entity.Product, error) {
	if quantity < 1 {
		return nil, domainerrors.ProductInvalidData("Quantity must be at least 1")
	}

	updated, err := srv.repo.Modify(ctx, id, func(p *entity.Product) error {
		if p.Stock < quantity {
			return domainerrors.ProductInvalidData("Insufficient stock").
				With("available", p.Stock).
				With("requested", quantity)
		}
		p.Stock -= quantity

		return nil
	})
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ProductNotFound(id)
	}
	if err != nil {
		return nil, srv.translate(err, id, "failed to decrease stock")
	}

	return updated, nil
}

// translate maps store sentinels to client-facing errors and wraps everything else.
func (srv *productService) translate(err error, id int64, operation string) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return domainerrors.NotFound("Product", id)
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return errors.Wrap(err, operation)
}

func duplicateName(name string) error {
	return domainerrors.ProductAlreadyExists(fmt.Sprintf("Product with name '%s' already exists", strings.TrimSpace(name)))
}
