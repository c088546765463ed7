package handler

import (
	"fmt"
	"log/slog"

	"catalog/internal/delivery/api/response"
	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/domain/entity"
	"catalog/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for catalog handlers
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// ProductResponse is the public view of a product
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	IsActive    bool    `json:"is_active"`
}

func newProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
	}
}

func newProductResponses(products []*entity.Product) []ProductResponse {
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, newProductResponse(p))
	}

	return items
}

// ProductListQuery represents the query parameters of the product list
type ProductListQuery struct {
	Skip     int     `query:"skip" validate:"gte=0"`
	Limit    int     `query:"limit" validate:"gte=1,lte=100"`
	Category *string `query:"category" validate:"omitempty,min=1,max=50"`
}

// ProductSearchQuery represents the query parameters of the product search
type ProductSearchQuery struct {
	Query string `query:"query"`
	Skip  int    `query:"skip" validate:"gte=0"`
	Limit int    `query:"limit" validate:"gte=1,lte=100"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category" validate:"required,min=1,max=50"`
	Stock       int     `json:"stock" validate:"gte=0"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateProductRequest represents the request body for updating a product. Absent fields are kept.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category" validate:"omitempty,min=1,max=50"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active"`
}

// StockQuery represents the quantity query parameter of stock updates
type StockQuery struct {
	Quantity *int `query:"quantity" validate:"required,gte=0"`
}

// DecreaseStockQuery represents the quantity query parameter of stock decrements
type DecreaseStockQuery struct {
	Quantity *int `query:"quantity" validate:"required,gte=1"`
}

// ListProducts handles the paginated product list
func (h *ProductHandler) ListProducts(c echo.Context) error {
	query := ProductListQuery{Limit: response.DefaultLimit}
	if err := bindQuery(c, &query); err != nil {
		return err
	}

	page, err := h.productUC.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Skip:     query.Skip,
		Limit:    query.Limit,
		Category: query.Category,
	})
	if err != nil {
		return err
	}

	return response.Page(newProductResponses(page.Items), page.Total, query.Skip, query.Limit, response.MessageSuccess, nil).Send(c)
}

// SearchProducts handles full text search over the catalog
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	query := ProductSearchQuery{Limit: response.DefaultLimit}
	if err := bindQuery(c, &query); err != nil {
		return err
	}

	page, err := h.productUC.SearchProducts(c.Request().Context(), query.Query, query.Skip, query.Limit)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Found %d products matching '%s'", page.Total, query.Query)

	return response.Page(newProductResponses(page.Items), page.Total, query.Skip, query.Limit, message, nil).Send(c)
}

// ListByCategory handles the product list of one category
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	query := ProductListQuery{Limit: response.DefaultLimit}
	if err := bindQuery(c, &query); err != nil {
		return err
	}

	category := c.Param("category")
	page, err := h.productUC.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Skip:     query.Skip,
		Limit:    query.Limit,
		Category: &category,
	})
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Products in %s category", category)

	return response.Page(newProductResponses(page.Items), page.Total, query.Skip, query.Limit, message, nil).Send(c)
}

// GetProduct handles fetching a single product
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.productUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.OK(newProductResponse(product), "Product retrieved successfully").Send(c)
}

// CreateProduct handles product creation
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product, err := h.productUC.CreateProduct(c.Request().Context(), &usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		IsActive:    isActive,
	})
	if err != nil {
		return err
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Info("Product created",
		slog.Int64("product_id", product.ID), slog.String("name", product.Name))

	return response.Created(newProductResponse(product), response.MessageCreated).Send(c)
}

// UpdateProduct handles both PUT and PATCH; only supplied fields change.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	product, err := h.productUC.UpdateProduct(c.Request().Context(), id, &usecase.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}

	return response.OK(newProductResponse(product), response.MessageUpdated).Send(c)
}

// DeleteProduct handles product removal
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.productUC.DeleteProduct(c.Request().Context(), id); err != nil {
		return err
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Info("Product deleted", slog.Int64("product_id", id))

	return response.NoContent().Send(c)
}

// UpdateStock handles setting the stock level
func (h *ProductHandler) UpdateStock(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var query StockQuery
	if err := bindQuery(c, &query); err != nil {
		return err
	}

	product, err := h.productUC.UpdateStock(c.Request().Context(), id, *query.Quantity)
	if err != nil {
		return err
	}

	return response.OK(newProductResponse(product), "Stock updated successfully").Send(c)
}

// DecreaseStock handles removing units from stock
func (h *ProductHandler) DecreaseStock(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var query DecreaseStockQuery
	if err := bindQuery(c, &query); err != nil {
		return err
	}

	product, err := h.productUC.DecreaseStock(c.Request().Context(), id, *query.Quantity)
	if err != nil {
		return err
	}

	return response.OK(newProductResponse(product), "Stock decreased successfully").Send(c)
}
