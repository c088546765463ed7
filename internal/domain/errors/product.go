package errors

import "fmt"

// ProductNotFound reports a product id with no catalog entry.
func ProductNotFound(productID int64) *BaseError {
	return NewBaseError(KindNotFound, "PRODUCT_NOT_FOUND", fmt.Sprintf("Product with id %d not found", productID)).
		With("product_id", productID)
}

// ProductInvalidData reports product input that breaks a catalog rule.
func ProductInvalidData(detail string) *BaseError {
	if detail == "" {
		detail = "Invalid product data"
	}

	return NewBaseError(KindBadRequest, "PRODUCT_INVALID_DATA", detail)
}

// ProductAlreadyExists reports a product name that is already taken.
func ProductAlreadyExists(detail string) *BaseError {
	if detail == "" {
		detail = "Product already exists"
	}

	return NewBaseError(KindConflict, "PRODUCT_ALREADY_EXISTS", detail)
}
