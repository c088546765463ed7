package handler

import (
	"strconv"

	"catalog/internal/delivery/api/validator"
	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

var binder = &echo.DefaultBinder{}

// bindBody decodes the JSON or form body into req and validates it.
// A body sent without a Content-Type is read as JSON.
func bindBody(c echo.Context, req any) error {
	bind := binder.BindBody
	if r := c.Request(); r.Header.Get(echo.HeaderContentType) == "" && r.ContentLength != 0 {
		bind = func(c echo.Context, req any) error {
			return c.Echo().JSONSerializer.Deserialize(c, req)
		}
	}
	if err := bind(c, req); err != nil {
		return validator.FromBindError(validator.LocationBody, err)
	}

	return c.Validate(req)
}

// bindQuery decodes query parameters into req, whatever the method, and validates it.
func bindQuery(c echo.Context, req any) error {
	if err := binder.BindQueryParams(c, req); err != nil {
		return validator.FromBindError(validator.LocationQuery, err)
	}

	return c.Validate(req)
}

// pathID reads a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domainerrors.NewValidationError(domainerrors.ValidationIssue{
			Location: []string{validator.LocationPath, name},
			Message:  "Input should be a valid integer, unable to parse string as an integer",
			Type:     "int_parsing",
		})
	}
	if id < 1 {
		return 0, domainerrors.NewValidationError(domainerrors.ValidationIssue{
			Location: []string{validator.LocationPath, name},
			Message:  "Input should be greater than or equal to 1",
			Type:     "greater_than_equal",
		})
	}

	return id, nil
}

// currentUser returns the user stored by the auth middleware.
func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := deliverycontext.CurrentUser(c)
	if !ok {
		return nil, domainerrors.ErrNotAuthenticated
	}

	return user, nil
}
