// Package validator adapts go-playground/validator to echo and to the
// validation error rendered as a 422 envelope.
package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Issue locations
const (
	LocationBody  = "body"
	LocationQuery = "query"
	LocationPath  = "path"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New returns a validator that reports fields by their wire names.
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		_, name := wireName(field)

		return name
	})

	return &CustomValidator{validate: validate}
}

// Validate checks i and returns a *ValidationError listing every failing field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate request")
	}

	root := reflect.TypeOf(i)
	issues := make([]domainerrors.ValidationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, typ := describe(fe)
		issues = append(issues, domainerrors.ValidationIssue{
			Location: append([]string{locate(root, fe.StructNamespace())}, fieldPath(fe.Namespace())...),
			Message:  msg,
			Type:     typ,
		})
	}

	return domainerrors.NewValidationError(issues...)
}

// FromBindError turns an echo binding failure into a validation error at location.
func FromBindError(location string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{location}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}

		return issue(loc, fmt.Sprintf("Input should be a valid %s", kindName(typeErr.Type.Kind())), "type_error")
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return issue([]string{location}, "JSON decode error", "json_invalid")
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return issue([]string{location}, fmt.Sprintf("Input should be a valid number, unable to parse %q", numErr.Num), "number_parsing")
	}

	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message = fmt.Sprint(httpErr.Message)
	}

	return issue([]string{location}, message, "value_error")
}

func issue(loc []string, message, typ string) error {
	return domainerrors.NewValidationError(domainerrors.ValidationIssue{
		Location: loc,
		Message:  message,
		Type:     typ,
	})
}

func kindName(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "list"
	default:
		return kind.String()
	}
}

// wireName returns the location and name a struct field is exchanged under.
func wireName(field reflect.StructField) (string, string) {
	for _, tag := range []struct{ key, location string }{
		{"param", LocationPath},
		{"query", LocationQuery},
		{"json", LocationBody},
		{"form", LocationBody},
	} {
		name, _, _ := strings.Cut(field.Tag.Get(tag.key), ",")
		if name == "-" {
			continue
		}
		if name != "" {
			return tag.location, name
		}
	}

	return LocationBody, field.Name
}

// locate walks the struct namespace and reports where the leaf field came from.
func locate(t reflect.Type, structNamespace string) string {
	parts := strings.Split(structNamespace, ".")
	location := LocationBody
	for _, part := range parts[1:] {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			break
		}

		name, _, _ := strings.Cut(part, "[")
		field, ok := t.FieldByName(name)
		if !ok {
			break
		}
		location, _ = wireName(field)
		t = field.Type
	}

	return location
}

// fieldPath drops the root type name from a namespace.
func fieldPath(namespace string) []string {
	parts := strings.Split(namespace, ".")
	if len(parts) <= 1 {
		return parts
	}

	return parts[1:]
}

func describe(fe validator.FieldError) (string, string) {
	param := fe.Param()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required", "required_without":
		return "Field required", "missing"
	case "min":
		if isString {
			return fmt.Sprintf("String should have at least %s characters", param), "string_too_short"
		}

		return fmt.Sprintf("Input should be greater than or equal to %s", param), "greater_than_equal"
	case "max":
		if isString {
			return fmt.Sprintf("String should have at most %s characters", param), "string_too_long"
		}

		return fmt.Sprintf("Input should be less than or equal to %s", param), "less_than_equal"
	case "gt":
		return fmt.Sprintf("Input should be greater than %s", param), "greater_than"
	case "gte":
		return fmt.Sprintf("Input should be greater than or equal to %s", param), "greater_than_equal"
	case "lt":
		return fmt.Sprintf("Input should be less than %s", param), "less_than"
	case "lte":
		return fmt.Sprintf("Input should be less than or equal to %s", param), "less_than_equal"
	case "email":
		return "value is not a valid email address", "value_error"
	case "oneof":
		return fmt.Sprintf("Input should be one of: %s", strings.ReplaceAll(param, " ", ", ")), "enum"
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fe.Tag()), fe.Tag()
	}
}
