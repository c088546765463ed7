package errors

import "strings"

// ValidationIssue describes one rejected input field.
type ValidationIssue struct {
	Location []string `json:"loc"`
	Message  string   `json:"msg"`
	Type     string   `json:"type"`
}

// ValidationError carries every field problem found in one request.
// It is deliberately not an AppError: it is rendered by its own branch.
type ValidationError struct {
	issues []ValidationIssue
}

// NewValidationError creates a validation error from the given issues.
func NewValidationError(issues ...ValidationIssue) *ValidationError {
	return &ValidationError{issues: issues}
}

// Issues returns the field problems in the order they were found.
func (e *ValidationError) Issues() []ValidationIssue {
	return e.issues
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.issues))
	for _, issue := range e.issues {
		parts = append(parts, strings.Join(issue.Location, ".")+": "+issue.Message)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}
