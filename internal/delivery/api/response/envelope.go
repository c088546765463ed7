// Package response shapes every HTTP body the API emits. There are exactly
// three shapes: a success envelope, a paginated envelope and an error
// envelope. Builders in this package are pure; they only produce values that
// handlers and middleware hand to echo.
package response

import (
	"encoding/json"
)

// Reserved error envelope keys. Extra fields using one of these names are
// moved under DetailsKey instead of overwriting the base field.
const (
	keySuccess   = "success"
	keyMessage   = "message"
	keyErrorCode = "error_code"
	keyData      = "data"

	DetailsKey = "details"
)

// Envelope is the success body. Data and Metadata are omitted when absent.
type Envelope struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Data     any            `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PageInfo is derived pagination metadata. Build it with CalculatePageInfo only.
type PageInfo struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
	Total      int  `json:"total"`
}

// PaginatedEnvelope is the success body for list endpoints.
type PaginatedEnvelope[T any] struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Items      []T            `json:"items"`
	Pagination PageInfo       `json:"pagination"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// ErrorEnvelope is the failure body. Extra fields are flattened next to the
// base fields when marshalled.
type ErrorEnvelope struct {
	Message   string
	ErrorCode string
	Extra     map[string]any
}

// Fields returns the flattened body. Extra keys that collide with a reserved
// key are nested under DetailsKey.
func (e ErrorEnvelope) Fields() map[string]any {
	body := make(map[string]any, len(e.Extra)+3)

	var collided map[string]any
	for key, value := range e.Extra {
		if isReserved(key) {
			if collided == nil {
				collided = make(map[string]any)
			}
			collided[key] = value

			continue
		}
		body[key] = value
	}

	if collided != nil {
		if existing, ok := body[DetailsKey]; ok {
			collided[DetailsKey] = existing
		}
		body[DetailsKey] = collided
	}

	body[keySuccess] = false
	body[keyMessage] = e.Message
	if e.ErrorCode != "" {
		body[keyErrorCode] = e.ErrorCode
	}

	return body
}

// MarshalJSON implements json.Marshaler
func (e ErrorEnvelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Fields())
}

func isReserved(key string) bool {
	switch key {
	case keySuccess, keyMessage, keyErrorCode, keyData:
		return true
	default:
		return false
	}
}
