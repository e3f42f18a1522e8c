// internal/api/types/response.go
package types

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse defines a generic structure for collection responses.
// T represents the type of data contained in the 'Data' slice.
type ListResponse[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"total_count"`
}
