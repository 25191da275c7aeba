package dto

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}
