package utils

// ErrorResponse is the JSON body returned on request failures.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
