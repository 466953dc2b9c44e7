package types

// APIError is the error payload every storefront service returns on non-2xx.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps APIError in the shared error response shape.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
