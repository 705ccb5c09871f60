package rest

// ErrorResponse is the JSON body returned by handlers on request errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ResultResponse is the JSON body returned by mutating planner endpoints.
// Error carries a user-facing, localized message when Success is false.
type ResultResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
