package worksdk

import "fmt"

// APIError is a non-2xx response decoded from the service's error
// envelope.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("workspace api: %s (%d): %s", e.Code, e.StatusCode, e.Description)
	}
	return fmt.Sprintf("workspace api: %s (%d)", e.Code, e.StatusCode)
}

// IsInvalidGrant reports whether the error is the uniform invalid
// invite answer (unknown, used or expired token).
func IsInvalidGrant(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == "invalid_grant"
}
