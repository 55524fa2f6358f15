package cms

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the content API, carrying the decoded
// error body when one was present.
type APIError struct {
	Status  int
	Name    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cms: %d %s: %s", e.Status, e.Name, e.Message)
	}
	return fmt.Sprintf("cms: unexpected status %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 from the content API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
