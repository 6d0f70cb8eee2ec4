package youtube

import (
	"errors"
	"fmt"
)

// apiError carries the HTTP status of a failed API call so callers can
// distinguish "comments disabled" from real failures.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("api status %d", e.status)
	}
	return fmt.Sprintf("api status %d: %s", e.status, e.body)
}

func asAPIError(err error, target **apiError) bool {
	return errors.As(err, target)
}
