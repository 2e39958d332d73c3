package openpix

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSplitExceedsTotal is returned before any network call when the sum of
// split values is greater than the charge value.
var ErrSplitExceedsTotal = errors.New("split values exceed charge total")

// Kind classifies provider errors so callers do not have to pattern-match
// on response bodies.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// APIError carries the HTTP status and raw response body of a failed
// provider call.
type APIError struct {
	StatusCode int
	Body       string
	Kind       Kind
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openpix: status %d (%s): %s", e.StatusCode, e.Kind, e.Body)
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Body:       string(body),
		Kind:       classify(status, string(body)),
	}
}

func classify(status int, body string) Kind {
	switch status {
	case 401, 403:
		return KindUnauthorized
	case 404:
		return KindNotFound
	case 409:
		return KindConflict
	}

	// The provider reports some conditions as 400 with a human message.
	lower := strings.ToLower(body)
	switch {
	case strings.Contains(lower, "already") || strings.Contains(lower, "já cadastrada"):
		return KindConflict
	case strings.Contains(lower, "not found") || strings.Contains(lower, "não encontrad"):
		return KindNotFound
	}
	return KindUnknown
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}

func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindConflict
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}
