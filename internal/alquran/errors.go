package alquran

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork is returned when the API could not be reached after all retries.
	ErrNetwork = errors.New("network error")

	// ErrHTTP matches any *HTTPError.
	ErrHTTP = errors.New("http error")

	// ErrMalformedResponse is returned when a response body is not the JSON
	// envelope the API documents.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUnknownEdition is returned by ResolveEdition for names that are neither
	// a known alias nor an edition identifier.
	ErrUnknownEdition = errors.New("unknown translation")
)

// HTTPError reports a non-2xx status from the API, either from the HTTP
// response itself or from the "code" field of the JSON envelope.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	switch e.StatusCode {
	case http.StatusNotFound:
		return "verse not found, please check chapter and verse numbers (HTTP 404)"
	case http.StatusTooManyRequests:
		return "too many requests, please wait a moment and try again (HTTP 429)"
	}
	if e.Status != "" {
		return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("API returned status %d", e.StatusCode)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTP
}

// transient reports whether a failed attempt is worth repeating.
func transient(err error) bool {
	if errors.Is(err, ErrNetwork) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError
	}
	return false
}
