package steam

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is returned by New when the API key is not a Steam Web API key.
var ErrInvalidKey = errors.New("steam: invalid web api key")

// ErrInvalidBaseURL is returned by New when the API root cannot be requested.
var ErrInvalidBaseURL = errors.New("steam: invalid api base url")

// APIError is any non-success answer from the Steam Web API. Private
// profiles, bad keys and rate limiting all arrive as one of these.
type APIError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("steam api %s returned %s", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("steam api %s returned %s: %s", e.Endpoint, e.Status, e.Body)
}
