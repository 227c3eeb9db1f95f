package linear

import (
	"errors"
	"fmt"
	"strings"
)

// Error definitions for linear package.
var (
	ErrUnauthorized      = errors.New("api key rejected")
	ErrNotFound          = errors.New("entity not found")
	ErrMalformedResponse = errors.New("malformed response")
	ErrUnsuccessful      = errors.New("mutation reported failure")
)

// RequestError is a failed GraphQL call: a non-2xx status or an errors list.
type RequestError struct {
	StatusCode int
	Messages   []string
}

func (e *RequestError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("graphql request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("graphql request failed: %s", strings.Join(e.Messages, "; "))
}
