package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// Error definitions for resolve package.
var (
	ErrNotFound  = errors.New("nothing found")
	ErrAmbiguous = errors.New("more than one match")
)

// NotFoundError reports a lookup with zero candidates.
type NotFoundError struct {
	What  string
	Query string
}

func (e *NotFoundError) Error() string {
	if e.Query == "" {
		return fmt.Sprintf("no %s found", e.What)
	}
	return fmt.Sprintf("no %s found for %q", e.What, e.Query)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// AmbiguousError reports several candidates where no one could choose.
type AmbiguousError struct {
	What       string
	Query      string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("more than one %s found for %q, please narrow down your search (found: %s)",
		e.What, e.Query, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousError) Unwrap() error { return ErrAmbiguous }
