// Package prompt asks the user questions on the terminal.
package prompt

import "errors"

// Error definitions for prompt package.
var (
	ErrInvalidConfirmationInput = errors.New("invalid input: please enter 'y' or 'n'")
	ErrAborted                  = errors.New("prompt aborted")
	ErrNoChoices                = errors.New("no choices available")
	ErrNotInteractive           = errors.New("input required but stdin is not a terminal")
)
