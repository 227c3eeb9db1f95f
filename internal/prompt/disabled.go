package prompt

import (
	"fmt"

	"github.com/joescharf/lnr/internal/resolve"
)

// Disabled is the Prompter used when nobody can answer. Every question fails.
type Disabled struct{}

func (Disabled) Input(message string) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrNotInteractive, message)
}

func (Disabled) Password(message string) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrNotInteractive, message)
}

func (Disabled) Confirm(message string) (bool, error) {
	return false, fmt.Errorf("%w: %s (pass --confirm to skip the question)", ErrNotInteractive, message)
}

func (Disabled) Select(message string, _ []resolve.Choice) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrNotInteractive, message)
}

func (Disabled) MultiSelect(message string, _ []resolve.Choice, _ []string) ([]string, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotInteractive, message)
}
