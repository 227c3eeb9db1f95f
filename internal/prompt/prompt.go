package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joescharf/lnr/internal/resolve"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=prompt.go -destination=mocks/prompt.gen.go -package=mocks

// Prompter interface provides user interaction functionality.
type Prompter interface {
	// Input reads one line of free text.
	Input(message string) (string, error)

	// Password reads a secret without echoing it.
	Password(message string) (string, error)

	// Confirm asks a yes/no question. An empty answer means no.
	Confirm(message string) (bool, error)

	// Select returns the value of one choice.
	Select(message string, choices []resolve.Choice) (string, error)

	// MultiSelect returns the values of the checked choices. selected
	// lists the values checked when the prompt opens.
	MultiSelect(message string, choices []resolve.Choice, selected []string) ([]string, error)
}

// Terminal prompts on stdin and renders on stderr.
type Terminal struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewTerminal creates a Prompter bound to the process terminal.
func NewTerminal() *Terminal {
	return &Terminal{
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stderr,
	}
}

// Input reads one line of free text.
func (t *Terminal) Input(message string) (string, error) {
	fmt.Fprintf(t.out, "%s %s ", questionMark, message)

	input, err := t.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && input != "") {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// Confirm asks a yes/no question. An empty answer means no.
func (t *Terminal) Confirm(message string) (bool, error) {
	fmt.Fprintf(t.out, "%s %s [y/N]: ", questionMark, message)

	input, err := t.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && input != "") {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	switch strings.TrimSpace(strings.ToLower(input)) {
	case "":
		return false, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, ErrInvalidConfirmationInput
	}
}

// Password reads a secret without echoing it.
func (t *Terminal) Password(message string) (string, error) {
	final, err := tea.NewProgram(newPasswordModel(message), tea.WithOutput(t.out)).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run password prompt: %w", err)
	}
	m, ok := final.(passwordModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if m.quitting {
		return "", ErrAborted
	}
	return strings.TrimSpace(m.input.Value()), nil
}

// Select returns the value of one choice.
func (t *Terminal) Select(message string, choices []resolve.Choice) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}
	m, err := t.runList(newListModel(message, choices, false, nil))
	if err != nil {
		return "", err
	}
	return m.value(), nil
}

// MultiSelect returns the values of the checked choices.
func (t *Terminal) MultiSelect(message string, choices []resolve.Choice, selected []string) ([]string, error) {
	if len(choices) == 0 {
		return nil, ErrNoChoices
	}
	m, err := t.runList(newListModel(message, choices, true, selected))
	if err != nil {
		return nil, err
	}
	return m.values(), nil
}

func (t *Terminal) runList(model listModel) (listModel, error) {
	final, err := tea.NewProgram(model, tea.WithOutput(t.out)).Run()
	if err != nil {
		return listModel{}, fmt.Errorf("failed to run selection program: %w", err)
	}
	m, ok := final.(listModel)
	if !ok {
		return listModel{}, fmt.Errorf("unexpected model type")
	}
	if m.quitting || !m.done {
		return listModel{}, ErrAborted
	}
	return m, nil
}
