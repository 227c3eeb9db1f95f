// Package editor collects text by launching the user's editor on a temp file.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

// ErrNoEditor is returned when no editor command is configured.
var ErrNoEditor = errors.New("no editor configured")

// Open runs editor on an empty markdown file and returns what was saved,
// trimmed. editor may carry arguments ("code --wait").
func Open(editor string) (string, error) {
	args := strings.Fields(editor)
	if len(args) == 0 {
		return "", ErrNoEditor
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("issue-description-%s.md", ulid.Make().String()))
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(path)

	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run editor %s: %w", args[0], err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read temp file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
