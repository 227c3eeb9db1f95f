package prompt

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/lnr/internal/resolve"
)

func newTestTerminal(input string) (*Terminal, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Terminal{reader: bufio.NewReader(strings.NewReader(input)), out: out}, out
}

func TestTerminal_Confirm(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    bool
		expectError bool
	}{
		{name: "yes", input: "y\n", expected: true},
		{name: "YES", input: "YES\n", expected: true},
		{name: "no", input: "no\n", expected: false},
		{name: "empty defaults to no", input: "\n", expected: false},
		{name: "no trailing newline", input: "yes", expected: true},
		{name: "invalid", input: "maybe\n", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, out := newTestTerminal(tt.input)
			got, err := term.Confirm("Continue?")
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidConfirmationInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Contains(t, out.String(), "Continue? [y/N]")
		})
	}
}

func TestTerminal_Input(t *testing.T) {
	term, out := newTestTerminal("  Fix the login page  \n")
	got, err := term.Input("Title:")
	require.NoError(t, err)
	assert.Equal(t, "Fix the login page", got)
	assert.Contains(t, out.String(), "Title:")
}

func TestTerminal_InputEOF(t *testing.T) {
	term, _ := newTestTerminal("")
	_, err := term.Input("Title:")
	assert.Error(t, err)
}

func TestTerminal_SelectWithoutChoices(t *testing.T) {
	term, _ := newTestTerminal("")
	_, err := term.Select("Pick", nil)
	assert.ErrorIs(t, err, ErrNoChoices)
	_, err = term.MultiSelect("Pick", nil, nil)
	assert.ErrorIs(t, err, ErrNoChoices)
}

var sampleChoices = []resolve.Choice{
	{Label: "Backend", Value: "t-back"},
	{Label: "Frontend", Value: "t-front"},
	{Label: "Design", Value: "t-design"},
}

func press(m tea.Model, keys ...tea.KeyMsg) listModel {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m.(listModel)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestListModel_NavigateAndSelect(t *testing.T) {
	m := press(newListModel("Team", sampleChoices, false, nil),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	assert.True(t, m.done)
	assert.Equal(t, "t-front", m.value())
}

func TestListModel_FilterNarrowsChoices(t *testing.T) {
	m := press(newListModel("Team", sampleChoices, false, nil), runes("des"))
	require.Len(t, m.visible, 1)
	assert.Equal(t, "t-design", m.value())
	assert.Contains(t, m.View(), "Design")
	assert.NotContains(t, m.View(), "Backend")

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.visible, 3)
	assert.False(t, m.quitting)
}

func TestListModel_EnterIgnoredWithNoMatches(t *testing.T) {
	m := press(newListModel("Team", sampleChoices, false, nil), runes("zzz"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.done)
	assert.Empty(t, m.visible)
}

func TestListModel_Quit(t *testing.T) {
	m := press(newListModel("Team", sampleChoices, false, nil), tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestListModel_MultiSelectToggles(t *testing.T) {
	m := press(newListModel("Labels", sampleChoices, true, []string{"t-design"}),
		tea.KeyMsg{Type: tea.KeySpace},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeySpace},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	assert.True(t, m.done)
	assert.Equal(t, []string{"t-back"}, m.values())
}

func TestListModel_MultiSelectPrechecked(t *testing.T) {
	m := newListModel("Labels", sampleChoices, true, []string{"t-front", "t-design"})
	assert.Equal(t, []string{"t-front", "t-design"}, m.values())
	assert.Contains(t, m.View(), "[x] ")
}

func TestPasswordModel(t *testing.T) {
	var model tea.Model = newPasswordModel("Paste in your personal API key:")
	for _, r := range "lin_api_123" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.NotContains(t, model.View(), "lin_api_123")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := model.(passwordModel)
	assert.True(t, m.done)
	assert.Equal(t, "lin_api_123", m.input.Value())
}

func TestDisabled(t *testing.T) {
	var p Prompter = Disabled{}

	_, err := p.Input("Title:")
	assert.ErrorIs(t, err, ErrNotInteractive)
	_, err = p.Password("Key:")
	assert.ErrorIs(t, err, ErrNotInteractive)
	_, err = p.Confirm("Sure?")
	assert.ErrorIs(t, err, ErrNotInteractive)
	assert.Contains(t, err.Error(), "--confirm")
	_, err = p.Select("Pick", sampleChoices)
	assert.ErrorIs(t, err, ErrNotInteractive)
	_, err = p.MultiSelect("Pick", sampleChoices, nil)
	assert.ErrorIs(t, err, ErrNotInteractive)
}

var _ Prompter = (*Terminal)(nil)
