package prompt

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/joescharf/lnr/internal/resolve"
)

// listModel is a filterable list with single or multiple selection.
type listModel struct {
	message  string
	choices  []resolve.Choice
	labels   []string
	visible  []int // indices into choices, in display order
	cursor   int
	filter   string
	multi    bool
	checked  map[int]bool
	done     bool
	quitting bool
}

func newListModel(message string, choices []resolve.Choice, multi bool, selected []string) listModel {
	m := listModel{
		message: message,
		choices: choices,
		labels:  make([]string, len(choices)),
		multi:   multi,
		checked: make(map[int]bool),
	}
	for i, c := range choices {
		m.labels[i] = c.Label
		if slices.Contains(selected, c.Value) {
			m.checked[i] = true
		}
	}
	m.refilter()
	return m
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		if m.filter == "" {
			m.quitting = true
			return m, tea.Quit
		}
		m.filter = ""
		m.refilter()
	case tea.KeyEnter:
		if !m.multi && len(m.visible) == 0 {
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	case tea.KeyUp, tea.KeyShiftTab:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown, tea.KeyTab:
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case tea.KeySpace:
		if m.multi {
			if len(m.visible) > 0 {
				i := m.visible[m.cursor]
				m.checked[i] = !m.checked[i]
			}
		} else {
			m.filter += " "
			m.refilter()
		}
	case tea.KeyBackspace:
		if m.filter != "" {
			r := []rune(m.filter)
			m.filter = string(r[:len(r)-1])
			m.refilter()
		}
	case tea.KeyRunes:
		m.filter += string(key.Runes)
		m.refilter()
	}
	return m, nil
}

// refilter recomputes the visible rows. An empty filter shows every choice
// in its original order; otherwise rows are ordered by fuzzy score.
func (m *listModel) refilter() {
	if m.filter == "" {
		m.visible = make([]int, len(m.choices))
		for i := range m.visible {
			m.visible[i] = i
		}
	} else {
		matches := fuzzy.Find(m.filter, m.labels)
		m.visible = make([]int, len(matches))
		for i, match := range matches {
			m.visible[i] = match.Index
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

func (m listModel) value() string {
	if len(m.visible) == 0 {
		return ""
	}
	return m.choices[m.visible[m.cursor]].Value
}

// values returns the checked values in their original order.
func (m listModel) values() []string {
	out := []string{}
	for i, c := range m.choices {
		if m.checked[i] {
			out = append(out, c.Value)
		}
	}
	return out
}

func (m listModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	var s strings.Builder
	fmt.Fprintf(&s, "%s %s ", questionMark, m.message)
	if m.filter != "" {
		s.WriteString(m.filter)
	} else {
		s.WriteString(hintStyle.Render("[type to filter]"))
	}
	s.WriteString("\n")

	for row, i := range m.visible {
		pointer := "  "
		if row == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		box := ""
		if m.multi {
			box = "[ ] "
			if m.checked[i] {
				box = checkedStyle.Render("[x] ")
			}
		}
		fmt.Fprintf(&s, "%s%s%s\n", pointer, box, m.labels[i])
	}
	if len(m.visible) == 0 {
		s.WriteString(hintStyle.Render("  no matches") + "\n")
	}

	if m.multi {
		s.WriteString(hintStyle.Render("space to toggle, enter to confirm, esc to quit"))
	} else {
		s.WriteString(hintStyle.Render("enter to select, esc to quit"))
	}
	return s.String()
}
