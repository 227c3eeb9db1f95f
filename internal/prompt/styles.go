package prompt

import "github.com/charmbracelet/lipgloss"

var (
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	questionMark = questionStyle.Render("?")
)
