package filter

import "strings"

// WithDefaultAssignee narrows c to the viewer's issues unless an assignee
// or a project was given.
func (c IssueCriteria) WithDefaultAssignee() IssueCriteria {
	if len(c.Assignees) == 0 && len(c.Projects) == 0 {
		c.Assignees = []string{Me}
	}
	return c
}

// NameContains matches records whose name contains s, case-insensitive.
func NameContains(s string) Filter {
	return Filter{"name": Term{"containsIgnoreCase": strings.TrimSpace(s)}}
}

// UserMatches matches users by name or display name.
func UserMatches(s string) Filter {
	s = strings.TrimSpace(s)
	return Filter{"or": []Term{
		{"name": Term{"containsIgnoreCase": s}},
		{"displayName": Term{"containsIgnoreCase": s}},
	}}
}
