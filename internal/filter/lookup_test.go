package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDefaultAssignee(t *testing.T) {
	tests := []struct {
		name     string
		in       IssueCriteria
		expected []string
	}{
		{name: "nothing given", in: IssueCriteria{}, expected: []string{Me}},
		{name: "explicit assignee kept", in: IssueCriteria{Assignees: []string{"bob"}}, expected: []string{"bob"}},
		{name: "project given", in: IssueCriteria{Projects: []string{"web"}}, expected: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.in.WithDefaultAssignee().Assignees)
		})
	}
}

func TestNameContains(t *testing.T) {
	assert.JSONEq(t, `{"name":{"containsIgnoreCase":"bug"}}`, toJSON(t, NameContains(" bug ")))
}

func TestUserMatches(t *testing.T) {
	assert.JSONEq(t,
		`{"or":[{"name":{"containsIgnoreCase":"ann"}},{"displayName":{"containsIgnoreCase":"ann"}}]}`,
		toJSON(t, UserMatches("ann")))
}
