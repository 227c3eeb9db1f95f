package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toJSON(t *testing.T, f Filter) string {
	t.Helper()
	data, err := json.Marshal(f)
	require.NoError(t, err)
	return string(data)
}

func TestBuildIssueFilter_DefaultStatus(t *testing.T) {
	f, err := BuildIssueFilter(IssueCriteria{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"type":{"nin":["completed","canceled"]}}}`, toJSON(t, f))
}

func TestBuildIssueFilter_Statuses(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		expected string
	}{
		{
			name:     "single kind replaces the default",
			statuses: []string{"completed"},
			expected: `{"state":{"type":{"in":["completed"]}}}`,
		},
		{
			name:     "kinds are case-insensitive and grouped",
			statuses: []string{"Started", "backlog"},
			expected: `{"state":{"type":{"in":["started","backlog"]}}}`,
		},
		{
			name:     "partial name alone still drops the default",
			statuses: []string{"review"},
			expected: `{"state":{"name":{"containsIgnoreCase":"review"}}}`,
		},
		{
			name:     "kinds and names are OR'd at the top level",
			statuses: []string{"started", "review", "qa"},
			expected: `{"or":[
				{"state":{"type":{"in":["started"]}}},
				{"state":{"name":{"containsIgnoreCase":"review"}}},
				{"state":{"name":{"containsIgnoreCase":"qa"}}}
			]}`,
		},
		{
			name:     "blank tokens are ignored",
			statuses: []string{"", "  "},
			expected: `{"state":{"type":{"nin":["completed","canceled"]}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := BuildIssueFilter(IssueCriteria{Statuses: tt.statuses})
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, toJSON(t, f))
		})
	}
}

func TestBuildIssueFilter_ExplicitStatusDropsDefault(t *testing.T) {
	for _, statuses := range [][]string{{"completed"}, {"in review"}, {"canceled", "x"}} {
		f, err := BuildIssueFilter(IssueCriteria{Statuses: statuses})
		require.NoError(t, err)
		assert.NotContains(t, toJSON(t, f), `"nin"`)
	}
}

func TestBuildIssueFilter_AssigneeDisjunction(t *testing.T) {
	f, err := BuildIssueFilter(IssueCriteria{Statuses: []string{"started"}, Assignees: []string{"ann", "bob"}})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"state":{"type":{"in":["started"]}},
		"assignee":{"or":[
			{"displayName":{"containsIgnoreCase":"ann"}},
			{"displayName":{"containsIgnoreCase":"bob"}}
		]}
	}`, toJSON(t, f))
	assert.NotContains(t, toJSON(t, f), `"and"`)
}

func TestBuildIssueFilter_AssigneeMe(t *testing.T) {
	f, err := BuildIssueFilter(IssueCriteria{Statuses: []string{"started"}, Assignees: []string{Me}})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"state":{"type":{"in":["started"]}},
		"assignee":{"or":[{"isMe":{"eq":true}}]}
	}`, toJSON(t, f))
}

func TestBuildIssueFilter_Relations(t *testing.T) {
	f, err := BuildIssueFilter(IssueCriteria{
		Statuses:  []string{"triage"},
		Creators:  []string{"cat"},
		Projects:  []string{"apollo", "gemini"},
		Teams:     []string{"core"},
		Labels:    []string{"bug", "ui"},
		Query:     "crash",
		Milestone: "beta",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"state":{"type":{"in":["triage"]}},
		"creator":{"or":[{"displayName":{"containsIgnoreCase":"cat"}}]},
		"project":{"or":[{"name":{"containsIgnoreCase":"apollo"}},{"name":{"containsIgnoreCase":"gemini"}}]},
		"team":{"or":[{"name":{"containsIgnoreCase":"core"}}]},
		"labels":{"some":{"or":[{"name":{"containsIgnoreCase":"bug"}},{"name":{"containsIgnoreCase":"ui"}}]}},
		"searchableContent":{"contains":"crash"},
		"projectMilestone":{"name":{"containsIgnoreCase":"beta"}}
	}`, toJSON(t, f))
}

func TestBuildIssueFilter_AbsentCriteriaContributeNothing(t *testing.T) {
	f, err := BuildIssueFilter(IssueCriteria{
		Statuses:  []string{"started"},
		Assignees: []string{" "},
		Labels:    []string{},
		Query:     "   ",
	})
	require.NoError(t, err)
	assert.Len(t, f, 1)
	assert.Contains(t, f, "state")
}

func TestBuildIssueFilter_Cycle(t *testing.T) {
	tests := []struct {
		cycle     string
		predicate string
	}{
		{cycle: "active", predicate: "isActive"},
		{cycle: "previous", predicate: "isNext"},
		{cycle: "next", predicate: "isPrevious"},
		{cycle: "ACTIVE", predicate: "isActive"},
	}

	for _, tt := range tests {
		t.Run(tt.cycle, func(t *testing.T) {
			f, err := BuildIssueFilter(IssueCriteria{Cycle: tt.cycle})
			require.NoError(t, err)
			cycle, ok := f["cycle"].(Term)
			require.True(t, ok)
			assert.Len(t, cycle, 1)
			assert.Contains(t, cycle, tt.predicate)
		})
	}
}

func TestBuildIssueFilter_InvalidCycle(t *testing.T) {
	_, err := BuildIssueFilter(IssueCriteria{Cycle: "someday"})
	assert.ErrorIs(t, err, ErrInvalidCycle)
}

func TestBuildIssueFilter_Deterministic(t *testing.T) {
	c := IssueCriteria{Statuses: []string{"started", "qa"}, Assignees: []string{"ann"}, Cycle: "active"}
	a, err := BuildIssueFilter(c)
	require.NoError(t, err)
	b, err := BuildIssueFilter(c)
	require.NoError(t, err)
	assert.Equal(t, toJSON(t, a), toJSON(t, b))
}

func TestBuildProjectFilter(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f, err := BuildProjectFilter(ProjectCriteria{})
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, toJSON(t, f))
	})

	t.Run("own projects", func(t *testing.T) {
		f, err := BuildProjectFilter(ProjectCriteria{OwnOnly: true})
		require.NoError(t, err)
		assert.JSONEq(t, `{"members":{"isMe":{"eq":true}}}`, toJSON(t, f))
	})

	t.Run("all criteria", func(t *testing.T) {
		f, err := BuildProjectFilter(ProjectCriteria{
			OwnOnly:            true,
			Name:               "apollo",
			Query:              "launch",
			AccessibleByTeamID: "team-1",
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"members":{"isMe":{"eq":true}},
			"name":{"containsIgnoreCase":"apollo"},
			"searchableContent":{"contains":"launch"},
			"accessibleTeams":{"some":{"id":{"eq":"team-1"}}}
		}`, toJSON(t, f))
	})
}
