package models

import (
	"fmt"
	"slices"
	"strings"
)

// StatusKind classifies a workflow state. Teams name their states freely but
// every state carries exactly one kind.
type StatusKind string

const (
	StatusCanceled  StatusKind = "canceled"
	StatusCompleted StatusKind = "completed"
	StatusStarted   StatusKind = "started"
	StatusUnstarted StatusKind = "unstarted"
	StatusBacklog   StatusKind = "backlog"
	StatusTriage    StatusKind = "triage"
)

// StatusKinds is the canonical kind ordering. Result ranking depends on it.
var StatusKinds = []StatusKind{
	StatusCanceled,
	StatusCompleted,
	StatusStarted,
	StatusUnstarted,
	StatusBacklog,
	StatusTriage,
}

// ParseStatusKind reports whether s names one of the six status kinds.
func ParseStatusKind(s string) (StatusKind, bool) {
	k := StatusKind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(StatusKinds, k) {
		return k, true
	}
	return "", false
}

// Priorities lists priority names by wire value: the index is what the API stores.
var Priorities = []string{"none", "urgent", "high", "normal", "low"}

// ParsePriority converts a priority name to its ordinal.
func ParsePriority(name string) (int, error) {
	i := slices.Index(Priorities, strings.ToLower(strings.TrimSpace(name)))
	if i < 0 {
		return 0, fmt.Errorf("invalid priority %q: must be one of %s", name, strings.Join(Priorities, ", "))
	}
	return i, nil
}

// PriorityName returns the display name for a priority ordinal.
func PriorityName(p int) string {
	if p < 0 || p >= len(Priorities) {
		return ""
	}
	return Priorities[p]
}

// Cycle labels accepted by issue filters.
const (
	CycleActive   = "active"
	CyclePrevious = "previous"
	CycleNext     = "next"
)

// CycleStates lists the accepted cycle labels.
var CycleStates = []string{CycleActive, CyclePrevious, CycleNext}

// WorkflowState is one step of a team's issue pipeline.
type WorkflowState struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Type  StatusKind `json:"type"`
	Color string     `json:"color"`
}

// LabelConnection is the labels relation as the API returns it.
type LabelConnection struct {
	Nodes []Label `json:"nodes"`
}

// Issue is a read-only snapshot of a remote issue.
type Issue struct {
	ID          string               `json:"id"`
	Identifier  string               `json:"identifier"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	URL         string               `json:"url"`
	Priority    int                  `json:"priority"`
	State       *WorkflowState       `json:"state"`
	Assignee    *User                `json:"assignee"`
	Creator     *User                `json:"creator"`
	Project     *ProjectRef          `json:"project"`
	Milestone   *ProjectMilestoneRef `json:"projectMilestone"`
	Team        *Team                `json:"team"`
	Labels      LabelConnection      `json:"labels"`
}

// LabelIDs returns the ids of the issue's labels.
func (i *Issue) LabelIDs() []string {
	ids := make([]string, 0, len(i.Labels.Nodes))
	for _, l := range i.Labels.Nodes {
		ids = append(ids, l.ID)
	}
	return ids
}

// StatusKind returns the issue's state kind, or "" when the state is missing.
func (i *Issue) StatusKind() StatusKind {
	if i.State == nil {
		return ""
	}
	return i.State.Type
}

// IssueRef is what mutations return about the issue they touched.
type IssueRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	URL        string `json:"url"`
}
