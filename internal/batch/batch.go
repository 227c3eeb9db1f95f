// Package batch applies one update to a selected set of issues.
package batch

import (
	"context"
	"fmt"

	"github.com/joescharf/lnr/internal/linear"
	"github.com/joescharf/lnr/internal/models"
)

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// Updater issues the batch mutation.
type Updater interface {
	BatchUpdateIssues(ctx context.Context, ids []string, input linear.IssueUpdateInput) (bool, error)
}

// Delta is the set of fields applied to every selected issue.
type Delta struct {
	AssigneeID         string
	AddedLabelIDs      []string
	ProjectMilestoneID string
	StateID            string
	Priority           *int
}

// IsEmpty reports whether the delta changes nothing.
func (d Delta) IsEmpty() bool {
	return d.AssigneeID == "" && len(d.AddedLabelIDs) == 0 && d.ProjectMilestoneID == "" &&
		d.StateID == "" && d.Priority == nil
}

// Input converts the delta to the mutation input.
func (d Delta) Input() linear.IssueUpdateInput {
	var in linear.IssueUpdateInput
	if d.AssigneeID != "" {
		in.AssigneeID = &d.AssigneeID
	}
	if len(d.AddedLabelIDs) > 0 {
		in.AddedLabelIDs = d.AddedLabelIDs
	}
	if d.ProjectMilestoneID != "" {
		in.ProjectMilestoneID = &d.ProjectMilestoneID
	}
	if d.StateID != "" {
		in.StateID = &d.StateID
	}
	in.Priority = d.Priority
	return in
}

// Gate blocks a mutation until it is confirmed.
type Gate struct {
	Confirmer Confirmer
	// Render shows what is about to change before the question is asked.
	Render func()
}

// Check returns nil when the change may proceed. confirmed skips the prompt.
func (g Gate) Check(confirmed bool, message string) error {
	if confirmed {
		return nil
	}
	if g.Render != nil {
		g.Render()
	}
	ok, err := g.Confirmer.Confirm(message)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}

// Applier sends one batch update for a set of issues.
type Applier struct {
	Updater Updater
	Gate    Gate
}

// Apply confirms and then issues a single batch call covering every issue.
func (a *Applier) Apply(ctx context.Context, issues []models.Issue, delta Delta, confirmed bool) error {
	if len(issues) == 0 {
		return ErrNothingToUpdate
	}
	if delta.IsEmpty() {
		return ErrNothingToUpdate
	}

	if err := a.Gate.Check(confirmed, fmt.Sprintf("Are you sure you want to edit %d issue(s)?", len(issues))); err != nil {
		return err
	}

	ids := make([]string, len(issues))
	for i, is := range issues {
		ids[i] = is.ID
	}

	ok, err := a.Updater.BatchUpdateIssues(ctx, ids, delta.Input())
	if err != nil {
		return fmt.Errorf("batch update issues: %w", err)
	}
	if !ok {
		return ErrUpdateUnsuccessful
	}
	return nil
}

// SingleProject returns the one project every issue with a project belongs
// to. Issues without a project are ignored.
func SingleProject(issues []models.Issue) (string, error) {
	projects := make(map[string]bool)
	var id string
	for _, is := range issues {
		if is.Project == nil || is.Project.ID == "" {
			continue
		}
		projects[is.Project.ID] = true
		id = is.Project.ID
	}
	switch len(projects) {
	case 0:
		return "", ErrNoProject
	case 1:
		return id, nil
	default:
		return "", ErrMultipleProjects
	}
}
