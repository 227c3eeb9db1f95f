package cmd

import (
	"context"
	"strings"

	"github.com/joescharf/lnr/internal/filter"
	"github.com/joescharf/lnr/internal/models"
	"github.com/joescharf/lnr/internal/resolve"
)

// findProject resolves a project name strictly: several matches are an
// error listing the names, never a prompt.
func (a *app) findProject(ctx context.Context, name string) (models.Project, error) {
	projects, err := a.client.ListProjects(ctx, filter.NameContains(name))
	if err != nil {
		return models.Project{}, err
	}
	return resolve.StrictOne(resolve.Request{What: "project", Query: name}, projects, resolve.ProjectChoice)
}

// findUser resolves an assignee by name or display name.
func (a *app) findUser(ctx context.Context, name string) (models.User, error) {
	users, err := a.client.ListUsers(ctx, filter.UserMatches(name))
	if err != nil {
		return models.User{}, err
	}
	req := resolve.Request{What: "assignee", Query: name, Message: "Select assignee"}
	return resolve.One(a.chooser(req), req, users, resolve.UserChoice)
}

// findState resolves a status against a team's workflow states: a state
// matches when its kind equals status or its name contains it.
func (a *app) findState(ctx context.Context, teamID, status string) (models.WorkflowState, error) {
	states, err := a.client.TeamStates(ctx, teamID)
	if err != nil {
		return models.WorkflowState{}, err
	}
	want := strings.ToLower(strings.TrimSpace(status))
	var matches []models.WorkflowState
	for _, s := range states {
		if string(s.Type) == want || strings.Contains(strings.ToLower(s.Name), want) {
			matches = append(matches, s)
		}
	}
	req := resolve.Request{What: "workflow state", Query: status, Message: "Narrow down status"}
	return resolve.One(a.chooser(req), req, matches, resolve.StateChoice)
}

// matchMilestones keeps the milestones whose name contains query.
func matchMilestones(milestones []models.ProjectMilestone, query string) []models.ProjectMilestone {
	want := strings.ToLower(strings.TrimSpace(query))
	var out []models.ProjectMilestone
	for _, m := range milestones {
		if strings.Contains(strings.ToLower(m.Name), want) {
			out = append(out, m)
		}
	}
	return out
}

// findMilestone resolves a milestone by name within one project.
func (a *app) findMilestone(ctx context.Context, projectID, name string) (models.ProjectMilestone, error) {
	milestones, err := a.client.ListMilestones(ctx, projectID)
	if err != nil {
		return models.ProjectMilestone{}, err
	}
	req := resolve.Request{What: "milestone", Query: name, Message: "Select milestone"}
	return resolve.One(a.chooser(req), req, matchMilestones(milestones, name), resolve.MilestoneChoice)
}
