package linear

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/joescharf/lnr/internal/models"
)

// IssueUpdateInput is a partial issue update. Nil fields are left alone.
type IssueUpdateInput struct {
	Title              *string   `json:"title,omitempty"`
	Description        *string   `json:"description,omitempty"`
	AssigneeID         *string   `json:"assigneeId,omitempty"`
	StateID            *string   `json:"stateId,omitempty"`
	Priority           *int      `json:"priority,omitempty"`
	LabelIDs           *[]string `json:"labelIds,omitempty"`
	AddedLabelIDs      []string  `json:"addedLabelIds,omitempty"`
	ProjectMilestoneID *string   `json:"projectMilestoneId,omitempty"`
}

// IsEmpty reports whether the input changes nothing.
func (in IssueUpdateInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.AssigneeID == nil &&
		in.StateID == nil && in.Priority == nil && in.LabelIDs == nil &&
		len(in.AddedLabelIDs) == 0 && in.ProjectMilestoneID == nil
}

// IssueCreateInput describes a new issue.
type IssueCreateInput struct {
	TeamID      string   `json:"teamId"`
	StateID     string   `json:"stateId,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	LabelIDs    []string `json:"labelIds"`
	Priority    *int     `json:"priority,omitempty"`
}

// MilestoneUpdateInput is a partial milestone update.
type MilestoneUpdateInput struct {
	Name        *string `json:"name,omitempty"`
	TargetDate  *string `json:"targetDate,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsEmpty reports whether the input changes nothing.
func (in MilestoneUpdateInput) IsEmpty() bool {
	return in.Name == nil && in.TargetDate == nil && in.Description == nil
}

// ListIssues returns every issue matching filter.
func (c *Client) ListIssues(ctx context.Context, filter map[string]any) ([]models.Issue, error) {
	return paginated[models.Issue](ctx, c, listIssuesQuery, map[string]any{"filter": filter}, "issues")
}

// GetIssue fetches one issue by id or identifier.
func (c *Client) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	data, err := c.Request(ctx, getIssueQuery, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get issue %s: %w", id, err)
	}
	var issue models.Issue
	if err := decodeAt(data, "issue", &issue); err != nil {
		return nil, fmt.Errorf("get issue %s: %w", id, err)
	}
	return &issue, nil
}

// UpdateIssue applies in to one issue.
func (c *Client) UpdateIssue(ctx context.Context, id string, in IssueUpdateInput) (*models.IssueRef, error) {
	data, err := c.Request(ctx, updateIssueMutation, map[string]any{"id": id, "input": in})
	if err != nil {
		return nil, fmt.Errorf("update issue %s: %w", id, err)
	}
	if !gjson.GetBytes(data, "issueUpdate.success").Bool() {
		return nil, fmt.Errorf("update issue %s: %w", id, ErrUnsuccessful)
	}
	var ref models.IssueRef
	if err := decodeAt(data, "issueUpdate.issue", &ref); err != nil {
		return nil, fmt.Errorf("update issue %s: %w", id, err)
	}
	return &ref, nil
}

// BatchUpdateIssues applies in to every issue in ids with one mutation.
func (c *Client) BatchUpdateIssues(ctx context.Context, ids []string, in IssueUpdateInput) (bool, error) {
	data, err := c.Request(ctx, batchUpdateIssuesMutation, map[string]any{"ids": ids, "input": in})
	if err != nil {
		return false, fmt.Errorf("batch update %d issues: %w", len(ids), err)
	}
	return gjson.GetBytes(data, "issueBatchUpdate.success").Bool(), nil
}

// CreateIssue creates an issue.
func (c *Client) CreateIssue(ctx context.Context, in IssueCreateInput) (*models.IssueRef, error) {
	if in.LabelIDs == nil {
		in.LabelIDs = []string{}
	}
	data, err := c.Request(ctx, createIssueMutation, map[string]any{"input": in})
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	if !gjson.GetBytes(data, "issueCreate.success").Bool() {
		return nil, fmt.Errorf("create issue: %w", ErrUnsuccessful)
	}
	var ref models.IssueRef
	if err := decodeAt(data, "issueCreate.issue", &ref); err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	return &ref, nil
}

// ListProjects returns every project matching filter.
func (c *Client) ListProjects(ctx context.Context, filter map[string]any) ([]models.Project, error) {
	return paginated[models.Project](ctx, c, listProjectsQuery, map[string]any{"filter": filter}, "projects")
}

// ListMilestones returns every milestone of a project.
func (c *Client) ListMilestones(ctx context.Context, projectID string) ([]models.ProjectMilestone, error) {
	vars := map[string]any{"projectId": projectID}
	return paginated[models.ProjectMilestone](ctx, c, listMilestonesQuery, vars, "project.projectMilestones")
}

// UpdateMilestone applies in to one milestone.
func (c *Client) UpdateMilestone(ctx context.Context, id string, in MilestoneUpdateInput) (*models.ProjectMilestone, error) {
	data, err := c.Request(ctx, updateMilestoneMutation, map[string]any{"id": id, "input": in})
	if err != nil {
		return nil, fmt.Errorf("update milestone %s: %w", id, err)
	}
	if !gjson.GetBytes(data, "projectMilestoneUpdate.success").Bool() {
		return nil, fmt.Errorf("update milestone %s: %w", id, ErrUnsuccessful)
	}
	var m models.ProjectMilestone
	if err := decodeAt(data, "projectMilestoneUpdate.projectMilestone", &m); err != nil {
		return nil, fmt.Errorf("update milestone %s: %w", id, err)
	}
	return &m, nil
}

// Viewer returns the authenticated user and their organization.
func (c *Client) Viewer(ctx context.Context) (*models.Viewer, error) {
	data, err := c.Request(ctx, viewerQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	var v models.Viewer
	if err := decodeAt(data, "viewer", &v); err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	return &v, nil
}

// ViewerTeams returns the teams the authenticated user belongs to.
func (c *Client) ViewerTeams(ctx context.Context) ([]models.Team, error) {
	return paginated[models.Team](ctx, c, viewerTeamsQuery, nil, "viewer.teams")
}

// TeamStates returns a team's workflow states.
func (c *Client) TeamStates(ctx context.Context, teamID string) ([]models.WorkflowState, error) {
	return paginated[models.WorkflowState](ctx, c, teamStatesQuery, map[string]any{"teamId": teamID}, "team.states")
}

// TeamLabels returns a team's labels, narrowed by filter when non-nil.
func (c *Client) TeamLabels(ctx context.Context, teamID string, filter map[string]any) ([]models.Label, error) {
	vars := map[string]any{"teamId": teamID}
	if filter != nil {
		vars["filter"] = filter
	}
	return paginated[models.Label](ctx, c, teamLabelsQuery, vars, "team.labels")
}

// ListLabels returns workspace labels matching filter.
func (c *Client) ListLabels(ctx context.Context, filter map[string]any) ([]models.Label, error) {
	return paginated[models.Label](ctx, c, listLabelsQuery, map[string]any{"filter": filter}, "issueLabels")
}

// ListUsers returns users matching filter.
func (c *Client) ListUsers(ctx context.Context, filter map[string]any) ([]models.User, error) {
	return paginated[models.User](ctx, c, listUsersQuery, map[string]any{"filter": filter}, "users")
}
