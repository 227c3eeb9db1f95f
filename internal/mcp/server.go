// Package mcp exposes read-only tracker queries as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/joescharf/lnr/internal/filter"
	"github.com/joescharf/lnr/internal/models"
	"github.com/joescharf/lnr/internal/rank"
	"github.com/joescharf/lnr/internal/resolve"
)

// Tracker is the subset of the API client the tools need.
type Tracker interface {
	ListIssues(ctx context.Context, filter map[string]any) ([]models.Issue, error)
	ListProjects(ctx context.Context, filter map[string]any) ([]models.Project, error)
	ListMilestones(ctx context.Context, projectID string) ([]models.ProjectMilestone, error)
}

// Server wraps a Tracker and exposes it as MCP tools. There is nobody to
// answer a prompt, so every lookup is strict.
type Server struct {
	tracker Tracker
	version string
}

// NewServer creates the MCP server wrapper.
func NewServer(t Tracker, version string) *Server {
	return &Server{tracker: t, version: version}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("lnr", s.version, server.WithToolCapabilities(true))

	srv.AddTool(s.listIssuesTool())
	srv.AddTool(s.listProjectsTool())
	srv.AddTool(s.listMilestonesTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdioServer := server.NewStdioServer(s.MCPServer())
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// lnr_list_issues
func (s *Server) listIssuesTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("lnr_list_issues",
		mcp.WithDescription("List issues sorted by status. Without statuses only open issues are returned; without assignees or projects only the caller's issues. Returns a JSON array with id, identifier, title, status, statusType, assignee and creator."),
		mcp.WithArray("statuses", mcp.WithStringItems(), mcp.Description("Status kinds (canceled, completed, started, unstarted, backlog, triage) or workflow state name fragments")),
		mcp.WithArray("assignees", mcp.WithStringItems(), mcp.Description("Assignee display name fragments; @me is the caller")),
		mcp.WithArray("creators", mcp.WithStringItems(), mcp.Description("Creator display name fragments")),
		mcp.WithArray("projects", mcp.WithStringItems(), mcp.Description("Project name fragments")),
		mcp.WithArray("teams", mcp.WithStringItems(), mcp.Description("Team name fragments")),
		mcp.WithArray("labels", mcp.WithStringItems(), mcp.Description("Label name fragments")),
		mcp.WithString("cycle", mcp.Description("Cycle: active, previous or next"), mcp.Enum(models.CycleStates...)),
		mcp.WithString("query", mcp.Description("Text searched in title and description")),
		mcp.WithString("milestone", mcp.Description("Milestone name fragment")),
	)
	return tool, s.handleListIssues
}

func (s *Server) handleListIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	criteria := filter.IssueCriteria{
		Statuses:  request.GetStringSlice("statuses", nil),
		Assignees: request.GetStringSlice("assignees", nil),
		Creators:  request.GetStringSlice("creators", nil),
		Projects:  request.GetStringSlice("projects", nil),
		Teams:     request.GetStringSlice("teams", nil),
		Labels:    request.GetStringSlice("labels", nil),
		Cycle:     request.GetString("cycle", ""),
		Query:     request.GetString("query", ""),
		Milestone: request.GetString("milestone", ""),
	}.WithDefaultAssignee()

	f, err := filter.BuildIssueFilter(criteria)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	issues, err := s.tracker.ListIssues(ctx, f)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list issues: %v", err)), nil
	}

	return jsonResult(models.IssueSummaries(rank.ByStatus(issues)))
}

// lnr_list_projects
func (s *Server) listProjectsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("lnr_list_projects",
		mcp.WithDescription("List projects. Returns a JSON array with id, name, slugId, status and url."),
		mcp.WithBoolean("all", mcp.Description("Include projects the caller is not a member of")),
		mcp.WithString("name", mcp.Description("Project name fragment")),
		mcp.WithString("query", mcp.Description("Text searched in project content")),
	)
	return tool, s.handleListProjects
}

func (s *Server) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := filter.BuildProjectFilter(filter.ProjectCriteria{
		OwnOnly: !request.GetBool("all", false),
		Name:    request.GetString("name", ""),
		Query:   request.GetString("query", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	projects, err := s.tracker.ListProjects(ctx, f)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list projects: %v", err)), nil
	}
	return jsonResult(models.ProjectSummaries(projects))
}

// lnr_list_milestones
func (s *Server) listMilestonesTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("lnr_list_milestones",
		mcp.WithDescription("List a project's milestones in display order. The project name must match exactly one project."),
		mcp.WithString("project", mcp.Required(), mcp.Description("Project name fragment")),
	)
	return tool, s.handleListMilestones
}

func (s *Server) handleListMilestones(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: project"), nil
	}

	projects, err := s.tracker.ListProjects(ctx, filter.NameContains(name))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list projects: %v", err)), nil
	}
	p, err := resolve.StrictOne(resolve.Request{What: "project", Query: name}, projects, resolve.ProjectChoice)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	milestones, err := s.tracker.ListMilestones(ctx, p.ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list milestones: %v", err)), nil
	}
	return jsonResult(rank.Milestones(milestones))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
