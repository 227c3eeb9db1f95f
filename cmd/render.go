package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/joescharf/lnr/internal/models"
	"github.com/joescharf/lnr/internal/output"
)

// resolveFormat falls back to LNR_FORMAT, then table.
func resolveFormat(flag string) (output.Format, error) {
	if flag == "" {
		flag = viper.GetString("format")
	}
	return output.ParseFormat(flag)
}

func printIssues(f output.Format, issues []models.Issue) error {
	if f != output.FormatTable {
		return ui.Structured(f, models.IssueSummaries(issues))
	}
	if len(issues) == 0 {
		ui.Info("No issues found")
		return nil
	}
	renderIssueTable(issues)
	return nil
}

func renderIssueTable(issues []models.Issue) {
	table := ui.Table([]string{"ID", "Title", "Status", "Assignee", "Creator"})
	for _, is := range issues {
		s := is.Summary()
		status := s.Status
		if is.State != nil {
			status = output.StateColor(is.State.Name, is.State.Color)
		}
		_ = table.Append([]string{
			"[" + is.Identifier + "]",
			output.Truncate(is.Title, 64),
			status,
			s.Assignee,
			s.Creator,
		})
	}
	_ = table.Render()
}

func printProjects(f output.Format, projects []models.Project) error {
	if f != output.FormatTable {
		return ui.Structured(f, models.ProjectSummaries(projects))
	}
	if len(projects) == 0 {
		ui.Info("No projects found")
		return nil
	}
	table := ui.Table([]string{"Name", "Status", "Url"})
	for _, p := range projects {
		_ = table.Append([]string{p.Name, p.Status.Name, p.URL})
	}
	_ = table.Render()
	return nil
}

func printMilestones(f output.Format, milestones []models.ProjectMilestone) error {
	if f != output.FormatTable {
		if milestones == nil {
			milestones = []models.ProjectMilestone{}
		}
		return ui.Structured(f, milestones)
	}
	if len(milestones) == 0 {
		ui.Info("No milestones found for this project")
		return nil
	}
	renderMilestoneTable(milestones)
	return nil
}

func renderMilestoneTable(milestones []models.ProjectMilestone) {
	table := ui.Table([]string{"Name", "Target Date", "Description"})
	for _, m := range milestones {
		date := output.Faint("no date")
		if m.TargetDate != nil && *m.TargetDate != "" {
			date = output.RelativeDate(*m.TargetDate, now())
		}
		desc := ""
		if m.Description != nil {
			desc = output.Truncate(firstLine(*m.Description), 48)
		}
		_ = table.Append([]string{m.Name, date, desc})
	}
	_ = table.Render()
}

func printIssueDetail(is *models.Issue, url string) {
	fmt.Fprintf(ui.Out, "%s  %s\n\n", output.Cyan(is.Identifier), is.Title)

	if is.State != nil {
		ui.Field("Status", output.StateColor(is.State.Name, is.State.Color))
	}
	ui.Field("Priority", output.PriorityColor(models.PriorityName(is.Priority)))
	if is.Assignee != nil {
		ui.Field("Assignee", is.Assignee.DisplayName)
	}
	if is.Creator != nil {
		ui.Field("Creator", is.Creator.DisplayName)
	}
	if is.Team != nil {
		ui.Field("Team", is.Team.Name)
	}
	if is.Project != nil {
		ui.Field("Project", is.Project.Name)
	}
	if is.Milestone != nil {
		ui.Field("Milestone", is.Milestone.Name)
	}
	if len(is.Labels.Nodes) > 0 {
		names := make([]string, len(is.Labels.Nodes))
		for i, l := range is.Labels.Nodes {
			names[i] = l.Name
		}
		ui.Field("Labels", strings.Join(names, ", "))
	}
	ui.Field("URL", url)

	if d := strings.TrimSpace(is.Description); d != "" {
		fmt.Fprintf(ui.Out, "\n%s\n", d)
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func issueWebURL(urlKey, identifier string) string {
	return fmt.Sprintf("https://linear.app/%s/issue/%s", urlKey, identifier)
}

func projectWebURL(urlKey, slugID string) string {
	return fmt.Sprintf("https://linear.app/%s/project/%s/overview", urlKey, slugID)
}
