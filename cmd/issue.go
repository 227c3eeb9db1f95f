package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joescharf/lnr/internal/batch"
	"github.com/joescharf/lnr/internal/filter"
	"github.com/joescharf/lnr/internal/linear"
	"github.com/joescharf/lnr/internal/models"
	"github.com/joescharf/lnr/internal/output"
	"github.com/joescharf/lnr/internal/rank"
	"github.com/joescharf/lnr/internal/resolve"
)

var errTitleRequired = errors.New("Title is required!")

// Filter flags shared by list and edit-many.
var (
	issueStatuses  []string
	issueAssignees []string
	issueCreators  []string
	issueProjects  []string
	issueTeams     []string
	issueLabels    []string
	issueCycle     string
	issueQuery     string
	issueMilestone string
	issueFormat    string
)

// Field flags for create and edit.
var (
	issueTitle        string
	issueDesc         string
	issueAssignee     string
	issueStatus       string
	issuePriority     string
	issueLabel        string
	issueProject      string
	issueWeb          bool
	issueConfirm      bool
	issueAddMilestone string
	issueAddAssignee  string
	issueAddLabel     string
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "List, create and edit issues",
}

var issueListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List issues",
	Long: `List issues sorted by status.

Without --status only open issues are shown (everything but completed and
canceled). Without --assignee and --project only your own issues are shown.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
		return issueListRun(ctx, a)
	}),
}

var issueCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an issue",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
		return issueCreateRun(ctx, a)
	}),
}

var issueViewCmd = &cobra.Command{
	Use:   "view <issue-id>",
	Short: "View an issue",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		return issueViewRun(ctx, a, args[0])
	}),
}

var issueEditCmd = &cobra.Command{
	Use:   "edit <issue-id>",
	Short: "Edit an issue",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		return issueEditRun(ctx, a, args[0])
	}),
}

var issueEditManyCmd = &cobra.Command{
	Use:   "edit-many",
	Short: "Apply one change to every matching issue",
	Long: `Find issues with the same filters as 'issue list' and apply one batch
update to all of them. Unlike 'issue list' there is no default assignee.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
		return issueEditManyRun(ctx, a)
	}),
}

func addIssueFilterFlags(c *cobra.Command) {
	c.Flags().StringArrayVarP(&issueStatuses, "status", "s", nil,
		"Status kind ("+kindList()+") or state name; repeatable")
	c.Flags().StringArrayVarP(&issueAssignees, "assignee", "a", nil, "Assignee display name, @me for yourself; repeatable")
	c.Flags().StringArrayVar(&issueCreators, "creator", nil, "Creator display name; repeatable")
	c.Flags().StringArrayVarP(&issueProjects, "project", "p", nil, "Project name; repeatable")
	c.Flags().StringArrayVarP(&issueTeams, "team", "t", nil, "Team name; repeatable")
	c.Flags().StringArrayVarP(&issueLabels, "label", "l", nil, "Label name; repeatable")
	c.Flags().StringVarP(&issueCycle, "cycle", "c", "", "Cycle: "+strings.Join(models.CycleStates, ", "))
	c.Flags().StringVarP(&issueQuery, "query", "q", "", "Free text search")
	c.Flags().StringVarP(&issueMilestone, "milestone", "m", "", "Milestone name")
}

func init() {
	addIssueFilterFlags(issueListCmd)
	issueListCmd.Flags().StringVar(&issueFormat, "format", "", "Output format: table, json, yaml")

	issueCreateCmd.Flags().StringVar(&issueTitle, "title", "", "Issue title")
	issueCreateCmd.Flags().StringVarP(&issueDesc, "description", "d", "", "Issue description")
	issueCreateCmd.Flags().StringVarP(&issueProject, "project", "p", "", "Project name")
	issueCreateCmd.Flags().StringVarP(&issueLabel, "label", "l", "", "Label name")
	issueCreateCmd.Flags().StringVar(&issuePriority, "priority", "", "Priority: "+strings.Join(models.Priorities, ", "))

	issueViewCmd.Flags().BoolVarP(&issueWeb, "web", "w", false, "Open the issue in the browser")

	issueEditCmd.Flags().StringVar(&issueTitle, "title", "", "New title")
	issueEditCmd.Flags().StringVarP(&issueDesc, "description", "d", "", "New description")
	issueEditCmd.Flags().StringVarP(&issueAssignee, "assignee", "a", "", "New assignee")
	issueEditCmd.Flags().StringVarP(&issueStatus, "status", "s", "", "New status kind or state name")
	issueEditCmd.Flags().StringVarP(&issuePriority, "priority", "p", "", "New priority: "+strings.Join(models.Priorities, ", "))
	issueEditCmd.Flags().StringVarP(&issueLabel, "label", "l", "", "Edit labels matching this name")

	addIssueFilterFlags(issueEditManyCmd)
	issueEditManyCmd.Flags().StringVar(&issueAddMilestone, "add-milestone", "", "Milestone to put every issue in")
	issueEditManyCmd.Flags().StringVar(&issueAddAssignee, "add-assignee", "", "Assignee for every issue")
	issueEditManyCmd.Flags().StringVar(&issueAddLabel, "add-label", "", "Label to add to every issue")
	issueEditManyCmd.Flags().BoolVar(&issueConfirm, "confirm", false, "Skip the confirmation question")

	issueCmd.AddCommand(issueListCmd)
	issueCmd.AddCommand(issueCreateCmd)
	issueCmd.AddCommand(issueViewCmd)
	issueCmd.AddCommand(issueEditCmd)
	issueCmd.AddCommand(issueEditManyCmd)
	rootCmd.AddCommand(issueCmd)
}

func kindList() string {
	kinds := make([]string, len(models.StatusKinds))
	for i, k := range models.StatusKinds {
		kinds[i] = string(k)
	}
	return strings.Join(kinds, ", ")
}

func issueCriteria() filter.IssueCriteria {
	return filter.IssueCriteria{
		Statuses:  issueStatuses,
		Assignees: issueAssignees,
		Creators:  issueCreators,
		Projects:  issueProjects,
		Teams:     issueTeams,
		Labels:    issueLabels,
		Cycle:     issueCycle,
		Query:     issueQuery,
		Milestone: issueMilestone,
	}
}

// findIssues runs the filter and returns the matches ranked by status.
func findIssues(ctx context.Context, a *app, c filter.IssueCriteria) ([]models.Issue, error) {
	f, err := filter.BuildIssueFilter(c)
	if err != nil {
		return nil, err
	}
	issues, err := a.client.ListIssues(ctx, f)
	if err != nil {
		return nil, err
	}
	return rank.ByStatus(issues), nil
}

func issueListRun(ctx context.Context, a *app) error {
	format, err := resolveFormat(issueFormat)
	if err != nil {
		return err
	}

	issues, err := findIssues(ctx, a, issueCriteria().WithDefaultAssignee())
	if err != nil {
		return err
	}
	return printIssues(format, issues)
}

func issueCreateRun(ctx context.Context, a *app) error {
	var priority *int
	if issuePriority != "" {
		p, err := models.ParsePriority(issuePriority)
		if err != nil {
			return err
		}
		priority = &p
	}

	title := strings.TrimSpace(issueTitle)
	if title == "" && a.interactive {
		t, err := a.prompter.Input("Title:")
		if err != nil {
			return err
		}
		title = strings.TrimSpace(t)
	}
	if title == "" {
		return errTitleRequired
	}

	teams, err := a.client.ViewerTeams(ctx)
	if err != nil {
		return err
	}
	teamReq := resolve.Request{What: "team", Message: "Select team"}
	team, err := resolve.One(a.chooser(teamReq), teamReq, teams, resolve.TeamChoice)
	if err != nil {
		return err
	}

	pf, err := filter.BuildProjectFilter(filter.ProjectCriteria{
		OwnOnly:            issueProject == "",
		Name:               issueProject,
		AccessibleByTeamID: team.ID,
	})
	if err != nil {
		return err
	}

	var (
		projects  []models.Project
		labelPool []models.Label
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ps, err := a.client.ListProjects(gctx, pf)
		projects = ps
		return err
	})
	if issueLabel != "" {
		g.Go(func() error {
			ls, err := a.client.TeamLabels(gctx, team.ID, filter.NameContains(issueLabel))
			labelPool = ls
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	projectReq := resolve.Request{What: "project", Query: issueProject, Message: "Select project"}
	project, err := resolve.One(a.chooser(projectReq), projectReq, projects, resolve.ProjectChoice)
	if err != nil {
		return err
	}

	description, err := issueDescription(a)
	if err != nil {
		return err
	}

	var labelIDs []string
	if issueLabel != "" {
		labelIDs, err = resolve.PickLabels(a.multiChooser("label", issueLabel), issueLabel, labelPool)
		if err != nil {
			return err
		}
	}

	in := linear.IssueCreateInput{
		TeamID:      team.ID,
		Title:       title,
		Description: description,
		ProjectID:   project.ID,
		LabelIDs:    labelIDs,
		Priority:    priority,
	}
	if team.DefaultIssueState != nil {
		in.StateID = team.DefaultIssueState.ID
	}

	if dryRun {
		ui.DryRunMsg("Would create issue %q in team %s for project %s", title, team.Name, project.Name)
		return nil
	}

	ref, err := a.client.CreateIssue(ctx, in)
	if err != nil {
		return err
	}
	ui.Success("Created issue %s for project %s", output.Cyan(ref.Identifier), project.Name)
	fmt.Fprintln(ui.Out, ref.URL)
	return nil
}

// issueDescription returns --description or asks for one. Answering "e"
// opens the configured editor.
func issueDescription(a *app) (string, error) {
	if issueDesc != "" || !a.interactive {
		return issueDesc, nil
	}

	ed := a.cfg.EditorCommand()
	question := "Body: (enter to skip)"
	if ed != "" {
		question = fmt.Sprintf("Body: (e to launch %s, enter to skip)", ed)
	}
	answer, err := a.prompter.Input(question)
	if err != nil {
		return "", err
	}
	if ed != "" && answer == "e" {
		return openEditor(ed)
	}
	return answer, nil
}

func issueViewRun(ctx context.Context, a *app, id string) error {
	var (
		viewer *models.Viewer
		issue  *models.Issue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := a.client.Viewer(gctx)
		viewer = v
		return err
	})
	g.Go(func() error {
		is, err := a.client.GetIssue(gctx, id)
		if errors.Is(err, linear.ErrNotFound) {
			ui.Warning("Issue not found!")
			return &resolve.NotFoundError{What: "issue", Query: id}
		}
		issue = is
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	url := issueWebURL(viewer.Organization.URLKey, issue.Identifier)
	if !issueWeb {
		printIssueDetail(issue, url)
		return nil
	}

	ui.Info("Opening issue %s...", url)
	return openBrowser(url)
}

func issueEditRun(ctx context.Context, a *app, id string) error {
	var in linear.IssueUpdateInput

	if t := strings.TrimSpace(issueTitle); t != "" {
		in.Title = &t
	}
	if issueDesc != "" {
		d := issueDesc
		in.Description = &d
	}
	if issuePriority != "" {
		p, err := models.ParsePriority(issuePriority)
		if err != nil {
			return err
		}
		in.Priority = &p
	}

	issue, err := a.client.GetIssue(ctx, id)
	if err != nil {
		if errors.Is(err, linear.ErrNotFound) {
			return &resolve.NotFoundError{What: "issue", Query: id}
		}
		return err
	}

	if issueAssignee != "" {
		u, err := a.findUser(ctx, issueAssignee)
		if err != nil {
			return err
		}
		in.AssigneeID = &u.ID
	}

	if issueStatus != "" || issueLabel != "" {
		if issue.Team == nil {
			return fmt.Errorf("could not find team for issue %s", issue.Identifier)
		}
	}

	if issueStatus != "" {
		s, err := a.findState(ctx, issue.Team.ID, issueStatus)
		if err != nil {
			return err
		}
		in.StateID = &s.ID
	}

	if issueLabel != "" {
		pool, err := a.client.TeamLabels(ctx, issue.Team.ID, filter.NameContains(issueLabel))
		if err != nil {
			return err
		}
		edit, err := resolve.EditLabels(a.multiChooser("label", issueLabel), issueLabel, pool, issue.LabelIDs())
		if err != nil {
			return err
		}
		if edit.Changed {
			in.LabelIDs = &edit.Next
		}
	}

	if in.IsEmpty() {
		return batch.ErrNothingToUpdate
	}

	if dryRun {
		ui.DryRunMsg("Would update issue %s", issue.Identifier)
		return nil
	}

	ref, err := a.client.UpdateIssue(ctx, issue.ID, in)
	if err != nil {
		return err
	}
	ui.Success("Issue %s updated", output.Cyan(ref.Identifier))
	fmt.Fprintln(ui.Out, ref.URL)
	return nil
}

func issueEditManyRun(ctx context.Context, a *app) error {
	if issueAddMilestone == "" && issueAddAssignee == "" && issueAddLabel == "" {
		return batch.ErrNothingToUpdate
	}

	issues, err := findIssues(ctx, a, issueCriteria())
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		ui.Info("No issues found")
		return nil
	}

	delta, err := editManyDelta(ctx, a, issues)
	if err != nil {
		return err
	}

	if dryRun {
		renderIssueTable(issues)
		ui.DryRunMsg("Would update %d issue(s)", len(issues))
		return nil
	}

	applier := &batch.Applier{
		Updater: a.client,
		Gate: batch.Gate{
			Confirmer: a.prompter,
			Render:    func() { renderIssueTable(issues) },
		},
	}
	if err := applier.Apply(ctx, issues, delta, issueConfirm); err != nil {
		return err
	}
	ui.Success("Done! Updated %d issue(s)", len(issues))
	return nil
}

// editManyDelta resolves every --add-* flag before anything is sent.
func editManyDelta(ctx context.Context, a *app, issues []models.Issue) (batch.Delta, error) {
	var delta batch.Delta

	if issueAddMilestone != "" {
		projectID, err := batch.SingleProject(issues)
		if err != nil {
			return delta, err
		}
		m, err := a.findMilestone(ctx, projectID, issueAddMilestone)
		if err != nil {
			return delta, err
		}
		delta.ProjectMilestoneID = m.ID
	}

	if issueAddAssignee != "" {
		u, err := a.findUser(ctx, issueAddAssignee)
		if err != nil {
			return delta, err
		}
		delta.AssigneeID = u.ID
	}

	if issueAddLabel != "" {
		labels, err := a.client.ListLabels(ctx, filter.NameContains(issueAddLabel))
		if err != nil {
			return delta, err
		}
		req := resolve.Request{What: "label", Query: issueAddLabel, Message: "Select label"}
		l, err := resolve.One(a.chooser(req), req, resolve.Assignable(labels), resolve.LabelChoice)
		if err != nil {
			return delta, err
		}
		delta.AddedLabelIDs = []string{l.ID}
	}

	return delta, nil
}
