package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joescharf/lnr/internal/filter"
	"github.com/joescharf/lnr/internal/models"
	"github.com/joescharf/lnr/internal/output"
	"github.com/joescharf/lnr/internal/rank"
)

var (
	projectAll    bool
	projectQuery  string
	projectFormat string
	projectWeb    bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "List and view projects",
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	Long:    "List the projects you are a member of, or every project with --all.",
	Args:    cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
		return projectListRun(ctx, a)
	}),
}

var projectViewCmd = &cobra.Command{
	Use:   "view <name>",
	Short: "View a project and its milestones",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		return projectViewRun(ctx, a, args[0])
	}),
}

func init() {
	projectListCmd.Flags().BoolVarP(&projectAll, "all", "a", false, "Include projects you are not a member of")
	projectListCmd.Flags().StringVarP(&projectQuery, "query", "q", "", "Search project names and descriptions")
	projectListCmd.Flags().StringVar(&projectFormat, "format", "", "Output format: table, json, yaml")

	projectViewCmd.Flags().BoolVarP(&projectWeb, "web", "w", false, "Open the project in the browser")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectViewCmd)
	rootCmd.AddCommand(projectCmd)
}

func projectListRun(ctx context.Context, a *app) error {
	format, err := resolveFormat(projectFormat)
	if err != nil {
		return err
	}

	f, err := filter.BuildProjectFilter(filter.ProjectCriteria{
		OwnOnly: !projectAll,
		Query:   projectQuery,
	})
	if err != nil {
		return err
	}
	projects, err := a.client.ListProjects(ctx, f)
	if err != nil {
		return err
	}
	return printProjects(format, projects)
}

func projectViewRun(ctx context.Context, a *app, name string) error {
	var (
		viewer  *models.Viewer
		project models.Project
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := a.client.Viewer(gctx)
		viewer = v
		return err
	})
	g.Go(func() error {
		p, err := a.findProject(gctx, name)
		project = p
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	url := projectWebURL(viewer.Organization.URLKey, project.SlugID)
	if projectWeb {
		ui.Info("Opening project %s...", url)
		return openBrowser(url)
	}

	milestones, err := a.client.ListMilestones(ctx, project.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "%s\n\n", output.Cyan(project.Name))
	if project.Status.Name != "" {
		ui.Field("Status", project.Status.Name)
	}
	ui.Field("URL", url)
	fmt.Fprintln(ui.Out)

	if len(milestones) == 0 {
		ui.Info("No milestones found for this project")
		return nil
	}
	renderMilestoneTable(rank.Milestones(milestones))
	return nil
}
