package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joescharf/lnr/internal/batch"
	"github.com/joescharf/lnr/internal/linear"
	"github.com/joescharf/lnr/internal/models"
	"github.com/joescharf/lnr/internal/rank"
	"github.com/joescharf/lnr/internal/resolve"
)

var errDateRequired = errors.New("--date is required")

var (
	milestoneProject string
	milestoneName    string
	milestoneDate    string
	milestoneNewName string
	milestoneDesc    string
	milestoneFormat  string
	milestoneConfirm bool
)

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "List and edit project milestones",
}

var milestoneListCmd = &cobra.Command{
	Use:     "list <project>",
	Aliases: []string{"ls"},
	Short:   "List a project's milestones",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		return milestoneListRun(ctx, a, args[0])
	}),
}

var milestoneEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit one milestone",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
		return milestoneEditRun(ctx, a)
	}),
}

var milestoneEditManyCmd = &cobra.Command{
	Use:   "edit-many <project>",
	Short: "Set the target date of several milestones",
	Long: `Set the same target date on every milestone of a project, or on the
ones whose name contains --milestone. Milestones are updated in their
display order.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		return milestoneEditManyRun(ctx, a, args[0])
	}),
}

func init() {
	milestoneListCmd.Flags().StringVar(&milestoneFormat, "format", "", "Output format: table, json, yaml")

	milestoneEditCmd.Flags().StringVarP(&milestoneProject, "project", "p", "", "Project name")
	milestoneEditCmd.Flags().StringVarP(&milestoneName, "milestone", "m", "", "Milestone name")
	milestoneEditCmd.Flags().StringVarP(&milestoneDate, "date", "d", "", "New target date (YYYY-MM-DD)")
	milestoneEditCmd.Flags().StringVar(&milestoneNewName, "name", "", "New name")
	milestoneEditCmd.Flags().StringVar(&milestoneDesc, "description", "", "New description")
	_ = milestoneEditCmd.MarkFlagRequired("project")
	_ = milestoneEditCmd.MarkFlagRequired("milestone")

	milestoneEditManyCmd.Flags().StringVarP(&milestoneName, "milestone", "m", "", "Only milestones whose name contains this")
	milestoneEditManyCmd.Flags().StringVarP(&milestoneDate, "date", "d", "", "New target date (YYYY-MM-DD)")
	milestoneEditManyCmd.Flags().BoolVar(&milestoneConfirm, "confirm", false, "Skip the confirmation question")

	milestoneCmd.AddCommand(milestoneListCmd)
	milestoneCmd.AddCommand(milestoneEditCmd)
	milestoneCmd.AddCommand(milestoneEditManyCmd)
	projectCmd.AddCommand(milestoneCmd)
}

// parseDate accepts YYYY-MM-DD and returns it normalized.
func parseDate(s string) (string, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return t.Format("2006-01-02"), nil
}

func milestoneListRun(ctx context.Context, a *app, projectName string) error {
	format, err := resolveFormat(milestoneFormat)
	if err != nil {
		return err
	}

	project, err := a.findProject(ctx, projectName)
	if err != nil {
		return err
	}
	milestones, err := a.client.ListMilestones(ctx, project.ID)
	if err != nil {
		return err
	}
	return printMilestones(format, rank.Milestones(milestones))
}

func milestoneEditRun(ctx context.Context, a *app) error {
	var in linear.MilestoneUpdateInput
	if milestoneDate != "" {
		d, err := parseDate(milestoneDate)
		if err != nil {
			return err
		}
		in.TargetDate = &d
	}
	if n := strings.TrimSpace(milestoneNewName); n != "" {
		in.Name = &n
	}
	if milestoneDesc != "" {
		d := milestoneDesc
		in.Description = &d
	}
	if in.IsEmpty() {
		return batch.ErrNothingToUpdate
	}

	project, err := a.findProject(ctx, milestoneProject)
	if err != nil {
		return err
	}
	milestone, err := a.findMilestone(ctx, project.ID, milestoneName)
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("Would update milestone %s in %s", milestone.Name, project.Name)
		return nil
	}

	updated, err := a.client.UpdateMilestone(ctx, milestone.ID, in)
	if err != nil {
		return err
	}
	ui.Success("Milestone %s updated", updated.Name)
	if updated.TargetDate != nil {
		ui.Field("Target date", *updated.TargetDate)
	}
	return nil
}

func milestoneEditManyRun(ctx context.Context, a *app, projectName string) error {
	if milestoneDate == "" {
		return errDateRequired
	}
	date, err := parseDate(milestoneDate)
	if err != nil {
		return err
	}

	project, err := a.findProject(ctx, projectName)
	if err != nil {
		return err
	}
	all, err := a.client.ListMilestones(ctx, project.ID)
	if err != nil {
		return err
	}

	milestones := rank.Milestones(all)
	if milestoneName != "" {
		milestones = matchMilestones(milestones, milestoneName)
	}
	if len(milestones) == 0 {
		return &resolve.NotFoundError{What: "milestone", Query: milestoneName}
	}

	if dryRun {
		renderMilestoneTable(milestones)
		ui.DryRunMsg("Would set target date %s on %d milestone(s)", date, len(milestones))
		return nil
	}

	gate := batch.Gate{
		Confirmer: a.prompter,
		Render:    func() { renderMilestoneTable(milestones) },
	}
	if err := gate.Check(milestoneConfirm, "Are you sure you want to edit these milestones?"); err != nil {
		return err
	}

	in := linear.MilestoneUpdateInput{TargetDate: &date}
	if err := updateMilestones(ctx, a.client, milestones, in); err != nil {
		return err
	}
	ui.Success("Done! Updated %d milestone(s)", len(milestones))
	return nil
}

type milestoneUpdater interface {
	UpdateMilestone(ctx context.Context, id string, in linear.MilestoneUpdateInput) (*models.ProjectMilestone, error)
}

// updateMilestones applies in to each milestone in order and stops at the
// first failure.
func updateMilestones(ctx context.Context, u milestoneUpdater, milestones []models.ProjectMilestone, in linear.MilestoneUpdateInput) error {
	for _, m := range milestones {
		ui.VerboseLog("updating milestone %s", m.Name)
		if _, err := u.UpdateMilestone(ctx, m.ID, in); err != nil {
			return fmt.Errorf("update milestone %s: %w", m.Name, err)
		}
	}
	return nil
}
