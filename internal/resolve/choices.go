package resolve

import "github.com/joescharf/lnr/internal/models"

// TeamChoice labels a team by name.
func TeamChoice(t models.Team) Choice { return Choice{Label: t.Name, Value: t.ID} }

// ProjectChoice labels a project by name.
func ProjectChoice(p models.Project) Choice { return Choice{Label: p.Name, Value: p.ID} }

// UserChoice labels a user as "Name (displayName)".
func UserChoice(u models.User) Choice {
	label := u.Name
	if u.DisplayName != "" && u.DisplayName != u.Name {
		label += " (" + u.DisplayName + ")"
	}
	return Choice{Label: label, Value: u.ID}
}

// StateChoice labels a workflow state as "Name [kind]".
func StateChoice(s models.WorkflowState) Choice {
	return Choice{Label: s.Name + " [" + string(s.Type) + "]", Value: s.ID}
}

// MilestoneChoice labels a milestone with its target date.
func MilestoneChoice(m models.ProjectMilestone) Choice { return Choice{Label: m.Label(), Value: m.ID} }

// LabelChoice labels a label by name.
func LabelChoice(l models.Label) Choice { return Choice{Label: l.Name, Value: l.ID} }
