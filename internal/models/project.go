package models

// ProjectStatus is the project's lifecycle status.
type ProjectStatus struct {
	Name string `json:"name"`
}

// Project is a read-only snapshot of a remote project.
type Project struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	SlugID string        `json:"slugId"`
	URL    string        `json:"url"`
	Status ProjectStatus `json:"status"`
}

// ProjectRef is the project reference embedded in an issue.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectMilestone belongs to exactly one project.
type ProjectMilestone struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	TargetDate  *string `json:"targetDate"`
	SortOrder   float64 `json:"sortOrder"`
	Description *string `json:"description"`
}

// ProjectMilestoneRef is the milestone reference embedded in an issue.
type ProjectMilestoneRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Label is the milestone name followed by its target date, if any.
func (m ProjectMilestone) Label() string {
	if m.TargetDate == nil || *m.TargetDate == "" {
		return m.Name
	}
	return m.Name + " (" + *m.TargetDate + ")"
}
