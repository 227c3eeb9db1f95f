package models

// IssueSummary is the machine-readable form of an issue in list output.
type IssueSummary struct {
	ID         string     `json:"id"`
	Identifier string     `json:"identifier"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	StatusType StatusKind `json:"statusType"`
	Assignee   string     `json:"assignee"`
	Creator    string     `json:"creator"`
}

// Summary flattens the issue for list output.
func (i *Issue) Summary() IssueSummary {
	s := IssueSummary{ID: i.ID, Identifier: i.Identifier, Title: i.Title}
	if i.State != nil {
		s.Status = i.State.Name
		s.StatusType = i.State.Type
	}
	if i.Assignee != nil {
		s.Assignee = i.Assignee.DisplayName
	}
	if i.Creator != nil {
		s.Creator = i.Creator.DisplayName
	}
	return s
}

// ProjectSummary is the machine-readable form of a project in list output.
type ProjectSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	SlugID string `json:"slugId"`
	Status string `json:"status"`
	URL    string `json:"url"`
}

// Summary flattens the project for list output.
func (p *Project) Summary() ProjectSummary {
	return ProjectSummary{ID: p.ID, Name: p.Name, SlugID: p.SlugID, Status: p.Status.Name, URL: p.URL}
}

// IssueSummaries flattens a list of issues, never returning nil.
func IssueSummaries(issues []Issue) []IssueSummary {
	out := make([]IssueSummary, len(issues))
	for i := range issues {
		out[i] = issues[i].Summary()
	}
	return out
}

// ProjectSummaries flattens a list of projects, never returning nil.
func ProjectSummaries(projects []Project) []ProjectSummary {
	out := make([]ProjectSummary, len(projects))
	for i := range projects {
		out[i] = projects[i].Summary()
	}
	return out
}
