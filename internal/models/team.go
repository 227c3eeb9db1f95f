package models

// User is a workspace member.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Label is an issue label. Group labels only contain other labels and
// cannot be assigned.
type Label struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsGroup bool   `json:"isGroup"`
}

// Team owns workflow states and labels.
type Team struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Key               string         `json:"key"`
	DefaultIssueState *WorkflowState `json:"defaultIssueState,omitempty"`
}

// Organization is the workspace the api key belongs to.
type Organization struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URLKey string `json:"urlKey"`
}

// Viewer is the authenticated user.
type Viewer struct {
	User
	Organization Organization `json:"organization"`
}
