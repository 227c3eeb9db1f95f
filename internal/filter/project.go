package filter

import "strings"

// ProjectCriteria are the optional project search criteria.
type ProjectCriteria struct {
	// OwnOnly limits results to projects the viewer is a member of.
	OwnOnly bool
	Name    string
	Query   string
	// AccessibleByTeamID limits results to projects the team can see.
	AccessibleByTeamID string
}

var projectFragments = []Fragment[ProjectCriteria]{
	func(c ProjectCriteria) (Term, bool, error) {
		if !c.OwnOnly {
			return nil, false, nil
		}
		return Term{"members": Term{"isMe": Term{"eq": true}}}, true, nil
	},
	func(c ProjectCriteria) (Term, bool, error) {
		if n := strings.TrimSpace(c.Name); n != "" {
			return Term{"name": Term{"containsIgnoreCase": n}}, true, nil
		}
		return nil, false, nil
	},
	func(c ProjectCriteria) (Term, bool, error) {
		if q := strings.TrimSpace(c.Query); q != "" {
			return Term{"searchableContent": Term{"contains": q}}, true, nil
		}
		return nil, false, nil
	},
	func(c ProjectCriteria) (Term, bool, error) {
		if c.AccessibleByTeamID == "" {
			return nil, false, nil
		}
		return Term{"accessibleTeams": Term{"some": Term{"id": Term{"eq": c.AccessibleByTeamID}}}}, true, nil
	},
}

// BuildProjectFilter composes the project filter for c.
func BuildProjectFilter(c ProjectCriteria) (Filter, error) {
	return compose(c, projectFragments)
}
