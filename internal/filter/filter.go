// Package filter composes remote query filters from optional search criteria.
//
// Each criterion is handled by one fragment that yields zero or one term.
// Terms are combined by key into a single object, which the API reads as a
// conjunction. Multi-value criteria become an "or" list inside their own
// relation, so the only top-level disjunction is the status one.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joescharf/lnr/internal/models"
)

// Me is the assignee token for the authenticated user.
const Me = "@me"

// ErrInvalidCycle is returned for a cycle label outside models.CycleStates.
var ErrInvalidCycle = errors.New("invalid cycle")

// Filter is a structured filter expression ready to be sent as a query variable.
type Filter map[string]any

// Term is one fragment's contribution to a filter.
type Term map[string]any

// IssueCriteria are the independently optional issue search criteria.
type IssueCriteria struct {
	Statuses  []string
	Assignees []string
	Creators  []string
	Projects  []string
	Teams     []string
	Labels    []string
	Cycle     string
	Query     string
	Milestone string
}

// Fragment turns one criterion into at most one term.
type Fragment[C any] func(c C) (Term, bool, error)

// issueFragments is the fixed composition order.
var issueFragments = []Fragment[IssueCriteria]{
	statusFragment,
	assigneeFragment,
	creatorFragment,
	projectFragment,
	teamFragment,
	labelFragment,
	cycleFragment,
	queryFragment,
	milestoneFragment,
}

// BuildIssueFilter composes the issue filter for c.
func BuildIssueFilter(c IssueCriteria) (Filter, error) {
	return compose(c, issueFragments)
}

func compose[C any](c C, fragments []Fragment[C]) (Filter, error) {
	f := Filter{}
	for _, frag := range fragments {
		term, ok, err := frag(c)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for k, v := range term {
			if _, dup := f[k]; dup {
				return nil, fmt.Errorf("filter key %q set by two criteria", k)
			}
			f[k] = v
		}
	}
	return f, nil
}

// containsAny builds name-contains-fragment comparators, one per value.
func containsAny(field string, values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, Term{field: Term{"containsIgnoreCase": v}})
	}
	return out
}

// clean trims values and drops empty ones.
func clean(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// statusFragment applies the open-issues default when no status is given.
// Tokens naming a status kind filter by kind; any other token matches state
// names, and the groups are OR'd at the top level.
func statusFragment(c IssueCriteria) (Term, bool, error) {
	tokens := clean(c.Statuses)
	if len(tokens) == 0 {
		return Term{"state": Term{"type": Term{"nin": []string{
			string(models.StatusCompleted),
			string(models.StatusCanceled),
		}}}}, true, nil
	}

	var kinds []string
	var alternatives []any
	for _, tok := range tokens {
		if k, ok := models.ParseStatusKind(tok); ok {
			kinds = append(kinds, string(k))
			continue
		}
		alternatives = append(alternatives, Term{"state": Term{"name": Term{"containsIgnoreCase": tok}}})
	}
	if len(kinds) > 0 {
		kindTerm := Term{"state": Term{"type": Term{"in": kinds}}}
		alternatives = append([]any{kindTerm}, alternatives...)
	}

	if len(alternatives) == 1 {
		return alternatives[0].(Term), true, nil
	}
	return Term{"or": alternatives}, true, nil
}

func assigneeFragment(c IssueCriteria) (Term, bool, error) {
	names := clean(c.Assignees)
	if len(names) == 0 {
		return nil, false, nil
	}
	var alternatives []any
	for _, n := range names {
		if n == Me {
			alternatives = append(alternatives, Term{"isMe": Term{"eq": true}})
			continue
		}
		alternatives = append(alternatives, Term{"displayName": Term{"containsIgnoreCase": n}})
	}
	return Term{"assignee": Term{"or": alternatives}}, true, nil
}

func creatorFragment(c IssueCriteria) (Term, bool, error) {
	return relationFragment("creator", "displayName", c.Creators)
}

func projectFragment(c IssueCriteria) (Term, bool, error) {
	return relationFragment("project", "name", c.Projects)
}

func teamFragment(c IssueCriteria) (Term, bool, error) {
	return relationFragment("team", "name", c.Teams)
}

func labelFragment(c IssueCriteria) (Term, bool, error) {
	names := clean(c.Labels)
	if len(names) == 0 {
		return nil, false, nil
	}
	return Term{"labels": Term{"some": Term{"or": containsAny("name", names)}}}, true, nil
}

func relationFragment(relation, field string, values []string) (Term, bool, error) {
	names := clean(values)
	if len(names) == 0 {
		return nil, false, nil
	}
	return Term{relation: Term{"or": containsAny(field, names)}}, true, nil
}

// cycleFragment maps cycle labels to cycle predicates. "previous" selects
// isNext and "next" selects isPrevious; existing users depend on that.
func cycleFragment(c IssueCriteria) (Term, bool, error) {
	var predicate string
	switch strings.ToLower(strings.TrimSpace(c.Cycle)) {
	case "":
		return nil, false, nil
	case models.CycleActive:
		predicate = "isActive"
	case models.CyclePrevious:
		predicate = "isNext"
	case models.CycleNext:
		predicate = "isPrevious"
	default:
		return nil, false, fmt.Errorf("%w %q: must be one of %s", ErrInvalidCycle, c.Cycle, strings.Join(models.CycleStates, ", "))
	}
	return Term{"cycle": Term{predicate: Term{"eq": true}}}, true, nil
}

func queryFragment(c IssueCriteria) (Term, bool, error) {
	q := strings.TrimSpace(c.Query)
	if q == "" {
		return nil, false, nil
	}
	return Term{"searchableContent": Term{"contains": q}}, true, nil
}

func milestoneFragment(c IssueCriteria) (Term, bool, error) {
	m := strings.TrimSpace(c.Milestone)
	if m == "" {
		return nil, false, nil
	}
	return Term{"projectMilestone": Term{"name": Term{"containsIgnoreCase": m}}}, true, nil
}
