package resolve

import (
	"slices"

	"github.com/joescharf/lnr/internal/models"
)

// LabelEdit is the outcome of resolving a label-set edit.
type LabelEdit struct {
	// Next is the complete label set to store.
	Next []string
	// Changed is false when Next equals the current set.
	Changed bool
}

// EditLabels resolves a label-set edit. pool is the set of labels matching
// the user's query, current the issue's label ids. Labels outside the pool
// are always kept; inside the pool the selection decides membership. A single
// match is selected without prompting.
func EditLabels(chooser MultiChooser, query string, pool []models.Label, current []string) (LabelEdit, error) {
	pool = Assignable(pool)
	if len(pool) == 0 {
		return LabelEdit{}, &NotFoundError{What: "label", Query: query}
	}

	var selected []string
	if len(pool) == 1 {
		selected = []string{pool[0].ID}
	} else {
		choices := make([]Choice, len(pool))
		var checked []string
		for i, l := range pool {
			choices[i] = Choice{Label: l.Name, Value: l.ID}
			if slices.Contains(current, l.ID) {
				checked = append(checked, l.ID)
			}
		}
		var err error
		selected, err = chooser.MultiSelect("Select labels", choices, checked)
		if err != nil {
			return LabelEdit{}, err
		}
	}

	poolIDs := make([]string, len(pool))
	for i, l := range pool {
		poolIDs[i] = l.ID
	}
	next := MergeLabels(current, poolIDs, selected)
	return LabelEdit{Next: next, Changed: !SameSet(current, next)}, nil
}

// MergeLabels keeps ids of current outside pool and adds the selected ids.
// The result has no duplicates and keeps first-seen order.
func MergeLabels(current, pool, selected []string) []string {
	next := make([]string, 0, len(current)+len(selected))
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			next = append(next, id)
		}
	}
	for _, id := range current {
		if !slices.Contains(pool, id) {
			add(id)
		}
	}
	for _, id := range selected {
		add(id)
	}
	return next
}

// SameSet reports whether a and b hold the same ids, ignoring order and duplicates.
func SameSet(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, id := range a {
		as[id] = true
	}
	bs := make(map[string]bool, len(b))
	for _, id := range b {
		bs[id] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for id := range bs {
		if !as[id] {
			return false
		}
	}
	return true
}

// Assignable drops group labels.
func Assignable(labels []models.Label) []models.Label {
	out := make([]models.Label, 0, len(labels))
	for _, l := range labels {
		if !l.IsGroup {
			out = append(out, l)
		}
	}
	return out
}

// PickLabels resolves a label query to a set of label ids for a new issue.
func PickLabels(chooser MultiChooser, query string, pool []models.Label) ([]string, error) {
	pool = Assignable(pool)
	switch len(pool) {
	case 0:
		return nil, &NotFoundError{What: "label", Query: query}
	case 1:
		return []string{pool[0].ID}, nil
	}
	choices := make([]Choice, len(pool))
	for i, l := range pool {
		choices[i] = Choice{Label: l.Name, Value: l.ID}
	}
	return chooser.MultiSelect("Select labels", choices, nil)
}
