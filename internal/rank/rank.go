// Package rank orders issues by status kind.
package rank

import (
	"math"
	"slices"

	"github.com/joescharf/lnr/internal/models"
)

// Unranked is the rank of a missing or unknown status kind.
const Unranked = math.MaxInt

// StatusRank returns the kind's position in models.StatusKinds.
func StatusRank(kind models.StatusKind) int {
	if i := slices.Index(models.StatusKinds, kind); i >= 0 {
		return i
	}
	return Unranked
}

// ByStatus returns a copy of issues stably sorted by status rank. Issues of
// equal rank keep their server order; unknown kinds sort last.
func ByStatus(issues []models.Issue) []models.Issue {
	sorted := slices.Clone(issues)
	slices.SortStableFunc(sorted, func(a, b models.Issue) int {
		ra, rb := StatusRank(a.StatusKind()), StatusRank(b.StatusKind())
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
		return 0
	})
	return sorted
}

// Milestones returns a copy of milestones stably sorted by sort order.
func Milestones(milestones []models.ProjectMilestone) []models.ProjectMilestone {
	sorted := slices.Clone(milestones)
	slices.SortStableFunc(sorted, func(a, b models.ProjectMilestone) int {
		switch {
		case a.SortOrder < b.SortOrder:
			return -1
		case a.SortOrder > b.SortOrder:
			return 1
		}
		return 0
	})
	return sorted
}
