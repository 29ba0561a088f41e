package priority

import (
	"sort"

	"github.com/alexanderramin/smartprompts/internal/domain"
)

// SortByPriority orders nudges by priority, highest first. Equal priorities
// keep their input order.
func SortByPriority(nudges []domain.Nudge) {
	sort.SliceStable(nudges, func(i, j int) bool {
		return nudges[i].Priority > nudges[j].Priority
	})
}

// TopNudges sorts a copy of nudges by priority and keeps the first n.
// n <= 0 keeps nothing.
func TopNudges(nudges []domain.Nudge, n int) []domain.Nudge {
	out := make([]domain.Nudge, len(nudges))
	copy(out, nudges)
	SortByPriority(out)
	if n < 0 {
		n = 0
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}
