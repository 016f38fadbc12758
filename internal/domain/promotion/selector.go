package promotion

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Select picks at most one promotion to display for a page view.
//
// It is a pure function of its inputs: the candidate list (in fetch order),
// the evaluation time, the current page path, the per-client last-shown map,
// and the set of promotions already shown this session. Candidates are
// dropped, in order, when they are inactive, outside their activation window,
// not targeting the page, already shown this session, or throttled by their
// frequency policy. Survivors are ordered by priority descending with ties
// broken by input order, and the first is returned. Nil means nothing to show.
func Select(
	candidates []Promotion,
	now time.Time,
	pagePath string,
	lastShown map[uuid.UUID]time.Time,
	sessionShown map[uuid.UUID]struct{},
) *Promotion {
	eligible := make([]int, 0, len(candidates))
	for idx := range candidates {
		p := &candidates[idx]
		if !p.IsActive {
			continue
		}
		if !p.WithinWindow(now) {
			continue
		}
		if !p.TargetsPage(pagePath) {
			continue
		}
		if _, seen := sessionShown[p.ID]; seen {
			continue
		}
		var last *time.Time
		if ts, ok := lastShown[p.ID]; ok {
			last = &ts
		}
		if !p.AllowedAfter(last, now) {
			continue
		}
		eligible = append(eligible, idx)
	}

	if len(eligible) == 0 {
		return nil
	}

	// Stable sort keeps input order among equal priorities.
	sort.SliceStable(eligible, func(i, j int) bool {
		return candidates[eligible[i]].Priority > candidates[eligible[j]].Priority
	})

	return &candidates[eligible[0]]
}
