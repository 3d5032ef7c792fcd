package catalog

import "math/rand/v2"

// Picker returns an index in [0, n). It must be uniform.
type Picker func(n int) int

// Selection is the outcome of one quiz draw.
//
// CandidateCount is the pool size before exclusion; zero means the category
// is empty (or the catalog is). RemainingCount is the pool size after
// exclusion, including the returned question; zero means the caller has
// seen everything.
type Selection struct {
	Question       *Question
	Exhausted      bool
	CandidateCount int
	RemainingCount int
}

// Select draws one question uniformly from candidates minus excluded.
// It holds no state: the caller appends the returned id to excluded for the
// next call.
func Select(candidates []Question, excluded []int, pick Picker) Selection {
	if pick == nil {
		pick = rand.IntN
	}

	seen := make(map[int]struct{}, len(excluded))
	for _, id := range excluded {
		seen[id] = struct{}{}
	}

	remaining := make([]Question, 0, len(candidates))
	for _, q := range candidates {
		if _, ok := seen[q.ID]; !ok {
			remaining = append(remaining, q)
		}
	}

	sel := Selection{
		CandidateCount: len(candidates),
		RemainingCount: len(remaining),
	}
	if len(remaining) == 0 {
		sel.Exhausted = true
		return sel
	}

	chosen := remaining[pick(len(remaining))]
	sel.Question = &chosen
	return sel
}
