package pii

import "sort"

// Resolve merges candidate matches from all detectors into a single
// non-overlapping span set over the original text.
//
// Candidates are ranked by category priority first (the structured pattern
// order, then Address, then PersonName last), then by confidence tier, then
// by position with longer spans preferred. Walking in that order, a candidate
// is accepted only if it does not overlap any already-accepted span; anything
// overlapping a higher-ranked accepted span is dropped. The result is sorted
// ascending by start for the rewrite pass.
func Resolve(cands []Candidate) []ResolvedSpan {
	if len(cands) == 0 {
		return nil
	}

	ranked := make([]Candidate, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Category.Priority() != b.Category.Priority() {
			return a.Category.Priority() < b.Category.Priority()
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End > b.End
	})

	var accepted []ResolvedSpan
	for _, c := range ranked {
		if overlapsAny(accepted, c) {
			continue
		}
		accepted = append(accepted, c)
	}

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}

func overlapsAny(spans []ResolvedSpan, c Candidate) bool {
	for _, s := range spans {
		if c.Start < s.End && s.Start < c.End {
			return true
		}
	}
	return false
}
