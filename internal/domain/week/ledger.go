package week

import "sort"

// DiscoverUnprocessed filters the available descriptors down to those not yet
// in the ledger and orders them oldest-first: ascending start date, ties
// broken by week key so the order is total. Since-hire cumulative aggregation
// depends on weeks being folded chronologically, so this ordering is a
// correctness requirement, not a presentation choice.
//
// When the source yields the same week key more than once, the first
// descriptor in sorted order wins and the rest are dropped; the later copies
// would only trip the ledger's duplicate guard after the first commits.
func DiscoverUnprocessed(available []WeekDescriptor, processed map[string]bool) []WeekDescriptor {
	candidates := make([]WeekDescriptor, 0, len(available))
	for _, desc := range available {
		if processed[desc.WeekKey] {
			continue
		}
		candidates = append(candidates, desc)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].StartDate.Equal(candidates[j].StartDate) {
			return candidates[i].WeekKey < candidates[j].WeekKey
		}
		return candidates[i].StartDate.Before(candidates[j].StartDate)
	})

	seen := make(map[string]bool, len(candidates))
	result := candidates[:0]
	for _, desc := range candidates {
		if seen[desc.WeekKey] {
			continue
		}
		seen[desc.WeekKey] = true
		result = append(result, desc)
	}

	return result
}
