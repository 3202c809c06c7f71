package segmentation

// selectGreedy picks up to budget candidates, each time taking the one that
// adds the most uncovered clients. It stops early when no candidate adds
// anyone or when every client is covered.
//
// Ties on marginal gain go to the larger raw member set, then the smaller
// criterion, then the smaller value, so identical inputs always select
// identically.
func selectGreedy(cands []candidate, total, budget int) []candidate {
	covered := make([]bool, total)
	coveredCount := 0

	remaining := make([]candidate, len(cands))
	copy(remaining, cands)

	var selected []candidate
	for len(selected) < budget && len(remaining) > 0 {
		best, bestGain := -1, 0
		for i, c := range remaining {
			g := c.members.gain(covered)
			if best < 0 || beats(c, g, remaining[best], bestGain) {
				best, bestGain = i, g
			}
		}
		if bestGain == 0 {
			break
		}

		pick := remaining[best]
		selected = append(selected, pick)
		for _, idx := range pick.members {
			if !covered[idx] {
				covered[idx] = true
				coveredCount++
			}
		}
		remaining = append(remaining[:best], remaining[best+1:]...)

		if coveredCount == total {
			break
		}
	}
	return selected
}

func beats(a candidate, gainA int, b candidate, gainB int) bool {
	if gainA != gainB {
		return gainA > gainB
	}
	if len(a.members) != len(b.members) {
		return len(a.members) > len(b.members)
	}
	if a.criterion != b.criterion {
		return a.criterion < b.criterion
	}
	return a.value < b.value
}
