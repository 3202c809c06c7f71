package segmentation

import "fmt"

func reasonFor(criterion, value string) string {
	return fmt.Sprintf("clients matching %s = %s", criterion, value)
}

// assemble turns selected candidates into a StrategyResult. Client ids keep
// snapshot order.
func assemble(snap *Snapshot, selected []candidate) StrategyResult {
	total := snap.Len()
	res := StrategyResult{
		TotalClients:    total,
		SelectedClients: []string{},
		SegmentGroups:   make([]SegmentGroup, 0, len(selected)),
	}

	inUnion := make([]bool, total)
	for _, c := range selected {
		res.SegmentGroups = append(res.SegmentGroups, SegmentGroup{
			Criterion: c.criterion,
			Value:     c.value,
			ClientIDs: snap.ids(c.members),
			Reason:    reasonFor(c.criterion, c.value),
		})
		for _, idx := range c.members {
			inUnion[idx] = true
		}
	}

	union := make(memberSet, 0, total)
	for idx, in := range inUnion {
		if in {
			union = append(union, idx)
		}
	}
	res.SelectedClients = snap.ids(union)

	if total > 0 {
		res.Coverage = float64(len(union)) / float64(total)
	}
	return res
}
