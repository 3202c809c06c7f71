package segmentation

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// memberSet holds snapshot positions in ascending order.
type memberSet []int

// gain counts members not yet covered.
func (m memberSet) gain(covered []bool) int {
	n := 0
	for _, idx := range m {
		if !covered[idx] {
			n++
		}
	}
	return n
}

// fold normalizes a string for case-insensitive comparison.
func fold(s string) string {
	// A Caser is stateful, so one is built per call.
	return cases.Fold().String(strings.TrimSpace(s))
}

// Evaluate returns the clients that satisfy f, in snapshot order.
func Evaluate(f Filter, clients []ClientRecord, now time.Time) []ClientRecord {
	var out []ClientRecord
	for _, c := range clients {
		if f.Matches(c, now) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Snapshot) members(f Filter, now time.Time) memberSet {
	var m memberSet
	for i, c := range s.clients {
		if f.Matches(c, now) {
			m = append(m, i)
		}
	}
	return m
}
