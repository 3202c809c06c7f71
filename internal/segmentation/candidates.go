package segmentation

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// candidate is a named member set competing for a slot in the strategy.
type candidate struct {
	criterion string
	value     string
	members   memberSet
}

var (
	categoricalCandidateFields = []Field{FieldGender, FieldCountry, FieldPreferredContactMethod}
	setCandidateFields         = []Field{FieldLanguages, FieldPreferences, FieldTags, FieldSubscriptions}
)

// candidateIndex accumulates member sets keyed by (field, folded value).
// Values are reported as first seen in snapshot order.
type candidateIndex struct {
	byKey map[string]*candidate
	order []*candidate
}

func newCandidateIndex() *candidateIndex {
	return &candidateIndex{byKey: make(map[string]*candidate)}
}

func (ci *candidateIndex) add(field Field, key, value string, idx int) {
	k := string(field) + "\x00" + key
	c, ok := ci.byKey[k]
	if !ok {
		c = &candidate{criterion: string(field), value: value}
		ci.byKey[k] = c
		ci.order = append(ci.order, c)
	}
	// a client listing the same element twice is counted once
	if n := len(c.members); n > 0 && c.members[n-1] == idx {
		return
	}
	c.members = append(c.members, idx)
}

// generateCandidates enumerates every auto-mode candidate observed in the
// snapshot, sorted by criterion then value. Member sets are built in a single
// pass over the clients.
func generateCandidates(snap *Snapshot) []candidate {
	ci := newCandidateIndex()
	for i, c := range snap.clients {
		for _, f := range categoricalCandidateFields {
			v := strings.TrimSpace(scalarValue(c, f))
			if v == "" {
				continue
			}
			ci.add(f, fold(v), v, i)
		}

		tc := strconv.FormatBool(c.TelegramConfirmed)
		ci.add(FieldTelegramConfirmed, tc, tc, i)

		for _, f := range setCandidateFields {
			for _, raw := range setValues(c, f) {
				v := strings.TrimSpace(raw)
				if v == "" {
					continue
				}
				ci.add(f, fold(v), v, i)
			}
		}

		if !c.BirthDate.IsZero() {
			m := monthValue(c.BirthDate.Month())
			ci.add(FieldBirthDate, m, m, i)
		}
	}

	out := make([]candidate, 0, len(ci.order))
	for _, c := range ci.order {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].criterion != out[j].criterion {
			return out[i].criterion < out[j].criterion
		}
		return out[i].value < out[j].value
	})
	return out
}

// filterCandidates evaluates each explicit filter once against the snapshot.
func filterCandidates(snap *Snapshot, filters []Filter, now time.Time) []candidate {
	out := make([]candidate, 0, len(filters))
	for _, f := range filters {
		out = append(out, candidate{
			criterion: string(f.Field()),
			value:     f.Value(now),
			members:   snap.members(f, now),
		})
	}
	return out
}

// eligible drops candidates that can never become a group.
func eligible(cands []candidate, minGroupSize int) []candidate {
	out := make([]candidate, 0, len(cands))
	for _, c := range cands {
		if len(c.members) >= minGroupSize {
			out = append(out, c)
		}
	}
	return out
}
