package segmentation

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

const (
	ModeExplicit = "explicit"
	ModeAuto     = "auto"
)

// Run computes a strategy for req over snap. now is the request clock and is
// read exactly once by the caller, so every client sees the same month.
func Run(snap *Snapshot, req StrategyRequest, now time.Time) Outcome {
	var (
		mode     string
		supplied []candidate
	)
	if req.AutoMode() {
		mode = ModeAuto
		supplied = generateCandidates(snap)
	} else {
		mode = ModeExplicit
		supplied = filterCandidates(snap, req.Filters, now)
	}

	pool := eligible(supplied, req.MinGroupSize)
	selected := selectGreedy(pool, snap.Len(), req.MaxCriteriaUsed)
	res := assemble(snap, selected)

	out := Outcome{
		Result:      res,
		Mode:        mode,
		Supplied:    len(supplied),
		Eligible:    len(pool),
		Applied:     len(selected),
		Fingerprint: snap.Fingerprint(),
	}
	out.Message = message(out, req.MinGroupSize)
	return out
}

func message(o Outcome, minGroupSize int) string {
	if o.Applied == 0 {
		if o.Mode == ModeExplicit {
			return fmt.Sprintf("No segment met the minimum group size of %d (0 of %d criteria applied)", minGroupSize, o.Supplied)
		}
		return fmt.Sprintf("No segment met the minimum group size of %d", minGroupSize)
	}

	if o.Mode == ModeAuto {
		return fmt.Sprintf("Auto-maximized strategy: %d segments from %d candidates, coverage %.1f%%",
			o.Applied, o.Eligible, o.Result.Coverage*100)
	}

	msg := fmt.Sprintf("Strategy computed: %d of %d criteria applied", o.Applied, o.Supplied)
	if dropped := o.Supplied - o.Eligible; dropped > 0 {
		msg += fmt.Sprintf("; %d dropped below minimum group size %d", dropped, minGroupSize)
	}
	if skipped := o.Eligible - o.Applied; skipped > 0 {
		msg += fmt.Sprintf("; %d added no new clients or exceeded the criteria limit", skipped)
	}
	return msg
}

// Fingerprint hashes the sorted client ids of the snapshot. Two strategies
// with the same fingerprint were computed over the same set of clients.
func (s *Snapshot) Fingerprint() string {
	ids := make([]string, len(s.clients))
	for i, c := range s.clients {
		ids[i] = c.ID
	}
	sort.Strings(ids)

	h := xxhash.New()
	for _, id := range ids {
		_, _ = h.WriteString(id)
		_, _ = h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
