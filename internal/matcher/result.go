package matcher

import "fmt"

// Result is the match statistic reported after a scan: how many chunks (or,
// in batch mode, target windows) matched out of the query chunks attempted.
type Result struct {
	Matched int
	Total   int
}

// Ratio returns Matched/Total, or 0 when no chunks were attempted.
func (r Result) Ratio() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Matched) / float64(r.Total)
}

func (r Result) String() string {
	return fmt.Sprintf("%d chunks matched (out of %d), percentage: %.2f",
		r.Matched, r.Total, r.Ratio())
}
