package generator

import "github.com/abhishek622/mockmate/pkg/model"

// Finalized interviews always land inside this window. Values outside it are
// pulled to the nearest bound rather than rejected, so the build never
// blocks on a bad estimate.
const (
	MinTotalTimeSeconds = 2700
	MaxTotalTimeSeconds = 3600

	// setupBufferSeconds covers transitions between items when the total has
	// to be derived from per-item estimates.
	setupBufferSeconds = 120
)

// ReconcileTotalTime resolves the record's duration. The generator's own
// total wins when it is a plausible positive number; otherwise the per-item
// estimates are summed with a small buffer. Either way the result is clamped
// into the target window.
func ReconcileTotalTime(reported *int, questions []model.InterviewQuestion, tasks []model.CodingTask) int {
	total := 0
	if reported != nil && *reported > 0 {
		total = *reported
	} else {
		for _, q := range questions {
			total += q.TimeToAskSeconds + q.TimeToAnswerSeconds
		}
		for _, t := range tasks {
			total += t.TimeToSolveSeconds
		}
		total += setupBufferSeconds
	}

	if total < MinTotalTimeSeconds {
		return MinTotalTimeSeconds
	}
	if total > MaxTotalTimeSeconds {
		return MaxTotalTimeSeconds
	}
	return total
}
