package schedulers

import (
	"math"

	"qtable-scheduler/internal/core"
)

// NoCandidate is returned by SelectAction when every process has completed.
const NoCandidate = -1

// SelectAction returns the position of the active process with the greatest q-table score.
// Scanning in id order and replacing only on a strictly greater score gives the lowest id on
// ties.
func SelectAction(processes core.ProcessSet, q *QTable) int {
	best := NoCandidate
	bestScore := math.Inf(-1)
	for i, p := range processes {
		if p.Completed {
			continue
		}
		if score := q.Score(i); score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}
