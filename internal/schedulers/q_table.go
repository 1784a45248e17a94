package schedulers

import (
	"math"

	"qtable-scheduler/internal/core"
)

// StateDim is the number of learned slots per process.
const StateDim = 5

// StateLabels names the q-table slots in column order.
var StateLabels = [StateDim]string{"Priority", "CPU Utilization", "Memory Usage", "Waiting Time", "Burst Time"}

// QTable holds one value vector per process, row i belonging to the process at position i of
// the process set.
type QTable struct {
	rows [][StateDim]float64
}

func NewQTable(processCount int) *QTable {
	return &QTable{rows: make([][StateDim]float64, processCount)}
}

// Update folds the current reward of every active process into its row:
//
//	Q[i][j] += alpha * (reward_i + gamma * max_k Q[i][k] - Q[i][j])
//
// The max is taken over the process's own row as it stood before this update, not over a
// successor state. This mirrors the simulator being modelled and is kept as is.
func (q *QTable) Update(processes core.ProcessSet, learningRate, discountFactor float64) {
	for i, p := range processes {
		if p.Completed {
			continue
		}
		reward := CalculateReward(p)
		maxNextQ := rowMax(q.rows[i])
		for j := range q.rows[i] {
			q.rows[i][j] += learningRate * (reward + discountFactor*maxNextQ - q.rows[i][j])
		}
	}
}

// Reset zeroes the row of a completed process.
func (q *QTable) Reset(i int) {
	q.rows[i] = [StateDim]float64{}
}

// Score is the sum of a row, used to rank candidates.
func (q *QTable) Score(i int) float64 {
	var sum float64
	for _, v := range q.rows[i] {
		sum += v
	}
	return sum
}

func (q *QTable) Len() int {
	return len(q.rows)
}

// Rows returns a copy of the table.
func (q *QTable) Rows() [][]float64 {
	rows := make([][]float64, len(q.rows))
	for i := range q.rows {
		rows[i] = append([]float64(nil), q.rows[i][:]...)
	}
	return rows
}

func rowMax(row [StateDim]float64) float64 {
	best := math.Inf(-1)
	for _, v := range row {
		if v > best {
			best = v
		}
	}
	return best
}
