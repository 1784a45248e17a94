package schedulers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qtable-scheduler/internal/core"
)

func TestCalculateReward(t *testing.T) {
	tests := []struct {
		name    string
		process core.Process
		want    float64
	}{
		{
			name:    "mixed attributes",
			process: core.Process{Priority: 5, BurstTime: 4, CpuUtilization: 0.2, MemoryUsage: 0.4},
			want:    0.94,
		},
		{
			name:    "long waiting",
			process: core.Process{Priority: 1, BurstTime: 1, WaitingTime: 10},
			want:    0.35 - 0.2 + 2,
		},
		{
			name:    "low priority heavy job",
			process: core.Process{Priority: 1, BurstTime: 20},
			want:    -3.65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateReward(tt.process), 1e-9)
		})
	}
}

func TestCalculateRewardIsPure(t *testing.T) {
	p := core.Process{Priority: 3, BurstTime: 7, WaitingTime: 2, CpuUtilization: 0.5, MemoryUsage: 0.1}
	before := p
	first := CalculateReward(p)
	assert.Equal(t, first, CalculateReward(p))
	assert.Equal(t, before, p)
}

func TestQTableUpdate(t *testing.T) {
	processes := core.ProcessSet{
		{ProcessId: 0, Priority: 5, BurstTime: 4, CpuUtilization: 0.2, MemoryUsage: 0.4},
		{ProcessId: 1, Priority: 1, BurstTime: 20},
		{ProcessId: 2, Completed: true},
	}
	q := NewQTable(len(processes))

	q.Update(processes, 0.2, 0.9)
	rows := q.Rows()
	for j := 0; j < StateDim; j++ {
		assert.InDelta(t, 0.188, rows[0][j], 1e-9)
		assert.InDelta(t, -0.73, rows[1][j], 1e-9)
		assert.Zero(t, rows[2][j], "completed processes are not learned")
	}

	q.Update(processes, 0.2, 0.9)
	rows = q.Rows()
	for j := 0; j < StateDim; j++ {
		assert.InDelta(t, 0.37224, rows[0][j], 1e-9)
		// the row max is used as is, negative values included
		assert.InDelta(t, -1.4454, rows[1][j], 1e-9)
	}
	assert.InDelta(t, 5*0.37224, q.Score(0), 1e-9)
}

func TestQTableReset(t *testing.T) {
	processes := core.ProcessSet{{ProcessId: 0, Priority: 9, BurstTime: 1}}
	q := NewQTable(1)
	q.Update(processes, 0.2, 0.9)
	assert.NotZero(t, q.Score(0))

	q.Reset(0)
	assert.Equal(t, [][]float64{{0, 0, 0, 0, 0}}, q.Rows())
}

func TestQTableRowsIsCopy(t *testing.T) {
	q := NewQTable(1)
	rows := q.Rows()
	rows[0][0] = 42
	assert.Zero(t, q.Score(0))
}

func TestSelectAction(t *testing.T) {
	processes := core.ProcessSet{
		{ProcessId: 0, Priority: 1, BurstTime: 20},
		{ProcessId: 1, Priority: 9, BurstTime: 2},
		{ProcessId: 2, Priority: 10, BurstTime: 1, Completed: true},
	}
	q := NewQTable(len(processes))
	q.rows[2] = [StateDim]float64{100, 100, 100, 100, 100}
	q.Update(processes, 0.2, 0.9)

	assert.Equal(t, 1, SelectAction(processes, q), "completed rows are never selected")
}

func TestSelectActionLowestIdOnTie(t *testing.T) {
	processes := core.ProcessSet{{ProcessId: 0, BurstTime: 3}, {ProcessId: 1, BurstTime: 3}}
	assert.Equal(t, 0, SelectAction(processes, NewQTable(2)))
}

func TestSelectActionNoCandidate(t *testing.T) {
	processes := core.ProcessSet{{ProcessId: 0, Completed: true}, {ProcessId: 1, Completed: true}}
	assert.Equal(t, NoCandidate, SelectAction(processes, NewQTable(2)))
}
