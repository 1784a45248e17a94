package core

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestNewProcessSet(t *testing.T) {
	processes, err := NewProcessSet(10, 10, newRand(1))
	require.NoError(t, err)
	require.Len(t, processes, 10)

	for i, p := range processes {
		assert.Equal(t, i, p.ProcessId)
		assert.GreaterOrEqual(t, p.BurstTime, MinBurstTime)
		assert.LessOrEqual(t, p.BurstTime, MaxBurstTime)
		assert.GreaterOrEqual(t, p.Priority, MinPriority)
		assert.LessOrEqual(t, p.Priority, MaxPriority)
		assert.GreaterOrEqual(t, p.CpuUtilization, 0.0)
		assert.Less(t, p.CpuUtilization, 1.0)
		assert.GreaterOrEqual(t, p.MemoryUsage, 0.0)
		assert.Less(t, p.MemoryUsage, 1.0)
		assert.Zero(t, p.WaitingTime)
		assert.False(t, p.Completed)
	}
}

func TestNewProcessSetInvalidCount(t *testing.T) {
	for _, count := range []int{-1, 0, 11} {
		_, err := NewProcessSet(count, 10, newRand(1))
		assert.ErrorIs(t, err, ErrInvalidProcessCount, "count %d", count)
	}
}

func TestNewProcessSetIsSeeded(t *testing.T) {
	a, err := NewProcessSet(5, 10, newRand(42))
	require.NoError(t, err)
	b, err := NewProcessSet(5, 10, newRand(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCpuExecute(t *testing.T) {
	processes := ProcessSet{
		{ProcessId: 0, BurstTime: 5},
		{ProcessId: 1, BurstTime: 1},
		{ProcessId: 2, BurstTime: 0, Completed: true, WaitingTime: 7},
	}

	consumed, completed := CpuExecute(processes, 0, 2)
	assert.Equal(t, 2, consumed)
	assert.False(t, completed)
	assert.Equal(t, 3, processes[0].BurstTime)
	assert.Equal(t, 0, processes[0].WaitingTime)
	assert.Equal(t, 2, processes[1].WaitingTime)
	assert.Equal(t, 7, processes[2].WaitingTime, "completed process must not wait")

	consumed, completed = CpuExecute(processes, 1, 2)
	assert.Equal(t, 1, consumed)
	assert.True(t, completed)
	assert.Equal(t, 0, processes[1].BurstTime)
	assert.Equal(t, 2, processes[0].WaitingTime)
}

func TestProcessSetHelpers(t *testing.T) {
	processes := ProcessSet{
		{ProcessId: 0, BurstTime: 4},
		{ProcessId: 1, Completed: true},
	}
	assert.Equal(t, 1, processes.ActiveCount())
	assert.Equal(t, 4, processes.TotalBurstTime())
	assert.False(t, processes.AllCompleted())

	clone := processes.Clone()
	clone[0].BurstTime = 0
	assert.Equal(t, 4, processes[0].BurstTime)

	processes[0].Completed = true
	assert.True(t, processes.AllCompleted())
}

func TestLoadProcessSet(t *testing.T) {
	input := strings.Join([]string{
		"1,6,0,3,0.25,0.50,No",
		"0,,,,,,",
		"",
		"2,0,4,9,0.10,0.20,No",
	}, "\n")

	processes, err := LoadProcessSet(strings.NewReader(input), 10, newRand(3))
	require.NoError(t, err)
	require.Len(t, processes, 3)

	assert.Equal(t, 0, processes[0].ProcessId)
	assert.GreaterOrEqual(t, processes[0].BurstTime, MinBurstTime)
	assert.False(t, processes[0].Completed)

	assert.Equal(t, Process{ProcessId: 1, BurstTime: 6, Priority: 3, CpuUtilization: 0.25, MemoryUsage: 0.5}, processes[1])

	assert.True(t, processes[2].Completed, "zero burst starts completed")
	assert.Equal(t, 4, processes[2].WaitingTime)
}

func TestLoadProcessSetErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{name: "empty", input: "", err: ErrInvalidProcessCount},
		{name: "too many", input: "0\n1\n2", err: ErrInvalidProcessCount},
		{name: "bad burst", input: "0,abc", err: ErrInvalidInput},
		{name: "negative burst", input: "0,-3", err: ErrInvalidInput},
		{name: "priority range", input: "0,5,0,11", err: ErrInvalidInput},
		{name: "cpu range", input: "0,5,0,3,1.5", err: ErrInvalidInput},
		{name: "completed flag", input: "0,5,0,3,0.1,0.1,maybe", err: ErrInvalidInput},
		{name: "duplicate id", input: "0,5\n0,6", err: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProcessSet(strings.NewReader(tt.input), 2, newRand(1))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
