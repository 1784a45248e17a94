package core

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

const (
	MinBurstTime = 1
	MaxBurstTime = 20
	MinPriority  = 1
	MaxPriority  = 10
)

var (
	ErrInvalidProcessCount = errors.New("invalid process count")
	ErrInvalidInput        = errors.New("invalid process input")
)

// Process is a simulated process. It is never removed from its set, only marked Completed.
type Process struct {
	ProcessId      int     `json:"process_id" yaml:"process_id"`
	BurstTime      int     `json:"burst_time" yaml:"burst_time"`
	WaitingTime    int     `json:"waiting_time" yaml:"waiting_time"`
	Priority       int     `json:"priority" yaml:"priority"`
	CpuUtilization float64 `json:"cpu_utilization" yaml:"cpu_utilization"`
	MemoryUsage    float64 `json:"memory_usage" yaml:"memory_usage"`
	Completed      bool    `json:"completed" yaml:"completed"`
}

// ProcessSet is ordered by ProcessId; position i holds the process the q-table row i belongs to.
type ProcessSet []Process

// NewProcessSet creates count processes with ids 0..count-1 and randomized attributes.
func NewProcessSet(count, maxProcesses int, rng *rand.Rand) (ProcessSet, error) {
	if err := ValidateProcessCount(count, maxProcesses); err != nil {
		return nil, err
	}
	processes := make(ProcessSet, 0, count)
	for i := 0; i < count; i++ {
		processes = append(processes, RandomProcess(i, rng))
	}
	return processes, nil
}

// RandomProcess draws a fresh, not yet waiting process.
func RandomProcess(id int, rng *rand.Rand) Process {
	p := Process{
		ProcessId: id,
		BurstTime: randomBurstTime(rng),
	}
	Resample(&p, rng)
	return p
}

// NewProcessSetFrom validates caller supplied processes and orders them by id. A process with
// no burst time left starts completed.
func NewProcessSetFrom(processes []Process, maxProcesses int) (ProcessSet, error) {
	if err := ValidateProcessCount(len(processes), maxProcesses); err != nil {
		return nil, err
	}

	set := make(ProcessSet, 0, len(processes))
	seen := make(map[int]bool, len(processes))
	for _, p := range processes {
		if err := validateProcess(p); err != nil {
			return nil, fmt.Errorf("%w: process %d: %v", ErrInvalidInput, p.ProcessId, err)
		}
		if seen[p.ProcessId] {
			return nil, fmt.Errorf("%w: duplicate process id %d", ErrInvalidInput, p.ProcessId)
		}
		seen[p.ProcessId] = true
		if p.BurstTime == 0 || p.Completed {
			p.BurstTime = 0
			p.Completed = true
		}
		set = append(set, p)
	}

	sort.SliceStable(set, func(i, j int) bool {
		return set[i].ProcessId < set[j].ProcessId
	})
	return set, nil
}

func validateProcess(p Process) error {
	switch {
	case p.ProcessId < 0:
		return fmt.Errorf("negative id")
	case p.BurstTime < 0:
		return fmt.Errorf("negative burst time %d", p.BurstTime)
	case p.WaitingTime < 0:
		return fmt.Errorf("negative waiting time %d", p.WaitingTime)
	case p.Priority < MinPriority || p.Priority > MaxPriority:
		return fmt.Errorf("priority %d not in %d..%d", p.Priority, MinPriority, MaxPriority)
	case p.CpuUtilization < 0 || p.CpuUtilization >= 1:
		return fmt.Errorf("cpu utilization %.2f not in [0,1)", p.CpuUtilization)
	case p.MemoryUsage < 0 || p.MemoryUsage >= 1:
		return fmt.Errorf("memory usage %.2f not in [0,1)", p.MemoryUsage)
	}
	return nil
}

func ValidateProcessCount(count, maxProcesses int) error {
	if count < 1 || count > maxProcesses {
		return fmt.Errorf("%w: %d not in 1..%d", ErrInvalidProcessCount, count, maxProcesses)
	}
	return nil
}

// Resample redraws the dynamic attributes of p to model environment drift.
func Resample(p *Process, rng *rand.Rand) {
	p.Priority = randomPriority(rng)
	p.CpuUtilization = randomFraction(rng)
	p.MemoryUsage = randomFraction(rng)
}

func randomBurstTime(rng *rand.Rand) int {
	return rng.IntN(MaxBurstTime-MinBurstTime+1) + MinBurstTime
}

func randomPriority(rng *rand.Rand) int {
	return rng.IntN(MaxPriority-MinPriority+1) + MinPriority
}

// randomFraction returns a value in [0, 1) with two decimal places.
func randomFraction(rng *rand.Rand) float64 {
	return float64(rng.IntN(100)) / 100.0
}

func (s ProcessSet) AllCompleted() bool {
	for _, p := range s {
		if !p.Completed {
			return false
		}
	}
	return true
}

func (s ProcessSet) ActiveCount() int {
	var count int
	for _, p := range s {
		if !p.Completed {
			count++
		}
	}
	return count
}

func (s ProcessSet) TotalBurstTime() int {
	var total int
	for _, p := range s {
		total += p.BurstTime
	}
	return total
}

func (s ProcessSet) Clone() ProcessSet {
	clone := make(ProcessSet, len(s))
	copy(clone, s)
	return clone
}
