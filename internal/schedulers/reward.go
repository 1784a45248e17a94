package schedulers

import "qtable-scheduler/internal/core"

// reward weights, they sum to 1
const (
	priorityWeight       = 0.35
	burstTimeWeight      = 0.20
	waitingTimeWeight    = 0.20
	cpuUtilizationWeight = 0.15
	memoryUsageWeight    = 0.05
)

// CalculateReward favours high priority, nearly finished, long waiting and light cpu processes,
// with a small bias towards a larger memory footprint.
func CalculateReward(p core.Process) float64 {
	return priorityWeight*float64(p.Priority) -
		burstTimeWeight*float64(p.BurstTime) +
		waitingTimeWeight*float64(p.WaitingTime) -
		cpuUtilizationWeight*p.CpuUtilization +
		memoryUsageWeight*p.MemoryUsage
}
