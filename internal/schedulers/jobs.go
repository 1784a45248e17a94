package schedulers

import (
	"math/rand/v2"

	"qtable-scheduler/internal/core"
	"qtable-scheduler/internal/requests"
)

// processSetFromJobs fills the attributes a job leaves out with random draws.
func processSetFromJobs(jobs []requests.Job, maxProcesses int, rng *rand.Rand) (core.ProcessSet, error) {
	if err := core.ValidateProcessCount(len(jobs), maxProcesses); err != nil {
		return nil, err
	}

	processes := make([]core.Process, 0, len(jobs))
	for _, job := range jobs {
		p := core.RandomProcess(job.ProcessId, rng)
		if job.BurstTime != nil {
			p.BurstTime = *job.BurstTime
		}
		if job.WaitingTime != nil {
			p.WaitingTime = *job.WaitingTime
		}
		if job.Priority != nil {
			p.Priority = *job.Priority
		}
		if job.CpuUtilization != nil {
			p.CpuUtilization = *job.CpuUtilization
		}
		if job.MemoryUsage != nil {
			p.MemoryUsage = *job.MemoryUsage
		}
		processes = append(processes, p)
	}
	return core.NewProcessSetFrom(processes, maxProcesses)
}
