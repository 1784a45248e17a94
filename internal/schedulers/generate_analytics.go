package schedulers

import (
	"qtable-scheduler/internal/responses"
	"qtable-scheduler/internal/util"
)

// generateResponse summarises a finished run on the simulated clock, which advances one full
// quantum per iteration. Processes that never ran (completed on arrival) are left out.
func (s *QLearningScheduler) generateResponse() responses.ScheduleResponse {
	proccessDetails := make([]responses.ProcessResponse, 0, len(s.processes))
	for i, p := range s.processes {
		if s.executions[i] == 0 {
			continue
		}
		proccessDetails = append(proccessDetails, responses.ProcessResponse{
			ProcessId:      p.ProcessId,
			BurstTime:      s.initialBurst[i],
			Executions:     s.executions[i],
			ResponseTime:   float64(s.firstRun[i]),
			TurnAroundTime: float64(s.completedAt[i]),
			WaitingTime:    float64(p.WaitingTime),
		})
	}
	averageWaitingTime, averageResponseTime, averageTurnAroundTime := util.CalculateAverage(proccessDetails)

	totalTime := float64(s.clock)
	idleTime := float64(s.clock - s.consumed)
	var utilization, throughput float64
	if totalTime > 0 {
		utilization = 1 - idleTime/totalTime
		throughput = float64(len(proccessDetails)) / totalTime
	}

	return responses.ScheduleResponse{
		TimeQuantum:           s.opts.TimeQuantum,
		Iterations:            s.iterations,
		Snapshots:             s.sequence,
		TotalTime:             totalTime,
		IdleTime:              idleTime,
		AverageWaitingTime:    averageWaitingTime,
		AverageResponseTime:   averageResponseTime,
		AverageTurnAroundTime: averageTurnAroundTime,
		CpuUtilization:        utilization,
		CpuThroughput:         throughput,
		ExecutionOrder:        s.executionOrder,
		FinalQTable:           s.qTable.Rows(),
		Details:               proccessDetails,
	}
}
