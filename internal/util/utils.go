package util

import "qtable-scheduler/internal/responses"

// CalculateAverage averages the per-process times. An empty slice yields zeros.
func CalculateAverage(proccessDetails []responses.ProcessResponse) (averageWaitingTime, averageResponseTime, averageTurnAroundTime float64) {
	if len(proccessDetails) == 0 {
		return 0, 0, 0
	}

	var waitingTimeSum, responseTimeSum, turnAroundTimeSum float64
	for _, proccess := range proccessDetails {
		waitingTimeSum += proccess.WaitingTime
		responseTimeSum += proccess.ResponseTime
		turnAroundTimeSum += proccess.TurnAroundTime
	}

	proccessCount := float64(len(proccessDetails))
	averageWaitingTime = waitingTimeSum / proccessCount
	averageResponseTime = responseTimeSum / proccessCount
	averageTurnAroundTime = turnAroundTimeSum / proccessCount
	return
}
