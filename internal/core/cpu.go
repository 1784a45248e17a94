package core

// CpuExecute runs the process at position selected for one time quantum and charges the
// quantum as waiting time to every other active process. It returns the burst time actually
// consumed and whether the process completed.
func CpuExecute(processes ProcessSet, selected int, timeQuantum int) (consumed int, completed bool) {
	proccess := &processes[selected]

	consumed = timeQuantum
	if proccess.BurstTime < timeQuantum {
		consumed = proccess.BurstTime
	}
	proccess.BurstTime -= consumed
	if proccess.BurstTime <= 0 {
		proccess.BurstTime = 0
		proccess.Completed = true
	}

	// context switch: everybody else still in the ready set waits one quantum
	for i := range processes {
		if i != selected && !processes[i].Completed {
			processes[i].WaitingTime += timeQuantum
		}
	}
	return consumed, proccess.Completed
}
