package requests

// Job is one row of the initial process table. Nil attributes are drawn at random.
type Job struct {
	ProcessId      int      `json:"process_id"`
	BurstTime      *int     `json:"burst_time"`
	WaitingTime    *int     `json:"waiting_time"`
	Priority       *int     `json:"priority"`
	CpuUtilization *float64 `json:"cpu_utilization"`
	MemoryUsage    *float64 `json:"memory_usage"`
}

// ScheduleRequests starts a q-learning run either from explicit Jobs or from ProcessCount
// random processes.
type ScheduleRequests struct {
	ProcessCount int     `json:"process_count"`
	Jobs         []Job   `json:"jobs"`
	Seed         *uint64 `json:"seed"`
	TimeQuantum  int     `json:"time_quantum"`
}
