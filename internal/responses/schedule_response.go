package responses

type ProcessResponse struct {
	ProcessId      int     `json:"process_id" yaml:"process_id"`
	BurstTime      int     `json:"burst_time" yaml:"burst_time"`
	Executions     int     `json:"executions" yaml:"executions"`
	ResponseTime   float64 `json:"response_time" yaml:"response_time"`
	TurnAroundTime float64 `json:"turn_around_time" yaml:"turn_around_time"`
	WaitingTime    float64 `json:"waiting_time" yaml:"waiting_time"`
}
type ScheduleResponse struct {
	RunId                 string            `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Seed                  uint64            `json:"seed" yaml:"seed"`
	TimeQuantum           int               `json:"time_quantum" yaml:"time_quantum"`
	Iterations            int               `json:"iterations" yaml:"iterations"`
	Snapshots             int               `json:"snapshots" yaml:"snapshots"`
	TotalTime             float64           `json:"total_time" yaml:"total_time"`
	IdleTime              float64           `json:"idle_time" yaml:"idle_time"`
	AverageWaitingTime    float64           `json:"average_waiting_time" yaml:"average_waiting_time"`
	AverageResponseTime   float64           `json:"average_response_time" yaml:"average_response_time"`
	AverageTurnAroundTime float64           `json:"average_turn_around_time" yaml:"average_turn_around_time"`
	CpuUtilization        float64           `json:"cpu_utilization" yaml:"cpu_utilization"`
	CpuThroughput         float64           `json:"cpu_throughput" yaml:"cpu_throughput"`
	ExecutionOrder        []int             `json:"execution_order" yaml:"execution_order,flow"`
	FinalQTable           [][]float64       `json:"final_q_table" yaml:"final_q_table"`
	Details               []ProcessResponse `json:"details" yaml:"details"`
}

type SnapshotResponse struct {
	Sequence      int            `json:"sequence"`
	Processes     []ProcessState `json:"processes"`
	QTable        []QTableRow    `json:"q_table"`
	NextProcessId *int           `json:"next_process_id,omitempty"`
	Status        string         `json:"status"`
	Done          bool           `json:"done"`
}

type ProcessState struct {
	ProcessId      int     `json:"process_id"`
	BurstTime      int     `json:"burst_time"`
	WaitingTime    int     `json:"waiting_time"`
	Priority       int     `json:"priority"`
	CpuUtilization float64 `json:"cpu_utilization"`
	MemoryUsage    float64 `json:"memory_usage"`
	Completed      bool    `json:"completed"`
}

type QTableRow struct {
	ProcessId int       `json:"process_id"`
	Values    []float64 `json:"values"`
}
