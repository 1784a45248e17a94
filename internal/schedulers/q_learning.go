package schedulers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"qtable-scheduler/internal/core"
	"qtable-scheduler/internal/requests"
	"qtable-scheduler/internal/responses"
	"qtable-scheduler/internal/snapshot"
)

const (
	DefaultTimeQuantum    = 2
	DefaultLearningRate   = 0.2
	DefaultDiscountFactor = 0.9
	DefaultMaxProcesses   = 10
)

type State int

const (
	Running State = iota
	Done
)

func (s State) String() string {
	if s == Done {
		return "DONE"
	}
	return "RUNNING"
}

type QLearningOptions struct {
	TimeQuantum    int
	LearningRate   float64
	DiscountFactor float64
	// Rand drives attribute drift of the executed process.
	Rand *rand.Rand
	// Sink receives one snapshot per iteration and a terminal one; nil discards them.
	Sink   snapshot.Sink
	Logger *log.Logger
}

// QLearningScheduler owns the process set and q-table of one run. It is not safe for
// concurrent use; every iteration completes before the next one starts.
type QLearningScheduler struct {
	opts      QLearningOptions
	logger    *log.Logger
	processes core.ProcessSet
	qTable    *QTable
	state     State
	sequence  int

	clock          int
	iterations     int
	consumed       int
	executionOrder []int
	initialBurst   []int
	executions     []int
	firstRun       []int
	completedAt    []int
}

// NewQLearningScheduler validates a copy of processes and orders it by id, so row order and
// selection order follow process ids whatever order the caller passed.
func NewQLearningScheduler(processes core.ProcessSet, opts QLearningOptions) (*QLearningScheduler, error) {
	if len(processes) == 0 {
		return nil, fmt.Errorf("%w: empty process set", core.ErrInvalidProcessCount)
	}
	processes, err := core.NewProcessSetFrom(processes, len(processes))
	if err != nil {
		return nil, err
	}
	if opts.TimeQuantum <= 0 {
		return nil, fmt.Errorf("time quantum must be positive, got %d", opts.TimeQuantum)
	}
	if opts.LearningRate <= 0 || opts.LearningRate > 1 {
		return nil, fmt.Errorf("learning rate must be in (0,1], got %v", opts.LearningRate)
	}
	if opts.DiscountFactor < 0 || opts.DiscountFactor >= 1 {
		return nil, fmt.Errorf("discount factor must be in [0,1), got %v", opts.DiscountFactor)
	}
	if opts.Rand == nil {
		return nil, errors.New("random source is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	s := &QLearningScheduler{
		opts:         opts,
		logger:       logger,
		processes:    processes,
		qTable:       NewQTable(len(processes)),
		initialBurst: make([]int, len(processes)),
		executions:   make([]int, len(processes)),
		firstRun:     make([]int, len(processes)),
		completedAt:  make([]int, len(processes)),
	}
	for i, p := range s.processes {
		s.initialBurst[i] = p.BurstTime
		s.firstRun[i] = -1
	}
	return s, nil
}

func (s *QLearningScheduler) State() State { return s.state }

func (s *QLearningScheduler) Processes() core.ProcessSet { return s.processes.Clone() }

func (s *QLearningScheduler) QTable() [][]float64 { return s.qTable.Rows() }

// Step runs one iteration: learn, select, execute one quantum, book-keep and publish.
func (s *QLearningScheduler) Step(ctx context.Context) error {
	if s.state == Done {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.qTable.Update(s.processes, s.opts.LearningRate, s.opts.DiscountFactor)

	selected := SelectAction(s.processes, s.qTable)
	if selected == NoCandidate {
		return s.finish(ctx)
	}
	proccess := &s.processes[selected]
	reward := CalculateReward(*proccess)
	selectedReward.Observe(reward)
	s.logger.Printf("pid: %d selected by q-table, score %.2f reward %.2f", proccess.ProcessId, s.qTable.Score(selected), reward)

	// the iteration snapshot shows the tables the decision was made on
	iteration := s.capture(proccess.ProcessId, false)

	if s.firstRun[selected] < 0 {
		s.firstRun[selected] = s.clock
	}
	consumed, completed := core.CpuExecute(s.processes, selected, s.opts.TimeQuantum)
	s.clock += s.opts.TimeQuantum
	s.consumed += consumed
	s.iterations++
	s.executions[selected]++
	s.executionOrder = append(s.executionOrder, proccess.ProcessId)
	iterationsTotal.Inc()

	if completed {
		// a finished process keeps the attributes it completed with
		s.qTable.Reset(selected)
		s.completedAt[selected] = s.clock
		completedProcessesTotal.Inc()
		s.logger.Println("pid:", proccess.ProcessId, "completed and removed from q-table")
	} else {
		core.Resample(proccess, s.opts.Rand)
	}

	if err := s.publish(ctx, iteration); err != nil {
		return err
	}

	if s.processes.AllCompleted() {
		return s.finish(ctx)
	}
	return nil
}

// Run steps until every process has completed and returns the run analytics.
func (s *QLearningScheduler) Run(ctx context.Context) (responses.ScheduleResponse, error) {
	for s.state == Running {
		if err := s.Step(ctx); err != nil {
			runsTotal.WithLabelValues("failed").Inc()
			return responses.ScheduleResponse{}, err
		}
	}
	runsTotal.WithLabelValues("done").Inc()
	s.logger.Println("all processes completed after", s.iterations, "iterations")
	return s.generateResponse(), nil
}

func (s *QLearningScheduler) finish(ctx context.Context) error {
	if err := s.publish(ctx, s.capture(-1, true)); err != nil {
		return err
	}
	s.state = Done
	s.logger.Println("scheduler state:", s.state)
	return nil
}

func (s *QLearningScheduler) capture(nextProcessId int, done bool) snapshot.Snapshot {
	return snapshot.Snapshot{
		Processes:     s.processes.Clone(),
		QTable:        s.qTable.Rows(),
		NextProcessId: nextProcessId,
		Done:          done,
	}
}

func (s *QLearningScheduler) publish(ctx context.Context, snap snapshot.Snapshot) error {
	snap.Sequence = s.sequence
	s.sequence++
	if s.opts.Sink == nil {
		return nil
	}

	start := time.Now()
	if err := s.opts.Sink.Publish(ctx, snap); err != nil {
		return fmt.Errorf("publish snapshot %d: %w", snap.Sequence, err)
	}
	snapshotPublishDuration.Observe(time.Since(start).Seconds())
	return nil
}

// ScheduleQLearning builds the initial process set from the request and runs it to completion.
func ScheduleQLearning(ctx context.Context, request *requests.ScheduleRequests, maxProcesses int, opts QLearningOptions) (responses.ScheduleResponse, error) {
	if opts.Rand == nil {
		return responses.ScheduleResponse{}, errors.New("random source is required")
	}

	var processes core.ProcessSet
	var err error
	if len(request.Jobs) > 0 {
		processes, err = processSetFromJobs(request.Jobs, maxProcesses, opts.Rand)
	} else {
		processes, err = core.NewProcessSet(request.ProcessCount, maxProcesses, opts.Rand)
	}
	if err != nil {
		return responses.ScheduleResponse{}, err
	}

	scheduler, err := NewQLearningScheduler(processes, opts)
	if err != nil {
		return responses.ScheduleResponse{}, err
	}
	scheduler.logger.Println("running q-learning algorithm with timeQuantum = ", opts.TimeQuantum)
	return scheduler.Run(ctx)
}
