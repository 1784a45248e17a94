package api

import (
	"errors"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"qtable-scheduler/config"
	"qtable-scheduler/internal/core"
	"qtable-scheduler/internal/requests"
	"qtable-scheduler/internal/responses"
	"qtable-scheduler/internal/schedulers"
	"qtable-scheduler/internal/snapshot"
)

type SchedulerHandler interface {
	QLearning(ctx *fiber.Ctx) error
	Snapshot(ctx *fiber.Ctx) error
}
type SchedulerHandlerImpl struct {
	config *config.SchedulerConfig
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{config: config}
}

// QLearning runs a simulation to completion. Its snapshots are kept under a directory named by
// the returned run id until they are fetched.
func (s *SchedulerHandlerImpl) QLearning(ctx *fiber.Ctx) error {
	var request requests.ScheduleRequests
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request format",
		})
	}

	seed := rand.Uint64()
	if request.Seed != nil {
		seed = *request.Seed
	}
	timeQuantum := s.config.TimeQuantum
	if request.TimeQuantum > 0 {
		timeQuantum = request.TimeQuantum
	}

	runId := uuid.NewString()
	response, err := schedulers.ScheduleQLearning(ctx.UserContext(), &request, s.config.MaxProcesses, schedulers.QLearningOptions{
		TimeQuantum:    timeQuantum,
		LearningRate:   s.config.LearningRate,
		DiscountFactor: s.config.DiscountFactor,
		Rand:           rand.New(rand.NewPCG(seed, seed)),
		Sink:           s.store(runId),
		Logger:         log.Default(),
	})
	if errors.Is(err, core.ErrInvalidProcessCount) || errors.Is(err, core.ErrInvalidInput) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		log.Println("run:", runId, "failed:", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "can not proccess request"})
	}

	response.RunId = runId
	response.Seed = seed
	return ctx.JSON(response)
}

// Snapshot hands out one snapshot of a run and deletes it; fetching it again yields 404.
func (s *SchedulerHandlerImpl) Snapshot(ctx *fiber.Ctx) error {
	runId := ctx.Params("id")
	if _, err := uuid.Parse(runId); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid run id"})
	}
	sequence, err := ctx.ParamsInt("seq")
	if err != nil || sequence < 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid sequence number"})
	}

	store := s.store(runId)
	snap, err := store.Consume(sequence)
	if errors.Is(err, snapshot.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "snapshot not found"})
	}
	if err != nil {
		log.Println("run:", runId, "snapshot", sequence, "failed:", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "can not read snapshot"})
	}
	if snap.Done {
		// the run directory is empty once the terminal snapshot is gone
		os.Remove(store.Dir)
	}
	return ctx.JSON(toSnapshotResponse(snap))
}

func (s *SchedulerHandlerImpl) store(runId string) *snapshot.FileStore {
	return snapshot.NewFileStore(filepath.Join(s.config.SnapshotDir, runId), s.config.SnapshotPrefix)
}

func toSnapshotResponse(snap snapshot.Snapshot) responses.SnapshotResponse {
	response := responses.SnapshotResponse{
		Sequence: snap.Sequence,
		Done:     snap.Done,
		Status:   "All processes completed!",
	}
	if !snap.Done {
		next := snap.NextProcessId
		response.NextProcessId = &next
		response.Status = "Will now execute Process ID: " + strconv.Itoa(next)
	}
	for i, p := range snap.Processes {
		response.Processes = append(response.Processes, responses.ProcessState(p))
		if i < len(snap.QTable) {
			response.QTable = append(response.QTable, responses.QTableRow{ProcessId: p.ProcessId, Values: snap.QTable[i]})
		}
	}
	return response
}
