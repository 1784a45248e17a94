// Package snapshot hands scheduler iterations to a viewer. Every iteration is encoded as a tab
// separated text table and published under a strictly increasing sequence number; the last
// snapshot of a run always carries the terminal marker.
package snapshot

import (
	"context"
	"errors"

	"qtable-scheduler/internal/core"
)

var (
	ErrNotFound  = errors.New("snapshot not found")
	ErrMalformed = errors.New("malformed snapshot")
	ErrClosed    = errors.New("snapshot sink closed")
)

// Snapshot is an immutable record of one scheduler iteration.
type Snapshot struct {
	Sequence      int             `json:"sequence"`
	Processes     core.ProcessSet `json:"processes"`
	QTable        [][]float64     `json:"q_table"`
	NextProcessId int             `json:"next_process_id"`
	Done          bool            `json:"done"`
}

// Sink receives snapshots in sequence order from a single scheduler.
type Sink interface {
	Publish(ctx context.Context, s Snapshot) error
}
