// Package viewer consumes the snapshot stream of a scheduler run: each snapshot is read in
// sequence order, rendered, and deleted.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"qtable-scheduler/internal/schedulers"
	"qtable-scheduler/internal/snapshot"
)

// ErrIncomplete means the stream ended without a terminal snapshot, so the scheduler either
// crashed or is still running.
var ErrIncomplete = errors.New("snapshot stream ended before all processes completed")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4"))
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2CD7C7"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2C4A54"))
)

type Viewer struct {
	Store *snapshot.FileStore
	Out   io.Writer
	// Follow waits for snapshots that are not published yet instead of stopping.
	Follow      bool
	IdleTimeout time.Duration
	// Keep leaves consumed snapshots on disk.
	Keep bool
}

// Run renders snapshots from sequence 0 until the terminal snapshot. It returns how many
// snapshots were shown.
func (v *Viewer) Run(ctx context.Context) (int, error) {
	for sequence := 0; ; sequence++ {
		snap, err := v.next(ctx, sequence)
		if err != nil {
			return sequence, err
		}
		if _, err := io.WriteString(v.Out, Render(snap)); err != nil {
			return sequence, err
		}
		if snap.Done {
			return sequence + 1, nil
		}
	}
}

func (v *Viewer) next(ctx context.Context, sequence int) (snapshot.Snapshot, error) {
	for {
		snap, err := v.read(sequence)
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, snapshot.ErrNotFound) {
			return snapshot.Snapshot{}, err
		}
		if !v.Follow {
			log.Println("snapshot", sequence, "absent before the terminal marker")
			return snapshot.Snapshot{}, fmt.Errorf("%w: snapshot %d missing", ErrIncomplete, sequence)
		}
		if err := v.Store.Await(ctx, sequence, v.IdleTimeout); err != nil {
			if errors.Is(err, snapshot.ErrNotFound) {
				return snapshot.Snapshot{}, fmt.Errorf("%w: %v", ErrIncomplete, err)
			}
			return snapshot.Snapshot{}, err
		}
	}
}

func (v *Viewer) read(sequence int) (snapshot.Snapshot, error) {
	if v.Keep {
		return v.Store.Read(sequence)
	}
	return v.Store.Consume(sequence)
}

// Render formats one snapshot as two tables and a status line.
func Render(s snapshot.Snapshot) string {
	processes := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "Burst", "Wait", "Priority", "CPU%", "Memory%", "Completed")
	for _, p := range s.Processes {
		completed := "No"
		if p.Completed {
			completed = "Yes"
		}
		processes.Row(
			strconv.Itoa(p.ProcessId),
			strconv.Itoa(p.BurstTime),
			strconv.Itoa(p.WaitingTime),
			strconv.Itoa(p.Priority),
			fmt.Sprintf("%.2f", p.CpuUtilization),
			fmt.Sprintf("%.2f", p.MemoryUsage),
			completed,
		)
	}

	headers := append([]string{"Process ID"}, schedulers.StateLabels[:]...)
	qTable := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
	for i, row := range s.QTable {
		cells := []string{strconv.Itoa(i)}
		if i < len(s.Processes) {
			cells[0] = strconv.Itoa(s.Processes[i].ProcessId)
		}
		for _, value := range row {
			cells = append(cells, fmt.Sprintf("%.2f", value))
		}
		qTable.Row(cells...)
	}

	status := "All processes completed!"
	if !s.Done {
		status = fmt.Sprintf("Will now execute Process ID: %d", s.NextProcessId)
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n\n",
		titleStyle.Render(fmt.Sprintf("Iteration %d - Current Process States:", s.Sequence)),
		processes.String(),
		titleStyle.Render("Q-Table:"),
		qTable.String(),
		statusStyle.Render(status),
	)
}
