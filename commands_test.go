package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"qtable-scheduler/internal/responses"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("scheduler:\n  q_learning:\n    time_quantum: 2\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configFile}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSimulateThenView(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input_data.txt")
	require.NoError(t, os.WriteFile(input, []byte("0,5,0,4,0.30,0.60,No\n1,3,,,,,\n"), 0o644))
	report := filepath.Join(dir, "run.yaml")
	snapshots := filepath.Join(dir, "snapshots")

	out, err := execute(t, "simulate", "-i", input, "--seed", "42", "--dir", snapshots, "--report", report)
	require.NoError(t, err)
	assert.Contains(t, out, "All processes completed after 5 iterations (6 snapshots")

	body, err := os.ReadFile(report)
	require.NoError(t, err)
	var summary responses.ScheduleResponse
	require.NoError(t, yaml.Unmarshal(body, &summary))
	assert.Equal(t, uint64(42), summary.Seed)
	assert.Equal(t, 5, summary.Iterations)
	assert.Len(t, summary.ExecutionOrder, 5)

	out, err = execute(t, "view", "--dir", snapshots)
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(out, "Will now execute Process ID:"))
	assert.Equal(t, 1, strings.Count(out, "All processes completed!"))

	entries, err := os.ReadDir(snapshots)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSimulateIsReproducible(t *testing.T) {
	run := func() responses.ScheduleResponse {
		dir := t.TempDir()
		report := filepath.Join(dir, "run.yaml")
		_, err := execute(t, "simulate", "-n", "5", "--seed", "7", "--dir", dir, "--report", report)
		require.NoError(t, err)
		body, err := os.ReadFile(report)
		require.NoError(t, err)
		var summary responses.ScheduleResponse
		require.NoError(t, yaml.Unmarshal(body, &summary))
		return summary
	}

	first, second := run(), run()
	assert.Equal(t, first.ExecutionOrder, second.ExecutionOrder)
	assert.Equal(t, first.FinalQTable, second.FinalQTable)
}

func TestSimulateValidation(t *testing.T) {
	_, err := execute(t, "simulate", "-n", "11", "--dir", t.TempDir())
	assert.ErrorContains(t, err, "invalid process count")

	_, err = execute(t, "simulate", "-n", "2", "--quantum", "-1", "--dir", t.TempDir())
	assert.ErrorContains(t, err, "time quantum must be positive")

	_, err = execute(t, "simulate", "--dir", t.TempDir())
	assert.Error(t, err, "either --processes or --input is required")
}

func TestViewIncompleteRun(t *testing.T) {
	_, err := execute(t, "view", "--dir", t.TempDir())
	assert.ErrorContains(t, err, "snapshot stream ended")
}
