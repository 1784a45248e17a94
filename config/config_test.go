package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSchedulerConfig(t *testing.T) {
	path := writeConfig(t, `
port: 8080
scheduler:
  q_learning:
    time_quantum: 3
    max_processes: 20
snapshot:
  dir: /tmp/snaps
`)

	config, err := LoadSchedulerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, 3, config.TimeQuantum)
	assert.Equal(t, 20, config.MaxProcesses)
	assert.Equal(t, 0.2, config.LearningRate)
	assert.Equal(t, 0.9, config.DiscountFactor)
	assert.Equal(t, "/tmp/snaps", config.SnapshotDir)
	assert.Equal(t, "output_iteration_", config.SnapshotPrefix)
}

func TestLoadSchedulerConfigDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	config, err := LoadSchedulerConfig("")
	require.NoError(t, err)
	assert.Equal(t, 9095, config.Port)
	assert.Equal(t, 2, config.TimeQuantum)
	assert.Equal(t, 10, config.MaxProcesses)
}

func TestLoadSchedulerConfigEnvOverride(t *testing.T) {
	t.Setenv("QSCHED_SCHEDULER_Q_LEARNING_TIME_QUANTUM", "5")
	config, err := LoadSchedulerConfig(writeConfig(t, "port: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, config.TimeQuantum)
}

func TestLoadSchedulerConfigErrors(t *testing.T) {
	_, err := LoadSchedulerConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadSchedulerConfig(writeConfig(t, "scheduler:\n  q_learning:\n    time_quantum: 0\n"))
	assert.ErrorContains(t, err, "time_quantum")

	_, err = LoadSchedulerConfig(writeConfig(t, "port: [\n"))
	assert.Error(t, err)
}
