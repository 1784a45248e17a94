package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"qtable-scheduler/internal/schedulers"
	"qtable-scheduler/internal/snapshot"
)

type SchedulerConfig struct {
	Port           int
	TimeQuantum    int
	LearningRate   float64
	DiscountFactor float64
	MaxProcesses   int
	SnapshotDir    string
	SnapshotPrefix string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.q_learning.time_quantum", schedulers.DefaultTimeQuantum)
	v.SetDefault("scheduler.q_learning.learning_rate", schedulers.DefaultLearningRate)
	v.SetDefault("scheduler.q_learning.discount_factor", schedulers.DefaultDiscountFactor)
	v.SetDefault("scheduler.q_learning.max_processes", schedulers.DefaultMaxProcesses)
	v.SetDefault("snapshot.dir", ".")
	v.SetDefault("snapshot.prefix", snapshot.DefaultPrefix)
}

// LoadSchedulerConfig reads the given yaml file, or config.yaml from the working directory when
// file is empty. Without a config file the defaults apply. QSCHED_* environment variables
// override both, e.g. QSCHED_SCHEDULER_Q_LEARNING_TIME_QUANTUM=4.
func LoadSchedulerConfig(file string) (*SchedulerConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("qsched")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	config := &SchedulerConfig{
		Port:           v.GetInt("port"),
		TimeQuantum:    v.GetInt("scheduler.q_learning.time_quantum"),
		LearningRate:   v.GetFloat64("scheduler.q_learning.learning_rate"),
		DiscountFactor: v.GetFloat64("scheduler.q_learning.discount_factor"),
		MaxProcesses:   v.GetInt("scheduler.q_learning.max_processes"),
		SnapshotDir:    v.GetString("snapshot.dir"),
		SnapshotPrefix: v.GetString("snapshot.prefix"),
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *SchedulerConfig) Validate() error {
	switch {
	case c.TimeQuantum <= 0:
		return fmt.Errorf("scheduler.q_learning.time_quantum must be positive, got %d", c.TimeQuantum)
	case c.LearningRate <= 0 || c.LearningRate > 1:
		return fmt.Errorf("scheduler.q_learning.learning_rate must be in (0,1], got %v", c.LearningRate)
	case c.DiscountFactor < 0 || c.DiscountFactor >= 1:
		return fmt.Errorf("scheduler.q_learning.discount_factor must be in [0,1), got %v", c.DiscountFactor)
	case c.MaxProcesses < 1:
		return fmt.Errorf("scheduler.q_learning.max_processes must be at least 1, got %d", c.MaxProcesses)
	}
	return nil
}
