package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"qtable-scheduler/api"
	"qtable-scheduler/config"
	"qtable-scheduler/internal/core"
	"qtable-scheduler/internal/responses"
	"qtable-scheduler/internal/schedulers"
	"qtable-scheduler/internal/snapshot"
	"qtable-scheduler/internal/viewer"
)

func newRootCmd() *cobra.Command {
	var configFile string
	schedulerConfig := &config.SchedulerConfig{}

	root := &cobra.Command{
		Use:           "qsched",
		Short:         "Q-table driven CPU scheduling simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadSchedulerConfig(configFile)
			if err != nil {
				return err
			}
			*schedulerConfig = *loaded
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml)")

	root.AddCommand(
		newSimulateCmd(schedulerConfig),
		newViewCmd(schedulerConfig),
		newServeCmd(schedulerConfig),
	)
	return root
}

func newSimulateCmd(schedulerConfig *config.SchedulerConfig) *cobra.Command {
	var (
		processCount int
		inputFile    string
		seed         uint64
		snapshotDir  string
		timeQuantum  int
		reportFile   string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the q-learning scheduler and publish one snapshot per iteration",
		Long: `Runs the q-learning scheduler until every process has completed.

Processes come either from --processes (random attributes) or from --input, a comma
separated table "ID,Burst,Wait,Priority,CPU%,Memory%,Completed" where empty cells are
drawn at random. Each iteration is published as <dir>/<prefix><n>.txt, starting at 0;
the last snapshot always reads "All processes completed!".

Examples:
  qsched simulate -n 4
  qsched simulate -i input_data.txt --seed 42 --report run.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = rand.Uint64()
			}
			rng := rand.New(rand.NewPCG(seed, seed))

			processes, err := loadProcesses(inputFile, processCount, schedulerConfig.MaxProcesses, rng)
			if err != nil {
				return err
			}

			if snapshotDir == "" {
				snapshotDir = schedulerConfig.SnapshotDir
			}
			if !cmd.Flags().Changed("quantum") {
				timeQuantum = schedulerConfig.TimeQuantum
			}

			log.Println("running q-learning algorithm with", len(processes), "processes, timeQuantum =", timeQuantum, "seed =", seed)
			scheduler, err := schedulers.NewQLearningScheduler(processes, schedulers.QLearningOptions{
				TimeQuantum:    timeQuantum,
				LearningRate:   schedulerConfig.LearningRate,
				DiscountFactor: schedulerConfig.DiscountFactor,
				Rand:           rng,
				Sink:           snapshot.NewFileStore(snapshotDir, schedulerConfig.SnapshotPrefix),
				Logger:         log.Default(),
			})
			if err != nil {
				return err
			}
			response, err := scheduler.Run(cmd.Context())
			if err != nil {
				return err
			}
			response.Seed = seed

			fmt.Fprintf(cmd.OutOrStdout(), "All processes completed after %d iterations (%d snapshots in %s)\n",
				response.Iterations, response.Snapshots, snapshotDir)
			fmt.Fprintf(cmd.OutOrStdout(), "average waiting time %.2f, average turnaround time %.2f\n",
				response.AverageWaitingTime, response.AverageTurnAroundTime)

			if reportFile != "" {
				return writeReport(reportFile, response)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&processCount, "processes", "n", 0, "number of random processes")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "comma separated process table")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: random, logged)")
	cmd.Flags().StringVar(&snapshotDir, "dir", "", "snapshot directory (default from config)")
	cmd.Flags().IntVarP(&timeQuantum, "quantum", "q", 0, "time quantum (default from config)")
	cmd.Flags().StringVar(&reportFile, "report", "", "write the run summary as yaml")
	cmd.MarkFlagsMutuallyExclusive("processes", "input")
	cmd.MarkFlagsOneRequired("processes", "input")
	return cmd
}

func loadProcesses(inputFile string, processCount, maxProcesses int, rng *rand.Rand) (core.ProcessSet, error) {
	if inputFile == "" {
		return core.NewProcessSet(processCount, maxProcesses, rng)
	}
	f, err := os.Open(inputFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return core.LoadProcessSet(f, maxProcesses, rng)
}

func writeReport(path string, response responses.ScheduleResponse) error {
	body, err := yaml.Marshal(response)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func newViewCmd(schedulerConfig *config.SchedulerConfig) *cobra.Command {
	var (
		snapshotDir string
		follow      bool
		idleTimeout time.Duration
		keep        bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the snapshots of a run in order, deleting each one after it is shown",
		Long: `Reads <dir>/<prefix>0.txt, <prefix>1.txt, ... until the snapshot reading
"All processes completed!". Without --follow a missing snapshot ends the view with an
error, since the run did not finish; with --follow the viewer waits for it to appear.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if snapshotDir == "" {
				snapshotDir = schedulerConfig.SnapshotDir
			}
			v := &viewer.Viewer{
				Store:       snapshot.NewFileStore(snapshotDir, schedulerConfig.SnapshotPrefix),
				Out:         cmd.OutOrStdout(),
				Follow:      follow,
				IdleTimeout: idleTimeout,
				Keep:        keep,
			}
			shown, err := v.Run(cmd.Context())
			log.Println("shown", shown, "snapshots from", snapshotDir)
			return err
		},
	}

	cmd.Flags().StringVar(&snapshotDir, "dir", "", "snapshot directory (default from config)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "wait for snapshots that are not written yet")
	cmd.Flags().DurationVar(&idleTimeout, "idle-timeout", 30*time.Second, "give up following after this long without a new snapshot (0 waits forever)")
	cmd.Flags().BoolVar(&keep, "keep", false, "do not delete snapshots after showing them")
	return cmd
}

func newServeCmd(schedulerConfig *config.SchedulerConfig) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == 0 {
				port = schedulerConfig.Port
			}
			app := api.NewApp(api.NewSchedulerHandlerImpl(schedulerConfig))

			go func() {
				<-cmd.Context().Done()
				app.Shutdown()
			}()
			return app.Listen(fmt.Sprintf(":%d", port))
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default from config)")
	return cmd
}
