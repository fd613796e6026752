package cmd

import (
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/dispatch-sim/sim"
	"github.com/inference-sim/dispatch-sim/sim/policy"
	"github.com/inference-sim/dispatch-sim/sim/trace"
)

var (
	seed        int64  // Seed of the first episode; episode i uses seed+i
	tenants     int    // Number of tenants
	profile     string // Simulator profile (count, timestamped)
	episodes    int    // Number of episodes to run
	maxSteps    int    // Step cap per episode (truncation)
	policyName  string // Dispatch policy
	configPath  string // Optional YAML env config
	traceLevel  string // Trace verbosity
	traceOut    string // Trace output path (JSON)
	logLevel    string // Log verbosity level
	showMetrics bool   // Print per-episode metrics
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "dispatch-sim",
	Short: "Discrete-time simulator for multi-tenant task dispatch",
}

// runCmd runs episodes using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run dispatch episodes with a fixed policy",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveEnvConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid env config: %v", err)
		}
		if !policy.IsValidDispatchPolicy(policyName) {
			logrus.Fatalf("Unknown dispatch policy %q", policyName)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q", traceLevel)
		}
		if episodes < 1 {
			logrus.Fatalf("--episodes must be >= 1, got %d", episodes)
		}

		runID := uuid.New().String()
		rt := trace.NewRunTrace(runID, trace.TraceLevel(traceLevel))
		rt.Policy, rt.Profile, rt.Tenants = policyName, string(cfg.Profile), cfg.Tenants

		logrus.Infof("Starting run %s: tenants=%d profile=%s policy=%s episodes=%d max-steps=%d",
			runID, cfg.Tenants, cfg.Profile, policyName, episodes, maxSteps)

		results, err := runEpisodes(cfg, rt)
		if err != nil {
			logrus.Fatalf("Run failed: %v", err)
		}
		for _, r := range results {
			logrus.Infof("Episode seed=%d steps=%d reward=%.2f terminated=%v truncated=%v",
				int64(r.Key), r.Steps, r.TotalReward, r.Terminated, r.Truncated)
		}

		if traceOut != "" && rt.Level != trace.TraceLevelNone && rt.Level != "" {
			if err := rt.WriteJSON(traceOut); err != nil {
				logrus.Fatalf("Failed to write trace: %v", err)
			}
			s := trace.Summarize(rt)
			logrus.Infof("Trace written to %s: episodes=%d terminated=%d truncated=%d steps=%d",
				traceOut, s.TotalEpisodes, s.TerminatedEpisodes, s.TruncatedEpisodes, s.TotalSteps)
		}
		logrus.Info("Run complete.")
	},
}

// resolveEnvConfig layers explicitly set flags over the config file (or defaults).
func resolveEnvConfig(cmd *cobra.Command) (sim.EnvConfig, error) {
	cfg := sim.DefaultEnvConfig(tenants)
	if configPath != "" {
		loaded, err := sim.LoadEnvConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		if cmd.Flags().Changed("tenants") {
			cfg.Tenants = tenants
		}
		if cmd.Flags().Changed("profile") {
			cfg.Profile = sim.Profile(profile)
		}
	} else {
		cfg.Profile = sim.Profile(profile)
	}
	return cfg, cfg.Validate()
}

// runEpisodes runs the configured number of episodes on one simulator,
// seeding episode i with seed+i.
func runEpisodes(cfg sim.EnvConfig, rt *trace.RunTrace) ([]sim.EpisodeResult, error) {
	s, err := sim.NewSimulator(cfg, sim.NewRandSource(sim.NewSimulationKey(seed)))
	if err != nil {
		return nil, err
	}
	policyRNG := sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).ForSubsystem(sim.SubsystemPolicy)
	p := policy.NewDispatchPolicy(policyName, policyRNG)

	results := make([]sim.EpisodeResult, 0, episodes)
	for i := 0; i < episodes; i++ {
		key := sim.NewSimulationKey(seed + int64(i))
		rt.BeginEpisode(int64(key))
		res, err := sim.RunEpisode(s, p, key, maxSteps, recordStep(rt, s.NoOp()))
		if err != nil {
			return results, err
		}
		rt.EndEpisode(res.Terminated, res.Truncated)
		if showMetrics {
			s.Metrics.Print(res.Steps)
		}
		results = append(results, res)
	}
	return results, nil
}

func recordStep(rt *trace.RunTrace, noop sim.Action) sim.StepObserver {
	return func(action sim.Action, res sim.StepResult) {
		rt.RecordStep(trace.StepRecord{
			Tick:       res.Info.Tick,
			Action:     int(action),
			NoOp:       action == noop,
			Outcome:    string(res.Info.Outcome),
			Reward:     res.Reward,
			Terminated: res.Terminated,
			QueueDepth: res.Observation.TasksQueue,
			Arrivals:   res.Info.Arrivals,
		})
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed of the first episode (episode i uses seed+i)")
	runCmd.Flags().IntVar(&tenants, "tenants", 5, "Number of tenants")
	runCmd.Flags().StringVar(&profile, "profile", string(sim.ProfileCount), "Simulator profile (count, timestamped)")
	runCmd.Flags().IntVar(&episodes, "episodes", 1, "Number of episodes to run")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", sim.DefaultMaxEpisodeSteps, "Step cap per episode")
	runCmd.Flags().StringVar(&policyName, "policy", "longest-queue", "Dispatch policy (idle, round-robin, longest-queue, longest-wait, random)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML env config; explicit flags override it")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Trace verbosity (none, episodes, steps)")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write the trace as JSON to this path")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print per-episode metrics")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
