// Command evoagent runs evolutionary searches over LLM agent
// configurations and reports how calibration and accuracy change under
// selection pressure.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/predictive-selection/evoagent/pkg/config"
	"github.com/predictive-selection/evoagent/pkg/evaluator"
	"github.com/predictive-selection/evoagent/pkg/llms"
	"github.com/predictive-selection/evoagent/pkg/logging"
	"github.com/predictive-selection/evoagent/pkg/orchestrator"
	"github.com/predictive-selection/evoagent/pkg/store"
	"github.com/predictive-selection/evoagent/pkg/tasks"
)

var rootCmd = &cobra.Command{
	Use:   "evoagent",
	Short: "Evolve LLM agent strategies under calibration selection pressure",
	Long: `evoagent searches the space of agent configurations (prompt, reasoning
style, memory, confidence bias, temperature) with a genetic algorithm.
Fitness rewards calibrated confidence as much as task accuracy, so
surviving configurations are the ones that know what they know.

Supports any OpenAI-compatible API. Examples:
  # OpenAI
  evoagent run --model gpt-4o-mini

  # Local ollama
  evoagent run --model llama3.3 --base-url http://localhost:11434/v1

  # Dry run without an API key
  evoagent run --provider stub`,
	Version: "0.1.0",
}

func main() {
	rootCmd.AddCommand(newRunCmd(), newValidateCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		configFile string
		flagCfg    config.RunConfig
		apiKey     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a full evolutionary simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env keeps API keys out of shell history.
			_ = godotenv.Load()

			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, &cfg, flagCfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			if apiKey == "" {
				apiKey = os.Getenv("OPENAI_API_KEY")
				if cfg.Provider == llms.ProviderAnthropic {
					apiKey = os.Getenv("ANTHROPIC_API_KEY")
				}
			}
			if apiKey == "" && cfg.Provider != llms.ProviderStub {
				logging.GetLogger().Warn(cmd.Context(), "no API key set, falling back to the stub oracle")
				cfg.Provider = llms.ProviderStub
			}

			return runEvolution(cmd.Context(), cfg, apiKey)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "YAML run configuration file")
	flags.IntVarP(&flagCfg.PopulationSize, "population", "p", 0, "population size")
	flags.IntVarP(&flagCfg.NumGenerations, "generations", "g", 0, "number of generations")
	flags.IntVarP(&flagCfg.TasksPerGeneration, "tasks", "t", 0, "tasks per generation")
	flags.IntVarP(&flagCfg.Concurrency, "concurrency", "c", 0, "max concurrent oracle calls")
	flags.Float64VarP(&flagCfg.MutationRate, "mutation-rate", "m", 0, "mutation rate (0-1)")
	flags.Int64VarP(&flagCfg.Seed, "seed", "s", 0, "random seed for task selection and reproducibility")
	flags.StringVar(&flagCfg.Provider, "provider", "", "oracle provider (openai, anthropic, stub)")
	flags.StringVar(&flagCfg.Model, "model", "", "oracle model name")
	flags.StringVar(&flagCfg.BaseURL, "base-url", "", "OpenAI-compatible API base URL")
	flags.StringVar(&apiKey, "api-key", "", "API key (or set the provider's env var)")
	flags.StringVar(&flagCfg.StorePath, "store", "", "population store database path")
	flags.StringVar(&flagCfg.TasksFile, "tasks-file", "", "custom task corpus (JSON)")
	flags.StringVarP(&flagCfg.OutputFile, "output", "o", "", "run record output path")
	return cmd
}

// applyFlagOverrides layers explicitly-set flags over the loaded
// config, so flags beat both file and environment.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.RunConfig, flagCfg config.RunConfig) {
	set := map[string]func(){
		"population":    func() { cfg.PopulationSize = flagCfg.PopulationSize },
		"generations":   func() { cfg.NumGenerations = flagCfg.NumGenerations },
		"tasks":         func() { cfg.TasksPerGeneration = flagCfg.TasksPerGeneration },
		"concurrency":   func() { cfg.Concurrency = flagCfg.Concurrency },
		"mutation-rate": func() { cfg.MutationRate = flagCfg.MutationRate },
		"seed":          func() { cfg.Seed = flagCfg.Seed },
		"provider":      func() { cfg.Provider = flagCfg.Provider },
		"model":         func() { cfg.Model = flagCfg.Model },
		"base-url":      func() { cfg.BaseURL = flagCfg.BaseURL },
		"store":         func() { cfg.StorePath = flagCfg.StorePath },
		"tasks-file":    func() { cfg.TasksFile = flagCfg.TasksFile },
		"output":        func() { cfg.OutputFile = flagCfg.OutputFile },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}

func runEvolution(ctx context.Context, cfg config.RunConfig, apiKey string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.GetLogger()
	logger.Info(ctx, "oracle: provider=%s model=%s", cfg.Provider, cfg.Model)

	oracle, err := llms.New(cfg.Provider, apiKey, cfg.BaseURL)
	if err != nil {
		return err
	}

	corpus := tasks.Builtin()
	if cfg.TasksFile != "" {
		corpus, err = tasks.LoadFromFile(cfg.TasksFile)
		if err != nil {
			return err
		}
	}

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Ping(ctx); err != nil {
		return err
	}

	eval := evaluator.New(oracle, cfg.Model)
	run, err := orchestrator.New(st, eval, corpus, cfg).Run(ctx)
	if err != nil {
		return err
	}

	if err := writeRunRecord(run, cfg.OutputFile); err != nil {
		return err
	}
	logger.Info(ctx, "run record saved to %s", cfg.OutputFile)

	fmt.Println()
	fmt.Println(orchestrator.Summary(run))
	return nil
}

func writeRunRecord(run orchestrator.EvolutionRun, path string) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [run-record]",
		Short: "Report first-vs-last generation improvement from a saved run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "evolution_run.json"
			if len(args) == 1 {
				path = args[0]
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			var run orchestrator.EvolutionRun
			if err := json.Unmarshal(data, &run); err != nil {
				return err
			}

			v := orchestrator.ValidateHistorical(run)
			if !v.Available {
				fmt.Printf("Validation unavailable: %s\n", v.Reason)
				return nil
			}

			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			fmt.Println()
			fmt.Println(orchestrator.Summary(run))
			return nil
		},
	}
}
