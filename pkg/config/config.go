// Package config defines the run configuration: evolution parameters,
// oracle backend selection, and file locations. Values come from
// defaults, an optional YAML file, then environment overrides, and are
// validated before a run starts.
package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	errs "github.com/predictive-selection/evoagent/pkg/errors"
)

// RunConfig holds every knob of one evolution run. A config that fails
// validation aborts the run before anything is written.
type RunConfig struct {
	PopulationSize     int     `yaml:"population_size" validate:"gte=2"`
	NumGenerations     int     `yaml:"num_generations" validate:"gte=1"`
	TasksPerGeneration int     `yaml:"tasks_per_generation" validate:"gte=1"`
	Concurrency        int     `yaml:"concurrency" validate:"gte=1"`
	MutationRate       float64 `yaml:"mutation_rate" validate:"gte=0,lte=1"`
	SurvivalRate       float64 `yaml:"survival_rate" validate:"gt=0,lte=1"`
	EliteCount         int     `yaml:"elite_count" validate:"gte=0"`
	Seed               int64   `yaml:"seed"`
	TrainRatio         float64 `yaml:"train_ratio" validate:"gt=0,lt=1"`
	ValRatio           float64 `yaml:"val_ratio" validate:"gte=0,lt=1"`

	Provider string `yaml:"provider" validate:"oneof=openai anthropic stub"`
	Model    string `yaml:"model" validate:"required"`
	BaseURL  string `yaml:"base_url"`

	StorePath  string `yaml:"store_path"`
	TasksFile  string `yaml:"tasks_file"`
	OutputFile string `yaml:"output_file"`
}

// Default returns the baseline configuration used when no file or
// flags override it.
func Default() RunConfig {
	return RunConfig{
		PopulationSize:     10,
		NumGenerations:     15,
		TasksPerGeneration: 8,
		Concurrency:        10,
		MutationRate:       0.3,
		SurvivalRate:       0.3,
		EliteCount:         2,
		Seed:               42,
		TrainRatio:         0.6,
		ValRatio:           0.2,
		Provider:           "openai",
		Model:              "gpt-4o-mini",
		StorePath:          "evoagent.db",
		OutputFile:         "evolution_run.json",
	}
}

// Load builds a RunConfig from defaults, the YAML file at path (when
// non-empty), and environment overrides, then validates it.
func Load(path string) (RunConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return RunConfig{}, errs.WithFields(
				errs.Wrap(err, errs.InvalidInput, "failed to read config file"),
				errs.Fields{"path": path})
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return RunConfig{}, errs.WithFields(
				errs.Wrap(err, errs.InvalidInput, "failed to parse config file"),
				errs.Fields{"path": path})
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// applyEnv layers environment overrides on top of file values. API
// keys stay out of RunConfig entirely; the CLI reads those itself.
func (c *RunConfig) applyEnv() {
	if v := os.Getenv("MODEL_NAME"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("EVOAGENT_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("EVOAGENT_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("EVOAGENT_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
}

// Validate checks field ranges and cross-field constraints.
func (c RunConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errs.Wrap(err, errs.ValidationFailed, "invalid run configuration")
	}
	if c.TrainRatio+c.ValRatio >= 1 {
		return errs.WithFields(
			errs.New(errs.ValidationFailed, "train_ratio + val_ratio must leave room for the test split"),
			errs.Fields{"train_ratio": c.TrainRatio, "val_ratio": c.ValRatio})
	}
	if c.EliteCount > c.PopulationSize {
		return errs.WithFields(
			errs.New(errs.ValidationFailed, "elite_count cannot exceed population_size"),
			errs.Fields{"elite_count": c.EliteCount, "population_size": c.PopulationSize})
	}
	return nil
}
