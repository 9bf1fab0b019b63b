package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/predictive-selection/evoagent/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := `
population_size: 6
num_generations: 3
tasks_per_generation: 4
seed: 99
provider: stub
model: test-model
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.PopulationSize)
	assert.Equal(t, 3, cfg.NumGenerations)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, "stub", cfg.Provider)
	// Unspecified fields keep their defaults.
	assert.Equal(t, 0.3, cfg.MutationRate)
	assert.Equal(t, 10, cfg.Concurrency)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, errs.InvalidInput, errs.Code(err))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MODEL_NAME", "env-model")
	t.Setenv("EVOAGENT_SEED", "7")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-model", cfg.Model)
	assert.Equal(t, int64(7), cfg.Seed)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RunConfig)
	}{
		{"population below two", func(c *RunConfig) { c.PopulationSize = 1 }},
		{"zero generations", func(c *RunConfig) { c.NumGenerations = 0 }},
		{"mutation rate above one", func(c *RunConfig) { c.MutationRate = 1.2 }},
		{"zero survival rate", func(c *RunConfig) { c.SurvivalRate = 0 }},
		{"zero concurrency", func(c *RunConfig) { c.Concurrency = 0 }},
		{"unknown provider", func(c *RunConfig) { c.Provider = "bard" }},
		{"empty model", func(c *RunConfig) { c.Model = "" }},
		{"ratios consume test split", func(c *RunConfig) { c.TrainRatio = 0.8; c.ValRatio = 0.2 }},
		{"elites exceed population", func(c *RunConfig) { c.EliteCount = 11 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errs.ValidationFailed, errs.Code(err))
		})
	}
}
