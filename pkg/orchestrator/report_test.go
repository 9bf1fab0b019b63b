package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/predictive-selection/evoagent/pkg/genome"
)

func twoGenerationRun() EvolutionRun {
	return EvolutionRun{
		RunID: "test-run",
		GenerationStats: []GenerationStats{
			{Generation: 0, PopulationSize: 4, AvgFitness: 0.50, BestFitness: 0.62,
				AvgRawCalibration: 0.55, AvgPredictionAccuracy: 0.60, AvgTaskAccuracy: 0.40},
			{Generation: 1, PopulationSize: 4, AvgFitness: 0.58, BestFitness: 0.70,
				AvgRawCalibration: 0.57, AvgPredictionAccuracy: 0.72, AvgTaskAccuracy: 0.55},
		},
		AllGenomes: []genome.AgentGenome{
			{ID: "a", Generation: 0, ReasoningStyle: "analogical", MemoryWeighting: "recency"},
			{ID: "b", Generation: 0, ReasoningStyle: "debate-self", MemoryWeighting: "relevance"},
			{ID: "c", Generation: 1, ReasoningStyle: "analogical", MemoryWeighting: "recency"},
			{ID: "d", Generation: 1, ReasoningStyle: "analogical", MemoryWeighting: "relevance"},
		},
		AllResults: make([]ResultRecord, 24),
		TestResults: &TestResults{
			NTasks: 5, NAgents: 4,
			AvgRawCalibration: 0.56, AvgPredictionAccuracy: 0.7,
			AvgTaskAccuracy: 0.5, BestFitness: 0.68, AvgFitness: 0.6,
		},
	}
}

func TestValidateHistorical(t *testing.T) {
	v := ValidateHistorical(twoGenerationRun())

	require.True(t, v.Available)
	assert.Equal(t, 0, v.Baseline.Generation)
	assert.Equal(t, 0.6, v.Baseline.Calibration)
	assert.Equal(t, 0.5, v.Baseline.Fitness)
	assert.Equal(t, 1, v.Optimized.Generation)
	assert.Equal(t, 0.72, v.Optimized.Calibration)
	assert.InDelta(t, 0.12, v.Improvement, 1e-9)
	assert.Equal(t, 20.0, v.ImprovementPct)
	assert.Equal(t, 24, v.EvaluationsTested)
	assert.Equal(t, 2, v.Generations)
	assert.Contains(t, v.Proof, "24 evaluations")
}

func TestValidateHistoricalNeedsTwoGenerations(t *testing.T) {
	run := twoGenerationRun()
	run.GenerationStats = run.GenerationStats[:1]

	v := ValidateHistorical(run)
	assert.False(t, v.Available)
	assert.NotEmpty(t, v.Reason)
}

func TestSummary(t *testing.T) {
	s := Summary(twoGenerationRun())

	assert.Contains(t, s, "**Generations:** 2")
	assert.Contains(t, s, "Generation 0 avg fitness: 0.500")
	assert.Contains(t, s, "Improvement: +0.080")
	assert.Contains(t, s, "Reasoning: analogical (2/2 agents)")
	// debate-self existed in generation 0 but not the final one.
	assert.Contains(t, s, "## Extinct Strategies\n- debate-self")
	assert.Contains(t, s, "Tasks evaluated: 5")
}

func TestSummaryEmptyRun(t *testing.T) {
	assert.Equal(t, "No data.", Summary(EvolutionRun{}))
}
