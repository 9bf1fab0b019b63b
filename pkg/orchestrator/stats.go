package orchestrator

import (
	"sort"

	"github.com/predictive-selection/evoagent/pkg/evaluator"
	"github.com/predictive-selection/evoagent/pkg/genome"
)

// GenerationStats summarizes one generation: population-wide fitness
// spread, calibration means, task accuracy, and the modal categorical
// traits.
type GenerationStats struct {
	Generation            int     `json:"generation"`
	PopulationSize        int     `json:"population_size"`
	AvgFitness            float64 `json:"avg_fitness"`
	BestFitness           float64 `json:"best_fitness"`
	WorstFitness          float64 `json:"worst_fitness"`
	AvgRawCalibration     float64 `json:"avg_raw_calibration"`
	AvgPredictionAccuracy float64 `json:"avg_prediction_accuracy"`
	AvgTaskAccuracy       float64 `json:"avg_task_accuracy"`
	DominantReasoning     string  `json:"dominant_reasoning"`
	DominantMemory        string  `json:"dominant_memory"`
	ElapsedSeconds        float64 `json:"elapsed_seconds"`
}

// TestResults is the held-out evaluation of the final population, the
// unbiased generalization estimate of the run.
type TestResults struct {
	NTasks                int     `json:"n_tasks"`
	NAgents               int     `json:"n_agents"`
	AvgRawCalibration     float64 `json:"avg_raw_calibration"`
	AvgPredictionAccuracy float64 `json:"avg_prediction_accuracy"`
	AvgTaskAccuracy       float64 `json:"avg_task_accuracy"`
	BestFitness           float64 `json:"best_fitness"`
	AvgFitness            float64 `json:"avg_fitness"`
}

// ResultRecord is one evaluation result annotated with the generation
// it happened in, as stored in the run record.
type ResultRecord struct {
	Generation int `json:"generation"`
	evaluator.EvalResult
}

// EvolutionRun is the complete record of one run: per-generation
// stats, every genome ever created, every evaluation result, and the
// held-out test evaluation.
type EvolutionRun struct {
	RunID           string               `json:"run_id"`
	GenerationStats []GenerationStats    `json:"generation_stats"`
	AllGenomes      []genome.AgentGenome `json:"all_genomes"`
	AllResults      []ResultRecord       `json:"all_results"`
	TestResults     *TestResults         `json:"test_results"`
}

// computeGenerationStats aggregates one generation. Results are walked
// in population order so float accumulation is reproducible.
func computeGenerationStats(
	gen int,
	population []genome.AgentGenome,
	results map[string][]evaluator.EvalResult,
	fitnessScores map[string]float64,
	elapsed float64,
) GenerationStats {
	stats := GenerationStats{
		Generation:        gen,
		PopulationSize:    len(population),
		DominantReasoning: "unknown",
		DominantMemory:    "unknown",
		ElapsedSeconds:    elapsed,
	}

	reasoningCounts := make(map[string]int)
	memoryCounts := make(map[string]int)

	var fitSum, best, worst float64
	var calSum, accSum float64
	var nFit, nResults, nCorrect int

	for i, g := range population {
		reasoningCounts[g.ReasoningStyle]++
		memoryCounts[g.MemoryWeighting]++

		f := fitnessScores[g.ID]
		fitSum += f
		if i == 0 || f > best {
			best = f
		}
		if i == 0 || f < worst {
			worst = f
		}
		nFit++

		for _, r := range results[g.ID] {
			calSum += r.RawCalibration
			accSum += r.PredictionAccuracy
			if r.IsCorrect {
				nCorrect++
			}
			nResults++
		}
	}

	if nFit > 0 {
		stats.AvgFitness = fitSum / float64(nFit)
		stats.BestFitness = best
		stats.WorstFitness = worst
	}
	if nResults > 0 {
		stats.AvgRawCalibration = calSum / float64(nResults)
		stats.AvgPredictionAccuracy = accSum / float64(nResults)
		stats.AvgTaskAccuracy = float64(nCorrect) / float64(nResults)
	}
	if len(reasoningCounts) > 0 {
		stats.DominantReasoning = modalTrait(reasoningCounts)
	}
	if len(memoryCounts) > 0 {
		stats.DominantMemory = modalTrait(memoryCounts)
	}
	return stats
}

// modalTrait returns the most frequent trait value; ties break to the
// lexicographically smallest so the answer never depends on map
// iteration order.
func modalTrait(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bestKey, bestCount := "", -1
	for _, k := range keys {
		if counts[k] > bestCount {
			bestKey, bestCount = k, counts[k]
		}
	}
	return bestKey
}

// computeTestResults aggregates the held-out evaluation the same way a
// GenerationStats is, keyed by the final population's order.
func computeTestResults(
	population []genome.AgentGenome,
	results map[string][]evaluator.EvalResult,
	fitnessScores map[string]float64,
	nTasks int,
) TestResults {
	tr := TestResults{NTasks: nTasks, NAgents: len(population)}

	var calSum, accSum, fitSum float64
	var nResults, nCorrect int

	for i, g := range population {
		f := fitnessScores[g.ID]
		fitSum += f
		if i == 0 || f > tr.BestFitness {
			tr.BestFitness = f
		}
		for _, r := range results[g.ID] {
			calSum += r.RawCalibration
			accSum += r.PredictionAccuracy
			if r.IsCorrect {
				nCorrect++
			}
			nResults++
		}
	}

	if len(population) > 0 {
		tr.AvgFitness = fitSum / float64(len(population))
	}
	if nResults > 0 {
		tr.AvgRawCalibration = calSum / float64(nResults)
		tr.AvgPredictionAccuracy = accSum / float64(nResults)
		tr.AvgTaskAccuracy = float64(nCorrect) / float64(nResults)
	}
	return tr
}
