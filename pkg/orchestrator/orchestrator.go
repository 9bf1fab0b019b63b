// Package orchestrator drives the evolutionary loop: seed a random
// population, evaluate it generation by generation, evolve between
// generations, and finish with a held-out test evaluation. It owns the
// generation state machine and the run record.
package orchestrator

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/predictive-selection/evoagent/pkg/config"
	errs "github.com/predictive-selection/evoagent/pkg/errors"
	"github.com/predictive-selection/evoagent/pkg/evaluator"
	"github.com/predictive-selection/evoagent/pkg/evolution"
	"github.com/predictive-selection/evoagent/pkg/genome"
	"github.com/predictive-selection/evoagent/pkg/logging"
	"github.com/predictive-selection/evoagent/pkg/store"
	"github.com/predictive-selection/evoagent/pkg/tasks"
)

// Orchestrator wires the evaluator, store, and corpus into one run.
type Orchestrator struct {
	store  *store.PopulationStore
	eval   *evaluator.Evaluator
	corpus *tasks.Corpus
	cfg    config.RunConfig
}

// New assembles an Orchestrator. The config is assumed validated.
func New(st *store.PopulationStore, eval *evaluator.Evaluator, corpus *tasks.Corpus, cfg config.RunConfig) *Orchestrator {
	return &Orchestrator{store: st, eval: eval, corpus: corpus, cfg: cfg}
}

// Run executes the full loop: INIT, then RUN_GENERATION/EVOLVE per
// generation, then the held-out TEST_EVAL. A store failure during INIT
// aborts before anything runs; a single oracle failure never aborts a
// generation.
func (o *Orchestrator) Run(ctx context.Context) (EvolutionRun, error) {
	run := EvolutionRun{RunID: uuid.NewString()}
	ctx = logging.WithRunID(ctx, run.RunID)
	logger := logging.GetLogger()

	rng := rand.New(rand.NewSource(o.cfg.Seed))

	// INIT: verify connectivity, wipe prior state, seed generation 0.
	if err := o.store.Ping(ctx); err != nil {
		return EvolutionRun{}, err
	}
	if err := o.store.ClearAll(ctx); err != nil {
		return EvolutionRun{}, err
	}

	logger.Info(ctx, "starting evolution: population=%d generations=%d tasks/gen=%d seed=%d",
		o.cfg.PopulationSize, o.cfg.NumGenerations, o.cfg.TasksPerGeneration, o.cfg.Seed)

	population := make([]genome.AgentGenome, 0, o.cfg.PopulationSize)
	for i := 0; i < o.cfg.PopulationSize; i++ {
		g := genome.Random(rng, 0)
		if err := o.store.SaveGenome(ctx, g); err != nil {
			return EvolutionRun{}, err
		}
		population = append(population, g)
		run.AllGenomes = append(run.AllGenomes, g)
	}

	for gen := 0; gen < o.cfg.NumGenerations; gen++ {
		t0 := time.Now()

		// RUN_GENERATION: rotating batch keeps per-generation novelty
		// while staying reproducible for a given seed.
		batch := o.corpus.RotatingBatch(
			o.cfg.TasksPerGeneration, gen, o.cfg.Seed, o.cfg.TrainRatio, o.cfg.ValRatio)

		results := o.eval.RunGenerationTasks(ctx, population, batch, o.cfg.Concurrency)
		if err := errs.CheckContext(ctx, "generation run"); err != nil {
			return EvolutionRun{}, err
		}

		fitnessScores := make(map[string]float64, len(population))
		for _, g := range population {
			agentResults := results[g.ID]
			perTask := make([]float64, 0, len(agentResults))
			for _, r := range agentResults {
				perTask = append(perTask, r.Fitness)
			}
			fitness := evolution.AggregateFitness(perTask)
			fitnessScores[g.ID] = fitness

			if err := o.store.RecordFitness(ctx, g.ID, gen, fitness); err != nil {
				return EvolutionRun{}, err
			}
			for _, r := range agentResults {
				run.AllResults = append(run.AllResults, ResultRecord{Generation: gen, EvalResult: r})
			}
		}

		stats := computeGenerationStats(gen, population, results, fitnessScores, time.Since(t0).Seconds())
		run.GenerationStats = append(run.GenerationStats, stats)
		if err := o.store.SaveGenerationStats(ctx, gen, stats); err != nil {
			return EvolutionRun{}, err
		}
		logger.Info(ctx, "generation %d: avg=%.3f best=%.3f worst=%.3f calibration=%.1f%% accuracy=%.1f%% dominant=%s/%s",
			gen, stats.AvgFitness, stats.BestFitness, stats.WorstFitness,
			stats.AvgPredictionAccuracy*100, stats.AvgTaskAccuracy*100,
			stats.DominantReasoning, stats.DominantMemory)

		// EVOLVE: skipped after the final generation.
		if gen < o.cfg.NumGenerations-1 {
			population = evolution.ProduceNextGeneration(
				rng, population, fitnessScores,
				o.cfg.PopulationSize, o.cfg.SurvivalRate, o.cfg.EliteCount, o.cfg.MutationRate)
			for _, g := range population {
				if err := o.store.SaveGenome(ctx, g); err != nil {
					return EvolutionRun{}, err
				}
				if err := o.store.RecordLineage(ctx, g.ID, g.ParentIDs, g.Generation); err != nil {
					return EvolutionRun{}, err
				}
				run.AllGenomes = append(run.AllGenomes, g)
			}
		}

		if err := o.store.SetCurrentGeneration(ctx, gen); err != nil {
			return EvolutionRun{}, err
		}
	}

	// TEST_EVAL: the test split is never sampled during the loop, so
	// this is the unbiased generalization estimate.
	testResults, err := o.evaluateTestSet(ctx, population)
	if err != nil {
		return EvolutionRun{}, err
	}
	run.TestResults = &testResults

	logger.Info(ctx, "evolution complete: test accuracy=%.1f%% test calibration=%.1f%%",
		testResults.AvgTaskAccuracy*100, testResults.AvgPredictionAccuracy*100)
	return run, nil
}

func (o *Orchestrator) evaluateTestSet(ctx context.Context, population []genome.AgentGenome) (TestResults, error) {
	testTasks := o.corpus.Split(o.cfg.Seed, o.cfg.TrainRatio, o.cfg.ValRatio).Test

	results := o.eval.RunGenerationTasks(ctx, population, testTasks, o.cfg.Concurrency)
	if err := errs.CheckContext(ctx, "test evaluation"); err != nil {
		return TestResults{}, err
	}

	fitnessScores := make(map[string]float64, len(population))
	for _, g := range population {
		perTask := make([]float64, 0, len(results[g.ID]))
		for _, r := range results[g.ID] {
			perTask = append(perTask, r.Fitness)
		}
		fitnessScores[g.ID] = evolution.AggregateFitness(perTask)
	}

	return computeTestResults(population, results, fitnessScores, len(testTasks)), nil
}
