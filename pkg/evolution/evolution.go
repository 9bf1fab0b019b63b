// Package evolution implements the pure genetic operators: truncation
// selection with elitism, uniform discrete crossover, and per-trait
// mutation. Every function takes its randomness source explicitly so
// runs are reproducible from a single seed.
package evolution

import (
	"math/rand"
	"sort"

	"github.com/predictive-selection/evoagent/pkg/genome"
)

// AggregateFitness reduces per-task fitness scores to a single
// generation fitness by arithmetic mean.
func AggregateFitness(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// SelectSurvivors ranks the population descending by fitness (missing
// scores count as 0) and returns the elites plus the breeding pool.
// Selection is strict truncation: the pool is the top
// max(eliteCount, survivalRate*N) genomes, no probabilistic weighting.
func SelectSurvivors(
	population []genome.AgentGenome,
	fitness map[string]float64,
	survivalRate float64,
	eliteCount int,
) (elites, pool []genome.AgentGenome) {
	ranked := append([]genome.AgentGenome{}, population...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return fitness[ranked[i].ID] > fitness[ranked[j].ID]
	})

	nSurvive := int(float64(len(population)) * survivalRate)
	if nSurvive < eliteCount {
		nSurvive = eliteCount
	}
	if eliteCount > len(ranked) {
		eliteCount = len(ranked)
	}
	if nSurvive > len(ranked) {
		nSurvive = len(ranked)
	}

	return ranked[:eliteCount], ranked[:nSurvive]
}

// Crossover combines two parents into a child via uniform discrete
// recombination: each of the 7 evolvable traits is inherited from one
// parent by an unbiased coin flip.
func Crossover(rng *rand.Rand, a, b genome.AgentGenome, generation int) genome.AgentGenome {
	pick := func() bool { return rng.Intn(2) == 0 }

	child := genome.AgentGenome{
		ID:             genome.NewID(),
		Generation:     generation,
		ParentIDs:      []string{a.ID, b.ID},
		FitnessHistory: []float64{},
	}

	if pick() {
		child.SystemPrompt = a.SystemPrompt
	} else {
		child.SystemPrompt = b.SystemPrompt
	}
	if pick() {
		child.ReasoningStyle = a.ReasoningStyle
	} else {
		child.ReasoningStyle = b.ReasoningStyle
	}
	if pick() {
		child.MemoryWindow = a.MemoryWindow
	} else {
		child.MemoryWindow = b.MemoryWindow
	}
	if pick() {
		child.MemoryWeighting = a.MemoryWeighting
	} else {
		child.MemoryWeighting = b.MemoryWeighting
	}
	if pick() {
		child.ConfidenceBias = a.ConfidenceBias
	} else {
		child.ConfidenceBias = b.ConfidenceBias
	}
	if pick() {
		child.RiskTolerance = a.RiskTolerance
	} else {
		child.RiskTolerance = b.RiskTolerance
	}
	if pick() {
		child.Temperature = a.Temperature
	} else {
		child.Temperature = b.Temperature
	}

	return child
}

// Mutate returns an independent copy in which each of the 7 traits
// mutates independently with probability rate. Categorical traits
// redraw from their option set; numeric traits take a bounded random
// step and re-clamp to their legal range.
func Mutate(rng *rand.Rand, g genome.AgentGenome, rate float64) genome.AgentGenome {
	out := g.Clone()

	if rng.Float64() < rate {
		out.SystemPrompt = genome.SystemPromptFragments[rng.Intn(len(genome.SystemPromptFragments))]
	}
	if rng.Float64() < rate {
		out.ReasoningStyle = genome.ReasoningStyles[rng.Intn(len(genome.ReasoningStyles))]
	}
	if rng.Float64() < rate {
		out.MemoryWindow = clampInt(out.MemoryWindow+rng.Intn(5)-2, 1, 10)
	}
	if rng.Float64() < rate {
		out.MemoryWeighting = genome.MemoryWeightings[rng.Intn(len(genome.MemoryWeightings))]
	}
	if rng.Float64() < rate {
		out.ConfidenceBias = genome.Round2(clamp(out.ConfidenceBias+step(rng, 0.05), -0.15, 0.15))
	}
	if rng.Float64() < rate {
		out.RiskTolerance = genome.Round2(clamp(out.RiskTolerance+step(rng, 0.15), 0.0, 1.0))
	}
	if rng.Float64() < rate {
		out.Temperature = genome.Round2(clamp(out.Temperature+step(rng, 0.2), 0.1, 1.5))
	}

	return out
}

// ProduceNextGeneration runs one full evolution step: selection, elite
// carry-over, then crossover+mutation until targetSize is reached.
// Elites keep their traits but receive a new identity with a single
// parent edge back to their former self; each lineage node represents
// one generation's occurrence of a trait-set, not a persistent
// individual.
func ProduceNextGeneration(
	rng *rand.Rand,
	population []genome.AgentGenome,
	fitness map[string]float64,
	targetSize int,
	survivalRate float64,
	eliteCount int,
	mutationRate float64,
) []genome.AgentGenome {
	nextGen := 0
	for _, g := range population {
		if g.Generation >= nextGen {
			nextGen = g.Generation + 1
		}
	}

	elites, pool := SelectSurvivors(population, fitness, survivalRate, eliteCount)

	next := make([]genome.AgentGenome, 0, targetSize)
	for _, elite := range elites {
		survivor := elite.Clone()
		survivor.ID = genome.NewID()
		survivor.Generation = nextGen
		survivor.ParentIDs = []string{elite.ID}
		next = append(next, survivor)
	}

	for len(next) < targetSize {
		a := pool[rng.Intn(len(pool))]
		b := pool[rng.Intn(len(pool))]
		// Avoid self-crossover when the pool allows it.
		for len(pool) > 1 && b.ID == a.ID {
			b = pool[rng.Intn(len(pool))]
		}

		child := Crossover(rng, a, b, nextGen)
		child = Mutate(rng, child, mutationRate)
		next = append(next, child)
	}

	return next
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// step draws bounded uniform noise from [-width, width].
func step(rng *rand.Rand, width float64) float64 {
	return (rng.Float64()*2 - 1) * width
}
