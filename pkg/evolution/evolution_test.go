package evolution

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/predictive-selection/evoagent/pkg/genome"
)

func makePopulation(t *testing.T, n int) []genome.AgentGenome {
	t.Helper()
	rng := rand.New(rand.NewSource(99))
	pop := make([]genome.AgentGenome, n)
	for i := range pop {
		pop[i] = genome.Random(rng, 0)
	}
	return pop
}

func TestAggregateFitness(t *testing.T) {
	assert.Equal(t, 0.0, AggregateFitness(nil))
	assert.Equal(t, 0.5, AggregateFitness([]float64{0.25, 0.75}))
	assert.InDelta(t, 0.6, AggregateFitness([]float64{0.4, 0.6, 0.8}), 1e-9)
}

func TestSelectSurvivorsTruncation(t *testing.T) {
	pop := makePopulation(t, 10)
	fitness := map[string]float64{}
	for i, g := range pop {
		fitness[g.ID] = float64(i) / 10.0 // pop[9] is best
	}

	elites, pool := SelectSurvivors(pop, fitness, 0.3, 2)

	require.Len(t, elites, 2)
	require.Len(t, pool, 3)
	assert.Equal(t, pop[9].ID, elites[0].ID)
	assert.Equal(t, pop[8].ID, elites[1].ID)
	assert.Equal(t, pop[7].ID, pool[2].ID)
}

func TestSelectSurvivorsMissingScoresRankLast(t *testing.T) {
	pop := makePopulation(t, 4)
	fitness := map[string]float64{
		pop[2].ID: 0.9,
		pop[0].ID: 0.5,
		// pop[1] and pop[3] have no recorded score.
	}

	elites, _ := SelectSurvivors(pop, fitness, 0.5, 2)
	assert.Equal(t, pop[2].ID, elites[0].ID)
	assert.Equal(t, pop[0].ID, elites[1].ID)
}

func TestSelectSurvivorsPoolAtLeastEliteCount(t *testing.T) {
	pop := makePopulation(t, 5)
	fitness := map[string]float64{}

	// survivalRate*5 = 1 but eliteCount is 3.
	elites, pool := SelectSurvivors(pop, fitness, 0.2, 3)
	assert.Len(t, elites, 3)
	assert.Len(t, pool, 3)
}

func TestCrossoverInheritsEachTraitFromAParent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pop := makePopulation(t, 2)
	a, b := pop[0], pop[1]

	for i := 0; i < 20; i++ {
		child := Crossover(rng, a, b, 3)

		assert.Contains(t, []string{a.SystemPrompt, b.SystemPrompt}, child.SystemPrompt)
		assert.Contains(t, []string{a.ReasoningStyle, b.ReasoningStyle}, child.ReasoningStyle)
		assert.Contains(t, []int{a.MemoryWindow, b.MemoryWindow}, child.MemoryWindow)
		assert.Contains(t, []string{a.MemoryWeighting, b.MemoryWeighting}, child.MemoryWeighting)
		assert.Contains(t, []float64{a.ConfidenceBias, b.ConfidenceBias}, child.ConfidenceBias)
		assert.Contains(t, []float64{a.RiskTolerance, b.RiskTolerance}, child.RiskTolerance)
		assert.Contains(t, []float64{a.Temperature, b.Temperature}, child.Temperature)

		assert.Equal(t, []string{a.ID, b.ID}, child.ParentIDs)
		assert.Equal(t, 3, child.Generation)
		assert.Empty(t, child.FitnessHistory)
	}
}

func TestMutateDoesNotTouchOriginal(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g := makePopulation(t, 1)[0]
	orig := g.Clone()

	for i := 0; i < 50; i++ {
		_ = Mutate(rng, g, 1.0)
	}

	assert.Equal(t, orig.SystemPrompt, g.SystemPrompt)
	assert.Equal(t, orig.ReasoningStyle, g.ReasoningStyle)
	assert.Equal(t, orig.MemoryWindow, g.MemoryWindow)
	assert.Equal(t, orig.ConfidenceBias, g.ConfidenceBias)
	assert.Equal(t, orig.RiskTolerance, g.RiskTolerance)
	assert.Equal(t, orig.Temperature, g.Temperature)
}

func TestMutateRespectsBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	g := makePopulation(t, 1)[0]

	for i := 0; i < 200; i++ {
		g2 := Mutate(rng, g, 1.0)

		assert.GreaterOrEqual(t, g2.MemoryWindow, 1)
		assert.LessOrEqual(t, g2.MemoryWindow, 10)
		assert.GreaterOrEqual(t, g2.ConfidenceBias, -0.15)
		assert.LessOrEqual(t, g2.ConfidenceBias, 0.15)
		assert.GreaterOrEqual(t, g2.RiskTolerance, 0.0)
		assert.LessOrEqual(t, g2.RiskTolerance, 1.0)
		assert.GreaterOrEqual(t, g2.Temperature, 0.1)
		assert.LessOrEqual(t, g2.Temperature, 1.5)
		assert.Contains(t, genome.ReasoningStyles, g2.ReasoningStyle)
		assert.Contains(t, genome.MemoryWeightings, g2.MemoryWeighting)
	}
}

func TestMutateZeroRateIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	g := makePopulation(t, 1)[0]
	g2 := Mutate(rng, g, 0.0)

	assert.Equal(t, g.SystemPrompt, g2.SystemPrompt)
	assert.Equal(t, g.Temperature, g2.Temperature)
	assert.Equal(t, g.MemoryWindow, g2.MemoryWindow)
}

func TestProduceNextGenerationShape(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pop := makePopulation(t, 10)
	fitness := map[string]float64{}
	for i, g := range pop {
		fitness[g.ID] = float64(i)
	}

	next := ProduceNextGeneration(rng, pop, fitness, 10, 0.3, 2, 0.3)

	require.Len(t, next, 10)
	for i, g := range next {
		assert.Equal(t, 1, g.Generation)
		if i < 2 {
			assert.Len(t, g.ParentIDs, 1, "elite %d should have one parent", i)
		} else {
			assert.Len(t, g.ParentIDs, 2, "offspring %d should have two parents", i)
			assert.NotEqual(t, g.ParentIDs[0], g.ParentIDs[1], "self-crossover with pool > 1")
		}
	}

	// Elites keep the best traits but take new identities.
	best := pop[9]
	assert.NotEqual(t, best.ID, next[0].ID)
	assert.Equal(t, best.SystemPrompt, next[0].SystemPrompt)
	assert.Equal(t, best.Temperature, next[0].Temperature)
	assert.Equal(t, []string{best.ID}, next[0].ParentIDs)
}

func TestProduceNextGenerationAdvancesGenerationIndex(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pop := makePopulation(t, 4)
	for i := range pop {
		pop[i].Generation = 6
	}
	fitness := map[string]float64{}

	next := ProduceNextGeneration(rng, pop, fitness, 4, 0.5, 1, 0.3)
	for _, g := range next {
		assert.Equal(t, 7, g.Generation)
	}
}
