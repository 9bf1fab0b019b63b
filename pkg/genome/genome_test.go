package genome

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomTraitsWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		g := Random(rng, 0)

		assert.Len(t, g.ID, 8)
		assert.Contains(t, SystemPromptFragments, g.SystemPrompt)
		assert.Contains(t, ReasoningStyles, g.ReasoningStyle)
		assert.Contains(t, MemoryWeightings, g.MemoryWeighting)
		assert.GreaterOrEqual(t, g.MemoryWindow, 1)
		assert.LessOrEqual(t, g.MemoryWindow, 10)
		assert.GreaterOrEqual(t, g.ConfidenceBias, -0.3)
		assert.LessOrEqual(t, g.ConfidenceBias, 0.3)
		assert.GreaterOrEqual(t, g.RiskTolerance, 0.1)
		assert.LessOrEqual(t, g.RiskTolerance, 0.9)
		assert.GreaterOrEqual(t, g.Temperature, 0.3)
		assert.LessOrEqual(t, g.Temperature, 1.2)
		assert.Equal(t, 0, g.Generation)
		assert.Empty(t, g.ParentIDs)
		assert.Empty(t, g.FitnessHistory)
	}
}

func TestRandomIsDeterministicPerSeed(t *testing.T) {
	a := Random(rand.New(rand.NewSource(11)), 0)
	b := Random(rand.New(rand.NewSource(11)), 0)

	// Identity tokens differ, trait draws do not.
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.SystemPrompt, b.SystemPrompt)
	assert.Equal(t, a.ReasoningStyle, b.ReasoningStyle)
	assert.Equal(t, a.MemoryWindow, b.MemoryWindow)
	assert.Equal(t, a.ConfidenceBias, b.ConfidenceBias)
	assert.Equal(t, a.Temperature, b.Temperature)
}

func TestCloneIsIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := Random(rng, 2)
	g.ParentIDs = []string{"aa", "bb"}
	g.FitnessHistory = []float64{0.4}

	c := g.Clone()
	c.ParentIDs[0] = "zz"
	c.FitnessHistory = append(c.FitnessHistory, 0.9)

	assert.Equal(t, "aa", g.ParentIDs[0])
	assert.Len(t, g.FitnessHistory, 1)
}

func TestBuildSystemMessage(t *testing.T) {
	g := AgentGenome{
		SystemPrompt:    "You reason by eliminating wrong answers first.",
		ReasoningStyle:  "elimination",
		MemoryWindow:    4,
		MemoryWeighting: "relevance",
	}

	msg := g.BuildSystemMessage()
	require.True(t, strings.HasPrefix(msg, g.SystemPrompt))
	assert.Contains(t, msg, "Reasoning approach: elimination.")
	assert.Contains(t, msg, "Consider the last 4 results when relevant.")
	assert.Contains(t, msg, "Prioritize information by: relevance.")
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.12, Round2(0.1234))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 1.0, Round2(0.999))
}
