// Package genome defines the evolving configuration vector describing
// one agent variant's prompting and decoding behavior.
package genome

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// ReasoningStyles are the fixed categorical options for the
// reasoning_style trait.
var ReasoningStyles = []string{
	"chain-of-thought",
	"step-by-step",
	"analogical",
	"debate-self",
	"first-principles",
	"elimination",
}

// MemoryWeightings are the fixed categorical options for the
// memory_weighting trait.
var MemoryWeightings = []string{"recency", "relevance", "success-rate"}

// SystemPromptFragments is the fixed pool the system_prompt trait is
// drawn from.
var SystemPromptFragments = []string{
	"You are a careful, methodical thinker who checks each step.",
	"You are a bold, intuitive reasoner who trusts your first instinct.",
	"You think by analogy — relate new problems to ones you know.",
	"You argue with yourself, considering multiple viewpoints before deciding.",
	"You break every problem down to its fundamental principles.",
	"You reason by eliminating wrong answers first.",
	"You are a calibrated predictor who honestly assesses uncertainty.",
	"You are a pattern-matcher who looks for structural similarity.",
	"You think probabilistically, always estimating likelihoods.",
	"You are a devil's advocate who stress-tests your own reasoning.",
}

// AgentGenome is one agent variant. Trait values are immutable after
// creation; only FitnessHistory grows. New genomes come from Random
// (generation 0 seeding), elite copy-with-new-identity, or
// crossover+mutation in the evolution package.
type AgentGenome struct {
	ID              string    `json:"genome_id"`
	SystemPrompt    string    `json:"system_prompt"`
	ReasoningStyle  string    `json:"reasoning_style"`
	MemoryWindow    int       `json:"memory_window"`
	MemoryWeighting string    `json:"memory_weighting"`
	ConfidenceBias  float64   `json:"confidence_bias"` // -0.3 to +0.3, adjusts reported confidence
	RiskTolerance   float64   `json:"risk_tolerance"`  // 0.0 to 1.0
	Temperature     float64   `json:"temperature"`     // oracle sampling temperature
	Generation      int       `json:"generation"`
	ParentIDs       []string  `json:"parent_ids"`
	FitnessHistory  []float64 `json:"fitness_history"`
}

// NewID returns a short opaque genome identity token.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])[:8]
}

// Random creates a genome with uniformly drawn traits for the given
// generation. The caller owns the rng, keeping seeding explicit.
func Random(rng *rand.Rand, generation int) AgentGenome {
	return AgentGenome{
		ID:              NewID(),
		SystemPrompt:    SystemPromptFragments[rng.Intn(len(SystemPromptFragments))],
		ReasoningStyle:  ReasoningStyles[rng.Intn(len(ReasoningStyles))],
		MemoryWindow:    1 + rng.Intn(10),
		MemoryWeighting: MemoryWeightings[rng.Intn(len(MemoryWeightings))],
		ConfidenceBias:  Round2(uniform(rng, -0.3, 0.3)),
		RiskTolerance:   Round2(uniform(rng, 0.1, 0.9)),
		Temperature:     Round2(uniform(rng, 0.3, 1.2)),
		Generation:      generation,
		ParentIDs:       []string{},
		FitnessHistory:  []float64{},
	}
}

// Clone returns an independent deep copy.
func (g AgentGenome) Clone() AgentGenome {
	out := g
	out.ParentIDs = append([]string{}, g.ParentIDs...)
	out.FitnessHistory = append([]float64{}, g.FitnessHistory...)
	return out
}

// BuildSystemMessage renders the genome's trait-derived system message
// for the oracle.
func (g AgentGenome) BuildSystemMessage() string {
	return fmt.Sprintf(
		"%s\n\nReasoning approach: %s.\nConsider the last %d results when relevant.\nPrioritize information by: %s.\n",
		g.SystemPrompt, g.ReasoningStyle, g.MemoryWindow, g.MemoryWeighting,
	)
}

// Round2 rounds to two decimals, matching the precision traits are
// stored with.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
