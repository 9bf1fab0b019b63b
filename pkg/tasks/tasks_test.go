package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/predictive-selection/evoagent/pkg/errors"
)

func taskIDs(ts []Task) []string {
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	return ids
}

func TestSplitIsDeterministicAndDisjoint(t *testing.T) {
	c := Builtin()

	a := c.Split(42, 0.6, 0.2)
	b := c.Split(42, 0.6, 0.2)

	assert.Equal(t, taskIDs(a.Train), taskIDs(b.Train))
	assert.Equal(t, taskIDs(a.Val), taskIDs(b.Val))
	assert.Equal(t, taskIDs(a.Test), taskIDs(b.Test))

	// Union reconstructs the corpus with no duplicates.
	seen := make(map[string]int)
	for _, ts := range [][]Task{a.Train, a.Val, a.Test} {
		for _, task := range ts {
			seen[task.ID]++
		}
	}
	assert.Len(t, seen, c.Len())
	for id, count := range seen {
		assert.Equal(t, 1, count, "task %s appears %d times", id, count)
	}
}

func TestSplitPreservesTypeMix(t *testing.T) {
	c := Builtin()
	s := c.Split(7, 0.6, 0.2)

	for _, tt := range []TaskType{TaskTrivia, TaskEstimation, TaskReasoning} {
		assert.NotEmpty(t, tasksOfType(s.Train, tt), "train split missing type %s", tt)
		assert.NotEmpty(t, tasksOfType(s.Test, tt), "test split missing type %s", tt)
	}
}

func TestSplitDiffersAcrossSeeds(t *testing.T) {
	c := Builtin()
	a := c.Split(1, 0.6, 0.2)
	b := c.Split(2, 0.6, 0.2)
	assert.NotEqual(t, taskIDs(a.Train), taskIDs(b.Train))
}

func TestRotatingBatchDeterministicPerGeneration(t *testing.T) {
	c := Builtin()

	a := c.RotatingBatch(8, 3, 42, 0.6, 0.2)
	b := c.RotatingBatch(8, 3, 42, 0.6, 0.2)
	require.Equal(t, taskIDs(a), taskIDs(b))
	assert.Len(t, a, 8)

	// Different generations draw different samples.
	g0 := c.RotatingBatch(8, 0, 42, 0.6, 0.2)
	g1 := c.RotatingBatch(8, 1, 42, 0.6, 0.2)
	assert.NotEqual(t, taskIDs(g0), taskIDs(g1))
}

func TestRotatingBatchGuaranteesTypeDiversity(t *testing.T) {
	c := Builtin()
	batch := c.RotatingBatch(3, 0, 42, 0.6, 0.2)

	types := make(map[TaskType]bool)
	for _, task := range batch {
		types[task.Type] = true
	}
	assert.Len(t, types, 3)
}

func TestRotatingBatchOnlySamplesTrainSplit(t *testing.T) {
	c := Builtin()
	train := c.Split(42, 0.6, 0.2).Train

	trainIDs := make(map[string]bool)
	for _, task := range train {
		trainIDs[task.ID] = true
	}

	for gen := 0; gen < 5; gen++ {
		for _, task := range c.RotatingBatch(10, gen, 42, 0.6, 0.2) {
			assert.True(t, trainIDs[task.ID], "task %s not in train split", task.ID)
		}
	}
}

func TestRotatingBatchCapsAtPoolSize(t *testing.T) {
	c := Builtin()
	train := c.Split(42, 0.6, 0.2).Train

	batch := c.RotatingBatch(1000, 0, 42, 0.6, 0.2)
	assert.Len(t, batch, len(train))
}

func TestFixedBatchCachedPerKey(t *testing.T) {
	c := Builtin()

	a, err := c.FixedBatch(8, 42, SplitTrain, 0.6, 0.2)
	require.NoError(t, err)
	b, err := c.FixedBatch(8, 42, SplitTrain, 0.6, 0.2)
	require.NoError(t, err)
	assert.Equal(t, taskIDs(a), taskIDs(b))
	assert.Len(t, a, 8)
}

func TestFixedBatchUnknownSplit(t *testing.T) {
	c := Builtin()
	_, err := c.FixedBatch(8, 42, "holdout", 0.6, 0.2)
	require.Error(t, err)
	assert.Equal(t, errs.ValidationFailed, errs.Code(err))
}

func TestEmptyTypePoolsAreSkipped(t *testing.T) {
	// A trivia-only corpus still produces batches.
	c := NewCorpus([]Task{
		{ID: "a", Type: TaskTrivia, Prompt: "p1", GroundTruth: "g1", Difficulty: 0.1},
		{ID: "b", Type: TaskTrivia, Prompt: "p2", GroundTruth: "g2", Difficulty: 0.2},
		{ID: "c", Type: TaskTrivia, Prompt: "p3", GroundTruth: "g3", Difficulty: 0.3},
		{ID: "d", Type: TaskTrivia, Prompt: "p4", GroundTruth: "g4", Difficulty: 0.4},
	})

	batch := c.RotatingBatch(2, 0, 1, 0.5, 0.25)
	assert.NotEmpty(t, batch)
	for _, task := range batch {
		assert.Equal(t, TaskTrivia, task.Type)
	}
}
