// Package tasks holds the benchmark corpus and its deterministic
// partitioning: stratified train/val/test splits and the per-generation
// rotating batches the orchestrator samples from.
package tasks

import (
	"math/rand"
	"sync"

	errs "github.com/predictive-selection/evoagent/pkg/errors"
)

// TaskType classifies a benchmark problem.
type TaskType string

const (
	TaskTrivia     TaskType = "trivia"
	TaskEstimation TaskType = "estimation"
	TaskReasoning  TaskType = "reasoning"
)

// taskTypes fixes the iteration order for type-stratified operations.
var taskTypes = []TaskType{TaskTrivia, TaskEstimation, TaskReasoning}

// Task is one immutable benchmark problem with ground truth.
type Task struct {
	ID          string   `json:"task_id"`
	Type        TaskType `json:"task_type"`
	Prompt      string   `json:"prompt"`
	GroundTruth string   `json:"ground_truth"`
	Difficulty  float64  `json:"difficulty"` // 0.0-1.0 subjective difficulty
}

// Split is a disjoint partition of the corpus.
type Split struct {
	Train []Task
	Val   []Task
	Test  []Task
}

// Named split selectors for FixedBatch.
const (
	SplitTrain = "train"
	SplitVal   = "val"
	SplitTest  = "test"
	SplitAll   = "all"
)

type splitKey struct {
	seed       int64
	trainRatio float64
	valRatio   float64
}

type fixedKey struct {
	n     int
	seed  int64
	split string
}

// Corpus is an immutable task pool plus memoized split and batch
// caches. All methods are safe for concurrent use.
type Corpus struct {
	byType map[TaskType][]Task
	all    []Task

	mu     sync.Mutex
	splits map[splitKey]Split
	fixed  map[fixedKey][]Task
}

// NewCorpus builds a corpus from the given tasks, partitioned by type.
func NewCorpus(ts []Task) *Corpus {
	c := &Corpus{
		byType: make(map[TaskType][]Task),
		all:    append([]Task{}, ts...),
		splits: make(map[splitKey]Split),
		fixed:  make(map[fixedKey][]Task),
	}
	for _, t := range c.all {
		c.byType[t.Type] = append(c.byType[t.Type], t)
	}
	return c
}

// Len reports the corpus size.
func (c *Corpus) Len() int { return len(c.all) }

// All returns a copy of every task.
func (c *Corpus) All() []Task { return append([]Task{}, c.all...) }

// Split partitions the corpus into train/val/test, stratified by task
// type so every split preserves the corpus type mix. The result is a
// pure function of (seed, ratios) and is memoized.
func (c *Corpus) Split(seed int64, trainRatio, valRatio float64) Split {
	key := splitKey{seed: seed, trainRatio: trainRatio, valRatio: valRatio}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.splits[key]; ok {
		return s
	}

	rng := rand.New(rand.NewSource(seed))
	var s Split

	for _, tt := range taskTypes {
		pool := c.byType[tt]
		if len(pool) == 0 {
			continue
		}
		shuffled := append([]Task{}, pool...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		nTrain := int(float64(len(shuffled)) * trainRatio)
		nVal := int(float64(len(shuffled)) * valRatio)

		s.Train = append(s.Train, shuffled[:nTrain]...)
		s.Val = append(s.Val, shuffled[nTrain:nTrain+nVal]...)
		s.Test = append(s.Test, shuffled[nTrain+nVal:]...)
	}

	rng.Shuffle(len(s.Train), func(i, j int) { s.Train[i], s.Train[j] = s.Train[j], s.Train[i] })
	rng.Shuffle(len(s.Val), func(i, j int) { s.Val[i], s.Val[j] = s.Val[j], s.Val[i] })
	rng.Shuffle(len(s.Test), func(i, j int) { s.Test[i], s.Test[j] = s.Test[j], s.Test[i] })

	c.splits[key] = s
	return s
}

// RotatingBatch samples n tasks from the train split, seeded by
// (seed, generation) so each generation sees a different but fully
// reproducible sample. At least one task per available type is
// guaranteed; the remainder is filled uniformly, then the batch order
// is shuffled.
func (c *Corpus) RotatingBatch(n, generation int, seed int64, trainRatio, valRatio float64) []Task {
	train := c.Split(seed, trainRatio, valRatio).Train
	combined := seed*1000 + int64(generation)
	rng := rand.New(rand.NewSource(combined))

	var batch []Task
	for _, tt := range taskTypes {
		typed := tasksOfType(train, tt)
		if len(typed) == 0 {
			continue
		}
		k := n / 3
		if k < 1 {
			k = 1
		}
		batch = append(batch, sample(rng, typed, k)...)
	}

	if len(batch) < n {
		remaining := excluding(train, batch)
		batch = append(batch, sample(rng, remaining, n-len(batch))...)
	}

	rng.Shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
	if len(batch) > n {
		batch = batch[:n]
	}
	return batch
}

// FixedBatch samples a type-diverse batch from the named split, cached
// per (n, seed, split) for the corpus lifetime so validation paths see
// the same tasks every call. Returns ValidationFailed for an unknown
// split name.
func (c *Corpus) FixedBatch(n int, seed int64, split string, trainRatio, valRatio float64) ([]Task, error) {
	var pool []Task
	switch split {
	case SplitAll:
		pool = c.all
	case SplitTrain:
		pool = c.Split(seed, trainRatio, valRatio).Train
	case SplitVal:
		pool = c.Split(seed, trainRatio, valRatio).Val
	case SplitTest:
		pool = c.Split(seed, trainRatio, valRatio).Test
	default:
		return nil, errs.WithFields(
			errs.New(errs.ValidationFailed, "invalid split, must be train, val, test, or all"),
			errs.Fields{"split": split})
	}

	key := fixedKey{n: n, seed: seed, split: split}

	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.fixed[key]; ok {
		return append([]Task{}, b...), nil
	}

	rng := rand.New(rand.NewSource(seed))

	var batch []Task
	for _, tt := range taskTypes {
		typed := tasksOfType(pool, tt)
		if len(typed) > 0 {
			batch = append(batch, typed[rng.Intn(len(typed))])
		}
	}

	if len(batch) < n {
		remaining := excluding(pool, batch)
		batch = append(batch, sample(rng, remaining, n-len(batch))...)
	}

	rng.Shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
	if len(batch) > n {
		batch = batch[:n]
	}

	c.fixed[key] = batch
	return append([]Task{}, batch...), nil
}

func tasksOfType(ts []Task, tt TaskType) []Task {
	var out []Task
	for _, t := range ts {
		if t.Type == tt {
			out = append(out, t)
		}
	}
	return out
}

// excluding filters out tasks already picked, by ID.
func excluding(ts, picked []Task) []Task {
	seen := make(map[string]struct{}, len(picked))
	for _, t := range picked {
		seen[t.ID] = struct{}{}
	}
	var out []Task
	for _, t := range ts {
		if _, ok := seen[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// sample draws k tasks without replacement; if k exceeds the pool it
// returns the whole pool in shuffled order.
func sample(rng *rand.Rand, pool []Task, k int) []Task {
	if k > len(pool) {
		k = len(pool)
	}
	if k == 0 {
		return nil
	}
	perm := rng.Perm(len(pool))
	out := make([]Task, 0, k)
	for _, idx := range perm[:k] {
		out = append(out, pool[idx])
	}
	return out
}
