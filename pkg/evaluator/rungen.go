package evaluator

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/predictive-selection/evoagent/pkg/genome"
	"github.com/predictive-selection/evoagent/pkg/logging"
	"github.com/predictive-selection/evoagent/pkg/tasks"
)

// RunGenerationTasks evaluates the full genome×task cross-product under
// an admission gate bounding simultaneously in-flight oracle calls.
// Results keep task order per genome regardless of completion order, so
// aggregation is order-independent. An individual evaluation that
// could not finish (context cancellation) is omitted from the result
// map rather than aborting the batch.
func (e *Evaluator) RunGenerationTasks(
	ctx context.Context,
	genomes []genome.AgentGenome,
	batch []tasks.Task,
	concurrency int,
) map[string][]EvalResult {
	logger := logging.GetLogger()

	if concurrency < 1 {
		concurrency = 1
	}

	// Slot grid indexed by (genome, task) keeps result order stable.
	slots := make([][]*EvalResult, len(genomes))
	for i := range slots {
		slots[i] = make([]*EvalResult, len(batch))
	}

	p := pool.New().WithMaxGoroutines(concurrency)
	var mu sync.Mutex

	for gi := range genomes {
		for ti := range batch {
			gi, ti := gi, ti
			p.Go(func() {
				result, err := e.Evaluate(ctx, genomes[gi], batch[ti])
				if err != nil {
					logger.Warn(ctx, "evaluation omitted for genome %s task %s: %v",
						genomes[gi].ID, batch[ti].ID, err)
					return
				}
				mu.Lock()
				slots[gi][ti] = &result
				mu.Unlock()
			})
		}
	}

	p.Wait()

	results := make(map[string][]EvalResult, len(genomes))
	for gi, g := range genomes {
		rs := make([]EvalResult, 0, len(batch))
		for _, r := range slots[gi] {
			if r != nil {
				rs = append(rs, *r)
			}
		}
		results[g.ID] = rs
	}

	return results
}
