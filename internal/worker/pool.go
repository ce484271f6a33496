package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/vinayprograms/agentkit/logging"
)

// Pool fans a plan out across concurrent worker tasks.
type Pool struct {
	runner Runner
	logger *logging.Logger
}

// NewPool creates a pool that executes assignments through the runner.
func NewPool(runner Runner) *Pool {
	return &Pool{
		runner: runner,
		logger: logging.New().WithComponent("worker-pool"),
	}
}

// Execute launches one task per worker in plan order and joins them all.
// A worker's error or panic is converted into no result for that worker;
// siblings are unaffected. When every worker fails the returned slice is
// empty, never nil-with-error.
func (p *Pool) Execute(ctx context.Context, plan *Plan, task string) []Result {
	type launch struct {
		assignment *Assignment
		taskID     string
	}

	var launches []launch
	for _, workerID := range plan.ExecutionOrder {
		assignment := plan.findAssignment(workerID)
		if assignment == nil {
			p.logger.Warn("execution order names unknown worker", map[string]interface{}{
				"worker": workerID,
			})
			continue
		}
		launches = append(launches, launch{assignment: assignment, taskID: uuid.NewString()})
	}

	fctx, span := p.startFanOutSpan(ctx, len(launches))
	defer span.End()

	p.logger.Info("launching workers", map[string]interface{}{
		"workers": len(launches),
	})

	// Slots are indexed by launch position so the join is deterministic
	// regardless of completion order.
	slots := make([]*Result, len(launches))
	var wg sync.WaitGroup
	for i, l := range launches {
		wg.Add(1)
		go func(i int, l launch) {
			defer wg.Done()
			slots[i] = p.runWorker(fctx, l.assignment, l.taskID, task)
		}(i, l)
	}
	wg.Wait()

	results := make([]Result, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	p.logger.Info("worker execution complete", map[string]interface{}{
		"succeeded": len(results),
		"launched":  len(launches),
	})
	return results
}

// runWorker executes one assignment, absorbing errors and panics at the
// task boundary.
func (p *Pool) runWorker(ctx context.Context, assignment *Assignment, taskID, task string) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker panicked", map[string]interface{}{
				"worker": assignment.WorkerID,
				"panic":  r,
			})
			result = nil
		}
	}()

	wctx, span := p.startTaskSpan(ctx, assignment.WorkerID, taskID)
	defer span.End()

	res, err := p.runner.Execute(wctx, assignment.WorkerID, task, assignment.Queries)
	p.endTaskSpan(span, res, err)
	if err != nil {
		p.logger.Warn("worker failed", map[string]interface{}{
			"worker": assignment.WorkerID,
			"error":  err.Error(),
		})
		return nil
	}

	p.logger.Debug("worker completed", map[string]interface{}{
		"worker":     assignment.WorkerID,
		"chunks":     len(res.Chunks),
		"confidence": res.Confidence,
	})
	return res
}
