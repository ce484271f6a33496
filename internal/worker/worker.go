// Package worker runs independent context-gathering workers concurrently
// and merges their results into one deduplicated context.
package worker

import "context"

// SearchQuery is one query assigned to a worker.
type SearchQuery struct {
	Query       string   `json:"query"`
	Kind        string   `json:"kind"`
	TargetPaths []string `json:"target_paths,omitempty"`
}

// Assignment names a worker and the queries it owns.
type Assignment struct {
	WorkerID string        `json:"worker_id"`
	Queries  []SearchQuery `json:"queries"`
}

// Plan distributes a task across named workers. ExecutionOrder lists
// worker ids in launch order; ids without a matching assignment are
// skipped.
type Plan struct {
	Intent         string       `json:"intent"`
	Workers        []Assignment `json:"workers"`
	ExecutionOrder []string     `json:"execution_plan"`
}

// findAssignment returns the assignment for a worker id, or nil.
func (p *Plan) findAssignment(workerID string) *Assignment {
	for i := range p.Workers {
		if p.Workers[i].WorkerID == workerID {
			return &p.Workers[i]
		}
	}
	return nil
}

// Chunk is one piece of content a worker gathered.
type Chunk struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Content  string `json:"content"`
	FilePath string `json:"file_path"`
}

// Result is what one worker produced. Confidence is the worker's own
// 0.0-1.0 estimate of how relevant its chunks are.
type Result struct {
	WorkerID   string  `json:"worker_id"`
	Chunks     []Chunk `json:"chunks"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

// Runner executes one worker's assignment. Implementations are external;
// the pool only coordinates them.
type Runner interface {
	Execute(ctx context.Context, workerID, task string, queries []SearchQuery) (*Result, error)
}
