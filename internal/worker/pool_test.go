package worker

import (
	"context"
	"fmt"
	"testing"
)

// fakeRunner maps worker ids to canned outcomes.
type fakeRunner struct {
	results map[string]*Result
	errs    map[string]error
	panics  map[string]bool
}

func (r *fakeRunner) Execute(ctx context.Context, workerID, task string, queries []SearchQuery) (*Result, error) {
	if r.panics[workerID] {
		panic("worker exploded")
	}
	if err, ok := r.errs[workerID]; ok {
		return nil, err
	}
	if res, ok := r.results[workerID]; ok {
		return res, nil
	}
	return &Result{WorkerID: workerID}, nil
}

func threeWorkerPlan() *Plan {
	return &Plan{
		Intent: "gather context",
		Workers: []Assignment{
			{WorkerID: "w1", Queries: []SearchQuery{{Query: "auth", Kind: "component"}}},
			{WorkerID: "w2", Queries: []SearchQuery{{Query: "user", Kind: "type"}}},
			{WorkerID: "w3", Queries: []SearchQuery{{Query: "db", Kind: "schema"}}},
		},
		ExecutionOrder: []string{"w1", "w2", "w3"},
	}
}

func TestExecute_AllSucceed(t *testing.T) {
	runner := &fakeRunner{results: map[string]*Result{
		"w1": {WorkerID: "w1", Confidence: 0.9},
		"w2": {WorkerID: "w2", Confidence: 0.8},
		"w3": {WorkerID: "w3", Confidence: 0.7},
	}}
	pool := NewPool(runner)

	results := pool.Execute(context.Background(), threeWorkerPlan(), "task")
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	// Launch order preserved at the join regardless of completion order.
	for i, want := range []string{"w1", "w2", "w3"} {
		if results[i].WorkerID != want {
			t.Errorf("results[%d].WorkerID = %q, want %q", i, results[i].WorkerID, want)
		}
	}
}

func TestExecute_PanicIsolatedToOneWorker(t *testing.T) {
	runner := &fakeRunner{
		results: map[string]*Result{
			"w1": {WorkerID: "w1", Chunks: []Chunk{{ID: "a", Kind: "component"}}},
			"w3": {WorkerID: "w3", Chunks: []Chunk{{ID: "b", Kind: "type"}}},
		},
		panics: map[string]bool{"w2": true},
	}
	pool := NewPool(runner)

	results := pool.Execute(context.Background(), threeWorkerPlan(), "task")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 survivors", len(results))
	}
	if results[0].WorkerID != "w1" || results[1].WorkerID != "w3" {
		t.Errorf("survivors = %q, %q", results[0].WorkerID, results[1].WorkerID)
	}

	merged := Merge(results)
	if merged.Len() != 2 {
		t.Errorf("merged %d chunks, want 2", merged.Len())
	}
}

func TestExecute_ErrorIsolatedToOneWorker(t *testing.T) {
	runner := &fakeRunner{
		errs: map[string]error{"w2": fmt.Errorf("search backend down")},
	}
	pool := NewPool(runner)

	results := pool.Execute(context.Background(), threeWorkerPlan(), "task")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestExecute_AllFailYieldsEmptySet(t *testing.T) {
	runner := &fakeRunner{
		errs: map[string]error{
			"w1": fmt.Errorf("down"),
			"w2": fmt.Errorf("down"),
		},
		panics: map[string]bool{"w3": true},
	}
	pool := NewPool(runner)

	results := pool.Execute(context.Background(), threeWorkerPlan(), "task")
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestExecute_UnknownWorkerInOrderSkipped(t *testing.T) {
	plan := threeWorkerPlan()
	plan.ExecutionOrder = []string{"w1", "ghost", "w2"}
	pool := NewPool(&fakeRunner{})

	results := pool.Execute(context.Background(), plan, "task")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].WorkerID != "w1" || results[1].WorkerID != "w2" {
		t.Errorf("results = %q, %q", results[0].WorkerID, results[1].WorkerID)
	}
}

func TestExecute_EmptyPlan(t *testing.T) {
	pool := NewPool(&fakeRunner{})

	results := pool.Execute(context.Background(), &Plan{}, "task")
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}
