// Package worker fans position analysis out to a fixed set of goroutines.
package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/tilechess-go/internal/analysis"
)

// WorkItem is one position waiting to be analysed.
type WorkItem struct {
	Name  string // input name, "file.txt:3", "stdin" or "fen"
	Text  string // tile map or FEN text
	Index int    // position in the input, used to restore order
}

// ProcessResult is the outcome for one WorkItem.
type ProcessResult struct {
	Name         string
	Index        int
	Report       *analysis.Report // nil when Error is set
	Matched      bool             // report passed the filter
	Duplicate    bool             // position was seen earlier in the batch
	DuplicateOf  string           // name of the earlier input when Duplicate
	ShouldOutput bool
	Error        error
}

// ProcessFunc analyses one item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a ProcessFunc over submitted items. Results arrive in
// completion order; use Run when input order matters.
type Pool struct {
	workers   int
	items     chan WorkItem
	results   chan ProcessResult
	process   ProcessFunc
	wg        sync.WaitGroup
	stopped   atomic.Bool
	processed atomic.Int64
}

// NewPool creates a pool. Values below 1 are raised to 1.
func NewPool(workers, bufferSize int, process ProcessFunc) *Pool {
	workers = max(workers, 1)
	bufferSize = max(bufferSize, 1)
	return &Pool{
		workers: workers,
		items:   make(chan WorkItem, bufferSize),
		results: make(chan ProcessResult, bufferSize),
		process: process,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for item := range p.items {
		// Items queued after Stop are drained without a result.
		if p.stopped.Load() {
			continue
		}
		p.results <- safeProcess(p.process, item)
		p.processed.Add(1)
	}
}

// safeProcess turns a panic in the ProcessFunc into an error result.
func safeProcess(process ProcessFunc, item WorkItem) (result ProcessResult) {
	defer func() {
		if r := recover(); r != nil {
			result = ProcessResult{
				Name:  item.Name,
				Index: item.Index,
				Error: fmt.Errorf("analysing %s: panic: %v", item.Name, r),
			}
		}
	}()
	return process(item)
}

// Submit queues an item, blocking while the buffer is full. It returns
// false once the pool is stopped.
func (p *Pool) Submit(item WorkItem) bool {
	if p.stopped.Load() {
		return false
	}
	p.items <- item
	return true
}

// Stop makes the workers skip everything still queued.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// Stopped reports whether Stop was called.
func (p *Pool) Stopped() bool {
	return p.stopped.Load()
}

// Close stops accepting items, waits for the workers and then closes the
// result channel. Call it once, from the submitting goroutine.
func (p *Pool) Close() {
	close(p.items)
	p.wg.Wait()
	close(p.results)
}

// Results is closed by Close after the last result.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Processed returns how many items produced a result so far.
func (p *Pool) Processed() int {
	return int(p.processed.Load())
}

// Run analyses items and returns the results sorted by Index. Small
// batches and a single worker run on the calling goroutine. Cancelling
// ctx stops the pool; items not yet started get no result.
func Run(ctx context.Context, items []WorkItem, workers int, process ProcessFunc) []ProcessResult {
	results := make([]ProcessResult, 0, len(items))
	if workers <= 1 || len(items) <= 2 {
		for _, item := range items {
			if ctx.Err() != nil {
				break
			}
			results = append(results, safeProcess(process, item))
		}
		return results
	}

	pool := NewPool(workers, min(len(items), 100), process)
	pool.Start()

	go func() {
		defer pool.Close()
		for _, item := range items {
			if ctx.Err() != nil {
				pool.Stop()
				return
			}
			pool.Submit(item)
		}
	}()

	stop := context.AfterFunc(ctx, pool.Stop)
	defer stop()

	for result := range pool.Results() {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}
