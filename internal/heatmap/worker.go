package heatmap

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/photoatlas/heatmap-backend-go/internal/models"
	"github.com/photoatlas/heatmap-backend-go/internal/spatial"
)

// Job is one recompute command: a complete snapshot of the points plus the
// viewport and spread to compute for.
type Job struct {
	Points []models.Point
	Region spatial.Region
	Spread float64
}

// Result is a published grid/scale pair. Empty marks the no-data sentinel;
// Grid is nil in that case.
type Result struct {
	Grid  *DensityGrid
	Scale float64
	Empty bool
}

// Worker runs grid recomputation off the caller's thread. Submissions
// inside the debounce window coalesce into at most one in-flight build;
// starting a build cancels the previous one, and a cancelled build's
// result is never published. Results flow through a single-slot channel
// where a new result replaces an unconsumed older one.
type Worker struct {
	debounce time.Duration
	results  chan Result

	mu      sync.Mutex
	pending *Job
	timer   *time.Timer
	cancel  context.CancelFunc
	closed  bool
}

// NewWorker creates a worker with the given debounce window. A zero
// debounce fires each submission immediately (still coalescing anything
// queued in between).
func NewWorker(debounce time.Duration) *Worker {
	return &Worker{
		debounce: debounce,
		results:  make(chan Result, 1),
	}
}

// Results returns the latest-result channel. The channel holds at most one
// unconsumed result; older unconsumed results are replaced, never queued.
func (w *Worker) Results() <-chan Result {
	return w.results
}

// Submit schedules a recompute for job, replacing any not-yet-started
// submission.
func (w *Worker) Submit(job Job) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	w.pending = &job
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

// fire starts the build for the pending job, cancelling the in-flight one.
func (w *Worker) fire() {
	w.mu.Lock()
	job := w.pending
	w.pending = nil
	if job == nil || w.closed {
		w.mu.Unlock()
		return
	}
	if w.cancel != nil {
		w.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.mu.Unlock()

	go w.run(ctx, *job)
}

func (w *Worker) run(ctx context.Context, job Job) {
	start := time.Now()
	grid, err := BuildGrid(ctx, job.Points, job.Region, job.Spread)
	if err != nil {
		// Superseded computation; not an error condition.
		return
	}
	if ctx.Err() != nil {
		return
	}

	res := Result{Grid: grid, Scale: NormalizationScale(grid), Empty: grid == nil}
	log.Printf("[Worker] grid computed: points=%d empty=%v elapsed=%v",
		len(job.Points), res.Empty, time.Since(start))

	// Single-slot publish: drop the unconsumed older result, then retry.
	// Re-check cancellation each round so a superseded build never wins a
	// race against its replacement.
	for {
		if ctx.Err() != nil {
			return
		}
		select {
		case w.results <- res:
			return
		default:
			select {
			case <-w.results:
			default:
			}
		}
	}
}

// Close stops the debounce timer and cancels any in-flight build. The
// results channel is left open; pending publishes are cancelled.
func (w *Worker) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.pending = nil
	if w.timer != nil {
		w.timer.Stop()
	}
	if w.cancel != nil {
		w.cancel()
	}
}
