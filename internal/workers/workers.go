// Package workers runs fire-and-forget background jobs that can be awaited
// on shutdown.
package workers

import (
	"log/slog"
	"sync"
)

// Global is the pool shared by the server for background jobs.
var Global = NewWorker()

type Worker struct {
	wg sync.WaitGroup
}

func NewWorker() *Worker {
	return &Worker{}
}

// Go runs fn in a new goroutine. A panic in fn is logged, not propagated.
func (w *Worker) Go(fn func()) {
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("background job panicked", "panic", r)
			}
		}()

		fn()
	}()
}

// Wait blocks until every started job has returned.
func (w *Worker) Wait() {
	w.wg.Wait()
}
