package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-device-trust/internal/logger"
)

// Workers runs a set of workers concurrently.
type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

func NewWorkers(log *logger.Logger, workers ...Worker) *Workers {
	return &Workers{workers: workers, logger: log}
}

// Add registers w. It must be called before Run.
func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

// Run starts every worker and blocks until all of them returned. The first
// failure cancels the others; all failures are joined in the result. A panic
// in a worker is recovered and reported as an error.
func (w *Workers) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for i, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := runRecovered(ctx, worker); err != nil {
				w.log().Err(err).Str("func", "Workers.Run").Int("worker", i).Msg("worker stopped")
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				cancel()
			}
		}()
	}

	wg.Wait()
	return errors.Join(errs...)
}

func (w *Workers) log() *logger.Logger {
	if w.logger == nil {
		return logger.Nop()
	}
	return w.logger
}

func runRecovered(ctx context.Context, worker Worker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker panic: %v", r)
		}
	}()
	return worker.Run(ctx)
}

// Go runs fn in its own goroutine, detached from the caller. Errors and
// panics are logged under name and never propagate. The returned channel is
// closed when fn has finished.
func Go(ctx context.Context, log *logger.Logger, name string, fn func(ctx context.Context) error) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := runRecovered(ctx, WorkerFunc(fn)); err != nil {
			log.Warn().Err(err).Str("func", "workers.Go").Str("task", name).Msg("background task failed")
		}
	}()
	return done
}
