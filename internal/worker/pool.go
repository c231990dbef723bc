package worker

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/chessreview/internal/logger"
)

type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs jobs on a fixed set of workers. Jobs queue in a buffered
// channel; Submit blocks when the buffer is full.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	log     *logger.Logger
}

func NewPool(name string, workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	log := logger.Default().WithPrefix(name)
	log.Debug("creating worker pool with %d workers and queue size %d", workers, queueSize)
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     log,
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.WithField("worker_id", id)
			workerLog.Debug("worker started")

			for job := range p.jobs {
				// Once the run is cancelled, queued jobs are skipped so
				// Drain still returns promptly.
				if ctx.Err() != nil {
					workerLog.Debug("skipping job %s: %v", job.Name(), ctx.Err())
					continue
				}

				jobLog := workerLog.WithField("job", job.Name())
				jobLog.Debug("starting job")
				start := time.Now()

				jobCtx := logger.NewContext(ctx, jobLog)

				if err := job.Run(jobCtx); err != nil {
					jobLog.Error("job failed after %v: %v", time.Since(start), err)
				} else {
					jobLog.Info("job completed in %v", time.Since(start))
				}
			}
			workerLog.Debug("worker stopped")
		}(i + 1)
	}
}

// Submit queues a job, blocking while the queue is full. Submitting after
// Drain panics.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	p.log.Debug("submitting job: %s", job.Name())
	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain closes the queue and waits until the workers have finished every
// queued job.
func (p *Pool) Drain() {
	p.log.Info("draining worker pool")
	close(p.jobs)
	p.wg.Wait()
	p.log.Info("worker pool drained")
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
