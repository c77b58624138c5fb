// Package worker runs queued jobs on a fixed pool of goroutines. Each job holds
// its book's lock for its whole run, so at most one job touches a book at a time.
package worker

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_worker.go -package=mocks booklingo/internal/worker Queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"booklingo/internal/apperr"
	"booklingo/internal/contextutil"
	"booklingo/internal/lock"
	"booklingo/internal/storage"
)

// Queue is the job queue the pool drains.
type Queue interface {
	ClaimNext(ctx context.Context) (*storage.Job, error)
	Complete(ctx context.Context, id string) error
	Fail(ctx context.Context, id, reason, kind string) error
	Cancel(ctx context.Context, id string) error
	Requeue(ctx context.Context, id string, delay time.Duration) error
	RequeueRunning(ctx context.Context) (int64, error)
}

// Handler runs one job. A returned error of kind cancelled marks the job
// cancelled; any other error fails it.
type Handler interface {
	Handle(ctx context.Context, job *storage.Job) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, job *storage.Job) error

// Handle calls f(ctx, job).
func (f HandlerFunc) Handle(ctx context.Context, job *storage.Job) error {
	return f(ctx, job)
}

// Options configures a Pool.
type Options struct {
	Concurrency  int
	PollInterval time.Duration
}

// Pool polls the queue and dispatches jobs to handlers by type.
type Pool struct {
	queue    Queue
	locker   lock.Locker
	logger   *slog.Logger
	opts     Options
	mu       sync.RWMutex
	handlers map[storage.JobType]Handler
}

// New creates a new worker pool.
func New(queue Queue, locker lock.Locker, opts Options, logger *slog.Logger) *Pool {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		queue:    queue,
		locker:   locker,
		logger:   logger.With("component", "worker"),
		opts:     opts,
		handlers: make(map[storage.JobType]Handler),
	}
}

// Register sets the handler for a job type.
func (p *Pool) Register(jobType storage.JobType, h Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[jobType] = h
}

func (p *Pool) handler(jobType storage.JobType) (Handler, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	h, ok := p.handlers[jobType]
	return h, ok
}

// Run recovers jobs abandoned by a previous process, then polls until ctx is
// cancelled. A job interrupted by shutdown goes back to the queue.
func (p *Pool) Run(ctx context.Context) error {
	n, err := p.queue.RequeueRunning(ctx)
	if err != nil {
		return fmt.Errorf("failed to recover running jobs: %w", err)
	}
	if n > 0 {
		p.logger.Info("requeued interrupted jobs", "count", n)
	}

	p.logger.Info("starting worker pool", "concurrency", p.opts.Concurrency, "poll_interval", p.opts.PollInterval)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.opts.Concurrency; i++ {
		workerID := i + 1
		g.Go(func() error {
			p.loop(gctx, workerID)
			return nil
		})
	}
	err = g.Wait()
	p.logger.Info("worker pool stopped")
	return err
}

func (p *Pool) loop(ctx context.Context, workerID int) {
	ticker := time.NewTicker(p.opts.PollInterval)
	defer ticker.Stop()

	for {
		// Drain without waiting a tick between jobs.
		for {
			ran, err := p.RunOnce(ctx)
			if err != nil {
				p.logger.Warn("failed to claim job", "worker_id", workerID, "error", err)
			}
			if !ran || ctx.Err() != nil {
				break
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce claims and runs at most one job. It reports whether a job was claimed.
func (p *Pool) RunOnce(ctx context.Context) (bool, error) {
	if ctx.Err() != nil {
		return false, nil
	}
	job, err := p.queue.ClaimNext(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return false, nil
		}
		return false, err
	}
	p.process(ctx, job)
	return true, nil
}

func (p *Pool) process(ctx context.Context, job *storage.Job) {
	logger := p.logger.With(
		"job_id", job.ID,
		"book_id", job.BookID,
		"job_type", string(job.Type),
		"attempt", job.Attempts,
	)
	jobCtx := contextutil.WithLogger(ctx, logger)
	// Queue bookkeeping must land even when ctx is cancelled.
	cleanup := context.WithoutCancel(ctx)

	h, ok := p.handler(job.Type)
	if !ok {
		logger.Warn("no handler registered for job type")
		p.settle(cleanup, logger, job, apperr.Errorf(apperr.KindInternal, "worker", "no handler registered for job type %q", job.Type))
		return
	}

	held, err := p.locker.TryAcquire(jobCtx, lock.BookKey(job.BookID))
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			logger.Debug("book is locked, requeueing job")
		} else {
			logger.Warn("failed to acquire book lock", "error", err)
		}
		if err := p.queue.Requeue(cleanup, job.ID, p.opts.PollInterval); err != nil {
			logger.Error("failed to requeue job", "error", err)
		}
		return
	}
	defer func() {
		if err := held.Release(cleanup); err != nil {
			logger.Warn("failed to release book lock", "error", err)
		}
	}()

	start := time.Now()
	logger.Info("job started")
	err = p.safeHandle(jobCtx, h, job)

	if err != nil && ctx.Err() != nil {
		logger.Info("job interrupted by shutdown, requeueing", "error", err)
		if err := p.queue.Requeue(cleanup, job.ID, 0); err != nil {
			logger.Error("failed to requeue job", "error", err)
		}
		return
	}
	p.settle(cleanup, logger, job, err)
	logger.Info("job finished", "duration", time.Since(start), "kind", string(apperr.KindOf(err)))
}

// settle records the job's outcome.
func (p *Pool) settle(ctx context.Context, logger *slog.Logger, job *storage.Job, err error) {
	var qerr error
	switch {
	case err == nil:
		qerr = p.queue.Complete(ctx, job.ID)
	case apperr.KindOf(err) == apperr.KindCancelled:
		qerr = p.queue.Cancel(ctx, job.ID)
	default:
		logger.Error("job failed", "error", err, "kind", string(apperr.KindOf(err)))
		qerr = p.queue.Fail(ctx, job.ID, err.Error(), string(apperr.KindOf(err)))
	}
	if qerr != nil {
		logger.Error("failed to record job outcome", "error", qerr)
	}
}

func (p *Pool) safeHandle(ctx context.Context, h Handler, job *storage.Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			contextutil.LoggerOr(ctx, p.logger).Error("job handler panic", "panic", r)
			err = apperr.Errorf(apperr.KindInternal, "worker", "handler panic: %v", r)
		}
	}()
	return h.Handle(ctx, job)
}
