package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gamedata-worker/core/logger"
	"gamedata-worker/core/metrics"
	"gamedata-worker/core/queue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler executes one job type. Run receives the decoded id payload and
// returns a human-readable result summary, or an error that is recorded on
// the job for operator visibility and external retry policies.
type Handler interface {
	Type() queue.JobType
	Run(ctx context.Context, ids []int) (string, error)
}

type handlerFunc struct {
	jobType queue.JobType
	fn      func(ctx context.Context, ids []int) (string, error)
}

func (h handlerFunc) Type() queue.JobType { return h.jobType }

func (h handlerFunc) Run(ctx context.Context, ids []int) (string, error) {
	return h.fn(ctx, ids)
}

// HandlerFunc adapts a function to the Handler interface.
func HandlerFunc(jobType queue.JobType, fn func(ctx context.Context, ids []int) (string, error)) Handler {
	return handlerFunc{jobType: jobType, fn: fn}
}

// Worker polls the job queue and dispatches claimed jobs to registered
// handlers. Multiple workers (or pollers within one worker) may run
// concurrently; the queue's conditional claim guarantees each job runs once.
type Worker struct {
	db       *gorm.DB
	cfg      Config
	handlers map[queue.JobType]Handler
	logger   *zap.Logger
}

// New creates a worker with no registered handlers.
func New(db *gorm.DB, cfg Config, log *zap.Logger) *Worker {
	return &Worker{
		db:       db,
		cfg:      cfg,
		handlers: make(map[queue.JobType]Handler),
		logger:   log,
	}
}

// Register adds handlers to the worker. Registering a second handler for the
// same job type replaces the first.
func (w *Worker) Register(handlers ...Handler) {
	for _, h := range handlers {
		w.handlers[h.Type()] = h
	}
}

// Run starts the configured number of pollers and blocks until the context
// is canceled. Jobs already running are finished before Run returns.
func (w *Worker) Run(ctx context.Context) {
	concurrency := w.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	pollInterval := time.Duration(w.cfg.PollIntervalSeconds) * time.Second
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}

	w.logger.Info("Worker started",
		zap.Int("concurrency", concurrency),
		zap.Duration("poll_interval", pollInterval),
	)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			w.poll(ctx, pollInterval)
		}()
	}
	wg.Wait()

	w.logger.Info("Worker stopped")
}

func (w *Worker) poll(ctx context.Context, interval time.Duration) {
	for {
		if ctx.Err() != nil {
			return
		}

		err := w.ProcessOne(ctx)
		if err == nil {
			// Drain the queue without sleeping while work is available.
			continue
		}

		if !errors.Is(err, queue.ErrNoJob) {
			w.logger.Error("Job processing error", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// ProcessOne claims and executes a single job. It returns queue.ErrNoJob when
// the queue is empty. Handler errors are recorded on the job, not returned:
// from the loop's perspective the job was processed.
func (w *Worker) ProcessOne(ctx context.Context) error {
	job, err := queue.ClaimNext(ctx, w.db)
	if err != nil {
		return err
	}

	log := logger.WithJob(w.logger, job.ID, string(job.Type))
	start := time.Now()

	result, runErr := w.execute(ctx, log, job)

	metrics.ObserveJobDuration(string(job.Type), time.Since(start))

	if runErr != nil {
		metrics.JobProcessed(string(job.Type), "failed")
		log.Error("Job failed", zap.Error(runErr), zap.Duration("duration", time.Since(start)))
		if err := queue.Fail(ctx, w.db, job.ID, runErr); err != nil {
			return fmt.Errorf("failed to record job failure: %w", err)
		}
		return nil
	}

	metrics.JobProcessed(string(job.Type), "done")
	log.Info("Job done", zap.String("result", result), zap.Duration("duration", time.Since(start)))
	if err := queue.Complete(ctx, w.db, job.ID, result); err != nil {
		return fmt.Errorf("failed to record job completion: %w", err)
	}

	return nil
}

func (w *Worker) execute(ctx context.Context, log *zap.Logger, job *queue.Job) (string, error) {
	handler, ok := w.handlers[job.Type]
	if !ok {
		return "", fmt.Errorf("no handler registered for job type %q", job.Type)
	}

	// Validate the payload before dispatch; a malformed payload fails the
	// job instead of reaching the handler.
	ids, err := job.IDs()
	if err != nil {
		return "", err
	}

	log.Info("Job started", zap.Int("ids", len(ids)))

	return handler.Run(ctx, ids)
}
