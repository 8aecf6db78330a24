package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	auditentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/domain/entities"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/domain/entities"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/ports"
)

// drainBudget bounds how long a single tick spends pulling work off the
// queue before yielding back to the ticker, per spec.md §5's "sub-10ms"
// responsiveness requirement.
const drainBudget = 8 * time.Millisecond

// OrchestratorConfig carries the spec.md §6 tunables the orchestrator
// consults directly.
type OrchestratorConfig struct {
	QueueCapacity int
	WorkerCount   int
	PollInterval  time.Duration
}

// Orchestrator turns a continuous stream of fetched items into bounded,
// parallel pipeline runs, per spec.md §4.1. It owns the bounded work queue,
// the worker pool gate, and the in-flight dedup set; the Fetcher and
// Controller are supplied by the caller.
type Orchestrator struct {
	Config OrchestratorConfig

	Fetcher    ports.Fetcher
	Controller Controller
	Audit      ports.AuditSink

	Logger *slog.Logger

	queue      chan entities.WorkItem
	sem        *semaphore.Weighted
	processing sync.Map // externalFileID -> struct{}

	mu       sync.Mutex
	counters entities.RunCounters
}

func NewOrchestrator(cfg OrchestratorConfig, fetcher ports.Fetcher, controller Controller, audit ports.AuditSink, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		Config:     cfg,
		Fetcher:    fetcher,
		Controller: controller,
		Audit:      audit,
		Logger:     logger,
		queue:      make(chan entities.WorkItem, cfg.QueueCapacity),
		sem:        semaphore.NewWeighted(int64(cfg.WorkerCount)),
	}
}

// Run starts the fetcher and the drain loop; it blocks until ctx is
// cancelled, then waits for in-flight work to finish before ending the run.
// A fetcher that returns nil leaves the drain loop running; a fetcher that
// returns an error ends the run early the same way.
func (o *Orchestrator) Run(ctx context.Context) error {
	logger := ResolveLogger(o.Logger)

	runID, err := o.Audit.StartRun(ctx)
	if err != nil {
		return err
	}

	fetcherErrCh := make(chan error, 1)
	go func() {
		fetcherErrCh <- o.Fetcher.Start(ctx, o.enqueue)
	}()

	ticker := time.NewTicker(o.Config.PollInterval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			o.endRun(ctx, runID)
			return ctx.Err()
		case fetchErr := <-fetcherErrCh:
			if fetchErr == nil {
				fetcherErrCh = nil
				continue
			}
			logger.Error("fetcher exited with error", "event", "orchestrator_fetcher_failed", "module", module, "layer", layer, "run_id", runID, "error", fetchErr.Error())
			wg.Wait()
			o.endRun(ctx, runID)
			return fetchErr
		case <-ticker.C:
			o.drain(ctx, runID, &wg)
		}
	}
}

func (o *Orchestrator) endRun(ctx context.Context, runID string) {
	o.mu.Lock()
	counters := o.counters
	o.mu.Unlock()
	if err := o.Audit.EndRun(ctx, runID, auditentities.IngestionRun{
		Discovered:  counters.Discovered,
		Pulled:      counters.Pulled,
		OK:          counters.OK,
		Failed:      counters.Failed,
		AlreadySeen: counters.AlreadySeen,
		AcksSent:    counters.AcksSent,
	}); err != nil {
		ResolveLogger(o.Logger).Error("ending run failed", "event", "orchestrator_end_run_failed", "module", module, "layer", layer, "run_id", runID, "error", err.Error())
	}
}

// enqueue is the callback handed to the Fetcher. It never blocks: a full
// queue pauses the fetcher and rejects the item, per spec.md §4.1.
func (o *Orchestrator) enqueue(item entities.WorkItem) bool {
	o.mu.Lock()
	o.counters.Discovered++
	o.mu.Unlock()

	select {
	case o.queue <- item:
		return true
	default:
		o.Fetcher.Pause()
		return false
	}
}

// drain pulls work off the queue for up to drainBudget, handing each item
// to a worker goroutine gated by the semaphore. If the pool is saturated
// the item is put back on the queue and the fetcher is paused.
func (o *Orchestrator) drain(ctx context.Context, runID string, wg *sync.WaitGroup) {
	deadline := time.Now().Add(drainBudget)

	for time.Now().Before(deadline) {
		var item entities.WorkItem
		select {
		case item = <-o.queue:
		default:
			return
		}

		if _, inFlight := o.processing.LoadOrStore(item.ExternalFileID, struct{}{}); inFlight {
			continue
		}

		if !o.sem.TryAcquire(1) {
			o.processing.Delete(item.ExternalFileID)
			o.requeue(item)
			o.Fetcher.Pause()
			return
		}

		wg.Add(1)
		go o.runWorker(ctx, runID, item, wg)
	}
}

func (o *Orchestrator) runWorker(ctx context.Context, runID string, item entities.WorkItem, wg *sync.WaitGroup) {
	defer wg.Done()
	defer o.sem.Release(1)
	defer o.processing.Delete(item.ExternalFileID)

	outcome := o.Controller.ProcessFile(ctx, runID, item)

	o.mu.Lock()
	o.counters.Pulled++
	switch outcome.Status {
	case auditentities.FileAuditOK:
		o.counters.OK++
	case auditentities.FileAuditFail:
		o.counters.Failed++
	case auditentities.FileAuditAlready:
		o.counters.AlreadySeen++
	}
	if outcome.Acked {
		o.counters.AcksSent++
	}
	o.mu.Unlock()

	if o.remainingCapacity() >= 2*o.Config.WorkerCount {
		o.Fetcher.Resume()
	}
}

// requeue puts an item back without re-counting it as newly discovered;
// if the queue is still full the item is dropped, since the fetcher will
// re-discover it on its next poll.
func (o *Orchestrator) requeue(item entities.WorkItem) {
	select {
	case o.queue <- item:
	default:
		ResolveLogger(o.Logger).Warn("dropping requeue of saturated item; will be re-discovered on next poll",
			"event", "orchestrator_requeue_dropped",
			"module", module,
			"layer", layer,
			"external_file_id", item.ExternalFileID,
		)
	}
}

func (o *Orchestrator) remainingCapacity() int {
	return cap(o.queue) - len(o.queue)
}
