package memory

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/domain/entities"
)

// FixedFetcher delivers a predetermined list of items then returns, for use
// in tests that don't need a real filesystem watch.
type FixedFetcher struct {
	Items []entities.WorkItem

	paused atomic.Bool
	mu     sync.Mutex
	pauses int
}

func (f *FixedFetcher) Start(ctx context.Context, enqueue func(entities.WorkItem) bool) error {
	for _, item := range f.Items {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !enqueue(item) {
			f.Pause()
		}
	}
	return nil
}

func (f *FixedFetcher) Pause() {
	f.paused.Store(true)
	f.mu.Lock()
	f.pauses++
	f.mu.Unlock()
}

func (f *FixedFetcher) Resume() { f.paused.Store(false) }

func (f *FixedFetcher) Paused() bool { return f.paused.Load() }

func (f *FixedFetcher) PauseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pauses
}

// RecordingAcker records every MaybeAck call, for test assertions.
type RecordingAcker struct {
	mu    sync.Mutex
	calls []AckCall
}

type AckCall struct {
	FileID  string
	Success bool
}

func (a *RecordingAcker) MaybeAck(ctx context.Context, fileID string, success bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, AckCall{FileID: fileID, Success: success})
	return nil
}

func (a *RecordingAcker) Calls() []AckCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]AckCall, len(a.calls))
	copy(out, a.calls)
	return out
}

// NoopArchiver satisfies ports.Archiver without touching the filesystem.
type NoopArchiver struct{}

func (NoopArchiver) Archive(ctx context.Context, sourcePath, externalFileID string, ok bool) error {
	return nil
}

type SequentialIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func (g *SequentialIDGenerator) NewID(context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return "orch-id-" + strconv.Itoa(g.counter), nil
}
