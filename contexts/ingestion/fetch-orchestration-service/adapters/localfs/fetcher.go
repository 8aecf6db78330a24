package localfs

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/domain/entities"
)

const originTag = "localfs"

// pauseCheckInterval bounds how long a paused Fetcher waits before
// re-checking whether it has been resumed.
const pauseCheckInterval = 20 * time.Millisecond

// Fetcher watches a directory for new files and delivers each one as a
// WorkItem, per spec.md §6's Fetcher contract. Files are read but not
// removed from ReadyDir; the Archiver moves them out once the pipeline
// finishes with them, which also prevents a redelivered fsnotify event for
// the same path.
type Fetcher struct {
	ReadyDir string
	Logger   *slog.Logger

	paused atomic.Bool
}

func NewFetcher(readyDir string, logger *slog.Logger) *Fetcher {
	return &Fetcher{ReadyDir: readyDir, Logger: logger}
}

func (f *Fetcher) Pause()  { f.paused.Store(true) }
func (f *Fetcher) Resume() { f.paused.Store(false) }

func (f *Fetcher) Start(ctx context.Context, enqueue func(entities.WorkItem) bool) error {
	logger := resolveLogger(f.Logger)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(f.ReadyDir); err != nil {
		return err
	}

	if err := f.scanExisting(ctx, enqueue); err != nil {
		logger.Warn("initial directory scan failed", "event", "localfs_scan_failed", "module", "ingestion/fetch-orchestration-service", "layer", "adapters", "error", err.Error())
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			f.waitWhilePaused(ctx)
			if err := f.deliver(event.Name, enqueue); err != nil {
				logger.Warn("delivering watched file failed", "event", "localfs_deliver_failed", "module", "ingestion/fetch-orchestration-service", "layer", "adapters", "path", event.Name, "error", err.Error())
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "event", "localfs_watch_error", "module", "ingestion/fetch-orchestration-service", "layer", "adapters", "error", watchErr.Error())
		}
	}
}

func (f *Fetcher) scanExisting(ctx context.Context, enqueue func(entities.WorkItem) bool) error {
	entries, err := os.ReadDir(f.ReadyDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		f.waitWhilePaused(ctx)
		if err := f.deliver(filepath.Join(f.ReadyDir, entry.Name()), enqueue); err != nil {
			resolveLogger(f.Logger).Warn("delivering pre-existing file failed", "event", "localfs_deliver_failed", "module", "ingestion/fetch-orchestration-service", "layer", "adapters", "path", entry.Name(), "error", err.Error())
		}
	}
	return nil
}

func (f *Fetcher) waitWhilePaused(ctx context.Context) {
	for f.paused.Load() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(pauseCheckInterval):
		}
	}
}

func (f *Fetcher) deliver(path string, enqueue func(entities.WorkItem) bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	item := entities.WorkItem{
		ExternalFileID: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		DisplayName:    filepath.Base(path),
		SourcePath:     path,
		RawBytes:       raw,
		OriginTag:      originTag,
	}
	if !enqueue(item) {
		f.Pause()
	}
	return nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
