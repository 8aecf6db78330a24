package localfs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/adapters/localfs"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/domain/entities"
)

func TestFetcherDeliversPreExistingFilesOnStart(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "claim-1.xml"), []byte("<x/>"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	fetcher := localfs.NewFetcher(dir, nil)

	var mu sync.Mutex
	var delivered []entities.WorkItem
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	_ = fetcher.Start(ctx, func(item entities.WorkItem) bool {
		mu.Lock()
		delivered = append(delivered, item)
		mu.Unlock()
		return true
	})

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 1 {
		t.Fatalf("expected 1 delivered item, got %d", len(delivered))
	}
	if delivered[0].ExternalFileID != "claim-1" {
		t.Fatalf("expected external id derived from file name, got %q", delivered[0].ExternalFileID)
	}
}

func TestFetcherSkipsSubdirectoriesDuringInitialScan(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("creating nested dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "claim-1.xml"), []byte("<x/>"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	fetcher := localfs.NewFetcher(dir, nil)

	var mu sync.Mutex
	count := 0
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	_ = fetcher.Start(ctx, func(item entities.WorkItem) bool {
		mu.Lock()
		count++
		mu.Unlock()
		return true
	})

	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Fatalf("expected only the regular file to be delivered, got %d deliveries", count)
	}
}
