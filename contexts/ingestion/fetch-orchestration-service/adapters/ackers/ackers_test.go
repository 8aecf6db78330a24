package ackers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/adapters/ackers"
)

func TestBoundedRetryAckerSucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	call := func(ctx context.Context, fileID string, success bool) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}

	acker := ackers.NewBoundedRetryAcker(call, nil)
	if err := acker.MaybeAck(context.Background(), "file-1", true); err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestBoundedRetryAckerGivesUpAndReturnsError(t *testing.T) {
	call := func(ctx context.Context, fileID string, success bool) error {
		return errors.New("permanent")
	}

	acker := ackers.NewBoundedRetryAcker(call, nil)
	if err := acker.MaybeAck(context.Background(), "file-2", false); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
}

func TestNoopAckerAlwaysSucceeds(t *testing.T) {
	if err := (ackers.NoopAcker{}).MaybeAck(context.Background(), "file-3", true); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
