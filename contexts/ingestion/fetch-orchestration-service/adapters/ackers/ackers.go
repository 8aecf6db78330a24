package ackers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// NoopAcker is used when ack.enabled is false, or in tests.
type NoopAcker struct{}

func (NoopAcker) MaybeAck(ctx context.Context, fileID string, success bool) error { return nil }

// LogOnlyAcker stands in for the out-of-scope SOAP client: it records the
// ack decision that would have been sent, without any outbound call, for
// bootstraps run without a configured remote endpoint.
type LogOnlyAcker struct {
	Logger *slog.Logger
}

func (a LogOnlyAcker) MaybeAck(ctx context.Context, fileID string, success bool) error {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("ack recorded (no remote client configured)",
		"event", "ack_logged",
		"module", "ingestion/fetch-orchestration-service",
		"layer", "adapters",
		"file_id", fileID,
		"success", success,
	)
	return nil
}

// RemoteAck is the signature of whatever outbound call actually reaches the
// upstream source (spec.md's "external collaborators" SOAP client, out of
// scope here). BoundedRetryAcker wraps it with the small bounded retry
// spec.md §5 calls for, per call "bounded per-call attempts."
type RemoteAck func(ctx context.Context, fileID string, success bool) error

// BoundedRetryAcker retries a flaky remote ack a few times before giving up;
// on persistent failure it returns the error, which the caller logs rather
// than propagates, per spec.md §4.2 step 10's "ack failures are logged, not
// retried in band."
type BoundedRetryAcker struct {
	Call   RemoteAck
	Logger *slog.Logger
}

func NewBoundedRetryAcker(call RemoteAck, logger *slog.Logger) BoundedRetryAcker {
	return BoundedRetryAcker{Call: call, Logger: logger}
}

func (a BoundedRetryAcker) MaybeAck(ctx context.Context, fileID string, success bool) error {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.MaxElapsedTime = 2 * time.Second

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		return a.Call(ctx, fileID, success)
	}, backoff.WithContext(bo, ctx))

	if err != nil {
		logger.Warn("ack call failed after retries",
			"event", "ack_failed",
			"module", "ingestion/fetch-orchestration-service",
			"layer", "adapters",
			"file_id", fileID,
			"attempts", attempt,
			"error", err.Error(),
		)
	}
	return err
}
