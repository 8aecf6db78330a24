package ports

import (
	"context"
	"time"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// RunRepository owns the IngestionRun lifecycle row.
type RunRepository interface {
	StartRun(ctx context.Context, run entities.IngestionRun) error
	EndRun(ctx context.Context, runID string, endedAt time.Time, counters entities.IngestionRun) error
	RunExists(ctx context.Context, runID string) (bool, error)
}

// FileAuditRepository records the per-(run, file) outcome.
type FileAuditRepository interface {
	RecordFileOutcome(ctx context.Context, audit entities.IngestionFileAudit) error
}

// ErrorRepository records structured problems, per spec.md §4.7.
type ErrorRepository interface {
	InsertError(ctx context.Context, e entities.IngestionError) error
}
