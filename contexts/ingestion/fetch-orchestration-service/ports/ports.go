package ports

import (
	"context"
	"time"

	persistapp "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/application"
	persistports "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/ports"
	auditentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/domain/entities"
	xmlentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/domain/entities"
	xmlports "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/ports"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Fetcher is the pluggable inbound document source, per spec.md §6. Start
// blocks until ctx is cancelled or the fetcher's own source is exhausted,
// invoking enqueue for each discovered item; enqueue returns false when the
// bounded queue is full, signalling the fetcher to pause itself.
type Fetcher interface {
	Start(ctx context.Context, enqueue func(entities.WorkItem) bool) error
	Pause()
	Resume()
}

// Acker is the outbound acknowledgment contract, per spec.md §6.
type Acker interface {
	MaybeAck(ctx context.Context, fileID string, success bool) error
}

// Parser is xml-parsing-service's port, reused as-is: the pipeline
// controller needs the full ParseOutcome shape, not a narrowed view of it.
type Parser = xmlports.Parser

// FileRepository is claims-persistence-service's stub/header surface,
// reused as-is for the same reason.
type FileRepository = persistports.FileRepository

// Persister is the narrow slice of claims-persistence-service's Engine the
// pipeline controller drives.
type Persister interface {
	PersistSubmission(ctx context.Context, ingestionFileID, submissionID string, graph xmlentities.SubmissionGraph) persistapp.PersistResult
	PersistRemittance(ctx context.Context, ingestionFileID, remittanceID string, graph xmlentities.RemittanceGraph) persistapp.PersistResult
}

// Verifier is the narrow slice of verification-service's Verifier the
// pipeline controller drives.
type Verifier interface {
	Verify(ctx context.Context, ingestionFileID string) (bool, error)
}

// ErrorSink is the narrow slice of ingestion-audit-service's ErrorSink the
// pipeline controller and persistence engine both report through.
type ErrorSink interface {
	ReportFileError(ctx context.Context, ingestionFileID, code, message string) error
	ReportClaimError(ctx context.Context, ingestionFileID, claimBusinessID, code, message string) error
}

// AuditSink is the narrow slice of ingestion-audit-service's AuditSink the
// orchestrator and pipeline controller drive.
type AuditSink interface {
	StartRun(ctx context.Context) (string, error)
	EndRun(ctx context.Context, runID string, counters auditentities.IngestionRun) error
	RecordFileOutcome(ctx context.Context, runID, ingestionFileID string, status auditentities.FileAuditStatus, parsedCount, persistedCount int, verified bool, ackResult string) error
}

// Archiver performs the best-effort atomic move of a staged source file to
// an ok/fail directory, per spec.md §4.2 step 9. A no-op implementation is
// used when stage-to-disk is disabled.
type Archiver interface {
	Archive(ctx context.Context, sourcePath, externalFileID string, ok bool) error
}
