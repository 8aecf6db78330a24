package application

import (
	"context"
	"log/slog"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/domain/entities"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/ports"
)

// ErrorSink records structured problems raised anywhere in the pipeline, per
// spec.md §4.7. Its two narrow methods satisfy claims-persistence-service's
// ports.ErrorReporter and fetch-orchestration-service's equivalent contract
// by structural typing, without either package importing this one's types.
type ErrorSink struct {
	Repo   ports.ErrorRepository
	IDGen  ports.IDGenerator
	Clock  ports.Clock
	Logger *slog.Logger
}

func (s ErrorSink) ReportClaimError(ctx context.Context, ingestionFileID, claimBusinessID, code, message string) error {
	return s.report(ctx, ingestionFileID, entities.ScopeClaim, claimBusinessID, "RECORD", code, message)
}

func (s ErrorSink) ReportFileError(ctx context.Context, ingestionFileID, code, message string) error {
	return s.report(ctx, ingestionFileID, entities.ScopeFile, "FILE:"+ingestionFileID, "STRUCTURAL", code, message)
}

// ReportProblem is the generic entry point the parser's Problem stream and
// the verifier's failed rules both funnel through.
func (s ErrorSink) ReportProblem(ctx context.Context, ingestionFileID string, scope entities.ErrorScope, objectKey, stage, code, message string, retryable bool) error {
	return s.insert(ctx, entities.IngestionError{
		IngestionFileID: ingestionFileID,
		Scope:           scope,
		ObjectKey:       objectKey,
		Stage:           stage,
		Code:            code,
		Message:         message,
		Retryable:       retryable,
		CreatedAt:       s.Clock.Now().UTC(),
	})
}

func (s ErrorSink) report(ctx context.Context, ingestionFileID string, scope entities.ErrorScope, objectKey, stage, code, message string) error {
	return s.insert(ctx, entities.IngestionError{
		IngestionFileID: ingestionFileID,
		Scope:           scope,
		ObjectKey:       objectKey,
		Stage:           stage,
		Code:            code,
		Message:         message,
		CreatedAt:       s.Clock.Now().UTC(),
	})
}

func (s ErrorSink) insert(ctx context.Context, e entities.IngestionError) error {
	logger := ResolveLogger(s.Logger)
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	e.ErrorID = id
	if err := s.Repo.InsertError(ctx, e); err != nil {
		logger.Error("ingestion error write failed",
			"event", "ingestion_error_write_failed",
			"module", "ingestion/ingestion-audit-service",
			"layer", "application",
			"ingestion_file_id", e.IngestionFileID,
			"code", e.Code,
			"error", err.Error(),
		)
		return err
	}
	return nil
}
