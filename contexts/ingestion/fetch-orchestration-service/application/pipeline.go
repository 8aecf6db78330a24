package application

import (
	"context"
	"log/slog"

	persistentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/domain/entities"
	auditentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/domain/entities"
	xmlentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/domain/entities"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/domain/entities"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/ports"
)

const (
	module = "ingestion/fetch-orchestration-service"
	layer  = "application"
)

// ackResultDisabled/ackResultSent/ackResultFailed are the values recorded
// on IngestionFileAudit.AckResult.
const (
	ackResultDisabled = "DISABLED"
	ackResultSent     = "SENT"
	ackResultFailed   = "FAILED"
)

// Config carries the subset of spec.md §6's runtime tunables the pipeline
// controller consults directly.
type Config struct {
	StageToDisk bool
	AckEnabled  bool
}

// FileOutcome summarizes one file's run through the pipeline, for the
// orchestrator to fold into its per-run counters.
type FileOutcome struct {
	Status   auditentities.FileAuditStatus
	Acked    bool
}

// Controller runs the single-threaded, per-file sequence of spec.md §4.2.
// A failure on one file never reaches the caller as an error: every path
// ends in a persisted file outcome, matching §7's "the pipeline never
// throws past the worker boundary."
type Controller struct {
	Config Config

	Files    ports.FileRepository
	Parser   ports.Parser
	Persist  ports.Persister
	Verify   ports.Verifier
	Errors   ports.ErrorSink
	Audit    ports.AuditSink
	Acker    ports.Acker
	Archiver ports.Archiver

	IDGen ports.IDGenerator
	Clock ports.Clock

	Logger *slog.Logger
}

func (c Controller) ProcessFile(ctx context.Context, runID string, item entities.WorkItem) FileOutcome {
	logger := ResolveLogger(c.Logger)

	ingestionFileID, err := c.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("id generation failed", "event", "pipeline_id_gen_failed", "module", module, "layer", layer, "error", err.Error())
		return c.fail(ctx, runID, "FILE:"+item.ExternalFileID, 0, 0, false)
	}

	stub := persistentities.NewStub(ingestionFileID, item.ExternalFileID, xmlentities.RootTypeSubmission, item.RawBytes, c.Clock.Now())
	actualID, alreadyExisted, err := c.Files.UpsertStub(ctx, stub)
	if err != nil {
		c.reportFileError(ctx, ingestionFileID, "STUB_INSERT_FAIL", err.Error())
		return c.fail(ctx, runID, ingestionFileID, 0, 0, false)
	}
	ingestionFileID = actualID

	if alreadyExisted {
		hasEvent, err := c.Files.HasClaimEvent(ctx, ingestionFileID)
		if err == nil && hasEvent {
			logger.Info("file already processed", "event", "pipeline_already_processed", "module", module, "layer", layer, "ingestion_file_id", ingestionFileID)
			c.recordOutcome(ctx, runID, ingestionFileID, auditentities.FileAuditAlready, 0, 0, true, ackResultDisabled)
			return FileOutcome{Status: auditentities.FileAuditAlready}
		}
	}

	outcome, err := c.Parser.Parse(item.RawBytes)
	if err != nil {
		c.reportFileError(ctx, ingestionFileID, "PARSE_INFRA_FAIL", err.Error())
		return c.fail(ctx, runID, ingestionFileID, 0, 0, false)
	}
	c.streamProblems(ctx, ingestionFileID, outcome.Problems)
	if outcome.HasFatal() {
		return c.fail(ctx, runID, ingestionFileID, 0, 0, false)
	}

	header, claimCount, ok := headerAndCount(outcome)
	if !ok {
		c.reportFileError(ctx, ingestionFileID, "UNKNOWN_ROOT", "parsed outcome carries neither a submission nor a remittance graph")
		return c.fail(ctx, runID, ingestionFileID, 0, 0, false)
	}
	if !validHeader(header, claimCount) {
		c.reportFileError(ctx, ingestionFileID, "HEADER_INVALID", "missing sender/receiver/transactionDate/dispositionFlag, empty claim list, or recordCount mismatch")
		return c.fail(ctx, runID, ingestionFileID, 0, 0, false)
	}

	updateErr := c.Files.UpdateHeader(ctx, ingestionFileID, persistentities.IngestionFile{
		RootType:        outcome.RootType,
		SenderID:        header.SenderID,
		ReceiverID:      header.ReceiverID,
		TransactionTime: header.TransactionDate,
		RecordCount:     header.RecordCount,
		DispositionFlag: header.DispositionFlag,
	})
	if updateErr != nil {
		c.reportFileError(ctx, ingestionFileID, "HEADER_UPDATE_FAIL", updateErr.Error())
		return c.fail(ctx, runID, ingestionFileID, 0, 0, false)
	}

	hasEvent, err := c.Files.HasClaimEvent(ctx, ingestionFileID)
	if err == nil && hasEvent {
		c.recordOutcome(ctx, runID, ingestionFileID, auditentities.FileAuditAlready, claimCount, 0, true, ackResultDisabled)
		return FileOutcome{Status: auditentities.FileAuditAlready}
	}

	persistedCount := 0
	claimsFailed := 0
	switch outcome.RootType {
	case xmlentities.RootTypeSubmission:
		result := c.Persist.PersistSubmission(ctx, ingestionFileID, ingestionFileID, *outcome.Submission)
		persistedCount = result.ClaimsPersisted
		claimsFailed = result.ClaimsFailed
	case xmlentities.RootTypeRemittance:
		result := c.Persist.PersistRemittance(ctx, ingestionFileID, ingestionFileID, *outcome.Remittance)
		persistedCount = result.ClaimsPersisted
		claimsFailed = result.ClaimsFailed
	}

	verified, verifyErr := c.Verify.Verify(ctx, ingestionFileID)
	if verifyErr != nil {
		c.reportFileError(ctx, ingestionFileID, "VERIFY_INFRA_FAIL", verifyErr.Error())
		verified = false
	}

	success := verified && claimsFailed == 0

	if c.Config.StageToDisk && c.Archiver != nil {
		if err := c.Archiver.Archive(ctx, item.SourcePath, item.ExternalFileID, success); err != nil {
			logger.Warn("archive failed", "event", "pipeline_archive_failed", "module", module, "layer", layer, "ingestion_file_id", ingestionFileID, "error", err.Error())
		}
	}

	ackResult := ackResultDisabled
	acked := false
	if c.Config.AckEnabled && c.Acker != nil {
		if err := c.Acker.MaybeAck(ctx, item.ExternalFileID, success); err != nil {
			logger.Warn("ack failed", "event", "pipeline_ack_failed", "module", module, "layer", layer, "ingestion_file_id", ingestionFileID, "error", err.Error())
			ackResult = ackResultFailed
		} else {
			ackResult = ackResultSent
			acked = success
		}
	}

	status := auditentities.FileAuditOK
	if !success {
		status = auditentities.FileAuditFail
	}
	c.recordOutcome(ctx, runID, ingestionFileID, status, claimCount, persistedCount, verified, ackResult)

	return FileOutcome{Status: status, Acked: acked}
}

func (c Controller) fail(ctx context.Context, runID, ingestionFileID string, parsedCount, persistedCount int, verified bool) FileOutcome {
	c.recordOutcome(ctx, runID, ingestionFileID, auditentities.FileAuditFail, parsedCount, persistedCount, verified, ackResultDisabled)
	return FileOutcome{Status: auditentities.FileAuditFail}
}

func (c Controller) recordOutcome(ctx context.Context, runID, ingestionFileID string, status auditentities.FileAuditStatus, parsedCount, persistedCount int, verified bool, ackResult string) {
	if err := c.Audit.RecordFileOutcome(ctx, runID, ingestionFileID, status, parsedCount, persistedCount, verified, ackResult); err != nil {
		ResolveLogger(c.Logger).Error("recording file outcome failed",
			"event", "pipeline_audit_write_failed",
			"module", module,
			"layer", layer,
			"ingestion_file_id", ingestionFileID,
			"error", err.Error(),
		)
	}
}

func (c Controller) reportFileError(ctx context.Context, ingestionFileID, code, message string) {
	if err := c.Errors.ReportFileError(ctx, ingestionFileID, code, message); err != nil {
		ResolveLogger(c.Logger).Error("reporting file error failed",
			"event", "pipeline_error_report_failed",
			"module", module,
			"layer", layer,
			"ingestion_file_id", ingestionFileID,
			"error", err.Error(),
		)
	}
}

// streamProblems fans parsed problems out to the error sink right after
// parsing completes. The parser itself stays a pure function with no sink
// dependency; this is the adaptation of spec.md §4.3's "problems are also
// streamed to the Error Sink immediately as they are produced" to a Go
// value-returning parser.
func (c Controller) streamProblems(ctx context.Context, ingestionFileID string, problems []xmlentities.Problem) {
	for _, p := range problems {
		if p.Stage == xmlentities.StageStructural || p.Stage == xmlentities.StageHeader || p.ObjectKey == "" {
			c.reportFileError(ctx, ingestionFileID, p.Code, p.Message)
			continue
		}
		if err := c.Errors.ReportClaimError(ctx, ingestionFileID, p.ObjectKey, p.Code, p.Message); err != nil {
			ResolveLogger(c.Logger).Error("reporting claim error failed",
				"event", "pipeline_error_report_failed",
				"module", module,
				"layer", layer,
				"ingestion_file_id", ingestionFileID,
				"error", err.Error(),
			)
		}
	}
}

func headerAndCount(outcome xmlentities.ParseOutcome) (xmlentities.Header, int, bool) {
	switch outcome.RootType {
	case xmlentities.RootTypeSubmission:
		if outcome.Submission == nil {
			return xmlentities.Header{}, 0, false
		}
		return outcome.Submission.Header, len(outcome.Submission.Claims), true
	case xmlentities.RootTypeRemittance:
		if outcome.Remittance == nil {
			return xmlentities.Header{}, 0, false
		}
		return outcome.Remittance.Header, len(outcome.Remittance.Claims), true
	default:
		return xmlentities.Header{}, 0, false
	}
}

func validHeader(header xmlentities.Header, claimCount int) bool {
	if header.SenderID == "" || header.ReceiverID == "" || header.DispositionFlag == "" {
		return false
	}
	if header.TransactionDate.IsZero() {
		return false
	}
	if claimCount == 0 {
		return false
	}
	return header.RecordCount == claimCount
}
