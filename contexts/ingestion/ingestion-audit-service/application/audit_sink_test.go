package application_test

import (
	"context"
	"testing"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/adapters/memory"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/domain/entities"
)

func newAuditSink() (application.AuditSink, *memory.Store) {
	store := memory.NewStore()
	idGen := &memory.SequentialIDGenerator{}
	clock := memory.SystemClock{}
	return application.AuditSink{
		Runs:  store,
		Files: store,
		IDGen: idGen,
		Clock: clock,
	}, store
}

func TestStartRunThenRecordFileOutcomeSucceeds(t *testing.T) {
	sink, store := newAuditSink()
	ctx := context.Background()

	runID, err := sink.StartRun(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sink.RecordFileOutcome(ctx, runID, "file-1", entities.FileAuditOK, 5, 5, true, "acked"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	audits := store.Audits()
	if len(audits) != 1 {
		t.Fatalf("expected one audit row, got %d", len(audits))
	}
	if audits[0].Status != entities.FileAuditOK {
		t.Fatalf("expected OK status, got %v", audits[0].Status)
	}
}

func TestRecordFileOutcomeForUnknownRunFallsBackToNoop(t *testing.T) {
	sink, store := newAuditSink()
	ctx := context.Background()

	if err := sink.RecordFileOutcome(ctx, "never-started", "file-1", entities.FileAuditFail, 0, 0, false, ""); err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}

	if len(store.Audits()) != 0 {
		t.Fatalf("expected no audit rows to be written for a missing run")
	}
}

func TestEndRunRecordsCounters(t *testing.T) {
	sink, _ := newAuditSink()
	ctx := context.Background()

	runID, err := sink.StartRun(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = sink.EndRun(ctx, runID, entities.IngestionRun{Discovered: 3, Pulled: 3, OK: 2, Failed: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
