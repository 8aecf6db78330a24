package application_test

import (
	"context"
	"testing"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/adapters/memory"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/domain/entities"
)

func newErrorSink() (application.ErrorSink, *memory.Store) {
	store := memory.NewStore()
	idGen := &memory.SequentialIDGenerator{}
	clock := memory.SystemClock{}
	return application.ErrorSink{
		Repo:  store,
		IDGen: idGen,
		Clock: clock,
	}, store
}

func TestReportClaimErrorIsScopedToClaim(t *testing.T) {
	sink, store := newErrorSink()
	ctx := context.Background()

	if err := sink.ReportClaimError(ctx, "file-1", "C100", "MISSING_FIELD", "clinician missing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	errs := store.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected one error row, got %d", len(errs))
	}
	if errs[0].Scope != entities.ScopeClaim || errs[0].ObjectKey != "C100" {
		t.Fatalf("unexpected error row: %+v", errs[0])
	}
}

func TestReportFileErrorIsScopedToFile(t *testing.T) {
	sink, store := newErrorSink()
	ctx := context.Background()

	if err := sink.ReportFileError(ctx, "file-2", "UNKNOWN_ROOT", "root element not recognized"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	errs := store.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected one error row, got %d", len(errs))
	}
	if errs[0].Scope != entities.ScopeFile || errs[0].ObjectKey != "FILE:file-2" {
		t.Fatalf("unexpected error row: %+v", errs[0])
	}
}
