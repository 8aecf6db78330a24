package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	xmlentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/domain/entities"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/adapters/memory"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/domain/entities"
)

func newEngine() (application.Engine, *memory.Store) {
	store := memory.NewStore()
	engine := application.Engine{
		Graph:     store,
		Resolver:  memory.NewStubResolver(),
		ErrorSink: &memory.RecordingErrorReporter{},
		IDGen:     &memory.SequentialIDGenerator{},
		Clock:     memory.SystemClock{},
	}
	return engine, store
}

func plainSubmission() xmlentities.SubmissionGraph {
	eventTime := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	return xmlentities.SubmissionGraph{
		Header: xmlentities.Header{
			SenderID:        "S1",
			ReceiverID:      "R1",
			TransactionDate: eventTime,
			RecordCount:     1,
			DispositionFlag: "OK",
		},
		Claims: []xmlentities.ClaimDTO{
			{
				ClaimID:          "C1",
				PayerID:          "P1",
				ProviderID:       "PR1",
				EmiratesIDNumber: "784-1111",
				Net:              decimal.NewFromFloat(100.00),
				Activities: []xmlentities.ActivityDTO{
					{
						ActivityID:  "A1",
						Start:       eventTime,
						Code:        "CODE1",
						ClinicianID: "CL1",
						Net:         decimal.NewFromFloat(100.00),
					},
				},
			},
		},
	}
}

// Scenario 1: plain submission.
func TestPersistSubmissionPlainClaim(t *testing.T) {
	engine, store := newEngine()
	result := engine.PersistSubmission(context.Background(), "file-1", "sub-1", plainSubmission())

	if result.ClaimsPersisted != 1 || result.ClaimsFailed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	timeline := store.StatusTimeline()
	if len(timeline) != 1 || timeline[0].Status != entities.StatusSubmitted {
		t.Fatalf("expected one SUBMITTED timeline row, got %+v", timeline)
	}
}

// Scenario 2: duplicate submission without a Resubmission element.
func TestPersistSubmissionDuplicateWithoutResubmissionIsRejected(t *testing.T) {
	engine, store := newEngine()
	ctx := context.Background()
	graph := plainSubmission()

	first := engine.PersistSubmission(ctx, "file-1", "sub-1", graph)
	if first.ClaimsPersisted != 1 {
		t.Fatalf("expected first run to persist the claim: %+v", first)
	}

	second := engine.PersistSubmission(ctx, "file-2", "sub-2", graph)
	if second.ClaimsPersisted != 0 || second.ClaimsFailed != 0 {
		t.Fatalf("expected duplicate run to persist nothing and not count as a failure: %+v", second)
	}

	reporter := engine.ErrorSink.(*memory.RecordingErrorReporter)
	if len(reporter.ClaimErrors) != 1 {
		t.Fatalf("expected exactly one reported claim error, got %v", reporter.ClaimErrors)
	}

	timeline := store.StatusTimeline()
	if len(timeline) != 1 {
		t.Fatalf("expected no additional timeline rows from the duplicate, got %+v", timeline)
	}
}

// Scenario 3: resubmission after an initial submission.
func TestPersistSubmissionWithResubmission(t *testing.T) {
	engine, store := newEngine()
	ctx := context.Background()

	engine.PersistSubmission(ctx, "file-1", "sub-1", plainSubmission())

	resubGraph := plainSubmission()
	resubGraph.Claims[0].Resubmission = &xmlentities.ResubmissionDTO{
		Type:    "correction",
		Comment: "fix",
	}
	result := engine.PersistSubmission(ctx, "file-2", "sub-2", resubGraph)
	if result.ClaimsPersisted != 1 {
		t.Fatalf("expected resubmission to persist: %+v", result)
	}

	timeline := store.StatusTimeline()
	if len(timeline) != 3 {
		t.Fatalf("expected SUBMITTED + SUBMITTED + RESUBMITTED timeline rows, got %+v", timeline)
	}
	if timeline[1].Status != entities.StatusSubmitted {
		t.Fatalf("expected second row to be SUBMITTED, got %v", timeline[1].Status)
	}
	if timeline[2].Status != entities.StatusResubmitted {
		t.Fatalf("expected third row to be RESUBMITTED, got %v", timeline[2].Status)
	}
}

func remittanceFor(paymentAmount decimal.Decimal, denialCode string) xmlentities.RemittanceGraph {
	eventTime := time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)
	return xmlentities.RemittanceGraph{
		Header: xmlentities.Header{
			SenderID:        "S1",
			ReceiverID:      "R1",
			TransactionDate: eventTime,
			RecordCount:     1,
			DispositionFlag: "OK",
		},
		Claims: []xmlentities.RemittanceClaimDTO{
			{
				ClaimID:          "C1",
				IDPayer:          "P1",
				ProviderID:       "PR1",
				PaymentReference: "PAY-1",
				Activities: []xmlentities.RemittanceActivityDTO{
					{
						ActivityID:    "A1",
						Code:          "CODE1",
						PaymentAmount: paymentAmount,
						DenialCode:    denialCode,
					},
				},
			},
		},
	}
}

// Scenario 4: full payment yields PAID.
func TestPersistRemittanceFullPaymentYieldsPaid(t *testing.T) {
	engine, store := newEngine()
	ctx := context.Background()
	engine.PersistSubmission(ctx, "file-1", "sub-1", plainSubmission())

	result := engine.PersistRemittance(ctx, "file-2", "rem-1", remittanceFor(decimal.NewFromFloat(100.00), ""))
	if result.ClaimsPersisted != 1 {
		t.Fatalf("expected remittance claim to persist: %+v", result)
	}

	timeline := store.StatusTimeline()
	last := timeline[len(timeline)-1]
	if last.Status != entities.StatusPaid {
		t.Fatalf("expected PAID, got %v", last.Status)
	}
}

// Scenario 5: partial payment yields PARTIALLY_PAID.
func TestPersistRemittancePartialPaymentYieldsPartiallyPaid(t *testing.T) {
	engine, store := newEngine()
	ctx := context.Background()
	engine.PersistSubmission(ctx, "file-1", "sub-1", plainSubmission())

	engine.PersistRemittance(ctx, "file-2", "rem-1", remittanceFor(decimal.NewFromFloat(40.00), ""))

	timeline := store.StatusTimeline()
	last := timeline[len(timeline)-1]
	if last.Status != entities.StatusPartiallyPaid {
		t.Fatalf("expected PARTIALLY_PAID, got %v", last.Status)
	}
}

// Scenario 6: zero payment with a denial code on every activity yields REJECTED.
func TestPersistRemittanceAllDeniedYieldsRejected(t *testing.T) {
	engine, store := newEngine()
	ctx := context.Background()
	engine.PersistSubmission(ctx, "file-1", "sub-1", plainSubmission())

	engine.PersistRemittance(ctx, "file-2", "rem-1", remittanceFor(decimal.Zero, "DN1"))

	timeline := store.StatusTimeline()
	last := timeline[len(timeline)-1]
	if last.Status != entities.StatusRejected {
		t.Fatalf("expected REJECTED, got %v", last.Status)
	}
}

// Boundary: zero payment with no denial code is the conservative
// PARTIALLY_PAID default, not REJECTED, per spec.md §8.
func TestPersistRemittanceZeroPaymentNoDenialIsConservativePartiallyPaid(t *testing.T) {
	engine, store := newEngine()
	ctx := context.Background()
	engine.PersistSubmission(ctx, "file-1", "sub-1", plainSubmission())

	engine.PersistRemittance(ctx, "file-2", "rem-1", remittanceFor(decimal.Zero, ""))

	timeline := store.StatusTimeline()
	last := timeline[len(timeline)-1]
	if last.Status != entities.StatusPartiallyPaid {
		t.Fatalf("expected conservative PARTIALLY_PAID, got %v", last.Status)
	}
}

func TestPersistSubmissionMissingRequiredFieldIsSkippedNotFatal(t *testing.T) {
	engine, _ := newEngine()
	ctx := context.Background()
	graph := plainSubmission()
	graph.Claims[0].ProviderID = ""

	result := engine.PersistSubmission(ctx, "file-1", "sub-1", graph)
	if result.ClaimsPersisted != 0 || result.ClaimsFailed != 0 {
		t.Fatalf("missing-field claims are skipped, not counted as a hard failure: %+v", result)
	}

	reporter := engine.ErrorSink.(*memory.RecordingErrorReporter)
	if len(reporter.ClaimErrors) != 1 {
		t.Fatalf("expected one reported claim error, got %v", reporter.ClaimErrors)
	}
}
