package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Resolver resolves a business reference code to a surrogate reference id,
// auto-inserting unknown codes. Satisfied by
// reference-resolution-service/application.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, req ReferenceLookup) (string, error)
}

// ReferenceLookup mirrors reference-resolution-service/ports.LookupRequest
// so this package does not need to import that service's ports package
// directly; the bootstrap-level adapter translates between the two.
type ReferenceLookup struct {
	Domain          string
	BusinessCode    string
	DisplayName     string
	IngestionFileID string
	ClaimBusinessID string
}

// Reference domain names, mirrored from reference-resolution-service so
// callers here never need to import that service's domain package.
const (
	DomainPayer         = "payer"
	DomainProvider      = "provider"
	DomainFacility      = "facility"
	DomainClinician     = "clinician"
	DomainActivityCode  = "activity_code"
	DomainDiagnosisCode = "diagnosis_code"
	DomainDenialCode    = "denial_code"
)

// ErrorReporter is the narrow slice of the audit sink the persistence
// engine needs: recording a claim- or file-scoped structured problem
// without knowing anything else about the audit subsystem.
type ErrorReporter interface {
	ReportClaimError(ctx context.Context, ingestionFileID, claimBusinessID, code, message string) error
	ReportFileError(ctx context.Context, ingestionFileID, code, message string) error
}

// FileRepository is the stub-insert / header-update surface the pipeline
// controller drives directly (outside any one claim's scope).
type FileRepository interface {
	// UpsertStub inserts the header-sentinel IngestionFile row, or returns
	// the existing row's id if the external file id was already seen.
	UpsertStub(ctx context.Context, stub entities.IngestionFile) (ingestionFileID string, alreadyExisted bool, err error)
	UpdateHeader(ctx context.Context, ingestionFileID string, file entities.IngestionFile) error
	HasClaimEvent(ctx context.Context, ingestionFileID string) (bool, error)
}

// GraphRepository persists the claim/remittance graph. Every method is
// expected to be individually idempotent per spec.md §3 invariants.
type GraphRepository interface {
	UpsertClaimKey(ctx context.Context, claimID string) (claimKeyID string, err error)
	HasSubmittedEvent(ctx context.Context, claimKeyID string) (bool, error)
	UpsertClaim(ctx context.Context, claim entities.Claim) error
	UpsertEncounter(ctx context.Context, encounter entities.Encounter) error
	UpsertDiagnosis(ctx context.Context, diagnosis entities.Diagnosis) error
	UpsertActivity(ctx context.Context, activity entities.Activity) error
	InsertObservation(ctx context.Context, observation entities.Observation) error

	// InsertEvent inserts a ClaimEvent idempotently keyed by
	// (ClaimKeyID, Type, EventTime), returning the existing id on conflict.
	InsertEvent(ctx context.Context, event entities.ClaimEvent) (claimEventID string, err error)
	InsertEventActivity(ctx context.Context, snapshot entities.ClaimEventActivity) (claimEventActivityID string, err error)
	InsertEventObservation(ctx context.Context, observation entities.EventObservation) error
	InsertStatusTimeline(ctx context.Context, row entities.ClaimStatusTimeline) error
	InsertResubmission(ctx context.Context, resubmission entities.ClaimResubmission) error
	UpsertAttachment(ctx context.Context, attachment entities.ClaimAttachment) error

	UpsertRemittanceClaim(ctx context.Context, claim entities.RemittanceClaim) (remittanceClaimID string, err error)
	UpsertRemittanceActivity(ctx context.Context, activity entities.RemittanceActivity) error
	NetRequestedForClaim(ctx context.Context, claimKeyID string) (netRequested decimal.Decimal, err error)
}
