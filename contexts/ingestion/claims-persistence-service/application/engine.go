package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	xmlentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/domain/entities"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/domain/entities"
	domainerrors "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/domain/errors"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/ports"
)

const (
	module = "ingestion/claims-persistence-service"
	layer  = "application"
)

// Engine materializes a parsed submission or remittance graph into the
// relational model, idempotently, one claim at a time. A failure on one
// claim is reported to the ErrorSink and never aborts its siblings, per
// spec.md §4.4.
type Engine struct {
	Graph     ports.GraphRepository
	Resolver  ports.Resolver
	ErrorSink ports.ErrorReporter
	IDGen     ports.IDGenerator
	Clock     ports.Clock
	Logger    *slog.Logger
}

// PersistResult summarizes the outcome of persisting one file's graph, for
// the pipeline controller's verification and logging steps.
type PersistResult struct {
	ClaimsPersisted int
	ClaimsFailed    int
}

// PersistSubmission implements spec.md §4.4's submission path for every
// claim in the graph.
func (e Engine) PersistSubmission(ctx context.Context, ingestionFileID, submissionID string, graph xmlentities.SubmissionGraph) PersistResult {
	logger := ResolveLogger(e.Logger)
	result := PersistResult{}
	eventTime := graph.Header.TransactionDate

	for _, claim := range graph.Claims {
		if err := e.persistSubmissionClaim(ctx, ingestionFileID, submissionID, eventTime, claim); err != nil {
			if errors.Is(err, domainerrors.ErrMissingRequiredField) || errors.Is(err, domainerrors.ErrDuplicateSubmissionNoResub) {
				// Already reported to the ErrorSink: skipped, neither persisted nor failed.
				continue
			}
			result.ClaimsFailed++
			e.reportClaimError(ctx, ingestionFileID, claim.ClaimID, domainerrors.CodeClaimPersistFail, err.Error())
			logger.Error("claim persistence failed",
				"event", "claim_persist_failed",
				"module", module,
				"layer", layer,
				"ingestion_file_id", ingestionFileID,
				"claim_id", claim.ClaimID,
				"error", err.Error(),
			)
			continue
		}
		result.ClaimsPersisted++
		logger.Info("claim persisted",
			"event", "claim_persisted",
			"module", module,
			"layer", layer,
			"ingestion_file_id", ingestionFileID,
			"claim_id", claim.ClaimID,
		)
	}
	return result
}

func (e Engine) persistSubmissionClaim(ctx context.Context, ingestionFileID, submissionID string, eventTime time.Time, claim xmlentities.ClaimDTO) error {
	// Step 1: required-field guard.
	if claim.ClaimID == "" || claim.PayerID == "" || claim.ProviderID == "" || claim.EmiratesIDNumber == "" {
		e.reportClaimError(ctx, ingestionFileID, claim.ClaimID, domainerrors.CodeMissingRequiredField, "claim missing one of id/payerId/providerId/emiratesIdNumber")
		return domainerrors.ErrMissingRequiredField
	}

	// Step 2: duplicate rule — a prior type-1 event with no resubmission
	// marker on this DTO is a duplicate submission.
	claimKeyID, err := e.Graph.UpsertClaimKey(ctx, claim.ClaimID)
	if err != nil {
		return fmt.Errorf("upsert claim key: %w", err)
	}
	hasSubmitted, err := e.Graph.HasSubmittedEvent(ctx, claimKeyID)
	if err != nil {
		return fmt.Errorf("check submitted event: %w", err)
	}
	if hasSubmitted && claim.Resubmission == nil {
		e.reportClaimError(ctx, ingestionFileID, claim.ClaimID, domainerrors.CodeDupSubmissionNoResub, "duplicate submission with no Resubmission element")
		return domainerrors.ErrDuplicateSubmissionNoResub
	}

	payerRefID, err := e.resolve(ctx, ports.DomainPayer, claim.PayerID, ingestionFileID, claim.ClaimID)
	if err != nil {
		return fmt.Errorf("resolve payer: %w", err)
	}
	providerRefID, err := e.resolve(ctx, ports.DomainProvider, claim.ProviderID, ingestionFileID, claim.ClaimID)
	if err != nil {
		return fmt.Errorf("resolve provider: %w", err)
	}

	// Step 4: upsert Claim.
	if err := e.Graph.UpsertClaim(ctx, entities.Claim{
		ClaimKeyID:       claimKeyID,
		SubmissionID:     submissionID,
		ClaimID:          claim.ClaimID,
		PayerID:          claim.PayerID,
		PayerRefID:       payerRefID,
		ProviderID:       claim.ProviderID,
		ProviderRefID:    providerRefID,
		EmiratesIDNumber: claim.EmiratesIDNumber,
		PatientID:        claim.PatientID,
		Gross:            claim.Gross,
		PatientShare:     claim.PatientShare,
		Net:              claim.Net,
		Comments:         claim.Comments,
		ContractPackage:  claim.ContractPackage,
		CreatedAt:        e.Clock.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("upsert claim: %w", err)
	}

	// Step 5: conditionally upsert Encounter, Diagnoses, Activities, Observations.
	if claim.Encounter != nil && claim.Encounter.HasRequiredFields() {
		facilityRefID, err := e.resolve(ctx, ports.DomainFacility, claim.Encounter.FacilityID, ingestionFileID, claim.ClaimID)
		if err != nil {
			return fmt.Errorf("resolve facility: %w", err)
		}
		if err := e.Graph.UpsertEncounter(ctx, entities.Encounter{
			ClaimKeyID:          claimKeyID,
			FacilityID:          claim.Encounter.FacilityID,
			FacilityRefID:       facilityRefID,
			PatientID:           claim.Encounter.PatientID,
			Start:               claim.Encounter.Start,
			End:                 claim.Encounter.End,
			TransferSource:      claim.Encounter.TransferSource,
			TransferDestination: claim.Encounter.TransferDestination,
		}); err != nil {
			return fmt.Errorf("upsert encounter: %w", err)
		}
	}

	for _, diag := range claim.Diagnoses {
		if !diag.HasRequiredFields() {
			e.reportClaimError(ctx, ingestionFileID, claim.ClaimID, domainerrors.CodeMissingRequiredField, "diagnosis missing required field, skipped")
			continue
		}
		diagRefID, err := e.resolve(ctx, ports.DomainDiagnosisCode, diag.Code, ingestionFileID, claim.ClaimID)
		if err != nil {
			return fmt.Errorf("resolve diagnosis code: %w", err)
		}
		if err := e.Graph.UpsertDiagnosis(ctx, entities.Diagnosis{
			ClaimKeyID: claimKeyID,
			Type:       diag.Type,
			Code:       diag.Code,
			RefID:      diagRefID,
		}); err != nil {
			return fmt.Errorf("upsert diagnosis: %w", err)
		}
	}

	for _, act := range claim.Activities {
		if !act.HasRequiredFields() {
			e.reportClaimError(ctx, ingestionFileID, claim.ClaimID, domainerrors.CodeMissingRequiredField, "activity missing required field, skipped")
			continue
		}
		clinicianRefID, err := e.resolve(ctx, ports.DomainClinician, act.ClinicianID, ingestionFileID, claim.ClaimID)
		if err != nil {
			return fmt.Errorf("resolve clinician: %w", err)
		}
		codeRefID, err := e.resolve(ctx, ports.DomainActivityCode, act.Code, ingestionFileID, claim.ClaimID)
		if err != nil {
			return fmt.Errorf("resolve activity code: %w", err)
		}
		if err := e.Graph.UpsertActivity(ctx, entities.Activity{
			ClaimKeyID:     claimKeyID,
			ActivityID:     act.ActivityID,
			Start:          act.Start,
			Type:           act.Type,
			Code:           act.Code,
			Quantity:       act.Quantity,
			Net:            act.Net,
			ClinicianID:    act.ClinicianID,
			ClinicianRefID: clinicianRefID,
			PriorAuthID:    act.PriorAuthID,
			CodeRefID:      codeRefID,
		}); err != nil {
			return fmt.Errorf("upsert activity: %w", err)
		}
		for _, obs := range act.Observations {
			if !obs.HasRequiredFields() {
				e.reportClaimError(ctx, ingestionFileID, claim.ClaimID, domainerrors.CodeMissingRequiredField, "observation missing required field, skipped")
				continue
			}
			if err := e.Graph.InsertObservation(ctx, entities.Observation{
				ClaimKeyID: claimKeyID,
				ActivityID: act.ActivityID,
				Type:       obs.Type,
				Code:       obs.Code,
				Value:      obs.Value,
				ValueType:  obs.ValueType,
			}); err != nil {
				return fmt.Errorf("insert observation: %w", err)
			}
		}
	}

	// Step 6: type-1 ClaimEvent, idempotently keyed by (ClaimKey, 1, eventTime).
	eventID, err := e.Graph.InsertEvent(ctx, entities.ClaimEvent{
		ClaimKeyID:      claimKeyID,
		Type:            entities.EventSubmitted,
		EventTime:       eventTime,
		IngestionFileID: ingestionFileID,
		SubmissionID:    submissionID,
	})
	if err != nil {
		return fmt.Errorf("insert submitted event: %w", err)
	}

	// Step 7: per-activity event snapshots and observations.
	for _, act := range claim.Activities {
		if !act.HasRequiredFields() {
			continue
		}
		snapshotID, err := e.Graph.InsertEventActivity(ctx, entities.ClaimEventActivity{
			ClaimEventID:      eventID,
			ActivityIDAtEvent: act.ActivityID,
			Type:              act.Type,
			Code:              act.Code,
			Quantity:          act.Quantity,
			Net:               act.Net,
			ClinicianID:       act.ClinicianID,
		})
		if err != nil {
			return fmt.Errorf("insert event activity snapshot: %w", err)
		}
		for _, obs := range act.Observations {
			if !obs.HasRequiredFields() {
				continue
			}
			if err := e.Graph.InsertEventObservation(ctx, entities.EventObservation{
				ClaimEventActivityID: snapshotID,
				Type:                 obs.Type,
				Code:                 obs.Code,
				Value:                obs.Value,
				ValueType:            obs.ValueType,
			}); err != nil {
				return fmt.Errorf("insert event observation: %w", err)
			}
		}
	}

	// Step 8: status timeline, SUBMITTED.
	if err := e.Graph.InsertStatusTimeline(ctx, entities.ClaimStatusTimeline{
		ClaimKeyID:   claimKeyID,
		Status:       entities.StatusSubmitted,
		ClaimEventID: eventID,
		CreatedAt:    e.Clock.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("insert status timeline: %w", err)
	}

	// Step 9: resubmission.
	if claim.Resubmission != nil {
		resubEventID, err := e.Graph.InsertEvent(ctx, entities.ClaimEvent{
			ClaimKeyID:      claimKeyID,
			Type:            entities.EventResubmitted,
			EventTime:       eventTime,
			IngestionFileID: ingestionFileID,
			SubmissionID:    submissionID,
		})
		if err != nil {
			return fmt.Errorf("insert resubmitted event: %w", err)
		}
		if err := e.Graph.InsertResubmission(ctx, entities.ClaimResubmission{
			ClaimEventID: resubEventID,
			Type:         claim.Resubmission.Type,
			Comment:      claim.Resubmission.Comment,
			Attachment:   claim.Resubmission.Attachment,
		}); err != nil {
			return fmt.Errorf("insert resubmission: %w", err)
		}
		if err := e.Graph.InsertStatusTimeline(ctx, entities.ClaimStatusTimeline{
			ClaimKeyID:   claimKeyID,
			Status:       entities.StatusResubmitted,
			ClaimEventID: resubEventID,
			CreatedAt:    e.Clock.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("insert resubmitted status timeline: %w", err)
		}
	}

	// Step 10: attachments keyed to this business claim id, filed against
	// the type-1 event.
	for _, att := range claim.Attachments {
		if att.ClaimID != claim.ClaimID {
			continue
		}
		attachmentID, err := e.IDGen.NewID(ctx)
		if err != nil {
			return fmt.Errorf("generate attachment id: %w", err)
		}
		if err := e.Graph.UpsertAttachment(ctx, entities.ClaimAttachment{
			AttachmentID: attachmentID,
			ClaimKeyID:   claimKeyID,
			ClaimEventID: eventID,
			FileName:     att.FileName,
			Bytes:        att.Bytes,
			SHA256:       att.SHA256,
			Size:         att.Size,
			CreatedAt:    e.Clock.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("upsert attachment: %w", err)
		}
	}

	return nil
}

// PersistRemittance implements spec.md §4.4's remittance path for every
// claim in the graph.
func (e Engine) PersistRemittance(ctx context.Context, ingestionFileID, remittanceID string, graph xmlentities.RemittanceGraph) PersistResult {
	logger := ResolveLogger(e.Logger)
	result := PersistResult{}
	eventTime := graph.Header.TransactionDate

	for _, claim := range graph.Claims {
		if err := e.persistRemittanceClaim(ctx, ingestionFileID, remittanceID, eventTime, claim); err != nil {
			result.ClaimsFailed++
			e.reportClaimError(ctx, ingestionFileID, claim.ClaimID, domainerrors.CodeRemittancePersistFail, err.Error())
			logger.Error("remittance claim persistence failed",
				"event", "remittance_claim_persist_failed",
				"module", module,
				"layer", layer,
				"ingestion_file_id", ingestionFileID,
				"claim_id", claim.ClaimID,
				"error", err.Error(),
			)
			continue
		}
		result.ClaimsPersisted++
		logger.Info("remittance claim persisted",
			"event", "remittance_claim_persisted",
			"module", module,
			"layer", layer,
			"ingestion_file_id", ingestionFileID,
			"claim_id", claim.ClaimID,
		)
	}
	return result
}

func (e Engine) persistRemittanceClaim(ctx context.Context, ingestionFileID, remittanceID string, eventTime time.Time, claim xmlentities.RemittanceClaimDTO) error {
	// Step 1: required-field guard.
	if !claim.HasRequiredFields() {
		e.reportClaimError(ctx, ingestionFileID, claim.ClaimID, domainerrors.CodeMissingRequiredField, "remittance claim missing one of id/idPayer/providerId/paymentReference")
		return nil
	}

	claimKeyID, err := e.Graph.UpsertClaimKey(ctx, claim.ClaimID)
	if err != nil {
		return fmt.Errorf("upsert claim key: %w", err)
	}

	// Step 2: resolve reference codes.
	payerRefID, err := e.resolve(ctx, ports.DomainPayer, claim.IDPayer, ingestionFileID, claim.ClaimID)
	if err != nil {
		return fmt.Errorf("resolve payer: %w", err)
	}
	providerRefID, err := e.resolve(ctx, ports.DomainProvider, claim.ProviderID, ingestionFileID, claim.ClaimID)
	if err != nil {
		return fmt.Errorf("resolve provider: %w", err)
	}
	var denialRefID string
	if strings.TrimSpace(claim.DenialCode) != "" {
		denialRefID, err = e.resolve(ctx, ports.DomainDenialCode, claim.DenialCode, ingestionFileID, claim.ClaimID)
		if err != nil {
			return fmt.Errorf("resolve denial code: %w", err)
		}
	}
	var facilityRefID string
	if strings.TrimSpace(claim.FacilityID) != "" {
		facilityRefID, err = e.resolve(ctx, ports.DomainFacility, claim.FacilityID, ingestionFileID, claim.ClaimID)
		if err != nil {
			return fmt.Errorf("resolve facility: %w", err)
		}
	}

	// Step 3: upsert RemittanceClaim keyed by (RemittanceId, ClaimKeyId).
	remittanceClaimID, err := e.Graph.UpsertRemittanceClaim(ctx, entities.RemittanceClaim{
		RemittanceID:     remittanceID,
		ClaimKeyID:       claimKeyID,
		PayerID:          claim.IDPayer,
		PayerRefID:       payerRefID,
		ProviderID:       claim.ProviderID,
		ProviderRefID:    providerRefID,
		DenialCode:       claim.DenialCode,
		DenialCodeRefID:  denialRefID,
		PaymentReference: claim.PaymentReference,
		SettlementDate:   claim.SettlementDate,
		FacilityID:       claim.FacilityID,
		FacilityRefID:    facilityRefID,
		Comment:          claim.Comment,
	})
	if err != nil {
		return fmt.Errorf("upsert remittance claim: %w", err)
	}

	// Step 4: remittance activities with required fields.
	validActivities := make([]xmlentities.RemittanceActivityDTO, 0, len(claim.Activities))
	for _, act := range claim.Activities {
		if !act.HasRequiredFields() {
			e.reportClaimError(ctx, ingestionFileID, claim.ClaimID, domainerrors.CodeMissingRequiredField, "remittance activity missing required field, skipped")
			continue
		}
		validActivities = append(validActivities, act)
		if err := e.Graph.UpsertRemittanceActivity(ctx, entities.RemittanceActivity{
			RemittanceClaimID: remittanceClaimID,
			ActivityID:        act.ActivityID,
			Type:              act.Type,
			Code:              act.Code,
			Quantity:          act.Quantity,
			Net:               act.Net,
			ListPrice:         act.ListPrice,
			Gross:             act.Gross,
			PatientShare:      act.PatientShare,
			PaymentAmount:     act.PaymentAmount,
			DenialCode:        act.DenialCode,
		}); err != nil {
			return fmt.Errorf("upsert remittance activity: %w", err)
		}
	}

	// Step 5: type-3 ClaimEvent, idempotent.
	eventID, err := e.Graph.InsertEvent(ctx, entities.ClaimEvent{
		ClaimKeyID:      claimKeyID,
		Type:            entities.EventRemittance,
		EventTime:       eventTime,
		IngestionFileID: ingestionFileID,
		RemittanceID:    remittanceID,
	})
	if err != nil {
		return fmt.Errorf("insert remittance event: %w", err)
	}

	// Step 6: project each remittance activity to a ClaimEventActivity.
	for _, act := range validActivities {
		paymentAmount := act.PaymentAmount
		if _, err := e.Graph.InsertEventActivity(ctx, entities.ClaimEventActivity{
			ClaimEventID:      eventID,
			ActivityIDAtEvent: act.ActivityID,
			Type:              act.Type,
			Code:              act.Code,
			Quantity:          act.Quantity,
			Net:               act.Net,
			PaymentAmount:     &paymentAmount,
			DenialCode:        act.DenialCode,
		}); err != nil {
			return fmt.Errorf("insert remittance event activity snapshot: %w", err)
		}
	}

	// Step 7: compute status.
	netRequested, err := e.Graph.NetRequestedForClaim(ctx, claimKeyID)
	if err != nil {
		return fmt.Errorf("sum net requested: %w", err)
	}
	paidAmount := decimalSumPayments(validActivities)
	allDenied := len(validActivities) > 0 && allActivitiesDenied(validActivities)
	status := computeRemittanceStatus(netRequested, paidAmount, allDenied)

	// Step 8: append to status timeline.
	if err := e.Graph.InsertStatusTimeline(ctx, entities.ClaimStatusTimeline{
		ClaimKeyID:   claimKeyID,
		Status:       status,
		ClaimEventID: eventID,
		CreatedAt:    e.Clock.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("insert remittance status timeline: %w", err)
	}
	return nil
}

func (e Engine) resolve(ctx context.Context, domain, businessCode, ingestionFileID, claimID string) (string, error) {
	if strings.TrimSpace(businessCode) == "" {
		return "", nil
	}
	return e.Resolver.Resolve(ctx, ports.ReferenceLookup{
		Domain:          domain,
		BusinessCode:    businessCode,
		IngestionFileID: ingestionFileID,
		ClaimBusinessID: claimID,
	})
}

func (e Engine) reportClaimError(ctx context.Context, ingestionFileID, claimID, code, message string) {
	if e.ErrorSink == nil {
		return
	}
	_ = e.ErrorSink.ReportClaimError(ctx, ingestionFileID, claimID, code, message)
}
