package postgresadapter

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/domain/entities"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/ports"
)

// GraphRepository persists the claim/remittance graph, projecting events and
// the status timeline. Every upsert follows the teacher's insert-on-conflict
// -then-select shape so concurrent first-sight writers never race.
type GraphRepository struct {
	db    *gorm.DB
	idGen ports.IDGenerator
}

func NewGraphRepository(db *gorm.DB, idGen ports.IDGenerator) *GraphRepository {
	return &GraphRepository{db: db, idGen: idGen}
}

func (r *GraphRepository) newID(ctx context.Context) (string, error) {
	return r.idGen.NewID(ctx)
}

// UpsertClaimKey implements spec.md §4.4 step 3: insert-or-ignore keyed on
// the business claim id, then always select the surviving row.
func (r *GraphRepository) UpsertClaimKey(ctx context.Context, claimID string) (string, error) {
	candidateID, err := r.newID(ctx)
	if err != nil {
		return "", err
	}
	row := claimKeyModel{ClaimKeyID: candidateID, ClaimID: claimID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "claim_id"}},
			DoNothing: true,
		}).
		Create(&row).Error; err != nil {
		return "", err
	}
	var final claimKeyModel
	if err := r.db.WithContext(ctx).Where("claim_id = ?", claimID).First(&final).Error; err != nil {
		return "", err
	}
	return final.ClaimKeyID, nil
}

func (r *GraphRepository) HasSubmittedEvent(ctx context.Context, claimKeyID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&claimEventModel{}).
		Where("claim_key_id = ? AND event_type = ?", claimKeyID, int16(entities.EventSubmitted)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GraphRepository) UpsertClaim(ctx context.Context, claim entities.Claim) error {
	row := claimModel{
		ClaimKeyID:      claim.ClaimKeyID,
		SubmissionID:    claim.SubmissionID,
		ClaimID:         claim.ClaimID,
		PayerID:         claim.PayerID,
		PayerRefID:      claim.PayerRefID,
		ProviderID:      claim.ProviderID,
		ProviderRefID:   claim.ProviderRefID,
		EmiratesIDNum:   claim.EmiratesIDNumber,
		PatientID:       claim.PatientID,
		Gross:           claim.Gross,
		PatientShare:    claim.PatientShare,
		Net:             claim.Net,
		Comments:        claim.Comments,
		ContractPackage: claim.ContractPackage,
		CreatedAt:       claim.CreatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "claim_key_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

func (r *GraphRepository) UpsertEncounter(ctx context.Context, encounter entities.Encounter) error {
	row := encounterModel{
		ClaimKeyID:          encounter.ClaimKeyID,
		FacilityID:          encounter.FacilityID,
		FacilityRefID:       encounter.FacilityRefID,
		PatientID:           encounter.PatientID,
		Start:               encounter.Start,
		End:                 encounter.End,
		TransferSource:      encounter.TransferSource,
		TransferDestination: encounter.TransferDestination,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "claim_key_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

func (r *GraphRepository) UpsertDiagnosis(ctx context.Context, diagnosis entities.Diagnosis) error {
	row := diagnosisModel{
		ClaimKeyID: diagnosis.ClaimKeyID,
		Type:       diagnosis.Type,
		Code:       diagnosis.Code,
		RefID:      diagnosis.RefID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "claim_key_id"}, {Name: "diagnosis_type"}, {Name: "code"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

func (r *GraphRepository) UpsertActivity(ctx context.Context, activity entities.Activity) error {
	row := activityModel{
		ClaimKeyID:     activity.ClaimKeyID,
		ActivityID:     activity.ActivityID,
		Start:          activity.Start,
		Type:           activity.Type,
		Code:           activity.Code,
		Quantity:       activity.Quantity,
		Net:            activity.Net,
		ClinicianID:    activity.ClinicianID,
		ClinicianRefID: activity.ClinicianRefID,
		PriorAuthID:    activity.PriorAuthID,
		CodeRefID:      activity.CodeRefID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "claim_key_id"}, {Name: "activity_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

func (r *GraphRepository) InsertObservation(ctx context.Context, observation entities.Observation) error {
	row := observationModel{
		ClaimKeyID: observation.ClaimKeyID,
		ActivityID: observation.ActivityID,
		Type:       observation.Type,
		Code:       observation.Code,
		Value:      observation.Value,
		ValueType:  observation.ValueType,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// InsertEvent is idempotently keyed by (ClaimKeyID, Type, EventTime),
// per spec.md §4.4 step 6; a conflict returns the existing row's id.
func (r *GraphRepository) InsertEvent(ctx context.Context, event entities.ClaimEvent) (string, error) {
	candidateID, err := r.newID(ctx)
	if err != nil {
		return "", err
	}
	row := claimEventModel{
		ClaimEventID:    candidateID,
		ClaimKeyID:      event.ClaimKeyID,
		Type:            int16(event.Type),
		EventTime:       event.EventTime,
		IngestionFileID: event.IngestionFileID,
		SubmissionID:    event.SubmissionID,
		RemittanceID:    event.RemittanceID,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "claim_key_id"}, {Name: "event_type"}, {Name: "event_time"}},
			DoNothing: true,
		}).
		Create(&row).Error; err != nil {
		return "", err
	}
	var final claimEventModel
	if err := r.db.WithContext(ctx).
		Where("claim_key_id = ? AND event_type = ? AND event_time = ?", event.ClaimKeyID, int16(event.Type), event.EventTime).
		First(&final).Error; err != nil {
		return "", err
	}
	return final.ClaimEventID, nil
}

func (r *GraphRepository) InsertEventActivity(ctx context.Context, snapshot entities.ClaimEventActivity) (string, error) {
	candidateID, err := r.newID(ctx)
	if err != nil {
		return "", err
	}
	row := claimEventActivityModel{
		ClaimEventActivityID: candidateID,
		ClaimEventID:         snapshot.ClaimEventID,
		ActivityIDAtEvent:    snapshot.ActivityIDAtEvent,
		Type:                 snapshot.Type,
		Code:                 snapshot.Code,
		Quantity:             snapshot.Quantity,
		Net:                  snapshot.Net,
		ClinicianID:          snapshot.ClinicianID,
		PaymentAmount:        snapshot.PaymentAmount,
		DenialCode:           snapshot.DenialCode,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "claim_event_id"}, {Name: "activity_id_at_event"}},
			DoNothing: true,
		}).
		Create(&row).Error; err != nil {
		return "", err
	}
	var final claimEventActivityModel
	if err := r.db.WithContext(ctx).
		Where("claim_event_id = ? AND activity_id_at_event = ?", snapshot.ClaimEventID, snapshot.ActivityIDAtEvent).
		First(&final).Error; err != nil {
		return "", err
	}
	return final.ClaimEventActivityID, nil
}

func (r *GraphRepository) InsertEventObservation(ctx context.Context, observation entities.EventObservation) error {
	row := eventObservationModel{
		ClaimEventActivityID: observation.ClaimEventActivityID,
		Type:                 observation.Type,
		Code:                 observation.Code,
		Value:                observation.Value,
		ValueType:            observation.ValueType,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *GraphRepository) InsertStatusTimeline(ctx context.Context, row2 entities.ClaimStatusTimeline) error {
	candidateID, err := r.newID(ctx)
	if err != nil {
		return err
	}
	row := claimStatusTimelineModel{
		TimelineID:   candidateID,
		ClaimKeyID:   row2.ClaimKeyID,
		Status:       int16(row2.Status),
		ClaimEventID: row2.ClaimEventID,
		CreatedAt:    row2.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *GraphRepository) InsertResubmission(ctx context.Context, resubmission entities.ClaimResubmission) error {
	row := claimResubmissionModel{
		ClaimEventID: resubmission.ClaimEventID,
		Type:         resubmission.Type,
		Comment:      resubmission.Comment,
		Attachment:   resubmission.Attachment,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "claim_event_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

// UpsertAttachment is keyed by (ClaimKeyID, ClaimEventID, FileName), per
// spec.md §6's enumerated uniqueness.
func (r *GraphRepository) UpsertAttachment(ctx context.Context, attachment entities.ClaimAttachment) error {
	row := claimAttachmentModel{
		AttachmentID: attachment.AttachmentID,
		ClaimKeyID:   attachment.ClaimKeyID,
		ClaimEventID: attachment.ClaimEventID,
		FileName:     attachment.FileName,
		Bytes:        attachment.Bytes,
		SHA256:       attachment.SHA256,
		Size:         attachment.Size,
		CreatedAt:    attachment.CreatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "claim_key_id"}, {Name: "claim_event_id"}, {Name: "file_name"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

func (r *GraphRepository) UpsertRemittanceClaim(ctx context.Context, claim entities.RemittanceClaim) (string, error) {
	candidateID, err := r.newID(ctx)
	if err != nil {
		return "", err
	}
	row := remittanceClaimModel{
		RemittanceClaimID: candidateID,
		RemittanceID:      claim.RemittanceID,
		ClaimKeyID:        claim.ClaimKeyID,
		PayerID:           claim.PayerID,
		PayerRefID:        claim.PayerRefID,
		ProviderID:        claim.ProviderID,
		ProviderRefID:     claim.ProviderRefID,
		DenialCode:        claim.DenialCode,
		DenialCodeRefID:   claim.DenialCodeRefID,
		PaymentReference:  claim.PaymentReference,
		SettlementDate:    claim.SettlementDate,
		FacilityID:        claim.FacilityID,
		FacilityRefID:     claim.FacilityRefID,
		Comment:           claim.Comment,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "remittance_id"}, {Name: "claim_key_id"}},
			DoNothing: true,
		}).
		Create(&row).Error; err != nil {
		return "", err
	}
	var final remittanceClaimModel
	if err := r.db.WithContext(ctx).
		Where("remittance_id = ? AND claim_key_id = ?", claim.RemittanceID, claim.ClaimKeyID).
		First(&final).Error; err != nil {
		return "", err
	}
	return final.RemittanceClaimID, nil
}

func (r *GraphRepository) UpsertRemittanceActivity(ctx context.Context, activity entities.RemittanceActivity) error {
	row := remittanceActivityModel{
		RemittanceClaimID: activity.RemittanceClaimID,
		ActivityID:        activity.ActivityID,
		Type:              activity.Type,
		Code:              activity.Code,
		Quantity:          activity.Quantity,
		Net:               activity.Net,
		ListPrice:         activity.ListPrice,
		Gross:             activity.Gross,
		PatientShare:      activity.PatientShare,
		PaymentAmount:     activity.PaymentAmount,
		DenialCode:        activity.DenialCode,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "remittance_claim_id"}, {Name: "activity_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

// NetRequestedForClaim sums submission activity net amounts for this claim
// key, for the status-computation arithmetic of spec.md §4.4 step 7.
func (r *GraphRepository) NetRequestedForClaim(ctx context.Context, claimKeyID string) (decimal.Decimal, error) {
	var rows []activityModel
	if err := r.db.WithContext(ctx).Where("claim_key_id = ?", claimKeyID).Find(&rows).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.Net)
	}
	return sum, nil
}
