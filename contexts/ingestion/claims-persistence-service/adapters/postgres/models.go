package postgresadapter

import (
	"time"

	"github.com/shopspring/decimal"
)

type ingestionFileModel struct {
	IngestionFileID string    `gorm:"column:ingestion_file_id;primaryKey"`
	ExternalFileID  string    `gorm:"column:external_file_id"`
	RootType        int16     `gorm:"column:root_type"`
	SenderID        string    `gorm:"column:sender_id"`
	ReceiverID      string    `gorm:"column:receiver_id"`
	TransactionTime time.Time `gorm:"column:transaction_time"`
	RecordCount     int       `gorm:"column:record_count"`
	DispositionFlag string    `gorm:"column:disposition_flag"`
	RawBytes        []byte    `gorm:"column:raw_bytes"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (ingestionFileModel) TableName() string { return "ingestion_files" }

type claimKeyModel struct {
	ClaimKeyID string    `gorm:"column:claim_key_id;primaryKey"`
	ClaimID    string    `gorm:"column:claim_id"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (claimKeyModel) TableName() string { return "claim_keys" }

type claimModel struct {
	ClaimKeyID      string          `gorm:"column:claim_key_id;primaryKey"`
	SubmissionID    string          `gorm:"column:submission_id"`
	ClaimID         string          `gorm:"column:claim_id"`
	PayerID         string          `gorm:"column:payer_id"`
	PayerRefID      string          `gorm:"column:payer_ref_id"`
	ProviderID      string          `gorm:"column:provider_id"`
	ProviderRefID   string          `gorm:"column:provider_ref_id"`
	EmiratesIDNum   string          `gorm:"column:emirates_id_number"`
	PatientID       string          `gorm:"column:patient_id"`
	Gross           decimal.Decimal `gorm:"column:gross;type:numeric(14,2)"`
	PatientShare    decimal.Decimal `gorm:"column:patient_share;type:numeric(14,2)"`
	Net             decimal.Decimal `gorm:"column:net;type:numeric(14,2)"`
	Comments        string          `gorm:"column:comments"`
	ContractPackage string          `gorm:"column:contract_package"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
}

func (claimModel) TableName() string { return "claims" }

type encounterModel struct {
	ClaimKeyID          string     `gorm:"column:claim_key_id;primaryKey"`
	FacilityID          string     `gorm:"column:facility_id"`
	FacilityRefID       string     `gorm:"column:facility_ref_id"`
	PatientID           string     `gorm:"column:patient_id"`
	Start               time.Time  `gorm:"column:start_time"`
	End                 *time.Time `gorm:"column:end_time"`
	TransferSource      string     `gorm:"column:transfer_source"`
	TransferDestination string     `gorm:"column:transfer_destination"`
}

func (encounterModel) TableName() string { return "encounters" }

type diagnosisModel struct {
	ClaimKeyID string `gorm:"column:claim_key_id;primaryKey"`
	Type       string `gorm:"column:diagnosis_type;primaryKey"`
	Code       string `gorm:"column:code;primaryKey"`
	RefID      string `gorm:"column:ref_id"`
}

func (diagnosisModel) TableName() string { return "diagnoses" }

type activityModel struct {
	ClaimKeyID     string          `gorm:"column:claim_key_id;primaryKey"`
	ActivityID     string          `gorm:"column:activity_id;primaryKey"`
	Start          time.Time       `gorm:"column:start_time"`
	Type           string          `gorm:"column:activity_type"`
	Code           string          `gorm:"column:code"`
	Quantity       decimal.Decimal `gorm:"column:quantity;type:numeric(14,2)"`
	Net            decimal.Decimal `gorm:"column:net;type:numeric(14,2)"`
	ClinicianID    string          `gorm:"column:clinician_id"`
	ClinicianRefID string          `gorm:"column:clinician_ref_id"`
	PriorAuthID    string          `gorm:"column:prior_auth_id"`
	CodeRefID      string          `gorm:"column:code_ref_id"`
}

func (activityModel) TableName() string { return "activities" }

type observationModel struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement"`
	ClaimKeyID string `gorm:"column:claim_key_id"`
	ActivityID string `gorm:"column:activity_id"`
	Type       string `gorm:"column:observation_type"`
	Code       string `gorm:"column:code"`
	Value      string `gorm:"column:value"`
	ValueType  string `gorm:"column:value_type"`
}

func (observationModel) TableName() string { return "observations" }

type remittanceClaimModel struct {
	RemittanceClaimID string    `gorm:"column:remittance_claim_id;primaryKey"`
	RemittanceID       string    `gorm:"column:remittance_id"`
	ClaimKeyID         string    `gorm:"column:claim_key_id"`
	PayerID            string    `gorm:"column:payer_id"`
	PayerRefID         string    `gorm:"column:payer_ref_id"`
	ProviderID         string    `gorm:"column:provider_id"`
	ProviderRefID      string    `gorm:"column:provider_ref_id"`
	DenialCode         string    `gorm:"column:denial_code"`
	DenialCodeRefID    string    `gorm:"column:denial_code_ref_id"`
	PaymentReference   string    `gorm:"column:payment_reference"`
	SettlementDate     time.Time `gorm:"column:settlement_date"`
	FacilityID         string    `gorm:"column:facility_id"`
	FacilityRefID      string    `gorm:"column:facility_ref_id"`
	Comment            string    `gorm:"column:comment"`
}

func (remittanceClaimModel) TableName() string { return "remittance_claims" }

type remittanceActivityModel struct {
	RemittanceClaimID string          `gorm:"column:remittance_claim_id;primaryKey"`
	ActivityID         string          `gorm:"column:activity_id;primaryKey"`
	Type               string          `gorm:"column:activity_type"`
	Code               string          `gorm:"column:code"`
	Quantity           decimal.Decimal `gorm:"column:quantity;type:numeric(14,2)"`
	Net                decimal.Decimal `gorm:"column:net;type:numeric(14,2)"`
	ListPrice          decimal.Decimal `gorm:"column:list_price;type:numeric(14,2)"`
	Gross              decimal.Decimal `gorm:"column:gross;type:numeric(14,2)"`
	PatientShare       decimal.Decimal `gorm:"column:patient_share;type:numeric(14,2)"`
	PaymentAmount      decimal.Decimal `gorm:"column:payment_amount;type:numeric(14,2)"`
	DenialCode         string          `gorm:"column:denial_code"`
}

func (remittanceActivityModel) TableName() string { return "remittance_activities" }

type claimEventModel struct {
	ClaimEventID    string    `gorm:"column:claim_event_id;primaryKey"`
	ClaimKeyID      string    `gorm:"column:claim_key_id"`
	Type            int16     `gorm:"column:event_type"`
	EventTime       time.Time `gorm:"column:event_time"`
	IngestionFileID string    `gorm:"column:ingestion_file_id"`
	SubmissionID    string    `gorm:"column:submission_id"`
	RemittanceID    string    `gorm:"column:remittance_id"`
}

func (claimEventModel) TableName() string { return "claim_events" }

type claimEventActivityModel struct {
	ClaimEventActivityID string          `gorm:"column:claim_event_activity_id;primaryKey"`
	ClaimEventID          string          `gorm:"column:claim_event_id"`
	ActivityIDAtEvent      string          `gorm:"column:activity_id_at_event"`
	Type                   string          `gorm:"column:activity_type"`
	Code                   string          `gorm:"column:code"`
	Quantity               decimal.Decimal `gorm:"column:quantity;type:numeric(14,2)"`
	Net                    decimal.Decimal `gorm:"column:net;type:numeric(14,2)"`
	ClinicianID            string          `gorm:"column:clinician_id"`
	PaymentAmount          *decimal.Decimal `gorm:"column:payment_amount;type:numeric(14,2)"`
	DenialCode             string          `gorm:"column:denial_code"`
}

func (claimEventActivityModel) TableName() string { return "claim_event_activities" }

type eventObservationModel struct {
	ID                    uint   `gorm:"column:id;primaryKey;autoIncrement"`
	ClaimEventActivityID string `gorm:"column:claim_event_activity_id"`
	Type                  string `gorm:"column:observation_type"`
	Code                  string `gorm:"column:code"`
	Value                 string `gorm:"column:value"`
	ValueType             string `gorm:"column:value_type"`
}

func (eventObservationModel) TableName() string { return "event_observations" }

type claimStatusTimelineModel struct {
	TimelineID   string    `gorm:"column:timeline_id;primaryKey"`
	ClaimKeyID   string    `gorm:"column:claim_key_id"`
	Status       int16     `gorm:"column:status"`
	ClaimEventID string    `gorm:"column:claim_event_id"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (claimStatusTimelineModel) TableName() string { return "claim_status_timeline" }

type claimResubmissionModel struct {
	ClaimEventID string `gorm:"column:claim_event_id;primaryKey"`
	Type         string `gorm:"column:resubmission_type"`
	Comment      string `gorm:"column:comment"`
	Attachment   []byte `gorm:"column:attachment"`
}

func (claimResubmissionModel) TableName() string { return "claim_resubmissions" }

type claimAttachmentModel struct {
	AttachmentID string    `gorm:"column:attachment_id;primaryKey"`
	ClaimKeyID   string    `gorm:"column:claim_key_id"`
	ClaimEventID string    `gorm:"column:claim_event_id"`
	FileName     string    `gorm:"column:file_name"`
	Bytes        []byte    `gorm:"column:bytes"`
	SHA256       string    `gorm:"column:sha256"`
	Size         int       `gorm:"column:size"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (claimAttachmentModel) TableName() string { return "claim_attachments" }
