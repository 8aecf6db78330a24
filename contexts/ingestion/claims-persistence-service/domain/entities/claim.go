package entities

import (
	"time"

	"github.com/shopspring/decimal"

	xmlentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/domain/entities"
)

// IngestionFile is the stub-then-updated row every file's processing
// revolves around; it is the foreign-key target for every error/audit row
// produced while the file is being parsed and validated.
type IngestionFile struct {
	IngestionFileID string
	ExternalFileID  string
	RootType        xmlentities.RootType
	SenderID        string
	ReceiverID      string
	TransactionTime time.Time
	RecordCount     int
	DispositionFlag string
	RawBytes        []byte
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const UnknownSentinel = "UNKNOWN"

// NewStub builds the header-sentinel IngestionFile row the pipeline inserts
// before parsing begins, per spec.md §4.2 step 2.
func NewStub(ingestionFileID, externalFileID string, rootType xmlentities.RootType, raw []byte, now time.Time) IngestionFile {
	return IngestionFile{
		IngestionFileID: ingestionFileID,
		ExternalFileID:  externalFileID,
		RootType:        rootType,
		SenderID:        UnknownSentinel,
		ReceiverID:      UnknownSentinel,
		DispositionFlag: UnknownSentinel,
		RecordCount:     0,
		RawBytes:        raw,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ClaimKey is the durable identity of a business claim, independent of any
// one submission or remittance.
type ClaimKey struct {
	ClaimKeyID string
	ClaimID    string
	CreatedAt  time.Time
}

// Claim is one row per ClaimKey per submission.
type Claim struct {
	ClaimKeyID        string
	SubmissionID      string
	ClaimID           string
	PayerID           string
	PayerRefID        string
	ProviderID        string
	ProviderRefID     string
	EmiratesIDNumber  string
	PatientID         string
	Gross             decimal.Decimal
	PatientShare      decimal.Decimal
	Net               decimal.Decimal
	Comments          string
	ContractPackage   string
	CreatedAt         time.Time
}

type Encounter struct {
	ClaimKeyID          string
	FacilityID          string
	FacilityRefID       string
	PatientID           string
	Start               time.Time
	End                 *time.Time
	TransferSource      string
	TransferDestination string
}

type Diagnosis struct {
	ClaimKeyID string
	Type       string
	Code       string
	RefID      string
}

// Activity carries the natural key (ClaimKeyID, ActivityID) per spec.md §3.
type Activity struct {
	ClaimKeyID  string
	ActivityID  string
	Start       time.Time
	Type        string
	Code        string
	Quantity    decimal.Decimal
	Net         decimal.Decimal
	ClinicianID string
	ClinicianRefID string
	PriorAuthID string
	CodeRefID   string
}

type Observation struct {
	ClaimKeyID string
	ActivityID string
	Type       string
	Code       string
	Value      string
	ValueType  string
}

// RemittanceClaim is uniquely keyed by (RemittanceID, ClaimKeyID).
type RemittanceClaim struct {
	RemittanceClaimID string
	RemittanceID      string
	ClaimKeyID        string
	PayerID           string
	PayerRefID        string
	ProviderID        string
	ProviderRefID     string
	DenialCode        string
	DenialCodeRefID   string
	PaymentReference  string
	SettlementDate    time.Time
	FacilityID        string
	FacilityRefID     string
	Comment           string
}

// RemittanceActivity is uniquely keyed by (RemittanceClaimID, ActivityID).
type RemittanceActivity struct {
	RemittanceClaimID string
	ActivityID        string
	Type              string
	Code              string
	Quantity          decimal.Decimal
	Net               decimal.Decimal
	ListPrice         decimal.Decimal
	Gross             decimal.Decimal
	PatientShare      decimal.Decimal
	PaymentAmount     decimal.Decimal
	DenialCode        string
}

// ClaimEvent is uniquely keyed by (ClaimKeyID, Type, EventTime).
type ClaimEvent struct {
	ClaimEventID    string
	ClaimKeyID      string
	Type            EventType
	EventTime       time.Time
	IngestionFileID string
	SubmissionID    string
	RemittanceID    string
}

// ClaimEventActivity is a snapshot of an activity's state at event time,
// unique by (ClaimEventID, ActivityIDAtEvent).
type ClaimEventActivity struct {
	ClaimEventActivityID string
	ClaimEventID         string
	ActivityIDAtEvent    string
	Type                 string
	Code                 string
	Quantity             decimal.Decimal
	Net                  decimal.Decimal
	ClinicianID          string
	PaymentAmount        *decimal.Decimal
	DenialCode           string
}

type EventObservation struct {
	ClaimEventActivityID string
	Type                 string
	Code                 string
	Value                string
	ValueType            string
}

// ClaimStatusTimeline is append-only, stamped with the causing event.
type ClaimStatusTimeline struct {
	TimelineID   string
	ClaimKeyID   string
	Status       ClaimStatus
	ClaimEventID string
	CreatedAt    time.Time
}

// ClaimResubmission is the optional payload on a type-2 event.
type ClaimResubmission struct {
	ClaimEventID string
	Type         string
	Comment      string
	Attachment   []byte
}

// ClaimAttachment is unique by (ClaimKeyID, ClaimEventID, FileName).
type ClaimAttachment struct {
	AttachmentID string
	ClaimKeyID   string
	ClaimEventID string
	FileName     string
	Bytes        []byte
	SHA256       string
	Size         int
	CreatedAt    time.Time
}
