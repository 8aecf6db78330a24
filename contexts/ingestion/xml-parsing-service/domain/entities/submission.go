package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Header carries the common envelope fields present on both legal roots.
type Header struct {
	SenderID          string
	ReceiverID        string
	TransactionDate   time.Time
	RecordCount       int
	DispositionFlag   string
}

// SubmissionGraph is the fully decoded Claim.Submission document.
type SubmissionGraph struct {
	Header Header
	Claims []ClaimDTO
}

type ClaimDTO struct {
	ClaimID          string
	PayerID          string
	ProviderID       string
	EmiratesIDNumber string
	PatientID        string
	Gross            decimal.Decimal
	PatientShare     decimal.Decimal
	Net              decimal.Decimal
	Comments         string
	ContractPackage  string

	Encounter   *EncounterDTO
	Diagnoses   []DiagnosisDTO
	Activities  []ActivityDTO
	Resubmission *ResubmissionDTO
	Attachments []AttachmentDTO
}

type EncounterDTO struct {
	FacilityID        string
	PatientID         string
	Start             time.Time
	End               *time.Time
	TransferSource    string
	TransferDestination string
}

// HasRequiredFields reports whether the encounter's mandatory fields are
// present; an incomplete encounter is dropped rather than aborting the claim.
func (e EncounterDTO) HasRequiredFields() bool {
	return e.FacilityID != "" && !e.Start.IsZero()
}

type DiagnosisDTO struct {
	Type string
	Code string
}

func (d DiagnosisDTO) HasRequiredFields() bool {
	return d.Type != "" && d.Code != ""
}

type ActivityDTO struct {
	ActivityID    string
	Start         time.Time
	Type          string
	Code          string
	Quantity      decimal.Decimal
	Net           decimal.Decimal
	ClinicianID   string
	PriorAuthID   string
	Observations  []ObservationDTO
}

func (a ActivityDTO) HasRequiredFields() bool {
	return a.ActivityID != "" && !a.Start.IsZero() && a.Code != "" && a.ClinicianID != ""
}

type ObservationDTO struct {
	Type  string
	Code  string
	Value string
	ValueType string
}

func (o ObservationDTO) HasRequiredFields() bool {
	return o.Type != "" && o.Code != ""
}

type ResubmissionDTO struct {
	Type    string
	Comment string
	Attachment []byte
}

// AttachmentDTO is a detached, decoded submission-time attachment, keyed to
// the enclosing business claim id.
type AttachmentDTO struct {
	ClaimID  string
	FileName string
	Bytes    []byte
	SHA256   string
	Size     int
}
