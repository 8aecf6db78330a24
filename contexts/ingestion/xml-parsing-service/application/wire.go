package application

import "encoding/xml"

// Wire-format structs mirror the two fixed XML roots verbatim; struct tags
// act as the schema for the strict decode pass, per spec.md §4.3. Money and
// timestamp fields are kept as raw strings here and converted to typed
// values (and structured Problems on failure) by the conversion pass, since
// encoding/xml cannot itself reject an unparseable leaf without aborting
// the whole document.

type wireClaimSubmission struct {
	XMLName xml.Name    `xml:"Claim.Submission"`
	Header  wireHeader  `xml:"Header"`
	Claims  []wireClaim `xml:"Claim"`
}

type wireRemittanceAdvice struct {
	XMLName xml.Name             `xml:"Remittance.Advice"`
	Header  wireHeader           `xml:"Header"`
	Claims  []wireRemittanceClaim `xml:"Claim"`
}

type wireHeader struct {
	SenderID        string `xml:"SenderID"`
	ReceiverID      string `xml:"ReceiverID"`
	TransactionDate string `xml:"TransactionDate"`
	RecordCount     string `xml:"RecordCount"`
	DispositionFlag string `xml:"DispositionFlag"`
}

type wireClaim struct {
	ID               string            `xml:"ID"`
	PayerID          string            `xml:"PayerID"`
	ProviderID       string            `xml:"ProviderID"`
	EmiratesIDNumber string            `xml:"EmiratesIDNumber"`
	Gross            string            `xml:"Gross"`
	PatientShare     string            `xml:"PatientShare"`
	Net              string            `xml:"Net"`
	Comments         string            `xml:"Comments"`
	ContractPackage  string            `xml:"Contract>PackageName"`
	Encounter        *wireEncounter    `xml:"Encounter"`
	Diagnoses        []wireDiagnosis   `xml:"Diagnosis"`
	Activities       []wireActivity    `xml:"Activity"`
	Resubmission     *wireResubmission `xml:"Resubmission"`
	Attachments      []wireAttachment  `xml:"Attachment"`
}

type wireEncounter struct {
	FacilityID          string `xml:"FacilityID"`
	PatientID           string `xml:"PatientID"`
	Start               string `xml:"Start"`
	End                 string `xml:"End"`
	TransferSource      string `xml:"TransferSource"`
	TransferDestination string `xml:"TransferDestination"`
}

type wireDiagnosis struct {
	Type string `xml:"Type"`
	Code string `xml:"Code"`
}

type wireActivity struct {
	ID           string            `xml:"ID"`
	Start        string            `xml:"Start"`
	Type         string            `xml:"Type"`
	Code         string            `xml:"Code"`
	Quantity     string            `xml:"Quantity"`
	Net          string            `xml:"Net"`
	Clinician    string            `xml:"Clinician"`
	PriorAuthID  string            `xml:"PriorAuthorizationID"`
	Observations []wireObservation `xml:"Observation"`
}

type wireObservation struct {
	Type  string `xml:"Type"`
	Code  string `xml:"Code"`
	Value string `xml:"Value"`
	ValueType string `xml:"ValueType"`
}

type wireResubmission struct {
	Type       string `xml:"Type"`
	Comment    string `xml:"Comment"`
	Attachment string `xml:"Attachment"`
}

type wireAttachment struct {
	ClaimID  string `xml:"ClaimID"`
	FileName string `xml:"FileName"`
	Data     string `xml:",chardata"`
}

type wireRemittanceClaim struct {
	ID               string                    `xml:"ID"`
	IDPayer          string                    `xml:"IDPayer"`
	ProviderID       string                    `xml:"ProviderID"`
	DenialCode       string                    `xml:"DenialCode"`
	PaymentReference string                    `xml:"PaymentReference"`
	DateSettlement   string                    `xml:"DateSettlement"`
	FacilityID       string                    `xml:"FacilityID"`
	Comment          string                    `xml:"Comment"`
	Activities       []wireRemittanceActivity  `xml:"Activity"`
}

type wireRemittanceActivity struct {
	ID            string `xml:"ID"`
	Type          string `xml:"Type"`
	Code          string `xml:"Code"`
	Quantity      string `xml:"Quantity"`
	Net           string `xml:"Net"`
	ListPrice     string `xml:"ListPrice"`
	Gross         string `xml:"Gross"`
	PatientShare  string `xml:"PatientShare"`
	PaymentAmount string `xml:"PaymentAmount"`
	DenialCode    string `xml:"DenialCode"`
}
