package application_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/domain/entities"
)

const submissionXML = `<?xml version="1.0" encoding="UTF-8"?>
<Claim.Submission>
  <Header>
    <SenderID>S1</SenderID>
    <ReceiverID>R1</ReceiverID>
    <TransactionDate>01/02/2026 09:00</TransactionDate>
    <RecordCount>1</RecordCount>
    <DispositionFlag>OK</DispositionFlag>
  </Header>
  <Claim>
    <ID>C1</ID>
    <PayerID>P1</PayerID>
    <ProviderID>PR1</ProviderID>
    <EmiratesIDNumber>784-1111</EmiratesIDNumber>
    <Gross>100.00</Gross>
    <PatientShare>0.00</PatientShare>
    <Net>100.00</Net>
    <Activity>
      <ID>A1</ID>
      <Start>01/02/2026 09:00</Start>
      <Type>3</Type>
      <Code>CODE1</Code>
      <Quantity>1</Quantity>
      <Net>100.00</Net>
      <Clinician>CL1</Clinician>
    </Activity>
  </Claim>
</Claim.Submission>`

func TestParseSubmissionHappyPath(t *testing.T) {
	parser := application.NewParser(0, false)
	outcome, err := parser.Parse([]byte(submissionXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.HasFatal() {
		t.Fatalf("unexpected fatal problems: %+v", outcome.Problems)
	}
	if outcome.RootType != entities.RootTypeSubmission {
		t.Fatalf("expected RootTypeSubmission, got %v", outcome.RootType)
	}
	if outcome.Submission == nil || len(outcome.Submission.Claims) != 1 {
		t.Fatalf("expected one claim, got %+v", outcome.Submission)
	}
	claim := outcome.Submission.Claims[0]
	if claim.ClaimID != "C1" || len(claim.Activities) != 1 {
		t.Fatalf("unexpected claim: %+v", claim)
	}
	if !claim.Net.Equal(claim.Activities[0].Net) {
		t.Fatalf("expected claim net to equal activity net in this fixture")
	}
}

func TestParseUnknownRootIsFatal(t *testing.T) {
	parser := application.NewParser(0, false)
	outcome, err := parser.Parse([]byte(`<Something.Else><X/></Something.Else>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.HasFatal() {
		t.Fatalf("expected a fatal problem for an unknown root")
	}
}

func TestParseEmptyDocumentIsFatal(t *testing.T) {
	parser := application.NewParser(0, false)
	outcome, err := parser.Parse([]byte(``))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.HasFatal() {
		t.Fatalf("expected a fatal problem for an empty document")
	}
}

func activityMissingClinicianXML() string {
	return strings.Replace(submissionXML, "<Clinician>CL1</Clinician>", "<Clinician></Clinician>", 1)
}

func TestParseActivityMissingRequiredFieldIsSkippedWithProblem(t *testing.T) {
	parser := application.NewParser(0, false)
	outcome, err := parser.Parse([]byte(activityMissingClinicianXML()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.Submission.Claims[0].Activities) != 0 {
		t.Fatalf("expected the incomplete activity to be dropped")
	}
	found := false
	for _, p := range outcome.Problems {
		if p.ObjectType == "Activity" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a structured problem reporting the dropped activity, got %+v", outcome.Problems)
	}
}

func buildSubmissionWithAttachment(payload string) string {
	return `<Claim.Submission>
  <Header>
    <SenderID>S1</SenderID>
    <ReceiverID>R1</ReceiverID>
    <TransactionDate>2026-01-02 09:00:00</TransactionDate>
    <RecordCount>1</RecordCount>
    <DispositionFlag>OK</DispositionFlag>
  </Header>
  <Claim>
    <ID>C1</ID>
    <PayerID>P1</PayerID>
    <ProviderID>PR1</ProviderID>
    <EmiratesIDNumber>784-1111</EmiratesIDNumber>
    <Attachment><ClaimID>C1</ClaimID><FileName>report.pdf</FileName>` + payload + `</Attachment>
  </Claim>
</Claim.Submission>`
}

func TestParseAttachmentWithinCapSucceeds(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("hello attachment"))
	parser := application.NewParser(len("hello attachment"), false)
	outcome, err := parser.Parse([]byte(buildSubmissionWithAttachment(payload)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.Attachments) != 1 {
		t.Fatalf("expected one detached attachment, got %+v", outcome.Attachments)
	}
	if outcome.Attachments[0].Size != len("hello attachment") {
		t.Fatalf("unexpected attachment size: %d", outcome.Attachments[0].Size)
	}
}

func TestParseAttachmentOverCapIsFatal(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("hello attachment"))
	parser := application.NewParser(len("hello attachment") - 1, false)
	outcome, err := parser.Parse([]byte(buildSubmissionWithAttachment(payload)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.HasFatal() {
		t.Fatalf("expected a fatal attachment-too-large problem")
	}
}

const remittanceXML = `<Remittance.Advice>
  <Header>
    <SenderID>S1</SenderID>
    <ReceiverID>R1</ReceiverID>
    <TransactionDate>2026-01-02 09:00:00</TransactionDate>
    <RecordCount>1</RecordCount>
    <DispositionFlag>OK</DispositionFlag>
  </Header>
  <Claim>
    <ID>C1</ID>
    <IDPayer>P1</IDPayer>
    <ProviderID>PR1</ProviderID>
    <PaymentReference>PAY-1</PaymentReference>
    <Activity>
      <ID>A1</ID>
      <Code>CODE1</Code>
      <PaymentAmount>100.00</PaymentAmount>
    </Activity>
  </Claim>
</Remittance.Advice>`

func claimWithUnparseableGrossXML() string {
	return strings.Replace(submissionXML, "<Gross>100.00</Gross>", "<Gross>not-a-number</Gross>", 1)
}

func TestParseContainedRecordErrorIsNotFatal(t *testing.T) {
	parser := application.NewParser(0, false)
	outcome, err := parser.Parse([]byte(claimWithUnparseableGrossXML()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.HasFatal() {
		t.Fatalf("a record-level problem must not abort the file, got: %+v", outcome.Problems)
	}
	if outcome.Submission == nil || len(outcome.Submission.Claims) != 1 {
		t.Fatalf("expected the claim to still persist despite the bad money field, got %+v", outcome.Submission)
	}
	found := false
	for _, p := range outcome.Problems {
		if p.Stage == entities.StageRecord && p.Severity == entities.SeverityError {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a RECORD-stage ERROR problem for the unparseable Gross, got %+v", outcome.Problems)
	}
}

func submissionWithoutClaimXML() string {
	return `<Claim.Submission>
  <Header>
    <SenderID>S1</SenderID>
    <ReceiverID>R1</ReceiverID>
    <TransactionDate>2026-01-02 09:00:00</TransactionDate>
    <RecordCount>0</RecordCount>
    <DispositionFlag>OK</DispositionFlag>
  </Header>
</Claim.Submission>`
}

func TestParseOccurrenceViolationToleratedUnlessStrict(t *testing.T) {
	lenient := application.NewParser(0, false)
	outcome, err := lenient.Parse([]byte(submissionWithoutClaimXML()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.HasFatal() {
		t.Fatalf("expected the occurrence violation to be tolerated when failOnXsdError is false, got %+v", outcome.Problems)
	}

	strict := application.NewParser(0, true)
	outcome, err = strict.Parse([]byte(submissionWithoutClaimXML()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.HasFatal() {
		t.Fatalf("expected the occurrence violation to be fatal when failOnXsdError is true")
	}
}

func TestParseRemittanceHappyPath(t *testing.T) {
	parser := application.NewParser(0, false)
	outcome, err := parser.Parse([]byte(remittanceXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.RootType != entities.RootTypeRemittance {
		t.Fatalf("expected RootTypeRemittance, got %v", outcome.RootType)
	}
	if outcome.Remittance == nil || len(outcome.Remittance.Claims) != 1 {
		t.Fatalf("expected one remittance claim, got %+v", outcome.Remittance)
	}
}
