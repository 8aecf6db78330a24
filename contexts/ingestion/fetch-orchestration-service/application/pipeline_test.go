package application_test

import (
	"context"
	"testing"

	auditentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/domain/entities"
	ingestionauditservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service"

	claimspersistenceservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service"

	verificationservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service"
	verificationentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/domain/entities"

	xmlparsingservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/adapters/memory"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/domain/entities"
)

const submissionXML = `<Claim.Submission>
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
    <Activity>
      <ID>A1</ID>
      <Start>2026-01-02 09:00:00</Start>
      <Type>3</Type>
      <Code>CODE1</Code>
      <Quantity>1</Quantity>
      <Net>100.00</Net>
      <Clinician>CL1</Clinician>
    </Activity>
  </Claim>
</Claim.Submission>`

func newController(t *testing.T) (application.Controller, *memory.SequentialIDGenerator) {
	t.Helper()

	persistModule, _ := claimspersistenceservice.NewInMemoryModule(nil)
	parserModule := xmlparsingservice.NewModule(0, false)
	rules := []verificationentities.VerificationRule{}
	verifyModule, _, _ := verificationservice.NewInMemoryModule(rules, nil)
	auditModule, _ := ingestionauditservice.NewInMemoryModule(nil)

	idGen := &memory.SequentialIDGenerator{}

	controller := application.Controller{
		Config: application.Config{StageToDisk: false, AckEnabled: false},
		Files:  persistModule.Files,
		Parser: parserModule.Parser,
		Persist: persistModule.Engine,
		Verify:  verifyModule.Verifier,
		Errors:  auditModule.Errs,
		Audit:   auditModule.Audit,
		IDGen:   idGen,
		Clock:   memory.SystemClock{},
	}
	return controller, idGen
}

func TestProcessFileHappyPathIsOK(t *testing.T) {
	controller, _ := newController(t)
	ctx := context.Background()

	item := entities.WorkItem{ExternalFileID: "file-1", RawBytes: []byte(submissionXML)}
	outcome := controller.ProcessFile(ctx, "run-1", item)

	if outcome.Status != auditentities.FileAuditOK {
		t.Fatalf("expected OK, got %v", outcome.Status)
	}
}

const submissionWithContainedRecordProblemXML = `<Claim.Submission>
  <Header>
    <SenderID>S1</SenderID>
    <ReceiverID>R1</ReceiverID>
    <TransactionDate>2026-01-02 09:00:00</TransactionDate>
    <RecordCount>2</RecordCount>
    <DispositionFlag>OK</DispositionFlag>
  </Header>
  <Claim>
    <ID>C1</ID>
    <PayerID>P1</PayerID>
    <ProviderID>PR1</ProviderID>
    <EmiratesIDNumber>784-1111</EmiratesIDNumber>
    <Activity>
      <ID>A1</ID>
      <Start>2026-01-02 09:00:00</Start>
      <Type>3</Type>
      <Code>CODE1</Code>
      <Quantity>1</Quantity>
      <Net>100.00</Net>
      <Clinician>CL1</Clinician>
    </Activity>
  </Claim>
  <Claim>
    <ID>C2</ID>
    <PayerID>P1</PayerID>
    <ProviderID>PR1</ProviderID>
    <EmiratesIDNumber>784-2222</EmiratesIDNumber>
    <Activity>
      <ID>A2</ID>
      <Start>2026-01-02 09:00:00</Start>
      <Type>3</Type>
      <Code>CODE2</Code>
      <Quantity>1</Quantity>
      <Net>50.00</Net>
      <Clinician></Clinician>
    </Activity>
  </Claim>
</Claim.Submission>`

// A malformed sub-record (here, claim C2's activity is missing its
// required Clinician and gets dropped) must not abort the whole file —
// only the offending record is skipped, per the containment invariant.
func TestProcessFileRecordLevelProblemDoesNotFailFile(t *testing.T) {
	controller, _ := newController(t)
	ctx := context.Background()

	item := entities.WorkItem{ExternalFileID: "file-4", RawBytes: []byte(submissionWithContainedRecordProblemXML)}
	outcome := controller.ProcessFile(ctx, "run-1", item)

	if outcome.Status != auditentities.FileAuditOK {
		t.Fatalf("expected a record-level problem to still persist the file as OK, got %v", outcome.Status)
	}
}

func TestProcessFileUnknownRootIsFail(t *testing.T) {
	controller, _ := newController(t)
	ctx := context.Background()

	item := entities.WorkItem{ExternalFileID: "file-2", RawBytes: []byte(`<Something.Else><X/></Something.Else>`)}
	outcome := controller.ProcessFile(ctx, "run-1", item)

	if outcome.Status != auditentities.FileAuditFail {
		t.Fatalf("expected FAIL, got %v", outcome.Status)
	}
}

func TestProcessFileReplayIsAlready(t *testing.T) {
	controller, _ := newController(t)
	ctx := context.Background()

	item := entities.WorkItem{ExternalFileID: "file-3", RawBytes: []byte(submissionXML)}
	first := controller.ProcessFile(ctx, "run-1", item)
	if first.Status != auditentities.FileAuditOK {
		t.Fatalf("expected first run OK, got %v", first.Status)
	}

	second := controller.ProcessFile(ctx, "run-1", item)
	if second.Status != auditentities.FileAuditAlready {
		t.Fatalf("expected replay to be ALREADY, got %v", second.Status)
	}
}
