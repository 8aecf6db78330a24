package application_test

import (
	"context"
	"testing"
	"time"

	ingestionauditservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service"
	auditmemory "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/adapters/memory"

	claimspersistenceservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service"

	verificationservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service"
	verificationentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/domain/entities"

	xmlparsingservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/adapters/memory"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/domain/entities"
)

func newOrchestrator(t *testing.T, items []entities.WorkItem) (*application.Orchestrator, *auditmemory.Store) {
	t.Helper()

	persistModule, _ := claimspersistenceservice.NewInMemoryModule(nil)
	parserModule := xmlparsingservice.NewModule(0, false)
	verifyModule, _, _ := verificationservice.NewInMemoryModule([]verificationentities.VerificationRule{}, nil)
	auditModule, auditStore := ingestionauditservice.NewInMemoryModule(nil)

	controller := application.Controller{
		Config:  application.Config{StageToDisk: false, AckEnabled: false},
		Files:   persistModule.Files,
		Parser:  parserModule.Parser,
		Persist: persistModule.Engine,
		Verify:  verifyModule.Verifier,
		Errors:  auditModule.Errs,
		Audit:   auditModule.Audit,
		IDGen:   &memory.SequentialIDGenerator{},
		Clock:   memory.SystemClock{},
	}

	fetcher := &memory.FixedFetcher{Items: items}

	orch := application.NewOrchestrator(application.OrchestratorConfig{
		QueueCapacity: 10,
		WorkerCount:   2,
		PollInterval:  2 * time.Millisecond,
	}, fetcher, controller, auditModule.Audit, nil)

	return orch, auditStore
}

func TestOrchestratorProcessesEveryDiscoveredItem(t *testing.T) {
	items := []entities.WorkItem{
		{ExternalFileID: "a", RawBytes: []byte(submissionXML)},
		{ExternalFileID: "b", RawBytes: []byte(submissionXML)},
		{ExternalFileID: "c", RawBytes: []byte(`<Unknown.Root/>`)},
	}
	orch, auditStore := newOrchestrator(t, items)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	_ = orch.Run(ctx)

	audits := auditStore.Audits()
	if len(audits) != len(items) {
		t.Fatalf("expected %d file audit rows, got %d", len(items), len(audits))
	}
}

func TestOrchestratorEndsRunOnContextCancellation(t *testing.T) {
	orch, _ := newOrchestrator(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := orch.Run(ctx)
	if err == nil {
		t.Fatal("expected context deadline error")
	}
}
