package application_test

import (
	"context"
	"sync"
	"testing"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/adapters/memory"
	postgresadapter "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/adapters/postgres"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/domain/entities"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/ports"
)

func newResolver() (application.Resolver, *memory.Store) {
	store := memory.NewStore()
	resolver := application.Resolver{
		Repository: store,
		Clock:      memory.SystemClock{},
		IDGen:      postgresadapter.UUIDGenerator{},
	}
	return resolver, store
}

func TestResolveAutoInsertsUnknownCode(t *testing.T) {
	resolver, store := newResolver()

	id, err := resolver.Resolve(context.Background(), ports.LookupRequest{
		Domain:          entities.DomainPayer,
		BusinessCode:    "PAYER-001",
		IngestionFileID: "file-1",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if id == "" {
		t.Fatalf("expected non-empty reference id")
	}
	if len(store.Audits()) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(store.Audits()))
	}
}

func TestResolveIsIdempotentForKnownCode(t *testing.T) {
	resolver, store := newResolver()
	ctx := context.Background()
	req := ports.LookupRequest{Domain: entities.DomainProvider, BusinessCode: "PROV-7"}

	first, err := resolver.Resolve(ctx, req)
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	second, err := resolver.Resolve(ctx, req)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected stable reference id, got %s then %s", first, second)
	}
	if len(store.Audits()) != 1 {
		t.Fatalf("expected exactly 1 audit row across repeated resolves, got %d", len(store.Audits()))
	}
}

func TestResolveRejectsBlankCode(t *testing.T) {
	resolver, _ := newResolver()
	_, err := resolver.Resolve(context.Background(), ports.LookupRequest{
		Domain:       entities.DomainFacility,
		BusinessCode: "   ",
	})
	if err == nil {
		t.Fatalf("expected error for blank business code")
	}
}

func TestResolveConcurrentFirstSightProducesOneRow(t *testing.T) {
	resolver, store := newResolver()
	ctx := context.Background()
	req := ports.LookupRequest{Domain: entities.DomainDenialCode, BusinessCode: "DN1"}

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			id, err := resolver.Resolve(ctx, req)
			if err != nil {
				t.Errorf("concurrent resolve failed: %v", err)
				return
			}
			ids[idx] = id
		}(i)
	}
	wg.Wait()

	first := ids[0]
	for _, id := range ids {
		if id != first {
			t.Fatalf("expected all concurrent resolutions to agree on one reference id, got %v", ids)
		}
	}
	if len(store.Audits()) != 1 {
		t.Fatalf("expected exactly one audit row for the single first-sight insertion, got %d", len(store.Audits()))
	}
}
