package refresolver

import (
	"context"

	resolverentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/domain/entities"
	resolverports "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/ports"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/ports"
)

// Adapter translates the persistence engine's narrow ports.Resolver
// contract into a call against the reference-resolution-service, so the
// persistence package never needs to import that service's domain types
// directly.
type Adapter struct {
	Resolver resolverports.Resolver
}

func New(resolver resolverports.Resolver) Adapter {
	return Adapter{Resolver: resolver}
}

func (a Adapter) Resolve(ctx context.Context, req ports.ReferenceLookup) (string, error) {
	return a.Resolver.Resolve(ctx, resolverports.LookupRequest{
		Domain:          resolverentities.ReferenceDomain(req.Domain),
		BusinessCode:    req.BusinessCode,
		Hints:           resolverports.Hints{DisplayName: req.DisplayName},
		IngestionFileID: req.IngestionFileID,
		ClaimBusinessID: req.ClaimBusinessID,
	})
}
