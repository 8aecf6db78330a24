package referenceresolutionservice

import (
	"log/slog"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/adapters/memory"
	postgresadapter "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/adapters/postgres"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/ports"

	"gorm.io/gorm"
)

// Module exposes the resolver use case wired to a concrete repository.
type Module struct {
	Resolver application.Resolver
}

func NewModule(db *gorm.DB, logger *slog.Logger) Module {
	repo := postgresadapter.NewRepository(db)
	return Module{
		Resolver: application.Resolver{
			Repository: repo,
			Clock:      memory.SystemClock{},
			IDGen:      postgresadapter.UUIDGenerator{},
			Logger:     logger,
		},
	}
}

// NewInMemoryModule wires the resolver against the in-process store, for
// tests and for local-development bootstraps without a database.
func NewInMemoryModule(logger *slog.Logger) (Module, *memory.Store) {
	store := memory.NewStore()
	module := Module{
		Resolver: application.Resolver{
			Repository: store,
			Clock:      memory.SystemClock{},
			IDGen:      postgresadapter.UUIDGenerator{},
			Logger:     logger,
		},
	}
	return module, store
}

var _ ports.Resolver = application.Resolver{}
