package claimspersistenceservice

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/adapters/memory"
	postgresadapter "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/adapters/postgres"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/ports"
)

// Module bundles the wired Engine and the narrower FileRepository surface
// the pipeline controller needs directly.
type Module struct {
	Engine application.Engine
	Files  ports.FileRepository
}

// NewModule wires the production postgres-backed adapters. resolver and
// errorSink come from the composition root, since both are owned by
// sibling bounded contexts.
func NewModule(db *gorm.DB, resolver ports.Resolver, errorSink ports.ErrorReporter, logger *slog.Logger) Module {
	idGen := postgresadapter.UUIDGenerator{}
	return Module{
		Engine: application.Engine{
			Graph:     postgresadapter.NewGraphRepository(db, idGen),
			Resolver:  resolver,
			ErrorSink: errorSink,
			IDGen:     idGen,
			Clock:     memory.SystemClock{},
			Logger:    logger,
		},
		Files: postgresadapter.NewFileRepository(db),
	}
}

// NewInMemoryModule wires an all-in-memory Module for unit tests, returning
// the backing Store so tests can assert on persisted rows directly.
func NewInMemoryModule(logger *slog.Logger) (Module, *memory.Store) {
	store := memory.NewStore()
	idGen := &memory.SequentialIDGenerator{}
	return Module{
		Engine: application.Engine{
			Graph:     store,
			Resolver:  memory.NewStubResolver(),
			ErrorSink: &memory.RecordingErrorReporter{},
			IDGen:     idGen,
			Clock:     memory.SystemClock{},
			Logger:    logger,
		},
		Files: store,
	}, store
}

var (
	_ ports.GraphRepository = (*postgresadapter.GraphRepository)(nil)
	_ ports.FileRepository  = (*postgresadapter.FileRepository)(nil)
	_ ports.GraphRepository = (*memory.Store)(nil)
	_ ports.FileRepository  = (*memory.Store)(nil)
	_ ports.Resolver        = (*memory.StubResolver)(nil)
	_ ports.IDGenerator     = (*memory.SequentialIDGenerator)(nil)
	_ ports.IDGenerator     = postgresadapter.UUIDGenerator{}
	_ ports.ErrorReporter   = (*memory.RecordingErrorReporter)(nil)
	_ ports.ErrorReporter   = memory.NoopErrorReporter{}
	_ ports.Clock           = memory.SystemClock{}
)
