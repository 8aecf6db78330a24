package ingestionauditservice

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/adapters/memory"
	postgresadapter "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/adapters/postgres"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/ports"
)

// Module exposes the two sinks the rest of the pipeline writes audit and
// error facts through.
type Module struct {
	Audit application.AuditSink
	Errs  application.ErrorSink
}

func NewModule(db *gorm.DB, logger *slog.Logger) Module {
	idGen := postgresadapter.UUIDGenerator{}
	clock := memory.SystemClock{}
	runs := postgresadapter.NewRunRepository(db)
	files := postgresadapter.NewFileAuditRepository(db)
	errs := postgresadapter.NewErrorRepository(db)

	return Module{
		Audit: application.AuditSink{
			Runs:   runs,
			Files:  files,
			IDGen:  idGen,
			Clock:  clock,
			Logger: logger,
		},
		Errs: application.ErrorSink{
			Repo:   errs,
			IDGen:  idGen,
			Clock:  clock,
			Logger: logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) (Module, *memory.Store) {
	store := memory.NewStore()
	idGen := &memory.SequentialIDGenerator{}
	clock := memory.SystemClock{}

	return Module{
		Audit: application.AuditSink{
			Runs:   store,
			Files:  store,
			IDGen:  idGen,
			Clock:  clock,
			Logger: logger,
		},
		Errs: application.ErrorSink{
			Repo:   store,
			IDGen:  idGen,
			Clock:  clock,
			Logger: logger,
		},
	}, store
}

var (
	_ ports.RunRepository       = (*postgresadapter.RunRepository)(nil)
	_ ports.FileAuditRepository = (*postgresadapter.FileAuditRepository)(nil)
	_ ports.ErrorRepository     = (*postgresadapter.ErrorRepository)(nil)
	_ ports.RunRepository       = (*memory.Store)(nil)
	_ ports.FileAuditRepository = (*memory.Store)(nil)
	_ ports.ErrorRepository     = (*memory.Store)(nil)
	_ ports.IDGenerator         = (*memory.SequentialIDGenerator)(nil)
	_ ports.IDGenerator         = postgresadapter.UUIDGenerator{}
	_ ports.Clock               = memory.SystemClock{}
)
