package fetchorchestrationservice

import (
	"log/slog"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/adapters/ackers"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/adapters/idgen"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/adapters/localfs"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/adapters/memory"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/ports"
)

// Dependencies carries every sibling-service port the pipeline controller
// drives; bootstrap wires these from the other five bounded contexts'
// module constructors.
type Dependencies struct {
	Files    ports.FileRepository
	Parser   ports.Parser
	Persist  ports.Persister
	Verify   ports.Verifier
	Errors   ports.ErrorSink
	Audit    ports.AuditSink
	Acker    ports.Acker
	Archiver ports.Archiver
}

// Module exposes the orchestrator the bootstrap process runs.
type Module struct {
	Orchestrator *application.Orchestrator
}

func NewModule(cfg application.Config, orchCfg application.OrchestratorConfig, fetcher ports.Fetcher, deps Dependencies, logger *slog.Logger) Module {
	controller := application.Controller{
		Config:   cfg,
		Files:    deps.Files,
		Parser:   deps.Parser,
		Persist:  deps.Persist,
		Verify:   deps.Verify,
		Errors:   deps.Errors,
		Audit:    deps.Audit,
		Acker:    deps.Acker,
		Archiver: deps.Archiver,
		IDGen:    idgen.UUIDGenerator{},
		Clock:    memory.SystemClock{},
		Logger:   logger,
	}

	orchestrator := application.NewOrchestrator(orchCfg, fetcher, controller, deps.Audit, logger)

	return Module{Orchestrator: orchestrator}
}

var (
	_ ports.Fetcher  = (*localfs.Fetcher)(nil)
	_ ports.Archiver = localfs.Archiver{}
	_ ports.Acker    = ackers.NoopAcker{}
	_ ports.Acker    = ackers.LogOnlyAcker{}
	_ ports.Acker    = ackers.BoundedRetryAcker{}
	_ ports.Fetcher  = (*memory.FixedFetcher)(nil)
	_ ports.Acker    = (*memory.RecordingAcker)(nil)
	_ ports.Archiver = memory.NoopArchiver{}
	_ ports.IDGenerator = idgen.UUIDGenerator{}
	_ ports.IDGenerator = (*memory.SequentialIDGenerator)(nil)
	_ ports.Clock       = memory.SystemClock{}
)
