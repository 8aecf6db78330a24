// Package bootstrap is the composition root: it owns construction and
// wiring so the six bounded-context packages stay framework-agnostic.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	claimspersistenceservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/adapters/refresolver"

	fetchorchestrationservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/adapters/ackers"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/adapters/localfs"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/application"
	fetchports "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/ports"

	ingestionauditservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service"
	referenceresolutionservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service"
	verificationservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service"
	xmlparsingservice "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/internal/platform/config"
	platformdb "github.com/haramkhor2011-ship-it/claims-app-sub013/internal/platform/db"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/internal/platform/httpserver"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/internal/platform/logging"
)

// App wires and runs every bounded context behind a single process
// lifecycle: an HTTP liveness/readiness listener alongside the ingestion
// orchestrator, stopped together on shutdown.
type App struct {
	cfg config.Config

	db         *gorm.DB
	httpServer *httpserver.Server
	orchestrator *application.Orchestrator

	logger *slog.Logger
}

// Build constructs every adapter and wires the six bounded-context modules
// together, mirroring the teacher's "create infra adapters, then inject
// ports into modules" composition order.
func Build(cfg config.Config) (*App, error) {
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	gdb, err := platformdb.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	resolverModule := referenceresolutionservice.NewModule(gdb, logger)
	auditModule := ingestionauditservice.NewModule(gdb, logger)
	persistModule := claimspersistenceservice.NewModule(gdb, refresolver.New(resolverModule.Resolver), auditModule.Errs, logger)
	parserModule := xmlparsingservice.NewModule(cfg.ParserMaxAttachmentBytes, cfg.ParserFailOnXsdError)

	verifyModule, err := verificationservice.NewModule(gdb, cfg.VerificationRulesPath, logger)
	if err != nil {
		return nil, fmt.Errorf("wiring verification rules: %w", err)
	}

	fetcher := localfs.NewFetcher(cfg.LocalFSReadyDir, logger)
	archiver := localfs.NewArchiver(cfg.LocalFSArchiveOkDir, cfg.LocalFSArchiveFail)

	var acker fetchports.Acker = ackers.NoopAcker{}
	if cfg.AckEnabled {
		acker = ackers.LogOnlyAcker{Logger: logger}
	}

	orchModule := fetchorchestrationservice.NewModule(
		application.Config{StageToDisk: cfg.StageToDisk, AckEnabled: cfg.AckEnabled},
		application.OrchestratorConfig{
			QueueCapacity: cfg.QueueCapacity,
			WorkerCount:   cfg.ConcurrencyWorkers,
			PollInterval:  cfg.PollFixedDelay,
		},
		fetcher,
		fetchorchestrationservice.Dependencies{
			Files:    persistModule.Files,
			Parser:   parserModule.Parser,
			Persist:  persistModule.Engine,
			Verify:   verifyModule.Verifier,
			Errors:   auditModule.Errs,
			Audit:    auditModule.Audit,
			Acker:    acker,
			Archiver: archiver,
		},
		logger,
	)

	httpSrv := httpserver.New(":"+cfg.HTTPPort, func(ctx context.Context) error {
		return platformdb.Ping(ctx, gdb)
	}, logger)

	return &App{
		cfg:          cfg,
		db:           gdb,
		httpServer:   httpSrv,
		orchestrator: orchModule.Orchestrator,
		logger:       logger,
	}, nil
}

// Run starts the HTTP listener and the ingestion orchestrator, blocking
// until ctx is cancelled, then drains in-flight work before returning.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		errCh <- a.httpServer.Start()
	}()

	go func() {
		errCh <- a.orchestrator.Run(ctx)
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown failed", "event", "bootstrap_http_shutdown_failed", "module", "internal/app/bootstrap", "layer", "platform", "error", err.Error())
	}

	// Wait for both goroutines: the orchestrator returns only once its
	// in-flight work has finished.
	for i := 0; i < cap(errCh); i++ {
		<-errCh
	}

	return nil
}

// Close releases the database pool. Call after Run returns.
func (a *App) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
