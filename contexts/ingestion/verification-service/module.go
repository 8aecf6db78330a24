package verificationservice

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/adapters/memory"
	postgresadapter "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/adapters/postgres"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/adapters/yamlrules"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/domain/entities"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/ports"
)

type Module struct {
	Verifier application.Verifier
}

func NewModule(db *gorm.DB, rulesPath string, logger *slog.Logger) (Module, error) {
	rules, err := yamlrules.Load(rulesPath)
	if err != nil {
		return Module{}, err
	}

	return Module{
		Verifier: application.Verifier{
			Rules:  rules,
			Runner: postgresadapter.NewRuleRunner(db),
			Runs:   postgresadapter.NewRunRepository(db),
			IDGen:  postgresadapter.UUIDGenerator{},
			Clock:  memory.SystemClock{},
			Logger: logger,
		},
	}, nil
}

func NewInMemoryModule(rules []entities.VerificationRule, logger *slog.Logger) (Module, *memory.Store, *memory.FakeRunner) {
	runner := memory.NewFakeRunner()
	store := memory.NewStore()

	return Module{
		Verifier: application.Verifier{
			Rules:  memory.StaticRuleSource{RuleSet: rules},
			Runner: runner,
			Runs:   store,
			IDGen:  &memory.SequentialIDGenerator{},
			Clock:  memory.SystemClock{},
			Logger: logger,
		},
	}, store, runner
}

var (
	_ ports.RuleRunner    = (*postgresadapter.RuleRunner)(nil)
	_ ports.RunRepository = (*postgresadapter.RunRepository)(nil)
	_ ports.RuleSource    = (*yamlrules.Source)(nil)
	_ ports.RuleRunner    = (*memory.FakeRunner)(nil)
	_ ports.RunRepository = (*memory.Store)(nil)
	_ ports.RuleSource    = memory.StaticRuleSource{}
	_ ports.IDGenerator   = (*memory.SequentialIDGenerator)(nil)
	_ ports.IDGenerator   = postgresadapter.UUIDGenerator{}
	_ ports.Clock         = memory.SystemClock{}
)
