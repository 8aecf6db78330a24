package ports

import (
	"context"
	"time"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// RuleSource supplies the active rule set, e.g. loaded once from a YAML file
// at startup.
type RuleSource interface {
	Rules() []entities.VerificationRule
}

// RuleRunner executes one rule's predicate against the persisted state for
// a single ingestion file and reports what it found. Implementations run
// the rule's SQL scoped by ingestion_file_id.
type RuleRunner interface {
	Run(ctx context.Context, ingestionFileID string, rule entities.VerificationRule) (ok bool, rowsAffected int, sampleJSON string, err error)
}

// RunRepository persists VerificationRun and VerificationResult rows.
type RunRepository interface {
	SaveRun(ctx context.Context, run entities.VerificationRun, results []entities.VerificationResult) error
}
