package application

import (
	"context"
	"log/slog"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/domain/entities"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/ports"
)

const (
	module = "ingestion/verification-service"
	layer  = "application"
)

// Verifier runs every active rule against a single file's persisted state
// and records the outcome, per spec.md §4.5: the file is verified iff every
// rule yields ok=true.
type Verifier struct {
	Rules  ports.RuleSource
	Runner ports.RuleRunner
	Runs   ports.RunRepository
	IDGen  ports.IDGenerator
	Clock  ports.Clock
	Logger *slog.Logger
}

// Verify executes the active rule set for ingestionFileID and returns
// whether the file passed every rule.
func (v Verifier) Verify(ctx context.Context, ingestionFileID string) (bool, error) {
	logger := ResolveLogger(v.Logger)

	runID, err := v.IDGen.NewID(ctx)
	if err != nil {
		return false, err
	}
	startedAt := v.Clock.Now().UTC()

	rules := v.Rules.Rules()
	results := make([]entities.VerificationResult, 0, len(rules))
	failed := 0

	for _, rule := range rules {
		ok, rowsAffected, sampleJSON, err := v.Runner.Run(ctx, ingestionFileID, rule)
		if err != nil {
			logger.Error("verification rule execution failed",
				"event", "verification_rule_error",
				"module", module,
				"layer", layer,
				"ingestion_file_id", ingestionFileID,
				"rule", rule.Name,
				"error", err.Error(),
			)
			return false, err
		}
		if !ok {
			failed++
		}

		resultID, err := v.IDGen.NewID(ctx)
		if err != nil {
			return false, err
		}
		results = append(results, entities.VerificationResult{
			ResultID:     resultID,
			RunID:        runID,
			RuleName:     rule.Name,
			OK:           ok,
			RowsAffected: rowsAffected,
			SampleJSON:   sampleJSON,
			Message:      ruleMessage(rule, ok, rowsAffected),
		})
	}

	verified := failed == 0
	run := entities.VerificationRun{
		RunID:           runID,
		IngestionFileID: ingestionFileID,
		StartedAt:       startedAt,
		EndedAt:         v.Clock.Now().UTC(),
		Verified:        verified,
		RulesRun:        len(rules),
		RulesFailed:     failed,
	}

	if err := v.Runs.SaveRun(ctx, run, results); err != nil {
		logger.Error("verification run persist failed",
			"event", "verification_run_persist_failed",
			"module", module,
			"layer", layer,
			"ingestion_file_id", ingestionFileID,
			"error", err.Error(),
		)
		return false, err
	}

	logger.Info("verification completed",
		"event", "verification_completed",
		"module", module,
		"layer", layer,
		"ingestion_file_id", ingestionFileID,
		"verified", verified,
		"rules_run", len(rules),
		"rules_failed", failed,
	)

	return verified, nil
}

func ruleMessage(rule entities.VerificationRule, ok bool, rowsAffected int) string {
	if ok {
		return "rule satisfied"
	}
	if rule.ExpectZeroRows {
		return "rule expected zero matching rows but found some"
	}
	return "rule expected matching rows but found none"
}
