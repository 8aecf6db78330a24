package postgresadapter

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/domain/entities"
)

// RuleRunner executes each VerificationRule's SQL as a raw, read-only query
// scoped by ingestion_file_id. Queries are parameterized with gorm's ? /
// named-arg binding, never string-concatenated, so rule authors cannot
// introduce SQL injection through a YAML file.
type RuleRunner struct {
	db *gorm.DB
}

func NewRuleRunner(db *gorm.DB) *RuleRunner {
	return &RuleRunner{db: db}
}

func (r *RuleRunner) Run(ctx context.Context, ingestionFileID string, rule entities.VerificationRule) (bool, int, string, error) {
	var rows []map[string]any
	err := r.db.WithContext(ctx).Raw(rule.Query, ingestionFileID).Scan(&rows).Error
	if err != nil {
		return false, 0, "", err
	}

	rowsAffected := len(rows)
	ok := rowsAffected == 0
	if !rule.ExpectZeroRows {
		ok = rowsAffected > 0
	}

	limit := rule.SampleLimit
	if limit <= 0 {
		limit = 5
	}
	if rowsAffected > limit {
		rows = rows[:limit]
	}

	sampleJSON := ""
	if len(rows) > 0 {
		encoded, err := json.Marshal(rows)
		if err != nil {
			return false, 0, "", err
		}
		sampleJSON = string(encoded)
	}

	return ok, rowsAffected, sampleJSON, nil
}
