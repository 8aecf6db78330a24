package postgresadapter

import (
	"context"

	"gorm.io/gorm"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/domain/entities"
)

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) SaveRun(ctx context.Context, run entities.VerificationRun, results []entities.VerificationResult) error {
	runRow := verificationRunModel{
		RunID:           run.RunID,
		IngestionFileID: run.IngestionFileID,
		StartedAt:       run.StartedAt,
		EndedAt:         run.EndedAt,
		Verified:        run.Verified,
		RulesRun:        run.RulesRun,
		RulesFailed:     run.RulesFailed,
	}

	resultRows := make([]verificationResultModel, 0, len(results))
	for _, res := range results {
		resultRows = append(resultRows, verificationResultModel{
			ResultID:     res.ResultID,
			RunID:        res.RunID,
			RuleName:     res.RuleName,
			OK:           res.OK,
			RowsAffected: res.RowsAffected,
			SampleJSON:   res.SampleJSON,
			Message:      res.Message,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&runRow).Error; err != nil {
			return err
		}
		if len(resultRows) == 0 {
			return nil
		}
		return tx.Create(&resultRows).Error
	})
}
