package postgresadapter

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/domain/entities"
)

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) StartRun(ctx context.Context, run entities.IngestionRun) error {
	row := ingestionRunModel{
		RunID:     run.RunID,
		StartedAt: run.StartedAt,
	}
	return independentSession(r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "run_id"}},
			DoNothing: true,
		}).Create(&row).Error
	})
}

func (r *RunRepository) EndRun(ctx context.Context, runID string, endedAt time.Time, counters entities.IngestionRun) error {
	return independentSession(r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&ingestionRunModel{}).
			Where("run_id = ?", runID).
			Updates(map[string]any{
				"ended_at":           endedAt,
				"discovered":         counters.Discovered,
				"pulled":             counters.Pulled,
				"ok_count":           counters.OK,
				"failed_count":       counters.Failed,
				"already_seen_count": counters.AlreadySeen,
				"acks_sent":          counters.AcksSent,
			}).Error
	})
}

func (r *RunRepository) RunExists(ctx context.Context, runID string) (bool, error) {
	var count int64
	err := independentSession(r.db).WithContext(ctx).Model(&ingestionRunModel{}).
		Where("run_id = ?", runID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
