package postgresadapter

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/domain/entities"
)

type FileAuditRepository struct {
	db *gorm.DB
}

func NewFileAuditRepository(db *gorm.DB) *FileAuditRepository {
	return &FileAuditRepository{db: db}
}

func (r *FileAuditRepository) RecordFileOutcome(ctx context.Context, audit entities.IngestionFileAudit) error {
	row := ingestionFileAuditModel{
		AuditID:         audit.AuditID,
		RunID:           audit.RunID,
		IngestionFileID: audit.IngestionFileID,
		Status:          int16(audit.Status),
		ParsedCount:     audit.ParsedCount,
		PersistedCount:  audit.PersistedCount,
		Verified:        audit.Verified,
		AckResult:       audit.AckResult,
		CreatedAt:       audit.CreatedAt,
	}
	return independentSession(r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "run_id"}, {Name: "ingestion_file_id"}},
			DoNothing: true,
		}).Create(&row).Error
	})
}

type ErrorRepository struct {
	db *gorm.DB
}

func NewErrorRepository(db *gorm.DB) *ErrorRepository {
	return &ErrorRepository{db: db}
}

func (r *ErrorRepository) InsertError(ctx context.Context, e entities.IngestionError) error {
	row := ingestionErrorModel{
		ErrorID:         e.ErrorID,
		IngestionFileID: e.IngestionFileID,
		Scope:           string(e.Scope),
		ObjectKey:       e.ObjectKey,
		Stage:           e.Stage,
		Code:            e.Code,
		Message:         e.Message,
		Retryable:       e.Retryable,
		CreatedAt:       e.CreatedAt,
	}
	return independentSession(r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
}
