package postgresadapter

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/domain/entities"
)

// FileRepository owns the IngestionFile stub-insert/header-update lifecycle
// the pipeline controller drives outside any one claim's scope.
type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

// UpsertStub inserts the header-sentinel row, or returns the existing row's
// id when the external file id was already seen, per spec.md §4.2 step 2.
func (r *FileRepository) UpsertStub(ctx context.Context, stub entities.IngestionFile) (string, bool, error) {
	row := ingestionFileModel{
		IngestionFileID: stub.IngestionFileID,
		ExternalFileID:  stub.ExternalFileID,
		RootType:        int16(stub.RootType),
		SenderID:        stub.SenderID,
		ReceiverID:      stub.ReceiverID,
		DispositionFlag: stub.DispositionFlag,
		RecordCount:     stub.RecordCount,
		RawBytes:        stub.RawBytes,
		CreatedAt:       stub.CreatedAt,
		UpdatedAt:       stub.UpdatedAt,
	}
	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_file_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return "", false, createResult.Error
	}

	var final ingestionFileModel
	if err := r.db.WithContext(ctx).
		Where("external_file_id = ?", stub.ExternalFileID).
		First(&final).Error; err != nil {
		return "", false, err
	}
	return final.IngestionFileID, createResult.RowsAffected == 0, nil
}

// UpdateHeader writes the real header fields once the header precheck has
// passed; NULL/blank values must never overwrite the sentinel, so callers
// are expected to have already resolved every field to a concrete value.
func (r *FileRepository) UpdateHeader(ctx context.Context, ingestionFileID string, file entities.IngestionFile) error {
	return r.db.WithContext(ctx).
		Model(&ingestionFileModel{}).
		Where("ingestion_file_id = ?", ingestionFileID).
		Updates(map[string]any{
			"sender_id":        file.SenderID,
			"receiver_id":      file.ReceiverID,
			"transaction_time": file.TransactionTime,
			"record_count":     file.RecordCount,
			"disposition_flag": file.DispositionFlag,
			"updated_at":       file.UpdatedAt,
		}).Error
}

// HasClaimEvent reports whether a ClaimEvent already references this file,
// implementing the idempotence shortcut of spec.md §4.2 step 6.
func (r *FileRepository) HasClaimEvent(ctx context.Context, ingestionFileID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&claimEventModel{}).
		Where("ingestion_file_id = ?", ingestionFileID).
		Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return count > 0, nil
}
