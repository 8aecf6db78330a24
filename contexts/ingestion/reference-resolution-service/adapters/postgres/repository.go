package postgresadapter

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/domain/entities"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/ports"
)

// Repository persists reference codes and their resolution audit trail in
// a single shared table, partitioned by domain, matching the teacher's
// on-conflict insert-then-select upsert shape.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type referenceCodeModel struct {
	ReferenceID  string    `gorm:"column:reference_id;primaryKey"`
	Domain       string    `gorm:"column:domain"`
	BusinessCode string    `gorm:"column:business_code"`
	DisplayName  string    `gorm:"column:display_name"`
	Source       string    `gorm:"column:source"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (referenceCodeModel) TableName() string { return "reference_codes" }

type resolutionAuditModel struct {
	AuditID         string    `gorm:"column:audit_id;primaryKey"`
	Domain          string    `gorm:"column:domain"`
	BusinessCode    string    `gorm:"column:business_code"`
	ReferenceID     string    `gorm:"column:reference_id"`
	IngestionFileID string    `gorm:"column:ingestion_file_id"`
	ClaimBusinessID string    `gorm:"column:claim_business_id"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (resolutionAuditModel) TableName() string { return "reference_resolution_audit" }

// FindOrInsert resolves (domain, businessCode) idempotently: it attempts an
// insert-or-ignore keyed on the natural (domain, business_code) uniqueness,
// then always selects the surviving row id, exactly as the teacher's
// PutRecord/AppendOutbox pair does for its own natural-key upserts.
func (r *Repository) FindOrInsert(
	ctx context.Context,
	req ports.LookupRequest,
	candidateID string,
	now time.Time,
) (string, bool, error) {
	domain := string(req.Domain)
	code := strings.TrimSpace(req.BusinessCode)

	var existing referenceCodeModel
	err := r.db.WithContext(ctx).
		Where("domain = ?", domain).
		Where("business_code = ?", code).
		First(&existing).
		Error
	if err == nil {
		return existing.ReferenceID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, err
	}

	row := referenceCodeModel{
		ReferenceID:  candidateID,
		Domain:       domain,
		BusinessCode: code,
		DisplayName:  strings.TrimSpace(req.Hints.DisplayName),
		Source:       string(entities.SourceSystem),
		CreatedAt:    now,
	}
	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "domain"}, {Name: "business_code"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return "", false, createResult.Error
	}

	var final referenceCodeModel
	if err := r.db.WithContext(ctx).
		Where("domain = ?", domain).
		Where("business_code = ?", code).
		First(&final).
		Error; err != nil {
		return "", false, err
	}
	return final.ReferenceID, createResult.RowsAffected > 0, nil
}

func (r *Repository) RecordAudit(ctx context.Context, audit entities.ResolutionAudit) error {
	row := resolutionAuditModel{
		AuditID:         audit.AuditID,
		Domain:          string(audit.Domain),
		BusinessCode:    audit.BusinessCode,
		ReferenceID:     audit.ReferenceID,
		IngestionFileID: audit.IngestionFileID,
		ClaimBusinessID: audit.ClaimBusinessID,
		CreatedAt:       audit.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

