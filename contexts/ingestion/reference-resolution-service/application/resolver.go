package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/domain/entities"
	domainerrors "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/domain/errors"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/ports"
)

// Resolver resolves business codes to surrogate reference ids, auto-
// inserting and auditing unknown codes on first sight.
type Resolver struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (r Resolver) Resolve(ctx context.Context, req ports.LookupRequest) (string, error) {
	logger := ResolveLogger(r.Logger)
	code := strings.TrimSpace(req.BusinessCode)
	if code == "" {
		return "", domainerrors.ErrEmptyBusinessCode
	}
	req.BusinessCode = code

	now := r.Clock.Now().UTC()
	candidateID, err := r.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("reference candidate id generation failed",
			"event", "reference_candidate_id_failed",
			"module", "ingestion/reference-resolution-service",
			"layer", "application",
			"domain", string(req.Domain),
			"business_code", code,
			"error", err.Error(),
		)
		return "", err
	}

	referenceID, inserted, err := r.Repository.FindOrInsert(ctx, req, candidateID, now)
	if err != nil {
		logger.Error("reference resolution failed",
			"event", "reference_resolve_failed",
			"module", "ingestion/reference-resolution-service",
			"layer", "application",
			"domain", string(req.Domain),
			"business_code", code,
			"error", err.Error(),
		)
		return "", err
	}

	if inserted {
		auditID, err := r.IDGen.NewID(ctx)
		if err != nil {
			logger.Error("reference audit id generation failed",
				"event", "reference_audit_id_failed",
				"module", "ingestion/reference-resolution-service",
				"layer", "application",
				"domain", string(req.Domain),
				"business_code", code,
				"error", err.Error(),
			)
			return referenceID, err
		}
		audit := entities.ResolutionAudit{
			AuditID:         auditID,
			Domain:          req.Domain,
			BusinessCode:    code,
			ReferenceID:     referenceID,
			IngestionFileID: req.IngestionFileID,
			ClaimBusinessID: req.ClaimBusinessID,
			CreatedAt:       now,
		}
		if err := r.Repository.RecordAudit(ctx, audit); err != nil {
			logger.Error("reference auto-insert audit failed",
				"event", "reference_autoinsert_audit_failed",
				"module", "ingestion/reference-resolution-service",
				"layer", "application",
				"domain", string(req.Domain),
				"business_code", code,
				"reference_id", referenceID,
				"error", err.Error(),
			)
			return referenceID, err
		}
		logger.Info("reference code auto-inserted",
			"event", "reference_autoinserted",
			"module", "ingestion/reference-resolution-service",
			"layer", "application",
			"domain", string(req.Domain),
			"business_code", code,
			"reference_id", referenceID,
			"ingestion_file_id", req.IngestionFileID,
			"claim_id", req.ClaimBusinessID,
		)
	}
	return referenceID, nil
}
