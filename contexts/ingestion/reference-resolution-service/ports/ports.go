package ports

import (
	"context"
	"time"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/domain/entities"
)

// Clock abstracts wall-clock time so resolution audit timestamps are
// deterministic under test, mirroring the teacher's ports.Clock shape.
type Clock interface {
	Now() time.Time
}

// IDGenerator issues surrogate ids for reference rows and audit rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Hints carries optional descriptors that accompany a business code, used
// only to populate DisplayName on first-sight auto-insertion.
type Hints struct {
	DisplayName string
}

// LookupRequest scopes a resolution to the file/claim that triggered it,
// so an auto-insertion can be audited against its origin.
type LookupRequest struct {
	Domain          entities.ReferenceDomain
	BusinessCode    string
	Hints           Hints
	IngestionFileID string
	ClaimBusinessID string
}

// Repository is the storage port the Resolver drives. Implementations
// must make FindOrInsert idempotent under concurrent first-sight callers.
type Repository interface {
	// FindOrInsert resolves (domain, businessCode) to a surrogate id. If no
	// row exists it inserts one keyed by candidateID and tagged SourceSystem,
	// reporting inserted=true. candidateID may lose an insert race to a
	// concurrent caller; the returned referenceID always reflects the row
	// that actually survived.
	FindOrInsert(ctx context.Context, req LookupRequest, candidateID string, now time.Time) (referenceID string, inserted bool, err error)
	RecordAudit(ctx context.Context, audit entities.ResolutionAudit) error
}

// Resolver is the public contract the persistence engine depends on.
type Resolver interface {
	Resolve(ctx context.Context, req LookupRequest) (referenceID string, err error)
}
