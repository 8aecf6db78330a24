package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/domain/entities"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/reference-resolution-service/ports"
)

// Store is an in-process Repository used by unit tests and the in-memory
// bootstrap wiring, mirroring the teacher's adapters/memory.Store shape.
type Store struct {
	mu      sync.Mutex
	codes   map[string]entities.ReferenceCode
	audits  map[string]entities.ResolutionAudit
}

func NewStore() *Store {
	return &Store{
		codes:  make(map[string]entities.ReferenceCode),
		audits: make(map[string]entities.ResolutionAudit),
	}
}

func key(domain, code string) string {
	return string(domain) + "|" + code
}

func (s *Store) FindOrInsert(
	_ context.Context,
	req ports.LookupRequest,
	candidateID string,
	now time.Time,
) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(string(req.Domain), strings.TrimSpace(req.BusinessCode))
	if existing, ok := s.codes[k]; ok {
		return existing.ReferenceID, false, nil
	}

	row := entities.ReferenceCode{
		ReferenceID:  candidateID,
		Domain:       req.Domain,
		BusinessCode: strings.TrimSpace(req.BusinessCode),
		DisplayName:  req.Hints.DisplayName,
		Source:       entities.SourceSystem,
		CreatedAt:    now,
	}
	s.codes[k] = row
	return row.ReferenceID, true, nil
}

func (s *Store) RecordAudit(_ context.Context, audit entities.ResolutionAudit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits[audit.AuditID] = audit
	return nil
}

func (s *Store) Audits() []entities.ResolutionAudit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.ResolutionAudit, 0, len(s.audits))
	for _, a := range s.audits {
		out = append(out, a)
	}
	return out
}

// SystemClock is the production time.Now()-backed ports.Clock implementation,
// kept here so in-memory wiring and tests share one definition.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
