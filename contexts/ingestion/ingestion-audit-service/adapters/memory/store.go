package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/ingestion-audit-service/domain/entities"
)

// Store is a single in-memory adapter satisfying all three audit-service
// repository ports, for use in tests that don't need a database.
type Store struct {
	mu sync.Mutex

	runs     map[string]entities.IngestionRun
	audits   map[string]entities.IngestionFileAudit
	errors   []entities.IngestionError
}

func NewStore() *Store {
	return &Store{
		runs:   make(map[string]entities.IngestionRun),
		audits: make(map[string]entities.IngestionFileAudit),
	}
}

func (s *Store) StartRun(ctx context.Context, run entities.IngestionRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.runs[run.RunID]; exists {
		return nil
	}
	s.runs[run.RunID] = run
	return nil
}

func (s *Store) EndRun(ctx context.Context, runID string, endedAt time.Time, counters entities.IngestionRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[runID]
	if !ok {
		return fmt.Errorf("ingestion run %s not found", runID)
	}
	run.EndedAt = &endedAt
	run.Discovered = counters.Discovered
	run.Pulled = counters.Pulled
	run.OK = counters.OK
	run.Failed = counters.Failed
	run.AlreadySeen = counters.AlreadySeen
	run.AcksSent = counters.AcksSent
	s.runs[runID] = run
	return nil
}

func (s *Store) RunExists(ctx context.Context, runID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.runs[runID]
	return ok, nil
}

func (s *Store) RecordFileOutcome(ctx context.Context, audit entities.IngestionFileAudit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := audit.RunID + "|" + audit.IngestionFileID
	if _, exists := s.audits[key]; exists {
		return nil
	}
	s.audits[key] = audit
	return nil
}

func (s *Store) InsertError(ctx context.Context, e entities.IngestionError) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, e)
	return nil
}

// Audits returns a defensive copy, for test assertions.
func (s *Store) Audits() []entities.IngestionFileAudit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.IngestionFileAudit, 0, len(s.audits))
	for _, a := range s.audits {
		out = append(out, a)
	}
	return out
}

// Errors returns a defensive copy, for test assertions.
func (s *Store) Errors() []entities.IngestionError {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.IngestionError, len(s.errors))
	copy(out, s.errors)
	return out
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type SequentialIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func (g *SequentialIDGenerator) NewID(context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("id-%d", g.counter), nil
}
