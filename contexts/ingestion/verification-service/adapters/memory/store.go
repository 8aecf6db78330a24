package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/domain/entities"
)

// StaticRuleSource serves a fixed rule set, for tests that don't need a
// YAML file on disk.
type StaticRuleSource struct {
	RuleSet []entities.VerificationRule
}

func (s StaticRuleSource) Rules() []entities.VerificationRule {
	return s.RuleSet
}

// FakeRunner evaluates rules against an in-memory predicate table instead
// of running real SQL, keyed by rule name.
type FakeRunner struct {
	mu         sync.Mutex
	Predicates map[string]func(ingestionFileID string) (bool, int, string)
	calls      []string
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Predicates: make(map[string]func(string) (bool, int, string))}
}

func (r *FakeRunner) Run(ctx context.Context, ingestionFileID string, rule entities.VerificationRule) (bool, int, string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, rule.Name)
	r.mu.Unlock()

	predicate, ok := r.Predicates[rule.Name]
	if !ok {
		return false, 0, "", fmt.Errorf("no predicate registered for rule %q", rule.Name)
	}
	ok2, rowsAffected, sample := predicate(ingestionFileID)
	return ok2, rowsAffected, sample, nil
}

func (r *FakeRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// Store records every VerificationRun + its results, for test assertions.
type Store struct {
	mu      sync.Mutex
	runs    []entities.VerificationRun
	results map[string][]entities.VerificationResult
}

func NewStore() *Store {
	return &Store{results: make(map[string][]entities.VerificationResult)}
}

func (s *Store) SaveRun(ctx context.Context, run entities.VerificationRun, results []entities.VerificationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	s.results[run.RunID] = append([]entities.VerificationResult{}, results...)
	return nil
}

func (s *Store) Runs() []entities.VerificationRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.VerificationRun, len(s.runs))
	copy(out, s.runs)
	return out
}

func (s *Store) ResultsFor(runID string) []entities.VerificationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.VerificationResult{}, s.results[runID]...)
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
