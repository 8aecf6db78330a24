package application_test

import (
	"context"
	"testing"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/adapters/memory"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/domain/entities"
)

func newVerifier(rules []entities.VerificationRule) (application.Verifier, *memory.Store, *memory.FakeRunner) {
	store := memory.NewStore()
	runner := memory.NewFakeRunner()
	return application.Verifier{
		Rules:  memory.StaticRuleSource{RuleSet: rules},
		Runner: runner,
		Runs:   store,
		IDGen:  &memory.SequentialIDGenerator{},
		Clock:  memory.SystemClock{},
	}, store, runner
}

func TestVerifyPassesWhenEveryRulePasses(t *testing.T) {
	rules := []entities.VerificationRule{
		{Name: "no_orphan_activities", ExpectZeroRows: true, Query: "select 1"},
		{Name: "every_claim_has_encounter", ExpectZeroRows: false, Query: "select 1"},
	}
	verifier, store, runner := newVerifier(rules)
	runner.Predicates["no_orphan_activities"] = func(string) (bool, int, string) { return true, 0, "" }
	runner.Predicates["every_claim_has_encounter"] = func(string) (bool, int, string) { return true, 4, "" }

	verified, err := verifier.Verify(context.Background(), "file-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verified {
		t.Fatalf("expected file to be verified")
	}

	runs := store.Runs()
	if len(runs) != 1 || runs[0].RulesFailed != 0 {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestVerifyFailsWhenAnyRuleFails(t *testing.T) {
	rules := []entities.VerificationRule{
		{Name: "no_orphan_activities", ExpectZeroRows: true, Query: "select 1"},
		{Name: "every_claim_has_encounter", ExpectZeroRows: false, Query: "select 1"},
	}
	verifier, store, runner := newVerifier(rules)
	runner.Predicates["no_orphan_activities"] = func(string) (bool, int, string) { return false, 2, `[{"id":"A1"}]` }
	runner.Predicates["every_claim_has_encounter"] = func(string) (bool, int, string) { return true, 4, "" }

	verified, err := verifier.Verify(context.Background(), "file-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verified {
		t.Fatalf("expected file to fail verification")
	}

	runs := store.Runs()
	if len(runs) != 1 || runs[0].RulesFailed != 1 {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	results := store.ResultsFor(runs[0].RunID)
	if len(results) != 2 {
		t.Fatalf("expected two results, got %d", len(results))
	}
}

func TestVerifyRunsEveryRuleEvenAfterAnEarlierFailure(t *testing.T) {
	rules := []entities.VerificationRule{
		{Name: "rule_a", ExpectZeroRows: true, Query: "select 1"},
		{Name: "rule_b", ExpectZeroRows: true, Query: "select 1"},
	}
	verifier, _, runner := newVerifier(rules)
	runner.Predicates["rule_a"] = func(string) (bool, int, string) { return false, 1, "" }
	runner.Predicates["rule_b"] = func(string) (bool, int, string) { return true, 0, "" }

	if _, err := verifier.Verify(context.Background(), "file-3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := runner.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected both rules to run, got %v", calls)
	}
}
