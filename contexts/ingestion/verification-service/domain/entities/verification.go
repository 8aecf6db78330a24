package entities

import "time"

// VerificationRule is a named, parameterized predicate expressed at the
// storage layer (spec.md §4.5). Query is a raw SQL statement returning zero
// or more sample rows; ExpectZeroRows flips the pass condition so a rule can
// either assert "this query finds nothing wrong" or "this query finds the
// expected rows."
type VerificationRule struct {
	Name           string
	Query          string
	ExpectZeroRows bool
	SampleLimit    int
}

// VerificationRun is one execution of the active rule set against a single
// IngestionFile.
type VerificationRun struct {
	RunID           string
	IngestionFileID string
	StartedAt       time.Time
	EndedAt         time.Time
	Verified        bool
	RulesRun        int
	RulesFailed     int
}

// VerificationResult is the outcome of one rule within a VerificationRun.
type VerificationResult struct {
	ResultID        string
	RunID           string
	RuleName        string
	OK              bool
	RowsAffected    int
	SampleJSON      string
	Message         string
}
