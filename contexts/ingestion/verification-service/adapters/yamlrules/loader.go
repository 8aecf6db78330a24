package yamlrules

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/verification-service/domain/entities"
)

// fileRule is the YAML wire shape for one rule entry. Field names are
// lower_snake to match the on-disk convention for the rest of this repo's
// config files.
type fileRule struct {
	Name           string `yaml:"name"`
	Query          string `yaml:"query"`
	ExpectZeroRows bool   `yaml:"expect_zero_rows"`
	SampleLimit    int    `yaml:"sample_limit"`
}

type ruleFile struct {
	Rules []fileRule `yaml:"rules"`
}

// Source loads the active rule set once from a YAML file at construction
// time and serves it from memory, per SPEC_FULL.md §6.5's decision to
// externalize rules as data rather than hardcode them.
type Source struct {
	mu    sync.RWMutex
	rules []entities.VerificationRule
}

func Load(path string) (*Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading verification rule file %q: %w", path, err)
	}

	var parsed ruleFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing verification rule file %q: %w", path, err)
	}

	rules := make([]entities.VerificationRule, 0, len(parsed.Rules))
	for _, r := range parsed.Rules {
		if r.Name == "" || r.Query == "" {
			return nil, fmt.Errorf("verification rule file %q: rule missing name or query", path)
		}
		rules = append(rules, entities.VerificationRule{
			Name:           r.Name,
			Query:          r.Query,
			ExpectZeroRows: r.ExpectZeroRows,
			SampleLimit:    r.SampleLimit,
		})
	}

	return &Source{rules: rules}, nil
}

func (s *Source) Rules() []entities.VerificationRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.VerificationRule, len(s.rules))
	copy(out, s.rules)
	return out
}
