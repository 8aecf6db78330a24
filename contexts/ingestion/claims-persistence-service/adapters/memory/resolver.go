package memory

import (
	"context"
	"sync"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/ports"
)

// StubResolver satisfies ports.Resolver for tests that do not exercise
// reference-resolution-service directly: it returns a deterministic
// "ref-<domain>:<code>" id and remembers every code it has seen.
type StubResolver struct {
	mu   sync.Mutex
	seen map[string]string
}

func NewStubResolver() *StubResolver {
	return &StubResolver{seen: make(map[string]string)}
}

func (r *StubResolver) Resolve(_ context.Context, req ports.ReferenceLookup) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := req.Domain + ":" + req.BusinessCode
	if id, ok := r.seen[k]; ok {
		return id, nil
	}
	id := "ref-" + k
	r.seen[k] = id
	return id, nil
}
