package ports

import "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/domain/entities"

// Parser sniffs the root element and decodes a raw document into a
// ParseOutcome, per spec.md §4.3. It never returns an error for content
// problems — those surface as entities.Problem rows in the outcome. The
// error result is reserved for infrastructure faults; application.Parser
// always returns nil.
type Parser interface {
	Parse(raw []byte) (entities.ParseOutcome, error)
}
