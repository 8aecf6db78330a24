package xmlparsingservice

import (
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/application"
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/ports"
)

// Module exposes the wired Parser. There is no persistence or external
// dependency in this bounded context, so there is nothing to distinguish
// between a production and an in-memory bootstrap.
type Module struct {
	Parser ports.Parser
}

func NewModule(maxAttachmentBytes int, failOnXsdError bool) Module {
	return Module{Parser: application.NewParser(maxAttachmentBytes, failOnXsdError)}
}

var _ ports.Parser = application.Parser{}
