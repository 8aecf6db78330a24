package application

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/domain/entities"
	domainerrors "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/domain/errors"
)

const defaultMaxAttachmentBytes = 32 * 1024 * 1024 // 32 MiB, per spec.md §6 default.

// Parser implements ports.Parser on top of encoding/xml, per spec.md §4.3.
type Parser struct {
	// MaxAttachmentBytes caps a single decoded attachment payload. Zero
	// selects the spec.md default of 32 MiB.
	MaxAttachmentBytes int

	// FailOnXsdError selects strict structural/occurrence validation: a
	// violation of the root-element occurrence rules (exactly one Header,
	// at least one Claim) aborts the file. When false, the same violation
	// is recorded as a WARNING and the file keeps processing, per spec.md
	// §6's flexible-validation fallback.
	FailOnXsdError bool
}

func NewParser(maxAttachmentBytes int, failOnXsdError bool) Parser {
	if maxAttachmentBytes <= 0 {
		maxAttachmentBytes = defaultMaxAttachmentBytes
	}
	return Parser{MaxAttachmentBytes: maxAttachmentBytes, FailOnXsdError: failOnXsdError}
}

// Parse sniffs the root element and dispatches to the matching decode path.
func (p Parser) Parse(raw []byte) (entities.ParseOutcome, error) {
	root, err := sniffRoot(raw)
	if err != nil {
		return entities.ParseOutcome{
			Problems: []entities.Problem{{
				Severity: entities.SeverityError,
				Stage:    entities.StageStructural,
				Code:     domainerrors.CodeMalformedXML,
				Message:  err.Error(),
			}},
		}, nil
	}

	switch root {
	case "Claim.Submission":
		return p.parseSubmission(raw)
	case "Remittance.Advice":
		return p.parseRemittance(raw)
	default:
		return entities.ParseOutcome{
			Problems: []entities.Problem{{
				Severity:   entities.SeverityError,
				Stage:      entities.StageStructural,
				ObjectType: "document",
				Code:       domainerrors.CodeUnknownRoot,
				Message:    fmt.Sprintf("unrecognized root element %q", root),
			}},
		}, nil
	}
}

// sniffRoot returns the first element's local name, per spec.md §4.2 step 1.
func sniffRoot(raw []byte) (string, error) {
	dec := newSecureDecoder(bytes.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return "", domainerrors.ErrEmptyDocument
			}
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

// countTopLevelElements counts immediate children of the root element, for
// the occurrence-based validation pass of spec.md §4.3.
func countTopLevelElements(raw []byte) (map[string]int, error) {
	dec := newSecureDecoder(bytes.NewReader(raw))
	counts := make(map[string]int)
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return counts, nil
			}
			return counts, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				counts[t.Name.Local]++
			}
		case xml.EndElement:
			depth--
		}
	}
}

func (p Parser) parseSubmission(raw []byte) (entities.ParseOutcome, error) {
	var wire wireClaimSubmission
	if err := newSecureDecoder(bytes.NewReader(raw)).Decode(&wire); err != nil {
		return entities.ParseOutcome{
			RootType: entities.RootTypeSubmission,
			Problems: []entities.Problem{{
				Severity: entities.SeverityError,
				Stage:    entities.StageStructural,
				Code:     domainerrors.CodeMalformedXML,
				Message:  err.Error(),
			}},
		}, nil
	}

	var problems []entities.Problem
	if counts, err := countTopLevelElements(raw); err == nil {
		problems = append(problems, occurrenceProblems(counts, p.FailOnXsdError)...)
	}

	header, headerProblems := convertHeader(wire.Header)
	problems = append(problems, headerProblems...)

	graph := entities.SubmissionGraph{Header: header}
	var attachments []entities.AttachmentDTO
	for _, wc := range wire.Claims {
		claim, claimProblems, claimAttachments := p.convertClaim(wc)
		problems = append(problems, claimProblems...)
		graph.Claims = append(graph.Claims, claim)
		attachments = append(attachments, claimAttachments...)
	}

	return entities.ParseOutcome{
		RootType:    entities.RootTypeSubmission,
		Submission:  &graph,
		Problems:    problems,
		Attachments: attachments,
	}, nil
}

func (p Parser) parseRemittance(raw []byte) (entities.ParseOutcome, error) {
	var wire wireRemittanceAdvice
	if err := newSecureDecoder(bytes.NewReader(raw)).Decode(&wire); err != nil {
		return entities.ParseOutcome{
			RootType: entities.RootTypeRemittance,
			Problems: []entities.Problem{{
				Severity: entities.SeverityError,
				Stage:    entities.StageStructural,
				Code:     domainerrors.CodeMalformedXML,
				Message:  err.Error(),
			}},
		}, nil
	}

	var problems []entities.Problem
	if counts, err := countTopLevelElements(raw); err == nil {
		problems = append(problems, occurrenceProblems(counts, p.FailOnXsdError)...)
	}

	header, headerProblems := convertHeader(wire.Header)
	problems = append(problems, headerProblems...)

	graph := entities.RemittanceGraph{Header: header}
	for _, wc := range wire.Claims {
		claim, claimProblems := convertRemittanceClaim(wc)
		problems = append(problems, claimProblems...)
		graph.Claims = append(graph.Claims, claim)
	}

	return entities.ParseOutcome{
		RootType:   entities.RootTypeRemittance,
		Remittance: &graph,
		Problems:   problems,
	}, nil
}

// occurrenceProblems implements the occurrence-counting fallback pass: it
// tolerates Comments/Attachment appearing anywhere (encoding/xml already
// maps child elements by name regardless of position) and checks that
// Header occurs exactly once and Claim occurs at least once, per spec.md
// §4.3. This pass always runs; failOnXsdError only controls whether a
// violation is fatal (ERROR, aborting the file) or merely recorded
// (WARNING, per spec.md §6's flexible-validation fallback).
func occurrenceProblems(counts map[string]int, failOnXsdError bool) []entities.Problem {
	severity := entities.SeverityWarning
	if failOnXsdError {
		severity = entities.SeverityError
	}

	var problems []entities.Problem
	if counts["Header"] != 1 {
		problems = append(problems, entities.Problem{
			Severity:   severity,
			Stage:      entities.StageStructural,
			ObjectType: "Header",
			Code:       domainerrors.CodeOccurrenceViolation,
			Message:    fmt.Sprintf("expected exactly one Header element, found %d", counts["Header"]),
		})
	}
	if counts["Claim"] < 1 {
		problems = append(problems, entities.Problem{
			Severity:   severity,
			Stage:      entities.StageStructural,
			ObjectType: "Claim",
			Code:       domainerrors.CodeOccurrenceViolation,
			Message:    "expected at least one Claim element, found 0",
		})
	}
	return problems
}
