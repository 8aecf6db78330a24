package entities

// ParseOutcome is the Parser's discriminated result: exactly one of
// Submission or Remittance is populated, selected by RootType.
type ParseOutcome struct {
	RootType    RootType
	Submission  *SubmissionGraph
	Remittance  *RemittanceGraph
	Problems    []Problem
	Attachments []AttachmentDTO
}

// HasFatal reports whether any problem aborts the whole file. Fatality is
// stage-scoped: a STRUCTURAL or HEADER ERROR means the document itself
// can't be trusted, and an ATTACHMENT ERROR means the top-level attachment
// stream (too large, bad base64) is unusable, so both abort the file. A
// RECORD ERROR means one diagnosis/activity/observation/remittance activity
// was skipped, or a claim money field could not be parsed and was left
// zero — the enclosing file still persists the rest, per the containment
// invariant.
func (o ParseOutcome) HasFatal() bool {
	for _, p := range o.Problems {
		if p.Severity != SeverityError {
			continue
		}
		switch p.Stage {
		case StageStructural, StageHeader, StageAttachment:
			return true
		}
	}
	return false
}
