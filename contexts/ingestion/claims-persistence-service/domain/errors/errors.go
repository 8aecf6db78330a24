package errors

import "errors"

var (
	ErrMissingRequiredField    = errors.New("required field missing")
	ErrDuplicateSubmissionNoResub = errors.New("duplicate submission without resubmission marker")
	ErrClaimPersistFailed      = errors.New("claim persistence failed")
	ErrRemittancePersistFailed = errors.New("remittance claim persistence failed")
	ErrFileAlreadyProcessed    = errors.New("file already has a claim event recorded")
)

// Code constants mirror spec.md's record-level error codes so callers can
// log/report a stable string independent of the Go error value identity.
const (
	CodeDupSubmissionNoResub = "DUP_SUBMISSION_NO_RESUB"
	CodeClaimPersistFail     = "CLAIM_PERSIST_FAIL"
	CodeRemittancePersistFail = "REMITTANCE_PERSIST_FAIL"
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
)
