package entities

import "time"

// FileAuditStatus is the per-file outcome recorded against a run, kept as a
// small integer per spec.md §6.
type FileAuditStatus int16

const (
	FileAuditAlready FileAuditStatus = 0
	FileAuditOK      FileAuditStatus = 1
	FileAuditFail    FileAuditStatus = 2
)

func (s FileAuditStatus) String() string {
	switch s {
	case FileAuditAlready:
		return "ALREADY"
	case FileAuditOK:
		return "OK"
	case FileAuditFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// IngestionRun is one row per drain/poll cycle, per spec.md §4.7.
type IngestionRun struct {
	RunID       string
	StartedAt   time.Time
	EndedAt     *time.Time
	Discovered  int
	Pulled      int
	OK          int
	Failed      int
	AlreadySeen int
	AcksSent    int
}

// IngestionFileAudit is one row per (run, file) outcome.
type IngestionFileAudit struct {
	AuditID         string
	RunID           string
	IngestionFileID string
	Status          FileAuditStatus
	ParsedCount     int
	PersistedCount  int
	Verified        bool
	AckResult       string
	CreatedAt       time.Time
}

// ErrorScope names whether an IngestionError is scoped to a whole file or
// to one claim within it, per spec.md §4.7.
type ErrorScope string

const (
	ScopeFile  ErrorScope = "FILE"
	ScopeClaim ErrorScope = "CLAIM"
)

// IngestionError is one row per structured problem surfaced anywhere in the
// pipeline.
type IngestionError struct {
	ErrorID         string
	IngestionFileID string
	Scope           ErrorScope
	ObjectKey       string
	Stage           string
	Code            string
	Message         string
	Retryable       bool
	CreatedAt       time.Time
}
