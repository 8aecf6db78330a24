package entities

// EventType enumerates the three claim lifecycle transitions spec.md
// defines. Kept as small integers, per spec.md §6, not stringly-typed.
type EventType int16

const (
	EventSubmitted   EventType = 1
	EventResubmitted EventType = 2
	EventRemittance  EventType = 3
)

// ClaimStatus enumerates the status-timeline values spec.md §6 enumerates.
type ClaimStatus int16

const (
	StatusSubmitted     ClaimStatus = 1
	StatusResubmitted   ClaimStatus = 2
	StatusPaid          ClaimStatus = 3
	StatusPartiallyPaid ClaimStatus = 4
	StatusRejected      ClaimStatus = 5
)

func (s ClaimStatus) String() string {
	switch s {
	case StatusSubmitted:
		return "SUBMITTED"
	case StatusResubmitted:
		return "RESUBMITTED"
	case StatusPaid:
		return "PAID"
	case StatusPartiallyPaid:
		return "PARTIALLY_PAID"
	case StatusRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}
