package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/domain/entities"
)

// Store is an in-process FileRepository + GraphRepository used by unit
// tests, mirroring the teacher's adapters/memory shape. It keeps the exact
// uniqueness invariants spec.md §6 enumerates on the equivalent natural
// keys, so tests exercise the same idempotence guarantees production does.
type Store struct {
	mu sync.Mutex

	seq int

	filesByExternalID map[string]string
	files             map[string]entities.IngestionFile

	claimKeysByClaimID map[string]string
	claimKeys          map[string]entities.ClaimKey
	claims             map[string]entities.Claim
	encounters         map[string]entities.Encounter
	diagnoses          map[string]entities.Diagnosis
	activities         map[string]entities.Activity
	observations       []entities.Observation

	events          map[string]entities.ClaimEvent
	eventsByNatural map[string]string

	eventActivities          map[string]entities.ClaimEventActivity
	eventActivitiesByNatural map[string]string
	eventObservations        []entities.EventObservation

	statusTimeline []entities.ClaimStatusTimeline
	resubmissions  map[string]entities.ClaimResubmission
	attachments    map[string]entities.ClaimAttachment

	remittanceClaims         map[string]entities.RemittanceClaim
	remittanceClaimsByNatural map[string]string
	remittanceActivities     map[string]entities.RemittanceActivity
}

func NewStore() *Store {
	return &Store{
		filesByExternalID:         make(map[string]string),
		files:                     make(map[string]entities.IngestionFile),
		claimKeysByClaimID:        make(map[string]string),
		claimKeys:                 make(map[string]entities.ClaimKey),
		claims:                    make(map[string]entities.Claim),
		encounters:                make(map[string]entities.Encounter),
		diagnoses:                 make(map[string]entities.Diagnosis),
		activities:                make(map[string]entities.Activity),
		events:                    make(map[string]entities.ClaimEvent),
		eventsByNatural:           make(map[string]string),
		eventActivities:           make(map[string]entities.ClaimEventActivity),
		eventActivitiesByNatural:  make(map[string]string),
		resubmissions:             make(map[string]entities.ClaimResubmission),
		attachments:               make(map[string]entities.ClaimAttachment),
		remittanceClaims:          make(map[string]entities.RemittanceClaim),
		remittanceClaimsByNatural: make(map[string]string),
		remittanceActivities:      make(map[string]entities.RemittanceActivity),
	}
}

func (s *Store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

// --- FileRepository ---

func (s *Store) UpsertStub(_ context.Context, stub entities.IngestionFile) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existingID, ok := s.filesByExternalID[stub.ExternalFileID]; ok {
		return existingID, true, nil
	}
	s.filesByExternalID[stub.ExternalFileID] = stub.IngestionFileID
	s.files[stub.IngestionFileID] = stub
	return stub.IngestionFileID, false, nil
}

func (s *Store) UpdateHeader(_ context.Context, ingestionFileID string, file entities.IngestionFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.files[ingestionFileID]
	if !ok {
		return fmt.Errorf("ingestion file %s not found", ingestionFileID)
	}
	existing.SenderID = file.SenderID
	existing.ReceiverID = file.ReceiverID
	existing.TransactionTime = file.TransactionTime
	existing.RecordCount = file.RecordCount
	existing.DispositionFlag = file.DispositionFlag
	existing.UpdatedAt = file.UpdatedAt
	s.files[ingestionFileID] = existing
	return nil
}

func (s *Store) HasClaimEvent(_ context.Context, ingestionFileID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.IngestionFileID == ingestionFileID {
			return true, nil
		}
	}
	return false, nil
}

// --- GraphRepository ---

func (s *Store) UpsertClaimKey(_ context.Context, claimID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.claimKeysByClaimID[claimID]; ok {
		return id, nil
	}
	id := s.nextID("claimkey")
	s.claimKeysByClaimID[claimID] = id
	s.claimKeys[id] = entities.ClaimKey{ClaimKeyID: id, ClaimID: claimID, CreatedAt: time.Now().UTC()}
	return id, nil
}

func (s *Store) HasSubmittedEvent(_ context.Context, claimKeyID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ClaimKeyID == claimKeyID && e.Type == entities.EventSubmitted {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) UpsertClaim(_ context.Context, claim entities.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[claim.ClaimKeyID]; ok {
		return nil
	}
	s.claims[claim.ClaimKeyID] = claim
	return nil
}

func (s *Store) UpsertEncounter(_ context.Context, encounter entities.Encounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.encounters[encounter.ClaimKeyID]; ok {
		return nil
	}
	s.encounters[encounter.ClaimKeyID] = encounter
	return nil
}

func (s *Store) UpsertDiagnosis(_ context.Context, diagnosis entities.Diagnosis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := diagnosis.ClaimKeyID + "|" + diagnosis.Type + "|" + diagnosis.Code
	if _, ok := s.diagnoses[k]; ok {
		return nil
	}
	s.diagnoses[k] = diagnosis
	return nil
}

func activityKey(claimKeyID, activityID string) string { return claimKeyID + "|" + activityID }

func (s *Store) UpsertActivity(_ context.Context, activity entities.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := activityKey(activity.ClaimKeyID, activity.ActivityID)
	if _, ok := s.activities[k]; ok {
		return nil
	}
	s.activities[k] = activity
	return nil
}

func (s *Store) InsertObservation(_ context.Context, observation entities.Observation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observations = append(s.observations, observation)
	return nil
}

func eventKey(claimKeyID string, eventType entities.EventType, eventTime time.Time) string {
	return fmt.Sprintf("%s|%d|%d", claimKeyID, eventType, eventTime.UnixNano())
}

func (s *Store) InsertEvent(_ context.Context, event entities.ClaimEvent) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := eventKey(event.ClaimKeyID, event.Type, event.EventTime)
	if id, ok := s.eventsByNatural[k]; ok {
		return id, nil
	}
	id := s.nextID("event")
	event.ClaimEventID = id
	s.eventsByNatural[k] = id
	s.events[id] = event
	return id, nil
}

func eventActivityKey(claimEventID, activityIDAtEvent string) string {
	return claimEventID + "|" + activityIDAtEvent
}

func (s *Store) InsertEventActivity(_ context.Context, snapshot entities.ClaimEventActivity) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := eventActivityKey(snapshot.ClaimEventID, snapshot.ActivityIDAtEvent)
	if id, ok := s.eventActivitiesByNatural[k]; ok {
		return id, nil
	}
	id := s.nextID("eventactivity")
	snapshot.ClaimEventActivityID = id
	s.eventActivitiesByNatural[k] = id
	s.eventActivities[id] = snapshot
	return id, nil
}

func (s *Store) InsertEventObservation(_ context.Context, observation entities.EventObservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventObservations = append(s.eventObservations, observation)
	return nil
}

func (s *Store) InsertStatusTimeline(_ context.Context, row entities.ClaimStatusTimeline) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row.TimelineID = s.nextID("timeline")
	s.statusTimeline = append(s.statusTimeline, row)
	return nil
}

func (s *Store) InsertResubmission(_ context.Context, resubmission entities.ClaimResubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resubmissions[resubmission.ClaimEventID]; ok {
		return nil
	}
	s.resubmissions[resubmission.ClaimEventID] = resubmission
	return nil
}

func attachmentKey(claimKeyID, claimEventID, fileName string) string {
	return claimKeyID + "|" + claimEventID + "|" + fileName
}

func (s *Store) UpsertAttachment(_ context.Context, attachment entities.ClaimAttachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := attachmentKey(attachment.ClaimKeyID, attachment.ClaimEventID, attachment.FileName)
	if _, ok := s.attachments[k]; ok {
		return nil
	}
	s.attachments[k] = attachment
	return nil
}

func remittanceClaimKey(remittanceID, claimKeyID string) string { return remittanceID + "|" + claimKeyID }

func (s *Store) UpsertRemittanceClaim(_ context.Context, claim entities.RemittanceClaim) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := remittanceClaimKey(claim.RemittanceID, claim.ClaimKeyID)
	if id, ok := s.remittanceClaimsByNatural[k]; ok {
		return id, nil
	}
	id := s.nextID("remclaim")
	claim.RemittanceClaimID = id
	s.remittanceClaimsByNatural[k] = id
	s.remittanceClaims[id] = claim
	return id, nil
}

func remittanceActivityKey(remittanceClaimID, activityID string) string {
	return remittanceClaimID + "|" + activityID
}

func (s *Store) UpsertRemittanceActivity(_ context.Context, activity entities.RemittanceActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := remittanceActivityKey(activity.RemittanceClaimID, activity.ActivityID)
	if _, ok := s.remittanceActivities[k]; ok {
		return nil
	}
	s.remittanceActivities[k] = activity
	return nil
}

func (s *Store) NetRequestedForClaim(_ context.Context, claimKeyID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, a := range s.activities {
		if a.ClaimKeyID == claimKeyID {
			sum = sum.Add(a.Net)
		}
	}
	return sum, nil
}

// StatusTimeline returns a snapshot of the timeline, for test assertions.
func (s *Store) StatusTimeline() []entities.ClaimStatusTimeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.ClaimStatusTimeline, len(s.statusTimeline))
	copy(out, s.statusTimeline)
	return out
}

// Attachments returns a snapshot of persisted attachments, for test assertions.
func (s *Store) Attachments() []entities.ClaimAttachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.ClaimAttachment, 0, len(s.attachments))
	for _, a := range s.attachments {
		out = append(out, a)
	}
	return out
}

// SystemClock is the production time.Now()-backed ports.Clock implementation.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// SequentialIDGenerator hands out deterministic, test-friendly ids.
type SequentialIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *SequentialIDGenerator) NewID(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

// NoopErrorReporter discards errors; useful where a test only cares about
// persistence outcomes.
type NoopErrorReporter struct{}

func (NoopErrorReporter) ReportClaimError(context.Context, string, string, string, string) error {
	return nil
}

func (NoopErrorReporter) ReportFileError(context.Context, string, string, string) error {
	return nil
}

// RecordingErrorReporter captures reported errors for test assertions.
type RecordingErrorReporter struct {
	mu          sync.Mutex
	ClaimErrors []string
	FileErrors  []string
}

func (r *RecordingErrorReporter) ReportClaimError(_ context.Context, _, claimID, code, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ClaimErrors = append(r.ClaimErrors, claimID+":"+code)
	return nil
}

func (r *RecordingErrorReporter) ReportFileError(_ context.Context, _, code, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FileErrors = append(r.FileErrors, code)
	return nil
}
