package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/congress-app/congress-backend/models"
)

// MemoryStore is an in-process Store used by tests and local development.
// A single mutex held for the whole of InTx makes every transaction
// serializable, which mirrors what the row lock gives the Postgres
// implementation.
type MemoryStore struct {
	mu           sync.Mutex
	participants map[string]*models.Participant
	events       map[string]*models.Event
	attendance   map[string]*models.AttendanceRecord
	attendees    map[string][]models.EventAttendee
	clock        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		participants: make(map[string]*models.Participant),
		events:       make(map[string]*models.Event),
		attendance:   make(map[string]*models.AttendanceRecord),
		attendees:    make(map[string][]models.EventAttendee),
		clock:        time.Now,
	}
}

// PutParticipant seeds or replaces a participant document.
func (s *MemoryStore) PutParticipant(p models.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	cp.Badges = append([]models.Badge(nil), p.Badges...)
	s.participants[p.ID] = &cp
}

// PutEvent seeds or replaces an event document.
func (s *MemoryStore) PutEvent(e models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := e
	s.events[e.ID] = &cp
}

func (s *MemoryStore) Participant(ctx context.Context, id string) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[id]
	if !ok {
		return nil, nil
	}
	return copyParticipant(p), nil
}

func (s *MemoryStore) Event(ctx context.Context, id string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (s *MemoryStore) Attendance(ctx context.Context, participantID, eventID string) (*models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.attendance[models.AttendanceID(participantID, eventID)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) Attendees(ctx context.Context, eventID string) ([]models.EventAttendee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.EventAttendee(nil), s.attendees[eventID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].ScannedAt.Before(out[j].ScannedAt) })
	return out, nil
}

func (s *MemoryStore) InTx(ctx context.Context, fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &memoryTx{store: s, staged: stagedWrites{}}
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (s *MemoryStore) AppendBadges(ctx context.Context, participantID string, badges []models.Badge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[participantID]
	if !ok {
		return ErrNotFound
	}
	for _, b := range badges {
		if !p.HasBadge(b.ID) {
			p.Badges = append(p.Badges, b)
		}
	}
	return nil
}

func (s *MemoryStore) SetEventQR(ctx context.Context, eventID, token string, valid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[eventID]
	if !ok {
		return ErrNotFound
	}
	e.QRToken = token
	e.QRValid = valid
	return nil
}

func (s *MemoryStore) SetEventQRValidity(ctx context.Context, eventID string, valid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[eventID]
	if !ok {
		return ErrNotFound
	}
	e.QRValid = valid
	return nil
}

// stagedWrites buffers a transaction's effects so a failing callback leaves
// the store untouched.
type stagedWrites struct {
	attendance *models.AttendanceRecord
	attendee   *models.EventAttendee
	counters   *counterUpdate
}

type counterUpdate struct {
	participantID   string
	points          int
	attendanceCount int
}

type memoryTx struct {
	store  *MemoryStore
	staged stagedWrites
}

func (t *memoryTx) ParticipantForUpdate(id string) (*models.Participant, error) {
	p, ok := t.store.participants[id]
	if !ok {
		return nil, nil
	}
	return copyParticipant(p), nil
}

func (t *memoryTx) AttendanceExists(participantID, eventID string) (bool, error) {
	_, ok := t.store.attendance[models.AttendanceID(participantID, eventID)]
	return ok, nil
}

func (t *memoryTx) CreateAttendance(rec *models.AttendanceRecord) error {
	if _, ok := t.store.attendance[rec.ID]; ok {
		return ErrDuplicateAttendance
	}
	if rec.ScannedAt.IsZero() {
		rec.ScannedAt = t.store.clock().UTC()
	}
	cp := *rec
	t.staged.attendance = &cp
	return nil
}

func (t *memoryTx) CreateAttendee(att *models.EventAttendee) error {
	if att.ScannedAt.IsZero() {
		att.ScannedAt = t.store.clock().UTC()
	}
	cp := *att
	t.staged.attendee = &cp
	return nil
}

func (t *memoryTx) UpdateCounters(participantID string, points, attendanceCount int) error {
	t.staged.counters = &counterUpdate{
		participantID:   participantID,
		points:          points,
		attendanceCount: attendanceCount,
	}
	return nil
}

func (t *memoryTx) commit() {
	if rec := t.staged.attendance; rec != nil {
		t.store.attendance[rec.ID] = rec
	}
	if att := t.staged.attendee; att != nil {
		t.store.attendees[att.EventID] = append(t.store.attendees[att.EventID], *att)
	}
	if c := t.staged.counters; c != nil {
		if p, ok := t.store.participants[c.participantID]; ok {
			p.Points = c.points
			p.AttendanceCount = c.attendanceCount
		}
	}
}

func copyParticipant(p *models.Participant) *models.Participant {
	cp := *p
	cp.Badges = append([]models.Badge(nil), p.Badges...)
	return &cp
}
