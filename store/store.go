// Package store abstracts the document store behind the attendance core, so
// the services get an explicitly injected client instead of a package-level
// database singleton, and tests can substitute the in-memory implementation.
package store

import (
	"context"
	"errors"

	"github.com/congress-app/congress-backend/models"
)

var (
	// ErrNotFound reports that a targeted update matched no document.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateAttendance reports that the attendance record for a
	// participant/event pair already exists. The transaction raises it even
	// when the caller pre-checked, making the transaction the single source
	// of truth for existence.
	ErrDuplicateAttendance = errors.New("store: attendance already recorded")
	// ErrConflict is a transient transaction failure worth retrying.
	ErrConflict = errors.New("store: transaction conflict")
)

// Tx is the set of operations available inside one atomic attendance
// mutation. Either every write issued through it commits, or none do.
type Tx interface {
	// ParticipantForUpdate reads the participant with badges preloaded,
	// holding the row locked until the transaction ends. Returns nil when
	// the participant does not exist.
	ParticipantForUpdate(id string) (*models.Participant, error)
	// AttendanceExists re-verifies the composite key inside the transaction.
	AttendanceExists(participantID, eventID string) (bool, error)
	// CreateAttendance inserts the record, assigning ScannedAt server-side
	// when unset. Returns ErrDuplicateAttendance when the key already exists.
	CreateAttendance(rec *models.AttendanceRecord) error
	// CreateAttendee writes the mirrored event-scoped attendee row.
	CreateAttendee(att *models.EventAttendee) error
	// UpdateCounters stores the recomputed points and attendance count.
	UpdateCounters(participantID string, points, attendanceCount int) error
}

// Store is the document-store client the attendance core is built against.
type Store interface {
	// Participant point-reads a participant with badges; nil when missing.
	Participant(ctx context.Context, id string) (*models.Participant, error)
	// Event point-reads an event; nil when missing.
	Event(ctx context.Context, id string) (*models.Event, error)
	// Attendance point-reads an attendance record; nil when missing.
	Attendance(ctx context.Context, participantID, eventID string) (*models.AttendanceRecord, error)
	// Attendees lists the mirrored attendee view of an event.
	Attendees(ctx context.Context, eventID string) ([]models.EventAttendee, error)

	// InTx runs fn inside a single atomic transaction. A transient conflict
	// surfaces as ErrConflict.
	InTx(ctx context.Context, fn func(Tx) error) error

	// AppendBadges adds badges to the participant's set with set-union
	// semantics; re-appending an already held id is a no-op.
	AppendBadges(ctx context.Context, participantID string, badges []models.Badge) error

	// SetEventQR stores a fresh token and validity flag on the event.
	SetEventQR(ctx context.Context, eventID, token string, valid bool) error
	// SetEventQRValidity toggles the check-in gate without touching the token.
	SetEventQRValidity(ctx context.Context, eventID string, valid bool) error
}
