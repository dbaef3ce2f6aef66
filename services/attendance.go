package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/congress-app/congress-backend/models"
	"github.com/congress-app/congress-backend/store"
	"github.com/congress-app/congress-backend/utils"
)

// Scan validation failures. Each one maps to a distinct message for the
// participant; none of them leave any state behind.
var (
	ErrMalformedCode       = errors.New("scanned code is not a recognizable check-in code")
	ErrEventMismatch       = errors.New("scanned code belongs to a different event")
	ErrInvalidToken        = errors.New("scanned code is no longer valid for this event")
	ErrQRRevoked           = errors.New("check-in is currently disabled for this event")
	ErrOutsideWindow       = errors.New("this event is not open for check-in right now")
	ErrParticipantNotFound = errors.New("participant record not found")
	ErrTxConflict          = errors.New("check-in could not be committed, please try again")
)

const (
	txMaxAttempts  = 3
	txRetryBackoff = 25 * time.Millisecond
)

// CheckInResult is what a successful (or idempotently absorbed) scan
// reports back to the caller.
type CheckInResult struct {
	AlreadyRecorded    bool           `json:"already_recorded"`
	PointsEarned       int            `json:"points_earned"`
	NewAttendanceCount int            `json:"attendance_count"`
	NewBadges          []models.Badge `json:"new_badges,omitempty"`
}

// AttendanceService turns a validated scan into the one durable state
// change of the system: attendance record, mirrored attendee row and the
// participant's counters, committed atomically.
type AttendanceService struct {
	store  store.Store
	badges *BadgeService
	now    func() time.Time
}

func NewAttendanceService(st store.Store, badges *BadgeService) *AttendanceService {
	return &AttendanceService{store: st, badges: badges, now: time.Now}
}

// CheckIn validates the scanned payload against the event and commits the
// attendance for the participant. Duplicate scans resolve to an
// AlreadyRecorded result, never an error and never a second increment.
func (s *AttendanceService) CheckIn(ctx context.Context, scannedRaw string, event *models.Event, participantID string) (*CheckInResult, error) {
	eventID, token, ok := utils.DecodeQR(scannedRaw)
	if !ok {
		return nil, ErrMalformedCode
	}
	if eventID != event.ID {
		return nil, ErrEventMismatch
	}
	if token != event.QRToken {
		return nil, ErrInvalidToken
	}
	if !event.QRValid {
		return nil, ErrQRRevoked
	}
	if !CanMarkAttendance(event, s.now()) {
		return nil, ErrOutsideWindow
	}

	// Fast path for repeat scans. Purely an optimization: the transaction
	// below re-verifies existence regardless.
	if rec, err := s.store.Attendance(ctx, participantID, event.ID); err == nil && rec != nil {
		return &CheckInResult{AlreadyRecorded: true}, nil
	}

	var (
		result        CheckInResult
		currentBadges []models.Badge
	)
	commit := func() error {
		return s.store.InTx(ctx, func(tx store.Tx) error {
			p, err := tx.ParticipantForUpdate(participantID)
			if err != nil {
				return err
			}
			if p == nil {
				return ErrParticipantNotFound
			}
			exists, err := tx.AttendanceExists(participantID, event.ID)
			if err != nil {
				return err
			}
			if exists {
				return store.ErrDuplicateAttendance
			}

			reward := event.RewardPoints()
			newCount := p.AttendanceCount + 1
			newPoints := p.Points + reward

			rec := &models.AttendanceRecord{
				ID:            models.AttendanceID(participantID, event.ID),
				ParticipantID: participantID,
				EventID:       event.ID,
				PointsEarned:  reward,
			}
			if err := tx.CreateAttendance(rec); err != nil {
				return err
			}
			mirror := &models.EventAttendee{
				EventID:       event.ID,
				ParticipantID: participantID,
				ScannedAt:     rec.ScannedAt,
			}
			if err := tx.CreateAttendee(mirror); err != nil {
				return err
			}
			if err := tx.UpdateCounters(participantID, newPoints, newCount); err != nil {
				return err
			}

			currentBadges = p.Badges
			result = CheckInResult{PointsEarned: reward, NewAttendanceCount: newCount}
			return nil
		})
	}

	var err error
	for attempt := 0; attempt < txMaxAttempts; attempt++ {
		err = commit()
		if !errors.Is(err, store.ErrConflict) {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(txRetryBackoff << attempt):
		}
	}
	switch {
	case err == nil:
	case errors.Is(err, store.ErrDuplicateAttendance):
		// Lost a race against a concurrent scan by the same participant.
		return &CheckInResult{AlreadyRecorded: true}, nil
	case errors.Is(err, store.ErrConflict):
		return nil, ErrTxConflict
	default:
		return nil, err
	}

	newBadges, badgeErr := s.badges.AwardNewBadges(ctx, participantID, result.NewAttendanceCount, currentBadges)
	if badgeErr != nil {
		// The attendance is already committed; badges are best-effort on top
		// and must never fail the check-in.
		log.Printf("badge award failed for participant %s: %v", participantID, badgeErr)
	} else {
		result.NewBadges = newBadges
	}
	return &result, nil
}
