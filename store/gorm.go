package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/congress-app/congress-backend/models"
)

// GormStore implements Store on top of GORM/Postgres. Atomicity comes from
// a database transaction with the participant row locked FOR UPDATE; the
// attendance primary key enforces at-most-one record per pair.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Participant(ctx context.Context, id string) (*models.Participant, error) {
	var p models.Participant
	err := s.db.WithContext(ctx).Preload("Badges").First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) Event(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (s *GormStore) Attendance(ctx context.Context, participantID, eventID string) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", models.AttendanceID(participantID, eventID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) Attendees(ctx context.Context, eventID string) ([]models.EventAttendee, error) {
	var attendees []models.EventAttendee
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("scanned_at asc").
		Find(&attendees).Error
	if err != nil {
		return nil, err
	}
	return attendees, nil
}

func (s *GormStore) InTx(ctx context.Context, fn func(Tx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{tx: tx})
	})
	return translateConflict(err)
}

func (s *GormStore) AppendBadges(ctx context.Context, participantID string, badges []models.Badge) error {
	if len(badges) == 0 {
		return nil
	}
	p := models.Participant{ID: participantID}
	return s.db.WithContext(ctx).Model(&p).Association("Badges").Append(&badges)
}

func (s *GormStore) SetEventQR(ctx context.Context, eventID, token string, valid bool) error {
	res := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{"qr_token": token, "qr_valid": valid})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) SetEventQRValidity(ctx context.Context, eventID string, valid bool) error {
	res := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("qr_valid", valid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormTx struct {
	tx *gorm.DB
}

func (t *gormTx) ParticipantForUpdate(id string) (*models.Participant, error) {
	var p models.Participant
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Badges").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (t *gormTx) AttendanceExists(participantID, eventID string) (bool, error) {
	var count int64
	err := t.tx.Model(&models.AttendanceRecord{}).
		Where("id = ?", models.AttendanceID(participantID, eventID)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (t *gormTx) CreateAttendance(rec *models.AttendanceRecord) error {
	if rec.ScannedAt.IsZero() {
		rec.ScannedAt = time.Now().UTC()
	}
	if err := t.tx.Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateAttendance
		}
		return err
	}
	return nil
}

func (t *gormTx) CreateAttendee(att *models.EventAttendee) error {
	if att.ScannedAt.IsZero() {
		att.ScannedAt = time.Now().UTC()
	}
	if err := t.tx.Create(att).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateAttendance
		}
		return err
	}
	return nil
}

func (t *gormTx) UpdateCounters(participantID string, points, attendanceCount int) error {
	return t.tx.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Updates(map[string]interface{}{"points": points, "attendance_count": attendanceCount}).Error
}

// translateConflict maps Postgres serialization failures and deadlocks to
// ErrConflict so the coordinator's bounded retry can kick in.
func translateConflict(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "40001" || pgErr.Code == "40P01" {
			return ErrConflict
		}
	}
	return err
}
