package models

import (
	"time"
)

// AttendanceRecord is proof that one participant attended one event. The
// primary key is the deterministic composite {participantID}_{eventID}, so
// the database itself guarantees at most one record per pair. PointsEarned
// snapshots the event reward at check-in time; later reward edits never
// change past records.
type AttendanceRecord struct {
	ID            string    `gorm:"primaryKey;size:200" json:"id"`
	ParticipantID string    `gorm:"size:128;not null;index" json:"participant_id"`
	EventID       string    `gorm:"size:64;not null;index" json:"event_id"`
	ScannedAt     time.Time `gorm:"not null" json:"scanned_at"`
	PointsEarned  int       `gorm:"not null" json:"points_earned"`
}

// AttendanceID builds the composite key for a participant/event pair.
func AttendanceID(participantID, eventID string) string {
	return participantID + "_" + eventID
}

// EventAttendee mirrors an attendance record under the event, so admins can
// enumerate who showed up without scanning the per-participant records.
type EventAttendee struct {
	EventID       string    `gorm:"primaryKey;size:64" json:"event_id"`
	ParticipantID string    `gorm:"primaryKey;size:128" json:"participant_id"`
	ScannedAt     time.Time `gorm:"not null" json:"scanned_at"`
}
