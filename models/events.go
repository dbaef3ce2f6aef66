package models

import (
	"time"
)

// DefaultPointsPerAttendance is awarded when an event was stored without an
// explicit reward. The fallback lives here, at the model boundary, so call
// sites never need their own default.
const DefaultPointsPerAttendance = 100

// Event is a schedulable congress activity. QRToken is the per-event shared
// secret embedded in the printed/displayed QR image and never appears in
// JSON responses; QRValid gates check-ins independently of the token.
type Event struct {
	ID                  string     `gorm:"primaryKey;size:64" json:"id"`
	Title               string     `gorm:"size:255;not null" json:"title"`
	Description         string     `gorm:"type:text" json:"description"`
	Location            string     `gorm:"size:255" json:"location"`
	StartTime           time.Time  `gorm:"type:timestamptz;not null" json:"start_time"`
	EndTime             *time.Time `gorm:"type:timestamptz" json:"end_time,omitempty"` // Pointer to time.Time, allows NULL
	DurationLabel       string     `gorm:"size:64" json:"duration_label,omitempty"`
	Speakers            []string   `gorm:"serializer:json" json:"speakers,omitempty"`
	PointsPerAttendance int        `gorm:"not null;default:100" json:"points_per_attendance"`
	QRToken             string     `gorm:"size:64" json:"-"`
	QRValid             bool       `gorm:"not null;default:true" json:"qr_valid"`
	ImageURL            string     `gorm:"size:512" json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RewardPoints returns the points granted for attending this event,
// falling back to DefaultPointsPerAttendance when the stored value is unset.
func (e *Event) RewardPoints() int {
	if e.PointsPerAttendance <= 0 {
		return DefaultPointsPerAttendance
	}
	return e.PointsPerAttendance
}
