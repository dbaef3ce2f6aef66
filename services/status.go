// Package services holds the attendance core: the temporal status
// evaluator, the badge engine, the check-in transaction coordinator, and
// the QR lifecycle manager. Controllers consume it as a library.
package services

import (
	"time"

	"github.com/congress-app/congress-backend/models"
)

type EventTemporalStatus string

const (
	StatusUpcoming   EventTemporalStatus = "upcoming"
	StatusInProgress EventTemporalStatus = "in-progress"
	StatusFinished   EventTemporalStatus = "finished"
)

const (
	// DefaultEventDuration is assumed when an event has no explicit end time.
	DefaultEventDuration = 4 * time.Hour
	// AttendanceGraceBefore lets participants check in while queuing shortly
	// before the nominal start.
	AttendanceGraceBefore = 15 * time.Minute
)

// EffectiveEnd returns the event's end time, or start plus
// DefaultEventDuration when no end was given.
func EffectiveEnd(e *models.Event) time.Time {
	if e.EndTime != nil {
		return *e.EndTime
	}
	return e.StartTime.Add(DefaultEventDuration)
}

// EventStatus computes the event's temporal state at the given instant.
// Both boundaries of [start, effectiveEnd] count as in-progress.
func EventStatus(e *models.Event, now time.Time) EventTemporalStatus {
	if now.Before(e.StartTime) {
		return StatusUpcoming
	}
	if !now.After(EffectiveEnd(e)) {
		return StatusInProgress
	}
	return StatusFinished
}

// CanMarkAttendance reports whether a check-in at the given instant falls
// inside [start - AttendanceGraceBefore, effectiveEnd].
func CanMarkAttendance(e *models.Event, now time.Time) bool {
	windowStart := e.StartTime.Add(-AttendanceGraceBefore)
	return !now.Before(windowStart) && !now.After(EffectiveEnd(e))
}
