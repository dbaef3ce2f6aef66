package services

import (
	"testing"
	"time"

	"github.com/congress-app/congress-backend/models"
)

func TestEventStatusBoundaries(t *testing.T) {
	start := time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	event := &models.Event{ID: "e1", StartTime: start, EndTime: &end}

	cases := []struct {
		name string
		now  time.Time
		want EventTemporalStatus
	}{
		{"one second before start", start.Add(-time.Second), StatusUpcoming},
		{"exactly at start", start, StatusInProgress},
		{"mid event", start.Add(time.Hour), StatusInProgress},
		{"exactly at end", end, StatusInProgress},
		{"one second after end", end.Add(time.Second), StatusFinished},
	}
	for _, tc := range cases {
		if got := EventStatus(event, tc.now); got != tc.want {
			t.Errorf("%s: EventStatus = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestEventStatusDefaultDuration(t *testing.T) {
	start := time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC)
	event := &models.Event{ID: "e1", StartTime: start}

	if got := EventStatus(event, start.Add(DefaultEventDuration)); got != StatusInProgress {
		t.Errorf("at start+4h without explicit end: got %q, want %q", got, StatusInProgress)
	}
	if got := EventStatus(event, start.Add(DefaultEventDuration+time.Second)); got != StatusFinished {
		t.Errorf("just past start+4h without explicit end: got %q, want %q", got, StatusFinished)
	}
}

func TestCanMarkAttendanceWindow(t *testing.T) {
	start := time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	event := &models.Event{ID: "e1", StartTime: start, EndTime: &end}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"grace window opens", start.Add(-AttendanceGraceBefore), true},
		{"one second before grace window", start.Add(-AttendanceGraceBefore - time.Second), false},
		{"at start", start, true},
		{"at end", end, true},
		{"one second after end", end.Add(time.Second), false},
	}
	for _, tc := range cases {
		if got := CanMarkAttendance(event, tc.now); got != tc.want {
			t.Errorf("%s: CanMarkAttendance = %v, want %v", tc.name, got, tc.want)
		}
	}
}
