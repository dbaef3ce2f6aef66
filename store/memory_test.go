package store

import (
	"context"
	"errors"
	"testing"

	"github.com/congress-app/congress-backend/models"
)

func TestMemoryStorePointReadsReturnNilWhenMissing(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if p, err := st.Participant(ctx, "nope"); err != nil || p != nil {
		t.Errorf("Participant = (%v, %v), want (nil, nil)", p, err)
	}
	if e, err := st.Event(ctx, "nope"); err != nil || e != nil {
		t.Errorf("Event = (%v, %v), want (nil, nil)", e, err)
	}
	if rec, err := st.Attendance(ctx, "p", "e"); err != nil || rec != nil {
		t.Errorf("Attendance = (%v, %v), want (nil, nil)", rec, err)
	}
}

func TestMemoryStoreTxDuplicateAttendance(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	st.PutParticipant(models.Participant{ID: "p1"})

	create := func() error {
		return st.InTx(ctx, func(tx Tx) error {
			return tx.CreateAttendance(&models.AttendanceRecord{
				ID:            models.AttendanceID("p1", "e1"),
				ParticipantID: "p1",
				EventID:       "e1",
				PointsEarned:  100,
			})
		})
	}
	if err := create(); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := create(); !errors.Is(err, ErrDuplicateAttendance) {
		t.Fatalf("second create err = %v, want %v", err, ErrDuplicateAttendance)
	}
}

func TestMemoryStoreTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	st.PutParticipant(models.Participant{ID: "p1", Points: 10, AttendanceCount: 1})

	boom := errors.New("boom")
	err := st.InTx(ctx, func(tx Tx) error {
		if err := tx.CreateAttendance(&models.AttendanceRecord{
			ID: models.AttendanceID("p1", "e1"), ParticipantID: "p1", EventID: "e1",
		}); err != nil {
			return err
		}
		if err := tx.UpdateCounters("p1", 110, 2); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("InTx err = %v, want boom", err)
	}

	if rec, _ := st.Attendance(ctx, "p1", "e1"); rec != nil {
		t.Error("attendance visible after failed transaction")
	}
	p, _ := st.Participant(ctx, "p1")
	if p.Points != 10 || p.AttendanceCount != 1 {
		t.Errorf("counters = %d/%d, want untouched 10/1", p.Points, p.AttendanceCount)
	}
}

func TestMemoryStoreAppendBadgesSetUnion(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	st.PutParticipant(models.Participant{ID: "p1"})

	badge := models.Milestones[0]
	if err := st.AppendBadges(ctx, "p1", []models.Badge{badge}); err != nil {
		t.Fatalf("AppendBadges: %v", err)
	}
	if err := st.AppendBadges(ctx, "p1", []models.Badge{badge}); err != nil {
		t.Fatalf("AppendBadges (repeat): %v", err)
	}

	p, _ := st.Participant(ctx, "p1")
	if len(p.Badges) != 1 {
		t.Fatalf("badges = %d, want 1 after repeated append", len(p.Badges))
	}
}

func TestMemoryStoreReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	st.PutParticipant(models.Participant{ID: "p1", Points: 5})

	p, _ := st.Participant(ctx, "p1")
	p.Points = 9999

	again, _ := st.Participant(ctx, "p1")
	if again.Points != 5 {
		t.Fatalf("mutation of a read leaked into the store: points = %d", again.Points)
	}
}
