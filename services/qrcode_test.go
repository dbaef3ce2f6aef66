package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/congress-app/congress-backend/models"
	"github.com/congress-app/congress-backend/store"
	"github.com/congress-app/congress-backend/utils"
)

func TestRegenerateRotatesTokenAndReactivates(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	event := models.Event{ID: "evt-1", QRToken: "OLDTOKEN", QRValid: false}
	st.PutEvent(event)

	svc := NewQRService(st)
	token, err := svc.Regenerate(ctx, &event)
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if token == "OLDTOKEN" {
		t.Fatal("Regenerate returned the old token")
	}
	if event.QRToken != token || !event.QRValid {
		t.Errorf("event not updated in place: token=%q valid=%v", event.QRToken, event.QRValid)
	}

	stored, _ := st.Event(ctx, "evt-1")
	if stored.QRToken != token {
		t.Errorf("stored token = %q, want %q", stored.QRToken, token)
	}
	if !stored.QRValid {
		t.Error("regeneration must force the validity gate back on")
	}
}

func TestRegenerateKillsOldPrintedCodes(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.PutParticipant(models.Participant{ID: "p1"})

	start := time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC)
	event := models.Event{ID: "evt-1", StartTime: start, QRToken: "OLDTOKEN", QRValid: true}
	st.PutEvent(event)

	qrSvc := NewQRService(st)
	attSvc := NewAttendanceService(st, NewBadgeService(st))
	attSvc.now = func() time.Time { return start }

	oldPayload := utils.EncodeQR("evt-1", "OLDTOKEN")
	if _, err := qrSvc.Regenerate(ctx, &event); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}

	if _, err := attSvc.CheckIn(ctx, oldPayload, &event, "p1"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("old payload after regeneration: err = %v, want %v", err, ErrInvalidToken)
	}

	newPayload := utils.EncodeQR("evt-1", event.QRToken)
	if _, err := attSvc.CheckIn(ctx, newPayload, &event, "p1"); err != nil {
		t.Fatalf("new payload after regeneration: %v", err)
	}
}

func TestSetValidityPauseAndResume(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.PutParticipant(models.Participant{ID: "p1"})

	start := time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC)
	event := models.Event{ID: "evt-1", StartTime: start, QRToken: "XYZ123", QRValid: true}
	st.PutEvent(event)

	qrSvc := NewQRService(st)
	attSvc := NewAttendanceService(st, NewBadgeService(st))
	attSvc.now = func() time.Time { return start }
	payload := utils.EncodeQR("evt-1", "XYZ123")

	if err := qrSvc.SetValidity(ctx, &event, false); err != nil {
		t.Fatalf("SetValidity(false): %v", err)
	}
	if _, err := attSvc.CheckIn(ctx, payload, &event, "p1"); !errors.Is(err, ErrQRRevoked) {
		t.Fatalf("paused event: err = %v, want %v", err, ErrQRRevoked)
	}

	// Resuming keeps the same printed code usable.
	if err := qrSvc.SetValidity(ctx, &event, true); err != nil {
		t.Fatalf("SetValidity(true): %v", err)
	}
	if event.QRToken != "XYZ123" {
		t.Fatalf("token changed by validity toggle: %q", event.QRToken)
	}
	if _, err := attSvc.CheckIn(ctx, payload, &event, "p1"); err != nil {
		t.Fatalf("resumed event: %v", err)
	}
}

func TestQRLifecycleUnknownEvent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewQRService(st)

	ghost := models.Event{ID: "nope"}
	if _, err := svc.Regenerate(ctx, &ghost); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Regenerate on unknown event: err = %v, want %v", err, store.ErrNotFound)
	}
	if err := svc.SetValidity(ctx, &ghost, false); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("SetValidity on unknown event: err = %v, want %v", err, store.ErrNotFound)
	}
}
