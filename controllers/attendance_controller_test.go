package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/congress-app/congress-backend/models"
	"github.com/congress-app/congress-backend/services"
	"github.com/congress-app/congress-backend/store"
)

func newCheckInRouter(st *store.MemoryStore, participantID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	badgeService := services.NewBadgeService(st)
	attendanceService := services.NewAttendanceService(st, badgeService)
	controller := NewAttendanceController(st, attendanceService)

	router := gin.New()
	// Stand-in for the auth middleware: the verified identity is an input
	// this surface trusts.
	router.Use(func(c *gin.Context) {
		c.Set("participant_id", participantID)
		c.Set("role", "participant")
	})
	router.POST("/events/:eventId/checkin", controller.CheckIn)
	return router
}

func postCheckIn(t *testing.T, router *gin.Engine, eventID, code string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(gin.H{"code": code})
	req := httptest.NewRequest(http.MethodPost, "/events/"+eventID+"/checkin", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedLiveEvent(st *store.MemoryStore) models.Event {
	event := models.Event{
		ID:                  "evt-1",
		Title:               "Opening Keynote",
		StartTime:           time.Now().Add(-time.Minute),
		PointsPerAttendance: 100,
		QRToken:             "XYZ123",
		QRValid:             true,
	}
	st.PutEvent(event)
	return event
}

func TestCheckInEndpoint(t *testing.T) {
	st := store.NewMemoryStore()
	st.PutParticipant(models.Participant{ID: "p1"})
	seedLiveEvent(st)
	router := newCheckInRouter(st, "p1")

	w := postCheckIn(t, router, "evt-1", "evt-1|XYZ123")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		PointsEarned    int            `json:"points_earned"`
		AttendanceCount int            `json:"attendance_count"`
		NewBadges       []models.Badge `json:"new_badges"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PointsEarned != 100 || resp.AttendanceCount != 1 {
		t.Errorf("response = %+v, want 100 points and count 1", resp)
	}
	if len(resp.NewBadges) != 1 || resp.NewBadges[0].ID != "first-steps" {
		t.Errorf("new_badges = %+v, want first-steps", resp.NewBadges)
	}

	// Duplicate scan is a 200 with the idempotent outcome, not an error.
	w = postCheckIn(t, router, "evt-1", "evt-1|XYZ123")
	if w.Code != http.StatusOK {
		t.Fatalf("duplicate scan status = %d", w.Code)
	}
	var dup struct {
		AlreadyRecorded bool `json:"already_recorded"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &dup); err != nil {
		t.Fatalf("decode duplicate response: %v", err)
	}
	if !dup.AlreadyRecorded {
		t.Errorf("duplicate response = %s, want already_recorded", w.Body.String())
	}
}

func TestCheckInEndpointFailures(t *testing.T) {
	cases := []struct {
		name       string
		code       string
		revoked    bool
		wantStatus int
	}{
		{"malformed code", "garbage", false, http.StatusBadRequest},
		{"event mismatch", "OTHER_EVENT|XYZ123", false, http.StatusConflict},
		{"invalid token", "evt-1|WRONG", false, http.StatusForbidden},
		{"revoked qr", "evt-1|XYZ123", true, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := store.NewMemoryStore()
			st.PutParticipant(models.Participant{ID: "p1"})
			event := seedLiveEvent(st)
			if tc.revoked {
				event.QRValid = false
				st.PutEvent(event)
			}
			router := newCheckInRouter(st, "p1")

			w := postCheckIn(t, router, "evt-1", tc.code)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}

			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Error == "" {
				t.Errorf("expected a specific error message, got %s", w.Body.String())
			}

			p, _ := st.Participant(context.Background(), "p1")
			if p.Points != 0 || p.AttendanceCount != 0 {
				t.Errorf("participant mutated on failure: %+v", p)
			}
		})
	}
}

func TestCheckInEndpointUnknownEvent(t *testing.T) {
	st := store.NewMemoryStore()
	st.PutParticipant(models.Participant{ID: "p1"})
	router := newCheckInRouter(st, "p1")

	w := postCheckIn(t, router, "missing", "missing|XYZ123")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
