package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/congress-app/congress-backend/services"
	"github.com/congress-app/congress-backend/store"
)

// AttendanceController exposes the check-in endpoint. It stays thin: load
// the event, hand the scan to the coordinator, translate the outcome.
type AttendanceController struct {
	Store      store.Store
	Attendance *services.AttendanceService
}

func NewAttendanceController(st store.Store, attendance *services.AttendanceService) *AttendanceController {
	return &AttendanceController{Store: st, Attendance: attendance}
}

// CheckIn records the authenticated participant's attendance for the event
// from a scanned QR payload.
func (ac *AttendanceController) CheckIn(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A scanned code is required"})
		return
	}

	eventID := c.Param("eventId")
	event, err := ac.Store.Event(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	participantID := c.GetString("participant_id")
	result, err := ac.Attendance.CheckIn(c.Request.Context(), input.Code, event, participantID)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrMalformedCode):
			status = http.StatusBadRequest
		case errors.Is(err, services.ErrEventMismatch):
			status = http.StatusConflict
		case errors.Is(err, services.ErrInvalidToken):
			status = http.StatusForbidden
		case errors.Is(err, services.ErrQRRevoked):
			status = http.StatusForbidden
		case errors.Is(err, services.ErrOutsideWindow):
			status = http.StatusConflict
		case errors.Is(err, services.ErrParticipantNotFound):
			status = http.StatusNotFound
		case errors.Is(err, services.ErrTxConflict):
			status = http.StatusServiceUnavailable
		default:
			c.JSON(status, gin.H{"error": "Failed to record attendance"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if result.AlreadyRecorded {
		c.JSON(http.StatusOK, gin.H{
			"already_recorded": true,
			"message":          "Your attendance for this event was already registered",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
