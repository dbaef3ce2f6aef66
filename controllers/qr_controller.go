package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/congress-app/congress-backend/services"
	"github.com/congress-app/congress-backend/store"
	"github.com/congress-app/congress-backend/utils"
)

// QRController is the admin surface of the QR lifecycle manager. All three
// endpoints sit behind the admin middleware.
type QRController struct {
	Store store.Store
	QR    *services.QRService
}

func NewQRController(st store.Store, qr *services.QRService) *QRController {
	return &QRController{Store: st, QR: qr}
}

// GetEventQR returns the plain-text payload an external generator renders
// into the event's QR image.
func (qc *QRController) GetEventQR(c *gin.Context) {
	eventID := c.Param("eventId")
	event, err := qc.Store.Event(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payload":  utils.EncodeQR(event.ID, event.QRToken),
		"qr_valid": event.QRValid,
	})
}

// RegenerateQR issues a fresh token for the event. Old printed codes stop
// working immediately and the validity gate comes back on.
func (qc *QRController) RegenerateQR(c *gin.Context) {
	eventID := c.Param("eventId")
	event, err := qc.Store.Event(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	token, err := qc.QR.Regenerate(c.Request.Context(), event)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate QR token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"qr_token": token,
		"payload":  utils.EncodeQR(event.ID, token),
		"qr_valid": true,
	})
}

// SetQRValidity pauses or resumes check-ins without rotating the token.
func (qc *QRController) SetQRValidity(c *gin.Context) {
	var input struct {
		Valid *bool `json:"valid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid is required"})
		return
	}

	eventID := c.Param("eventId")
	event, err := qc.Store.Event(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if err := qc.QR.SetValidity(c.Request.Context(), event, *input.Valid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update QR validity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"qr_valid": event.QRValid})
}
