package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/congress-app/congress-backend/models"
	"github.com/congress-app/congress-backend/services"
	"github.com/congress-app/congress-backend/store"
)

// EventController owns the event CRUD surface. Event creation issues the
// initial QR token through the lifecycle manager; token rotation and
// validity live in QRController.
type EventController struct {
	DB    *gorm.DB
	QR    *services.QRService
	Store store.Store
}

func NewEventController(db *gorm.DB, qr *services.QRService, st store.Store) *EventController {
	return &EventController{DB: db, QR: qr, Store: st}
}

// eventResponse decorates an event with its computed temporal status.
type eventResponse struct {
	models.Event
	Status services.EventTemporalStatus `json:"status"`
}

func withStatus(e models.Event, now time.Time) eventResponse {
	return eventResponse{Event: e, Status: services.EventStatus(&e, now)}
}

// GetEvents retrieves a list of all events with optional filters
func (ec *EventController) GetEvents(c *gin.Context) {
	// Parse and validate query parameters
	queryParams := struct {
		BeforeTime  string `form:"before_time"`
		AfterTime   string `form:"after_time"`
		BetweenTime string `form:"between_time"` // comma-separated start,end
		Limit       string `form:"limit"`
		Order       string `form:"order"` // "asc" or "desc"
	}{
		Order: "asc", // default to soonest first
	}

	if err := c.ShouldBindQuery(&queryParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if queryParams.Order != "asc" && queryParams.Order != "desc" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be either 'asc' or 'desc'"})
		return
	}

	query := ec.DB.Session(&gorm.Session{})

	// Handle before_time
	if queryParams.BeforeTime != "" {
		beforeTime, err := time.Parse(time.RFC3339, queryParams.BeforeTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid before_time format. Use RFC3339 (e.g., 2023-10-01T00:00:00Z)"})
			return
		}
		query = query.Where("start_time < ?", beforeTime)
	}

	// Handle after_time
	if queryParams.AfterTime != "" {
		afterTime, err := time.Parse(time.RFC3339, queryParams.AfterTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid after_time format. Use RFC3339 (e.g., 2023-10-01T00:00:00Z)"})
			return
		}
		query = query.Where("start_time > ?", afterTime)
	}

	// Handle between_time (comma-separated start,end)
	if queryParams.BetweenTime != "" {
		times := strings.Split(queryParams.BetweenTime, ",")
		if len(times) != 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "between_time must contain exactly 2 comma-separated RFC3339 timestamps"})
			return
		}

		startTime, err := time.Parse(time.RFC3339, times[0])
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time in between_time"})
			return
		}

		endTime, err := time.Parse(time.RFC3339, times[1])
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end time in between_time"})
			return
		}

		if startTime.After(endTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Start time must be before end time in between_time"})
			return
		}

		query = query.Where("start_time BETWEEN ? AND ?", startTime, endTime)
	}

	query = query.Order(fmt.Sprintf("start_time %s", queryParams.Order))

	if queryParams.Limit != "" {
		limit, err := strconv.Atoi(queryParams.Limit)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		query = query.Limit(limit)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	now := time.Now()
	responses := make([]eventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, withStatus(e, now))
	}

	c.JSON(http.StatusOK, responses)
}

// CreateEvent creates a new event and issues its first QR token (requires
// admin permission)
func (ec *EventController) CreateEvent(c *gin.Context) {
	var input struct {
		Title               string     `json:"title" binding:"required"`
		Description         string     `json:"description"`
		Location            string     `json:"location"`
		StartTime           *time.Time `json:"start_time" binding:"required"`
		EndTime             *time.Time `json:"end_time"`
		DurationLabel       string     `json:"duration_label"`
		Speakers            []string   `json:"speakers"`
		PointsPerAttendance int        `json:"points_per_attendance"`
		ImageURL            string     `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// An explicit end must come strictly after the start
	if input.EndTime != nil && !input.EndTime.After(*input.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be after start_time"})
		return
	}
	if input.PointsPerAttendance < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "points_per_attendance cannot be negative"})
		return
	}
	if input.PointsPerAttendance == 0 {
		input.PointsPerAttendance = models.DefaultPointsPerAttendance
	}

	event := models.Event{
		ID:                  uuid.NewString(),
		Title:               input.Title,
		Description:         input.Description,
		Location:            input.Location,
		StartTime:           *input.StartTime,
		EndTime:             input.EndTime,
		DurationLabel:       input.DurationLabel,
		Speakers:            input.Speakers,
		PointsPerAttendance: input.PointsPerAttendance,
		QRToken:             ec.QR.IssueToken(),
		QRValid:             true,
		ImageURL:            input.ImageURL,
	}
	if err := ec.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, withStatus(event, time.Now()))
}

// GetEvent retrieves details of a specific event
func (ec *EventController) GetEvent(c *gin.Context) {
	eventID := c.Param("eventId")
	var event models.Event
	if err := ec.DB.First(&event, "id = ?", eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, withStatus(event, time.Now()))
}

// UpdateEvent updates event details (requires admin permission). The QR
// token and validity flag are deliberately untouchable here.
func (ec *EventController) UpdateEvent(c *gin.Context) {
	eventID := c.Param("eventId")
	var input struct {
		Title               *string    `json:"title"`
		Description         *string    `json:"description"`
		Location            *string    `json:"location"`
		StartTime           *time.Time `json:"start_time"`
		EndTime             *time.Time `json:"end_time"`
		DurationLabel       *string    `json:"duration_label"`
		Speakers            []string   `json:"speakers"`
		PointsPerAttendance *int       `json:"points_per_attendance"`
		ImageURL            *string    `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event models.Event
	if err := ec.DB.First(&event, "id = ?", eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	// Update only provided fields
	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.StartTime != nil {
		event.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = input.EndTime
	}
	if input.DurationLabel != nil {
		event.DurationLabel = *input.DurationLabel
	}
	if input.Speakers != nil {
		event.Speakers = input.Speakers
	}
	if input.PointsPerAttendance != nil {
		if *input.PointsPerAttendance <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "points_per_attendance must be a positive integer"})
			return
		}
		event.PointsPerAttendance = *input.PointsPerAttendance
	}
	if input.ImageURL != nil {
		event.ImageURL = *input.ImageURL
	}

	if event.EndTime != nil && !event.EndTime.After(event.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be after start_time"})
		return
	}

	if err := ec.DB.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, withStatus(event, time.Now()))
}

// DeleteEvent deletes an event (requires admin permission)
func (ec *EventController) DeleteEvent(c *gin.Context) {
	eventID := c.Param("eventId")
	if err := ec.DB.Delete(&models.Event{}, "id = ?", eventID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// GetEventAttendees lists the mirrored attendee view of an event (requires
// admin permission)
func (ec *EventController) GetEventAttendees(c *gin.Context) {
	eventID := c.Param("eventId")

	event, err := ec.Store.Event(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	attendees, err := ec.Store.Attendees(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attendees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "attendees": attendees, "count": len(attendees)})
}
