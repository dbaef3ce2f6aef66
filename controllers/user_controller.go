package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/congress-app/congress-backend/models"
	"github.com/congress-app/congress-backend/services"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetMe returns the authenticated participant's profile with badges and
// progress towards the next milestone.
func (uc *UserController) GetMe(c *gin.Context) {
	participantID := c.GetString("participant_id")

	var participant models.Participant
	if err := uc.DB.Preload("Badges").First(&participant, "id = ?", participantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"participant": participant,
		"progress":    services.ProgressToNext(participant.AttendanceCount),
	})
}

// GetParticipants returns all participants (requires admin permission)
func (uc *UserController) GetParticipants(c *gin.Context) {
	var participants []models.Participant
	if err := uc.DB.Preload("Badges").Find(&participants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve participants"})
		return
	}
	c.JSON(http.StatusOK, participants)
}

// GetParticipantByID returns a single participant by id
func (uc *UserController) GetParticipantByID(c *gin.Context) {
	id := c.Param("id")
	var participant models.Participant
	if err := uc.DB.Preload("Badges").First(&participant, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
		return
	}
	c.JSON(http.StatusOK, participant)
}

// UpdateParticipant updates a participant's profile information. Points,
// attendance count and badges are owned by the attendance core and cannot
// be edited here.
func (uc *UserController) UpdateParticipant(c *gin.Context) {
	id := c.Param("id")
	var participant models.Participant
	if err := uc.DB.First(&participant, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
		return
	}

	var input struct {
		Name *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		participant.Name = *input.Name
	}

	if err := uc.DB.Save(&participant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update participant"})
		return
	}

	c.JSON(http.StatusOK, participant)
}

// DeleteParticipant removes a participant (requires admin permission)
func (uc *UserController) DeleteParticipant(c *gin.Context) {
	id := c.Param("id")
	if err := uc.DB.Delete(&models.Participant{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Participant deleted"})
}

// Leaderboard returns participants ordered by points, highest first.
func (uc *UserController) Leaderboard(c *gin.Context) {
	limit := 25
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	var participants []models.Participant
	err := uc.DB.
		Order("points desc, attendance_count desc").
		Limit(limit).
		Find(&participants).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leaderboard"})
		return
	}

	c.JSON(http.StatusOK, participants)
}
