package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/congress-app/congress-backend/controllers"
	"github.com/congress-app/congress-backend/middleware"
)

func SetupRoutes(
	router *gin.Engine,
	auth *controllers.AuthController,
	events *controllers.EventController,
	attendance *controllers.AttendanceController,
	qr *controllers.QRController,
	users *controllers.UserController,
) {
	router.POST("/auth/register", auth.Register)
	router.POST("/auth/login", auth.Login)
	router.POST("/auth/refresh", auth.RefreshToken)

	eventRoutes := router.Group("/events")
	eventRoutes.Use(middleware.AuthMiddleware())
	{
		eventRoutes.GET("/", events.GetEvents)
		eventRoutes.GET("/:eventId", events.GetEvent)
		eventRoutes.POST("/:eventId/checkin", attendance.CheckIn)

		admin := eventRoutes.Group("")
		admin.Use(middleware.AdminOnlyMiddleware())
		{
			admin.POST("/", events.CreateEvent)
			admin.PUT("/:eventId", events.UpdateEvent)
			admin.DELETE("/:eventId", events.DeleteEvent)
			admin.GET("/:eventId/attendees", events.GetEventAttendees)
			admin.GET("/:eventId/qr", qr.GetEventQR)
			admin.POST("/:eventId/qr/regenerate", qr.RegenerateQR)
			admin.PUT("/:eventId/qr/validity", qr.SetQRValidity)
		}
	}

	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.GET("/me", users.GetMe)
		userRoutes.GET("/leaderboard", users.Leaderboard)
		userRoutes.GET("/", middleware.AdminOnlyMiddleware(), users.GetParticipants)
		userRoutes.GET("/:id", users.GetParticipantByID)
		userRoutes.PUT("/:id", middleware.OwnershipMiddleware(), users.UpdateParticipant)
		userRoutes.DELETE("/:id", middleware.AdminOnlyMiddleware(), users.DeleteParticipant)
	}
}
