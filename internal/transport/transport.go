package transport

import (
	"errors"
	"net/http"
	"time"

	"github.com/eventpass/eventpass/internal/entity"
	"github.com/eventpass/eventpass/internal/transport/middleware"
	"github.com/eventpass/eventpass/pkg/auth"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the envelope for mutating operations.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondError maps the domain error taxonomy onto HTTP statuses.
// Anything unrecognized is an internal fault.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, entity.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, entity.ErrEventNotFound),
		errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrRegistrationNotFound),
		errors.Is(err, entity.ErrUnknownRegistration):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrDuplicateRegistration),
		errors.Is(err, entity.ErrUserAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, entity.ErrMalformedCode):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	c.JSON(status, ErrorResponse{Success: false, Error: err.Error()})
}

func InitRoutes(
	tokens *auth.TokenManager,
	authHandler *AuthHandler,
	eventHandler *EventHandler,
	registrationHandler *RegistrationHandler,
	attendanceHandler *AttendanceHandler,
	reportHandler *ReportHandler,
) *gin.Engine {

	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	authenticated := middleware.Authenticate(tokens)
	adminOnly := middleware.RequireRole(entity.RoleAdmin)
	userOnly := middleware.RequireRole(entity.RoleUser)

	// API routes
	api := router.Group("/api/v1")
	{
		// Public auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Event routes
		events := api.Group("/events", authenticated)
		{
			events.GET("", eventHandler.GetAllEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.POST("", adminOnly, eventHandler.CreateEvent)
			events.PUT("/:id", adminOnly, eventHandler.UpdateEvent)
			events.DELETE("/:id", adminOnly, eventHandler.DeleteEvent)

			events.POST("/:id/register", userOnly, registrationHandler.RegisterForEvent)
			events.GET("/:id/participants", adminOnly, registrationHandler.GetEventParticipants)
			events.POST("/:id/participants", adminOnly, registrationHandler.AddParticipant)
		}

		// Registration routes
		registrations := api.Group("/registrations", authenticated)
		{
			registrations.GET("/my", userOnly, registrationHandler.GetMyRegistrations)
			registrations.DELETE("/:id", adminOnly, registrationHandler.RemoveParticipant)
		}

		// Attendance routes
		attendance := api.Group("/attendance", authenticated, adminOnly)
		{
			attendance.POST("/scan", attendanceHandler.Scan)
		}

		// Report routes
		reports := api.Group("/reports", authenticated, adminOnly)
		{
			reports.GET("/attendance", reportHandler.GetAttendanceReport)
			reports.GET("/attendance/download", reportHandler.DownloadAttendanceReport)
		}

		// Admin user listing, for the add-participant picker
		users := api.Group("/users", authenticated, adminOnly)
		{
			users.GET("", authHandler.GetAllUsers)
		}

		// QR artifact serving
		api.GET("/qr/:filename", authenticated, registrationHandler.GetQRImage)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return router
}
