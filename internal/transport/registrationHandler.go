package transport

import (
	"io"
	"net/http"
	"path"

	"github.com/eventpass/eventpass/internal/entity"
	"github.com/eventpass/eventpass/internal/service"
	"github.com/eventpass/eventpass/internal/transport/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RegistrationHandler struct {
	registrationService service.RegistrationService
}

func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// AddParticipantRequest is the admin add-participant payload.
type AddParticipantRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// RegisterForEvent registers the authenticated caller; the user id
// comes from the request identity, never from the body.
func (h *RegistrationHandler) RegisterForEvent(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": entity.ErrUnauthorized.Error()})
		return
	}

	reg, err := h.registrationService.Register(c.Request.Context(), ident.UserID, eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "registration successful, QR code generated",
		Data:    reg,
	})
}

func (h *RegistrationHandler) GetMyRegistrations(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": entity.ErrUnauthorized.Error()})
		return
	}

	regs, err := h.registrationService.GetUserRegistrations(c.Request.Context(), ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, regs)
}

func (h *RegistrationHandler) GetEventParticipants(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	participants, err := h.registrationService.GetEventParticipants(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, participants)
}

func (h *RegistrationHandler) AddParticipant(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reg, err := h.registrationService.AddParticipant(c.Request.Context(), eventID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "participant added",
		Data:    reg,
	})
}

func (h *RegistrationHandler) RemoveParticipant(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
		return
	}

	if err := h.registrationService.RemoveParticipant(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "participant removed",
	})
}

func (h *RegistrationHandler) GetQRImage(c *gin.Context) {
	// path.Base blocks traversal out of the artifact dir
	filename := path.Base(c.Param("filename"))

	reader, err := h.registrationService.GetArtifact(c.Request.Context(), filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "qr code not found"})
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, reader); err != nil {
		// headers are already gone, nothing left to do but log
		logrus.Errorf("Failed to stream artifact %s: %v", filename, err)
	}
}
