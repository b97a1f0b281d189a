package transport

import (
	"net/http"

	"github.com/eventpass/eventpass/internal/service"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// ScanRequest carries the raw payload read off a QR code.
type ScanRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *AttendanceHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.attendanceService.MarkAttendance(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "attendance marked successfully"
	if result.Outcome == service.ScanAlreadyMarked {
		message = "attendance already marked"
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: message,
		Data:    result,
	})
}
