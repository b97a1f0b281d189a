package transport

import (
	"net/http"

	"github.com/eventpass/eventpass/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) GetAttendanceReport(c *gin.Context) {
	rows, err := h.reportService.GetReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// DownloadAttendanceReport streams the CSV straight into the response
// writer, one ledger row at a time.
func (h *ReportHandler) DownloadAttendanceReport(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename=attendance_report.csv`)
	c.Status(http.StatusOK)

	if err := h.reportService.WriteCSV(c.Request.Context(), c.Writer); err != nil {
		// headers are already gone, nothing left to do but log
		logrus.Errorf("Failed to stream attendance report: %v", err)
	}
}
