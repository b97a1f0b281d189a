package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventpass/eventpass/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubReportService struct {
	rows []entity.ReportRow
}

func (s *stubReportService) GetReport(context.Context) ([]entity.ReportRow, error) {
	return s.rows, nil
}

func (s *stubReportService) WriteCSV(_ context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, "User ID,Event ID,Attendance\n"); err != nil {
		return err
	}
	for _, row := range s.rows {
		if _, err := fmt.Fprintf(w, "%d,%d,%s\n", row.UserID, row.EventID, row.Attendance); err != nil {
			return err
		}
	}
	return nil
}

func TestDownloadAttendanceReportHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	svc := &stubReportService{rows: []entity.ReportRow{{UserID: 1, EventID: 1, Attendance: entity.AttendanceAbsent}}}
	router.GET("/download", NewReportHandler(svc).DownloadAttendanceReport)

	req := httptest.NewRequest(http.MethodGet, "/download", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance_report.csv")
	assert.Equal(t, "User ID,Event ID,Attendance\n1,1,Absent\n", w.Body.String())
}
