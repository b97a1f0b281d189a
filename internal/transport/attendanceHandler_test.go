package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eventpass/eventpass/internal/entity"
	"github.com/eventpass/eventpass/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAttendanceService struct {
	result *service.ScanResult
	err    error
}

func (s *stubAttendanceService) MarkAttendance(context.Context, string) (*service.ScanResult, error) {
	return s.result, s.err
}

func newScanRouter(svc service.AttendanceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/scan", NewAttendanceHandler(svc).Scan)
	return router
}

func postScan(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestScanStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		result     *service.ScanResult
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name: "marked",
			result: &service.ScanResult{
				Outcome:      service.ScanMarked,
				Registration: &entity.Registration{UserID: 1, EventID: 1, Attendance: entity.AttendancePresent},
			},
			wantStatus: http.StatusOK,
			wantBody:   "attendance marked successfully",
		},
		{
			name: "already marked is not an error",
			result: &service.ScanResult{
				Outcome:      service.ScanAlreadyMarked,
				Registration: &entity.Registration{UserID: 1, EventID: 1, Attendance: entity.AttendancePresent},
			},
			wantStatus: http.StatusOK,
			wantBody:   "attendance already marked",
		},
		{
			name:       "malformed code",
			err:        entity.ErrMalformedCode,
			wantStatus: http.StatusBadRequest,
			wantBody:   "malformed",
		},
		{
			name:       "unknown registration",
			err:        entity.ErrUnknownRegistration,
			wantStatus: http.StatusNotFound,
			wantBody:   "no registration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newScanRouter(&stubAttendanceService{result: tt.result, err: tt.err})

			w := postScan(router, `{"code":"user:1-event:1"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestScanRequiresCode(t *testing.T) {
	router := newScanRouter(&stubAttendanceService{})

	w := postScan(router, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
