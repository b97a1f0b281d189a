package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/eventpass/eventpass/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	regRepo := newFakeRegRepo()
	ctx := context.Background()

	require.NoError(t, regRepo.Create(ctx, &entity.Registration{
		UserID: 1, EventID: 1, Attendance: entity.AttendanceAbsent,
	}))
	require.NoError(t, regRepo.Create(ctx, &entity.Registration{
		UserID: 2, EventID: 1, Attendance: entity.AttendancePresent,
	}))

	svc := NewReportService(regRepo)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(ctx, &buf))

	expected := "User ID,Event ID,Attendance\n1,1,Absent\n2,1,Present\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSVEmptyLedger(t *testing.T) {
	svc := NewReportService(newFakeRegRepo())

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), &buf))

	assert.Equal(t, "User ID,Event ID,Attendance\n", buf.String())
}

func TestGetReport(t *testing.T) {
	regRepo := newFakeRegRepo()
	ctx := context.Background()

	require.NoError(t, regRepo.Create(ctx, &entity.Registration{
		UserID: 7, EventID: 3, Attendance: entity.AttendancePresent,
	}))

	svc := NewReportService(regRepo)

	rows, err := svc.GetReport(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.ReportRow{UserID: 7, EventID: 3, Attendance: entity.AttendancePresent}, rows[0])
}
