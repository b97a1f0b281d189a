package service

import (
	"context"
	"fmt"
	"io"

	repository "github.com/eventpass/eventpass/internal/database/postgres"
	"github.com/eventpass/eventpass/internal/entity"
)

const csvHeader = "User ID,Event ID,Attendance\n"

type reportService struct {
	regRepo repository.RegistrationRepository
}

// NewReportService creates a new instance of ReportService
func NewReportService(regRepo repository.RegistrationRepository) ReportService {
	return &reportService{regRepo: regRepo}
}

func (s *reportService) GetReport(ctx context.Context) ([]entity.ReportRow, error) {
	rows := []entity.ReportRow{}

	err := s.regRepo.StreamReport(ctx, func(row entity.ReportRow) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance report: %w", err)
	}

	return rows, nil
}

// WriteCSV streams the report line by line: memory stays flat no
// matter how large the ledger grows.
func (s *reportService) WriteCSV(ctx context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, csvHeader); err != nil {
		return err
	}

	return s.regRepo.StreamReport(ctx, func(row entity.ReportRow) error {
		_, err := fmt.Fprintf(w, "%d,%d,%s\n", row.UserID, row.EventID, row.Attendance)
		return err
	})
}
