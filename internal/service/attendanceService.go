package service

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/eventpass/eventpass/internal/database/postgres"
	"github.com/eventpass/eventpass/internal/entity"
	"github.com/eventpass/eventpass/pkg/qr"
	"github.com/eventpass/eventpass/pkg/telegram"

	"github.com/sirupsen/logrus"
)

type attendanceService struct {
	regRepo  repository.RegistrationRepository
	notifier *telegram.Notifier
}

// NewAttendanceService creates a new instance of AttendanceService
func NewAttendanceService(regRepo repository.RegistrationRepository, notifier *telegram.Notifier) AttendanceService {
	return &attendanceService{
		regRepo:  regRepo,
		notifier: notifier,
	}
}

// MarkAttendance drives the Absent -> Present transition. The update
// is conditional on the current state, so a concurrent scan of the
// same code cannot mark twice: one caller wins, the other observes
// already_marked.
func (s *attendanceService) MarkAttendance(ctx context.Context, rawCode string) (*ScanResult, error) {
	userID, eventID, err := qr.ParsePayload(rawCode)
	if err != nil {
		// every parse failure collapses to the same outcome
		return nil, entity.ErrMalformedCode
	}

	marked, err := s.regRepo.MarkPresent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	reg, err := s.regRepo.GetByUserAndEvent(ctx, userID, eventID)
	if errors.Is(err, entity.ErrRegistrationNotFound) {
		return nil, entity.ErrUnknownRegistration
	}
	if err != nil {
		return nil, err
	}

	if !marked {
		return &ScanResult{Outcome: ScanAlreadyMarked, Registration: reg}, nil
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"event_id": eventID,
	}).Info("Attendance marked")

	if s.notifier != nil && s.notifier.Enabled() {
		msg := fmt.Sprintf("Check-in: user %d is present at event %d", userID, eventID)
		if err := s.notifier.Notify(msg); err != nil {
			logrus.Warnf("Failed to send check-in notification: %v", err)
		}
	}

	return &ScanResult{Outcome: ScanMarked, Registration: reg}, nil
}
