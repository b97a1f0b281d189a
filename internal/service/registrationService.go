package service

import (
	"context"
	"fmt"
	"io"

	repository "github.com/eventpass/eventpass/internal/database/postgres"
	"github.com/eventpass/eventpass/internal/entity"
	"github.com/eventpass/eventpass/pkg/qr"
	"github.com/eventpass/eventpass/pkg/storage"

	"github.com/sirupsen/logrus"
)

type registrationService struct {
	regRepo   repository.RegistrationRepository
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	artifacts storage.FileStorage
}

// NewRegistrationService creates a new instance of RegistrationService
func NewRegistrationService(
	regRepo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	artifacts storage.FileStorage,
) RegistrationService {
	return &registrationService{
		regRepo:   regRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		artifacts: artifacts,
	}
}

// Register writes the QR artifact before the row, matching the ledger
// contract: the two writes are not transactional, a crash in between
// leaves an orphaned image that the sweeper collects later.
func (s *registrationService) Register(ctx context.Context, userID, eventID int64) (*entity.Registration, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	payload := qr.EncodePayload(userID, eventID)
	filename := qr.ImageFilename(userID, eventID)

	png, err := qr.Render(payload)
	if err != nil {
		return nil, err
	}

	if err := s.artifacts.Save(filename, png); err != nil {
		return nil, fmt.Errorf("failed to store qr artifact: %w", err)
	}

	reg := &entity.Registration{
		UserID:     userID,
		EventID:    eventID,
		QRCode:     filename,
		Attendance: entity.AttendanceAbsent,
	}

	if err := s.regRepo.Create(ctx, reg); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"event_id": eventID,
	}).Info("Registration created")

	return reg, nil
}

func (s *registrationService) AddParticipant(ctx context.Context, eventID, userID int64) (*entity.Registration, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	reg := &entity.Registration{
		UserID:     userID,
		EventID:    eventID,
		Attendance: entity.AttendanceAbsent,
	}

	if err := s.regRepo.Create(ctx, reg); err != nil {
		return nil, err
	}

	return reg, nil
}

// RemoveParticipant deletes the row and, when the registration carried
// a QR artifact, the image as well. An artifact delete failure is only
// logged: the row is already gone and the sweeper collects the file.
func (s *registrationService) RemoveParticipant(ctx context.Context, registrationID int64) error {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return err
	}

	if err := s.regRepo.Delete(ctx, registrationID); err != nil {
		return err
	}

	if reg.QRCode != "" {
		if err := s.artifacts.Delete(reg.QRCode); err != nil {
			logrus.Warnf("Failed to delete artifact %s: %v", reg.QRCode, err)
		}
	}

	return nil
}

func (s *registrationService) GetUserRegistrations(ctx context.Context, userID int64) ([]*entity.Registration, error) {
	regs, err := s.regRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user registrations: %w", err)
	}

	return regs, nil
}

func (s *registrationService) GetEventParticipants(ctx context.Context, eventID int64) (*EventParticipants, error) {
	event, err := s.eventRepo.GetByIDWithStats(ctx, eventID)
	if err != nil {
		return nil, err
	}

	regs, err := s.regRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event registrations: %w", err)
	}

	return &EventParticipants{
		Event:         event,
		Registrations: regs,
	}, nil
}

func (s *registrationService) GetArtifact(ctx context.Context, filename string) (io.ReadCloser, error) {
	return s.artifacts.Get(filename)
}
