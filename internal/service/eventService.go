package service

import (
	"context"
	"fmt"

	repository "github.com/eventpass/eventpass/internal/database/postgres"
	"github.com/eventpass/eventpass/internal/entity"

	"github.com/sirupsen/logrus"
)

type eventService struct {
	eventRepo repository.EventRepository
	cache     EventCatalogCache
}

// NewEventService creates a new instance of EventService
func NewEventService(eventRepo repository.EventRepository, cache EventCatalogCache) EventService {
	return &eventService{
		eventRepo: eventRepo,
		cache:     cache,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.Event, error) {
	event := &entity.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.invalidateCatalog(ctx)
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*entity.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s *eventService) GetAllEvents(ctx context.Context) ([]*entity.Event, error) {
	if s.cache != nil {
		if events, err := s.cache.GetCatalog(ctx); err == nil {
			return events, nil
		}
	}

	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all events: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, events); err != nil {
			logrus.Warnf("Failed to cache event catalog: %v", err)
		}
	}

	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int64, req *UpdateEventRequest) (*entity.Event, error) {
	// Get existing event
	existing, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event := &entity.Event{
		ID:          id,
		Title:       existing.Title,
		Description: existing.Description,
		Date:        existing.Date,
		Time:        existing.Time,
		Location:    existing.Location,
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.Location != nil {
		event.Location = *req.Location
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)
	return nil
}

func (s *eventService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logrus.Warnf("Failed to invalidate event catalog cache: %v", err)
	}
}
