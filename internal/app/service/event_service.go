package service

import (
	"context"
	"fmt"
	"time"

	"community_hub/internal/common"
	"community_hub/internal/domain/model"
	"community_hub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type EventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

func (s *EventService) CreateEvent(ctx context.Context, userID string, req CreateEventRequest) (*model.Event, error) {
	if req.Title == "" || req.Location == "" || req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return nil, common.Errorf("title, location, starts_at and ends_at are required: %w", common.ErrValidation)
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, common.Errorf("ends_at must be after starts_at: %w", common.ErrValidation)
	}

	event := &model.Event{
		ID:          uuid.NewString(),
		OrganizerID: userID,
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	return s.eventRepo.FindByID(ctx, eventID)
}

func (s *EventService) ListUpcomingEvents(ctx context.Context, limit, offset int) ([]*model.Event, error) {
	return s.eventRepo.ListUpcoming(ctx, limit, offset)
}

func (s *EventService) UpdateEvent(ctx context.Context, userID, eventID string, req UpdateEventRequest) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(event.OrganizerID, userID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
		event.Slug = slug.Make(*req.Title)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if !event.EndsAt.After(event.StartsAt) {
		return nil, common.Errorf("ends_at must be after starts_at: %w", common.ErrValidation)
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, userID, role, eventID string) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(event.OrganizerID, userID, role); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, eventID)
}
