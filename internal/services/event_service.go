package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/db/repositories"
	"alumnihub/portal/internal/models/dtos"
	"alumnihub/portal/internal/models/entities"
	"alumnihub/portal/internal/policy"
)

// EventService drives the event lifecycle: admin-curated create, edit,
// delete, and the active/inactive toggle. Edits never touch the toggle.
type EventService struct {
	resolver    CallerResolver
	events      *repositories.EventRepository
	invalidator ViewInvalidator
}

func NewEventService(resolver CallerResolver, events *repositories.EventRepository, invalidator ViewInvalidator) *EventService {
	return &EventService{
		resolver:    resolver,
		events:      events,
		invalidator: invalidator,
	}
}

func (s *EventService) Create(ctx context.Context, req dtos.CreateEventRequest) (*dtos.EventResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.EventResult{OperationResult: *failure}, nil
	}

	if !policy.CanCreate(policy.KindEvent, caller) {
		return &dtos.EventResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	if missing := missingFields(map[string]string{
		"title":    req.Title,
		"date":     req.Date,
		"location": req.Location,
	}); len(missing) > 0 {
		return &dtos.EventResult{OperationResult: dtos.Fail(constants.FailValidation,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))}, nil
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return &dtos.EventResult{OperationResult: dtos.Fail(constants.FailValidation,
			"date must be an ISO-8601 timestamp")}, nil
	}

	event := &entities.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		Image:       req.Image,
		IsActive:    true,
	}
	if err := s.events.Insert(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.invalidator.Invalidate(constants.EventViews...)

	dto := dtos.FromEvent(event)
	return &dtos.EventResult{OperationResult: dtos.OK("Event created successfully"), Event: &dto}, nil
}

func (s *EventService) Update(ctx context.Context, id string, req dtos.UpdateEventRequest) (*dtos.EventResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.EventResult{OperationResult: *failure}, nil
	}

	if !policy.CanUpdate(policy.KindEvent, caller) {
		return &dtos.EventResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			return &dtos.EventResult{OperationResult: dtos.Fail(constants.FailValidation,
				"date must be an ISO-8601 timestamp")}, nil
		}
		updates["date"] = date
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if len(updates) == 0 {
		return &dtos.EventResult{OperationResult: dtos.Fail(constants.FailValidation,
			"No fields to update")}, nil
	}

	event, err := s.events.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.EventResult{OperationResult: dtos.NotFound(constants.MsgEventNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to update event %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.EventViews...)

	dto := dtos.FromEvent(event)
	return &dtos.EventResult{OperationResult: dtos.OK("Event updated successfully"), Event: &dto}, nil
}

// ToggleStatus flips the event between active and inactive.
func (s *EventService) ToggleStatus(ctx context.Context, id string) (*dtos.EventResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.EventResult{OperationResult: *failure}, nil
	}

	if !policy.CanMutateStatus(policy.KindEvent, caller) {
		return &dtos.EventResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	event, err := s.events.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.EventResult{OperationResult: dtos.NotFound(constants.MsgEventNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to toggle event %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.EventViews...)

	dto := dtos.FromEvent(event)
	return &dtos.EventResult{OperationResult: dtos.OK("Event status updated"), Event: &dto}, nil
}

func (s *EventService) Delete(ctx context.Context, id string) (*dtos.EventResult, error) {
	caller, failure, err := resolveCaller(ctx, s.resolver)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return &dtos.EventResult{OperationResult: *failure}, nil
	}

	if !policy.CanDelete(policy.KindEvent, caller, "") {
		return &dtos.EventResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
	}

	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.EventResult{OperationResult: dtos.NotFound(constants.MsgEventNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to delete event %s: %w", id, err)
	}

	s.invalidator.Invalidate(constants.EventViews...)

	return &dtos.EventResult{OperationResult: dtos.OK("Event deleted successfully")}, nil
}

// GetAll lists events. The unfiltered listing exposes inactive events and
// is admin-only; the active-only listing is public.
func (s *EventService) GetAll(ctx context.Context, activeOnly bool) (*dtos.EventListResult, error) {
	if !activeOnly {
		caller, failure, err := resolveCaller(ctx, s.resolver)
		if err != nil {
			return nil, err
		}
		if failure != nil {
			return &dtos.EventListResult{OperationResult: *failure}, nil
		}
		if !policy.CanMutateStatus(policy.KindEvent, caller) {
			return &dtos.EventListResult{OperationResult: dtos.Unauthorized(constants.MsgAdminOnly)}, nil
		}
	}

	events, err := s.events.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	return &dtos.EventListResult{
		OperationResult: dtos.OK(""),
		Events:          dtos.FromEvents(events),
	}, nil
}

// GetByID returns one event; public.
func (s *EventService) GetByID(ctx context.Context, id string) (*dtos.EventResult, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dtos.EventResult{OperationResult: dtos.NotFound(constants.MsgEventNotFound)}, nil
		}
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}

	dto := dtos.FromEvent(event)
	return &dtos.EventResult{OperationResult: dtos.OK(""), Event: &dto}, nil
}

// GetRecent returns the next active events for the landing page,
// soonest first.
func (s *EventService) GetRecent(ctx context.Context, limit int) (*dtos.EventListResult, error) {
	if limit <= 0 {
		limit = 4
	}

	events, err := s.events.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent events: %w", err)
	}

	return &dtos.EventListResult{
		OperationResult: dtos.OK(""),
		Events:          dtos.FromEvents(events),
	}, nil
}
