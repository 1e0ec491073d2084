package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/repository"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrAlreadyEventMember = errors.New("user already holds this role on the event")
	ErrNotEventMember     = errors.New("user does not hold this role on the event")
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
)

// EventService handles event CRUD and membership management. Membership
// adds and removes are strict: a duplicate add and a remove of a
// non-member both fail.
type EventService struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo repository.EventRepository, userRepo repository.UserRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

// ListEventsInput represents filters for listing events.
type ListEventsInput struct {
	Status   *models.EventStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
	Page     int
	PageSize int
}

// ListEvents returns events matching the filters.
func (s *EventService) ListEvents(input ListEventsInput) ([]models.Event, int64, error) {
	events, total, err := s.eventRepo.List(repository.EventFilter{
		Status:   input.Status,
		DateFrom: input.DateFrom,
		DateTo:   input.DateTo,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	return events, total, nil
}

// GetEvent returns an event with its membership rows.
func (s *EventService) GetEvent(id uuid.UUID) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(id, "Members", "Members.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

// CreateEventInput represents input for creating an event.
type CreateEventInput struct {
	Title                string
	Description          string
	StartDate            time.Time
	EndDate              time.Time
	EventTime            time.Duration
	Location             string
	NumberOfParticipants int
}

// CreateEvent persists the event and grants the creator the chief-organizer
// membership in one transaction.
func (s *EventService) CreateEvent(input CreateEventInput, creatorID uuid.UUID) (*models.Event, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.StartDate.After(input.EndDate) {
		return nil, ErrInvalidDateRange
	}

	event := &models.Event{
		Title:                input.Title,
		Description:          input.Description,
		Status:               models.EventStatusPlanned,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		EventTime:            input.EventTime,
		Location:             input.Location,
		NumberOfParticipants: input.NumberOfParticipants,
	}

	if err := s.eventRepo.CreateWithChiefOrganizer(event, creatorID); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// UpdateEventInput is a partial event patch. Only non-nil fields are applied.
type UpdateEventInput struct {
	Title                *string
	Description          *string
	Status               *models.EventStatus
	StartDate            *time.Time
	EndDate              *time.Time
	EventTime            *time.Duration
	Location             *string
	NumberOfParticipants *int
}

// UpdateEvent applies a patch to a located event.
func (s *EventService) UpdateEvent(id uuid.UUID, input UpdateEventInput) error {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return ErrTitleRequired
		}
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Status != nil {
		event.Status = *input.Status
	}
	if input.StartDate != nil {
		event.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		event.EndDate = *input.EndDate
	}
	if event.StartDate.After(event.EndDate) {
		return ErrInvalidDateRange
	}
	if input.EventTime != nil {
		event.EventTime = *input.EventTime
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.NumberOfParticipants != nil {
		event.NumberOfParticipants = *input.NumberOfParticipants
	}

	if err := s.eventRepo.Update(event); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// AddParticipant grants the participant role on an event. Adding a role the
// user already holds fails and writes nothing.
func (s *EventService) AddParticipant(eventID, userID uuid.UUID) error {
	return s.addMember(eventID, userID, models.EventRoleParticipant)
}

// RemoveParticipant revokes the participant role on an event.
func (s *EventService) RemoveParticipant(eventID, userID uuid.UUID) error {
	return s.removeMember(eventID, userID, models.EventRoleParticipant)
}

// AddOrganizer grants the organizer role on an event.
func (s *EventService) AddOrganizer(eventID, userID uuid.UUID) error {
	return s.addMember(eventID, userID, models.EventRoleOrganizer)
}

// RemoveOrganizer revokes the organizer role on an event.
func (s *EventService) RemoveOrganizer(eventID, userID uuid.UUID) error {
	return s.removeMember(eventID, userID, models.EventRoleOrganizer)
}

func (s *EventService) addMember(eventID, userID uuid.UUID, role models.EventRole) error {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.eventRepo.FindMember(eventID, userID, role); err == nil {
		return ErrAlreadyEventMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.EventUser{
		EventID: eventID,
		UserID:  userID,
		Role:    role,
	}
	if err := s.eventRepo.AddMember(member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

func (s *EventService) removeMember(eventID, userID uuid.UUID, role models.EventRole) error {
	if err := s.eventRepo.RemoveMember(eventID, userID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEventMember
		}
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}
