package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
)

// EventMemberDTO represents one membership row on an event.
type EventMemberDTO struct {
	User UserListItemDTO  `json:"user"`
	Role models.EventRole `json:"role"`
}

// EventDTO represents an event in API responses.
type EventDTO struct {
	ID                   uuid.UUID          `json:"id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	Status               models.EventStatus `json:"status"`
	StartDate            time.Time          `json:"start_date"`
	EndDate              time.Time          `json:"end_date"`
	EventTime            string             `json:"event_time"`
	Location             string             `json:"location"`
	NumberOfParticipants int                `json:"number_of_participants"`
	Members              []EventMemberDTO   `json:"members,omitempty"`
}

// EventListItemDTO represents an event in list responses (minimal data)
type EventListItemDTO struct {
	ID        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	Status    models.EventStatus `json:"status"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Location  string             `json:"location"`
}

// ToEventDTO converts an event model with its loaded members.
func ToEventDTO(event models.Event) EventDTO {
	members := make([]EventMemberDTO, 0, len(event.Members))
	for _, m := range event.Members {
		members = append(members, EventMemberDTO{
			User: ToUserListItemDTO(m.User),
			Role: m.Role,
		})
	}

	return EventDTO{
		ID:                   event.ID,
		Title:                event.Title,
		Description:          event.Description,
		Status:               event.Status,
		StartDate:            event.StartDate,
		EndDate:              event.EndDate,
		EventTime:            FormatEventTime(event.EventTime),
		Location:             event.Location,
		NumberOfParticipants: event.NumberOfParticipants,
		Members:              members,
	}
}

// ToEventListItemDTOs converts a slice of event models.
func ToEventListItemDTOs(events []models.Event) []EventListItemDTO {
	items := make([]EventListItemDTO, 0, len(events))
	for _, e := range events {
		items = append(items, EventListItemDTO{
			ID:        e.ID,
			Title:     e.Title,
			Status:    e.Status,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			Location:  e.Location,
		})
	}
	return items
}

// FormatEventTime renders a time-of-day offset as HH:MM.
func FormatEventTime(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// ParseEventTime parses an HH:MM string into a time-of-day offset.
func ParseEventTime(value string) (time.Duration, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid event time %q: %w", value, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
