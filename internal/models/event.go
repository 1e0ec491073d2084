package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventStatus is the lifecycle state of an event.
type EventStatus int16

const (
	EventStatusPlanned    EventStatus = 0
	EventStatusInProgress EventStatus = 1
	EventStatusCompleted  EventStatus = 2
	EventStatusArchived   EventStatus = 3
)

type Event struct {
	ID                   uuid.UUID     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title                string        `gorm:"type:varchar(255);not null" json:"title"`
	Description          string        `gorm:"type:text" json:"description"`
	Status               EventStatus   `gorm:"not null;default:0" json:"status"`
	StartDate            time.Time     `gorm:"type:date;not null" json:"start_date"`
	EndDate              time.Time     `gorm:"type:date;not null" json:"end_date"`
	EventTime            time.Duration `gorm:"type:bigint" json:"event_time"`
	Location             string        `gorm:"type:varchar(255)" json:"location"`
	NumberOfParticipants int           `gorm:"not null;default:0" json:"number_of_participants"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`

	// Relations
	Members []EventUser `gorm:"foreignKey:EventID" json:"members,omitempty"`
	Tasks   []Task      `gorm:"foreignKey:EventID" json:"tasks,omitempty"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
