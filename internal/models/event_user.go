package models

import (
	"time"

	"github.com/google/uuid"
)

// EventRole is a user's membership role within a single event.
type EventRole int16

const (
	EventRoleParticipant    EventRole = 0
	EventRoleOrganizer      EventRole = 1
	EventRoleChiefOrganizer EventRole = 2
)

// EventUser joins a user to an event under one membership role. The
// composite primary key keeps at most one row per (event, user, role).
type EventUser struct {
	EventID   uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"event_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	Role      EventRole `gorm:"primaryKey" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
