package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus int16

const (
	TaskStatusOpen       TaskStatus = 0
	TaskStatusInProgress TaskStatus = 1
	TaskStatusDone       TaskStatus = 2
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"not null;default:0" json:"status"`
	StartDate   time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time  `gorm:"type:date;not null" json:"end_date"`
	EventID     uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"event_id"`
	PartnerID   *uuid.UUID `gorm:"type:varchar(36)" json:"partner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Event   Event      `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Members []TaskUser `gorm:"foreignKey:TaskID" json:"members,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
