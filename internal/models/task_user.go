package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskRole is a user's membership role within a single task. Exactly one
// creator row and one executor row are written when a task is created.
type TaskRole int16

const (
	TaskRoleCreator  TaskRole = 0
	TaskRoleExecutor TaskRole = 1
)

type TaskUser struct {
	TaskID    uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"task_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	Role      TaskRole  `gorm:"primaryKey" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
