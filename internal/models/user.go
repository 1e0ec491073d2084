package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole is the account-level role of a user across the whole system.
// It is unrelated to the per-event and per-task membership roles.
type UserRole int16

const (
	RoleStudent       UserRole = 0
	RoleCouncilMember UserRole = 1
	RoleAdmin         UserRole = 2
)

type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Login        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"login"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Surname      string    `gorm:"type:varchar(255);not null" json:"surname"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Patronymic   string    `gorm:"type:varchar(255)" json:"patronymic"`
	StudyGroup   string    `gorm:"type:varchar(50)" json:"group"`
	Phone        int64     `json:"phone"`
	Contacts     string    `gorm:"type:varchar(255)" json:"contacts"`
	Role         UserRole  `gorm:"not null;default:0" json:"role"`
	Archive      bool      `gorm:"not null;default:false" json:"archive"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	EventMemberships []EventUser `gorm:"foreignKey:UserID" json:"-"`
	TaskMemberships  []TaskUser  `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
