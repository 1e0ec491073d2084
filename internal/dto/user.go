package dto

import (
	"github.com/google/uuid"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
)

// UserDTO represents a user in API responses. The credential hash never
// leaves the service layer.
type UserDTO struct {
	ID         uuid.UUID       `json:"id"`
	Login      string          `json:"login"`
	Surname    string          `json:"surname"`
	Name       string          `json:"name"`
	Patronymic string          `json:"patronymic"`
	StudyGroup string          `json:"group"`
	Phone      int64           `json:"phone"`
	Contacts   string          `json:"contacts"`
	Role       models.UserRole `json:"role"`
	Archive    bool            `json:"archive"`
}

// UserListItemDTO represents a user in list responses (minimal data)
type UserListItemDTO struct {
	ID         uuid.UUID       `json:"id"`
	Login      string          `json:"login"`
	Surname    string          `json:"surname"`
	Name       string          `json:"name"`
	StudyGroup string          `json:"group"`
	Role       models.UserRole `json:"role"`
	Archive    bool            `json:"archive"`
}

// ToUserDTO converts a user model to its full projection.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		Login:      user.Login,
		Surname:    user.Surname,
		Name:       user.Name,
		Patronymic: user.Patronymic,
		StudyGroup: user.StudyGroup,
		Phone:      user.Phone,
		Contacts:   user.Contacts,
		Role:       user.Role,
		Archive:    user.Archive,
	}
}

// ToUserListItemDTO converts a user model to its list projection.
func ToUserListItemDTO(user models.User) UserListItemDTO {
	return UserListItemDTO{
		ID:         user.ID,
		Login:      user.Login,
		Surname:    user.Surname,
		Name:       user.Name,
		StudyGroup: user.StudyGroup,
		Role:       user.Role,
		Archive:    user.Archive,
	}
}

// ToUserListItemDTOs converts a slice of user models.
func ToUserListItemDTOs(users []models.User) []UserListItemDTO {
	items := make([]UserListItemDTO, 0, len(users))
	for _, u := range users {
		items = append(items, ToUserListItemDTO(u))
	}
	return items
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
