package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/repository"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserPermissionDenied = errors.New("caller is not allowed to perform this action")
	ErrLastActiveAdmin      = errors.New("cannot archive the last active administrator")
)

// UserService handles account listing, profile edits, archival and role
// changes. Every mutating operation takes the acting user explicitly.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsersInput represents filters for listing users.
type ListUsersInput struct {
	Role     *models.UserRole
	Archive  *bool
	Search   string
	Page     int
	PageSize int
}

// ListUsers returns users matching the filters.
func (s *UserService) ListUsers(input ListUsersInput) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(repository.UserFilter{
		Role:     input.Role,
		Archive:  input.Archive,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUserInput is a partial profile patch. Only non-nil fields are applied.
type UpdateUserInput struct {
	Surname    *string
	Name       *string
	Patronymic *string
	StudyGroup *string
	Phone      *int64
	Contacts   *string
}

// UpdateUser applies a profile patch. Permitted for the user themselves or
// for an administrator.
func (s *UserService) UpdateUser(targetID uuid.UUID, input UpdateUserInput, caller *models.User) error {
	if caller.ID != targetID && !caller.IsAdmin() {
		return ErrUserPermissionDenied
	}

	user, err := s.GetUser(targetID)
	if err != nil {
		return err
	}

	if input.Surname != nil {
		user.Surname = *input.Surname
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Patronymic != nil {
		user.Patronymic = *input.Patronymic
	}
	if input.StudyGroup != nil {
		user.StudyGroup = *input.StudyGroup
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Contacts != nil {
		user.Contacts = *input.Contacts
	}

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// ArchiveUser marks an account as archived. Administrators only. Archiving
// the last remaining active administrator is refused to guard against
// lockout.
func (s *UserService) ArchiveUser(targetID uuid.UUID, caller *models.User) error {
	if !caller.IsAdmin() {
		return ErrUserPermissionDenied
	}

	user, err := s.GetUser(targetID)
	if err != nil {
		return err
	}

	if user.IsAdmin() && !user.Archive {
		activeAdmins, err := s.userRepo.CountActiveAdmins()
		if err != nil {
			return fmt.Errorf("failed to count active administrators: %w", err)
		}
		if activeAdmins <= 1 {
			return ErrLastActiveAdmin
		}
	}

	user.Archive = true
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to archive user: %w", err)
	}
	return nil
}

// RestoreUser clears the archived flag. Administrators only.
func (s *UserService) RestoreUser(targetID uuid.UUID, caller *models.User) error {
	if !caller.IsAdmin() {
		return ErrUserPermissionDenied
	}

	user, err := s.GetUser(targetID)
	if err != nil {
		return err
	}

	user.Archive = false
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to restore user: %w", err)
	}
	return nil
}

// ChangeRole sets an account's role. Administrators only.
func (s *UserService) ChangeRole(targetID uuid.UUID, newRole models.UserRole, caller *models.User) error {
	if !caller.IsAdmin() {
		return ErrUserPermissionDenied
	}

	user, err := s.GetUser(targetID)
	if err != nil {
		return err
	}

	user.Role = newRole
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to change role: %w", err)
	}
	return nil
}
