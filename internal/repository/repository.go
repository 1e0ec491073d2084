package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByLogin finds a user by login
	FindByLogin(login string) (*models.User, error)

	// List retrieves users matching the filter
	List(filter UserFilter) ([]models.User, int64, error)

	// Update updates a user
	Update(user *models.User) error

	// CountActiveAdmins counts non-archived administrators
	CountActiveAdmins() (int64, error)
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Role     *models.UserRole
	Archive  *bool
	Search   string
	Page     int
	PageSize int
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	// CreateWithChiefOrganizer creates an event and the creator's
	// chief-organizer membership row within a single transaction.
	CreateWithChiefOrganizer(event *models.Event, creatorID uuid.UUID) error

	// FindByID finds an event by ID with optional preloading
	FindByID(id uuid.UUID, preload ...string) (*models.Event, error)

	// List retrieves events matching the filter
	List(filter EventFilter) ([]models.Event, int64, error)

	// Update updates an event
	Update(event *models.Event) error

	// AddMember adds a membership row to an event
	AddMember(member *models.EventUser) error

	// RemoveMember deletes the matching membership row, reporting
	// gorm.ErrRecordNotFound if no such row exists
	RemoveMember(eventID, userID uuid.UUID, role models.EventRole) error

	// FindMember finds a specific event membership row
	FindMember(eventID, userID uuid.UUID, role models.EventRole) (*models.EventUser, error)

	// FindMemberships lists all membership rows a user holds on an event
	FindMemberships(eventID, userID uuid.UUID) ([]models.EventUser, error)
}

// EventFilter holds filtering options for listing events
type EventFilter struct {
	Status   *models.EventStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
	Page     int
	PageSize int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithMembers creates a task plus its creator and executor
	// membership rows within a single transaction.
	CreateWithMembers(task *models.Task, creatorID, executorID uuid.UUID) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uuid.UUID, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdateWithExecutor saves the task and, when executorID is set,
	// replaces the executor membership row within the same transaction.
	UpdateWithExecutor(task *models.Task, executorID *uuid.UUID) error

	// FindMember finds a specific task membership row
	FindMember(taskID, userID uuid.UUID, role models.TaskRole) (*models.TaskUser, error)

	// ListMembers lists all membership rows of a task
	ListMembers(taskID uuid.UUID) ([]models.TaskUser, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	EventID  *uuid.UUID
	Status   *models.TaskStatus
	MemberID *uuid.UUID
	Page     int
	PageSize int
}
