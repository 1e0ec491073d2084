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
	ErrTaskNotFound      = errors.New("task not found")
	ErrNotEventOrganizer = errors.New("user is not an organizer of the event")
	ErrNotTaskCreator    = errors.New("only the task creator can perform this action")
	ErrNotTaskExecutor   = errors.New("only the task executor can change the status")
)

// TaskService handles task creation, updates and delegation. Permission
// checks are local to the task or event membership, never the account role:
// the creator row gates full updates and partner delegation, the executor
// row gates status changes.
type TaskService struct {
	taskRepo  repository.TaskRepository
	eventRepo repository.EventRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, eventRepo repository.EventRepository) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		eventRepo: eventRepo,
	}
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	EventID  *uuid.UUID
	Status   *models.TaskStatus
	MemberID *uuid.UUID
	Page     int
	PageSize int
}

// ListTasks returns tasks matching the filters.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		EventID:  input.EventID,
		Status:   input.Status,
		MemberID: input.MemberID,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask returns a task with its membership rows.
func (s *TaskService) GetTask(id uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "Members", "Members.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title          string
	Description    string
	EventID        uuid.UUID
	ExecutorUserID uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
}

// CreateTask persists a task attached to an event together with its creator
// and executor membership rows. The creator must hold organizer or chief
// organizer membership on the event.
func (s *TaskService) CreateTask(input CreateTaskInput, creatorID uuid.UUID) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.StartDate.After(input.EndDate) {
		return nil, ErrInvalidDateRange
	}

	if _, err := s.eventRepo.FindByID(input.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	if err := s.ensureEventOrganizer(input.EventID, creatorID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusOpen,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		EventID:     input.EventID,
	}

	if err := s.taskRepo.CreateWithMembers(task, creatorID, input.ExecutorUserID); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput is a partial task patch. Only non-nil fields are applied.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Status         *models.TaskStatus
	StartDate      *time.Time
	EndDate        *time.Time
	ExecutorUserID *uuid.UUID
}

// UpdateTask applies a patch to a task. Only the task's creator may use
// this path; the executor changes status through UpdateTaskStatus instead.
func (s *TaskService) UpdateTask(taskID uuid.UUID, input UpdateTaskInput, callerID uuid.UUID) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}

	if err := s.ensureTaskRole(taskID, callerID, models.TaskRoleCreator, ErrNotTaskCreator); err != nil {
		return err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.StartDate != nil {
		task.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		task.EndDate = *input.EndDate
	}
	if task.StartDate.After(task.EndDate) {
		return ErrInvalidDateRange
	}

	if err := s.taskRepo.UpdateWithExecutor(task, input.ExecutorUserID); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// UpdateTaskStatus moves a task through its lifecycle. Only the task's
// executor may use this path.
func (s *TaskService) UpdateTaskStatus(taskID uuid.UUID, status models.TaskStatus, callerID uuid.UUID) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}

	if err := s.ensureTaskRole(taskID, callerID, models.TaskRoleExecutor, ErrNotTaskExecutor); err != nil {
		return err
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return nil
}

// SetPartner delegates a collaborator on a task, overwriting any previous
// partner. Only the task's creator may delegate.
func (s *TaskService) SetPartner(taskID, partnerUserID, callerID uuid.UUID) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}

	if err := s.ensureTaskRole(taskID, callerID, models.TaskRoleCreator, ErrNotTaskCreator); err != nil {
		return err
	}

	task.PartnerID = &partnerUserID
	if err := s.taskRepo.Update(task); err != nil {
		return fmt.Errorf("failed to set partner: %w", err)
	}
	return nil
}

func (s *TaskService) findTask(taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ensureTaskRole verifies the caller holds the given membership role on the
// task, returning denied otherwise.
func (s *TaskService) ensureTaskRole(taskID, userID uuid.UUID, role models.TaskRole, denied error) error {
	if _, err := s.taskRepo.FindMember(taskID, userID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return denied
		}
		return fmt.Errorf("failed to verify task membership: %w", err)
	}
	return nil
}

// ensureEventOrganizer verifies the user holds organizer-or-above
// membership on the event.
func (s *TaskService) ensureEventOrganizer(eventID, userID uuid.UUID) error {
	memberships, err := s.eventRepo.FindMemberships(eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to verify event membership: %w", err)
	}
	for _, m := range memberships {
		if m.Role >= models.EventRoleOrganizer {
			return nil
		}
	}
	return ErrNotEventOrganizer
}
