package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
)

var (
	// ErrCreateTask is returned when creating the task fails inside the creation transaction.
	ErrCreateTask = errors.New("task repository: create task failed")
	// ErrCreateTaskMember is returned when creating a membership row fails inside the creation transaction.
	ErrCreateTaskMember = errors.New("task repository: create task member failed")
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithMembers creates a task plus its creator and executor rows
// atomically. Both rows appear together or not at all.
func (r *GormTaskRepository) CreateWithMembers(task *models.Task, creatorID, executorID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateTask, err)
		}

		members := []models.TaskUser{
			{TaskID: task.ID, UserID: creatorID, Role: models.TaskRoleCreator},
			{TaskID: task.ID, UserID: executorID, Role: models.TaskRoleExecutor},
		}

		if err := tx.Create(&members).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateTaskMember, err)
		}

		return nil
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uuid.UUID, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching the filter
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.EventID != nil {
		query = query.Where("tasks.event_id = ?", *filter.EventID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.MemberID != nil {
		memberSubQuery := r.db.Model(&models.TaskUser{}).
			Select("1").
			Where("task_users.task_id = tasks.id").
			Where("task_users.user_id = ?", *filter.MemberID)
		query = query.Where("EXISTS (?)", memberSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.end_date ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateWithExecutor saves the task and, when executorID is set, replaces
// the executor membership row in the same transaction. The field patch and
// the membership swap commit together or not at all.
func (r *GormTaskRepository) UpdateWithExecutor(task *models.Task, executorID *uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}

		if executorID == nil {
			return nil
		}

		if err := tx.Where("task_id = ? AND role = ?", task.ID, models.TaskRoleExecutor).
			Delete(&models.TaskUser{}).Error; err != nil {
			return err
		}

		member := &models.TaskUser{
			TaskID: task.ID,
			UserID: *executorID,
			Role:   models.TaskRoleExecutor,
		}
		return tx.Create(member).Error
	})
}

// FindMember finds a specific task membership row
func (r *GormTaskRepository) FindMember(taskID, userID uuid.UUID, role models.TaskRole) (*models.TaskUser, error) {
	var member models.TaskUser
	if err := r.db.Where("task_id = ? AND user_id = ? AND role = ?", taskID, userID, role).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all membership rows of a task
func (r *GormTaskRepository) ListMembers(taskID uuid.UUID) ([]models.TaskUser, error) {
	var members []models.TaskUser
	if err := r.db.Where("task_id = ?", taskID).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
