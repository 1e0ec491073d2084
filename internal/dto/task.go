package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
)

// TaskMemberDTO represents one membership row on a task.
type TaskMemberDTO struct {
	User UserListItemDTO `json:"user"`
	Role models.TaskRole `json:"role"`
}

// TaskDTO represents a task in API responses.
type TaskDTO struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	EventID     uuid.UUID         `json:"event_id"`
	PartnerID   *uuid.UUID        `json:"partner_id"`
	Members     []TaskMemberDTO   `json:"members,omitempty"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Status    models.TaskStatus `json:"status"`
	StartDate time.Time         `json:"start_date"`
	EndDate   time.Time         `json:"end_date"`
	EventID   uuid.UUID         `json:"event_id"`
}

// ToTaskDTO converts a task model with its loaded members.
func ToTaskDTO(task models.Task) TaskDTO {
	members := make([]TaskMemberDTO, 0, len(task.Members))
	for _, m := range task.Members {
		members = append(members, TaskMemberDTO{
			User: ToUserListItemDTO(m.User),
			Role: m.Role,
		})
	}

	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		StartDate:   task.StartDate,
		EndDate:     task.EndDate,
		EventID:     task.EventID,
		PartnerID:   task.PartnerID,
		Members:     members,
	}
}

// ToTaskListItemDTOs converts a slice of task models.
func ToTaskListItemDTOs(tasks []models.Task) []TaskListItemDTO {
	items := make([]TaskListItemDTO, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, TaskListItemDTO{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status,
			StartDate: t.StartDate,
			EndDate:   t.EndDate,
			EventID:   t.EventID,
		})
	}
	return items
}
