package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/dto"
	apierrors "github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/errors"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/middleware"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/services"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/utils"
)

// TaskHandler coordinates task management HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks filtered by event, status and membership.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	input := services.ListTasksInput{}

	if eventIDStr := c.Query("event_id"); eventIDStr != "" {
		eventID, err := uuid.Parse(eventIDStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid event_id")
			return
		}
		input.EventID = &eventID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		statusValue, err := strconv.Atoi(statusStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		status := models.TaskStatus(statusValue)
		input.Status = &status
	}

	if c.Query("mine") == "true" {
		caller, exists := middleware.GetCurrentUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}
		input.MemberID = &caller.ID
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.PageSize

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskListItemDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:     params.Page,
			PageSize: params.PageSize,
			Total:    total,
		},
	})
}

// GetTask returns one task with its membership rows.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask persists a new task with the caller as creator.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title          string    `json:"title" binding:"required"`
		Description    string    `json:"description"`
		EventID        uuid.UUID `json:"event_id" binding:"required"`
		ExecutorUserID uuid.UUID `json:"executor_user_id" binding:"required"`
		StartDate      string    `json:"start_date" binding:"required"`
		EndDate        string    `json:"end_date" binding:"required"`
	}

	caller, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		EventID:        req.EventID,
		ExecutorUserID: req.ExecutorUserID,
		StartDate:      startDate,
		EndDate:        endDate,
	}, caller.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": task.ID})
}

// UpdateTask applies a partial patch to a task. Creator only.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Title          *string            `json:"title"`
		Description    *string            `json:"description"`
		Status         *models.TaskStatus `json:"status"`
		StartDate      *string            `json:"start_date"`
		EndDate        *string            `json:"end_date"`
		ExecutorUserID *uuid.UUID         `json:"executor_user_id"`
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	caller, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	err = h.taskService.UpdateTask(id, services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		StartDate:      startDate,
		EndDate:        endDate,
		ExecutorUserID: req.ExecutorUserID,
	}, caller.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated"})
}

// UpdateTaskStatus moves a task through its lifecycle. Executor only.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	type UpdateTaskStatusRequest struct {
		Status models.TaskStatus `json:"status"`
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	caller, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.UpdateTaskStatus(id, req.Status, caller.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// SetPartner delegates a collaborator on a task. Creator only.
func (h *TaskHandler) SetPartner(c *gin.Context) {
	type SetPartnerRequest struct {
		PartnerUserID uuid.UUID `json:"partner_user_id" binding:"required"`
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	caller, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req SetPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.SetPartner(id, req.PartnerUserID, caller.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Partner set"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrEventNotFound):
		apierrors.NotFound(c, "Event not found")
	case errors.Is(err, services.ErrNotEventOrganizer),
		errors.Is(err, services.ErrNotTaskCreator),
		errors.Is(err, services.ErrNotTaskExecutor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired), errors.Is(err, services.ErrInvalidDateRange):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
