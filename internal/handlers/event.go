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

// EventHandler coordinates event management HTTP handlers.
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// ListEvents returns events filtered by status, date range and search text.
func (h *EventHandler) ListEvents(c *gin.Context) {
	input := services.ListEventsInput{
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		statusValue, err := strconv.Atoi(statusStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		status := models.EventStatus(statusValue)
		input.Status = &status
	}

	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")
	if dateFrom != "" {
		from, err := parseDate(dateFrom)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.DateFrom = &from
	}
	if dateTo != "" {
		to, err := parseDate(dateTo)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.DateTo = &to
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.PageSize

	events, total, err := h.eventService.ListEvents(input)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": dto.ToEventListItemDTOs(events),
		"pagination": utils.PaginationResponse{
			Page:     params.Page,
			PageSize: params.PageSize,
			Total:    total,
		},
	})
}

// GetEvent returns one event with its membership rows.
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(id)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

// CreateEvent persists a new event with the caller as chief organizer.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	type CreateEventRequest struct {
		Title                string `json:"title" binding:"required"`
		Description          string `json:"description"`
		StartDate            string `json:"start_date" binding:"required"`
		EndDate              string `json:"end_date" binding:"required"`
		EventTime            string `json:"event_time" binding:"required"`
		Location             string `json:"location"`
		NumberOfParticipants int    `json:"number_of_participants"`
	}

	caller, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateEventRequest
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
	eventTime, err := dto.ParseEventTime(req.EventTime)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.CreateEvent(services.CreateEventInput{
		Title:                req.Title,
		Description:          req.Description,
		StartDate:            startDate,
		EndDate:              endDate,
		EventTime:            eventTime,
		Location:             req.Location,
		NumberOfParticipants: req.NumberOfParticipants,
	}, caller.ID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": event.ID})
}

// UpdateEvent applies a partial patch to an event.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	type UpdateEventRequest struct {
		Title                *string             `json:"title"`
		Description          *string             `json:"description"`
		Status               *models.EventStatus `json:"status"`
		StartDate            *string             `json:"start_date"`
		EndDate              *string             `json:"end_date"`
		EventTime            *string             `json:"event_time"`
		Location             *string             `json:"location"`
		NumberOfParticipants *int                `json:"number_of_participants"`
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateEventRequest
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

	input := services.UpdateEventInput{
		Title:                req.Title,
		Description:          req.Description,
		Status:               req.Status,
		StartDate:            startDate,
		EndDate:              endDate,
		Location:             req.Location,
		NumberOfParticipants: req.NumberOfParticipants,
	}
	if req.EventTime != nil {
		eventTime, err := dto.ParseEventTime(*req.EventTime)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.EventTime = &eventTime
	}

	if err := h.eventService.UpdateEvent(id, input); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated"})
}

// AddParticipant grants the participant role on an event.
func (h *EventHandler) AddParticipant(c *gin.Context) {
	h.addMember(c, h.eventService.AddParticipant)
}

// RemoveParticipant revokes the participant role on an event.
func (h *EventHandler) RemoveParticipant(c *gin.Context) {
	h.removeMember(c, h.eventService.RemoveParticipant)
}

// AddOrganizer grants the organizer role on an event.
func (h *EventHandler) AddOrganizer(c *gin.Context) {
	h.addMember(c, h.eventService.AddOrganizer)
}

// RemoveOrganizer revokes the organizer role on an event.
func (h *EventHandler) RemoveOrganizer(c *gin.Context) {
	h.removeMember(c, h.eventService.RemoveOrganizer)
}

func (h *EventHandler) addMember(c *gin.Context, add func(eventID, userID uuid.UUID) error) {
	type AddMemberRequest struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
	}

	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := add(eventID, req.UserID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Member added"})
}

func (h *EventHandler) removeMember(c *gin.Context, remove func(eventID, userID uuid.UUID) error) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := remove(eventID, userID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

func respondEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		apierrors.NotFound(c, "Event not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrAlreadyEventMember):
		apierrors.Conflict(c, "User already holds this role on the event")
	case errors.Is(err, services.ErrNotEventMember):
		apierrors.NotFound(c, "User does not hold this role on the event")
	case errors.Is(err, services.ErrTitleRequired), errors.Is(err, services.ErrInvalidDateRange):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
