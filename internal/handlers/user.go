package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/dto"
	apierrors "github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/errors"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/middleware"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/services"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/utils"
)

// UserHandler coordinates user management HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns users filtered by role, archive state and search text.
func (h *UserHandler) ListUsers(c *gin.Context) {
	input := services.ListUsersInput{
		Search: c.Query("search"),
	}

	if roleStr := c.Query("role"); roleStr != "" {
		roleValue, err := strconv.Atoi(roleStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid role")
			return
		}
		role := models.UserRole(roleValue)
		input.Role = &role
	}

	if archiveStr := c.Query("archive"); archiveStr != "" {
		archive, err := strconv.ParseBool(archiveStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid archive flag")
			return
		}
		input.Archive = &archive
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.PageSize

	users, total, err := h.userService.ListUsers(input)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserListItemDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:     params.Page,
			PageSize: params.PageSize,
			Total:    total,
		},
	})
}

// GetUser returns one user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser applies a partial profile patch to a user.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	type UpdateUserRequest struct {
		Surname    *string `json:"surname"`
		Name       *string `json:"name"`
		Patronymic *string `json:"patronymic"`
		StudyGroup *string `json:"group"`
		Phone      *int64  `json:"phone"`
		Contacts   *string `json:"contacts"`
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

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.userService.UpdateUser(id, services.UpdateUserInput{
		Surname:    req.Surname,
		Name:       req.Name,
		Patronymic: req.Patronymic,
		StudyGroup: req.StudyGroup,
		Phone:      req.Phone,
		Contacts:   req.Contacts,
	}, caller)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

// ArchiveUser marks a user as archived.
func (h *UserHandler) ArchiveUser(c *gin.Context) {
	h.setArchiveState(c, true)
}

// RestoreUser clears a user's archived flag.
func (h *UserHandler) RestoreUser(c *gin.Context) {
	h.setArchiveState(c, false)
}

func (h *UserHandler) setArchiveState(c *gin.Context, archive bool) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	caller, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var err error
	if archive {
		err = h.userService.ArchiveUser(id, caller)
	} else {
		err = h.userService.RestoreUser(id, caller)
	}
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

// ChangeRole sets a user's account role.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	type ChangeRoleRequest struct {
		Role models.UserRole `json:"role"`
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

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.ChangeRole(id, req.Role, caller); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role changed"})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrUserPermissionDenied):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrLastActiveAdmin):
		apierrors.Conflict(c, "Cannot archive the last active administrator")
	default:
		apierrors.InternalError(c, "")
	}
}
