package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/constants"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/dto"
	apierrors "github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/errors"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/middleware"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Login      string `json:"login" binding:"required,min=3,max=50"`
		Password   string `json:"password" binding:"required"`
		Surname    string `json:"surname" binding:"required"`
		Name       string `json:"name" binding:"required"`
		Patronymic string `json:"patronymic"`
		StudyGroup string `json:"group"`
		Phone      int64  `json:"phone"`
		Contacts   string `json:"contacts"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Login:      req.Login,
		Password:   req.Password,
		Surname:    req.Surname,
		Name:       req.Name,
		Patronymic: req.Patronymic,
		StudyGroup: req.StudyGroup,
		Phone:      req.Phone,
		Contacts:   req.Contacts,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(services.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: result.Token,
		User:  dto.ToUserDTO(*result.User),
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLoginTaken):
		apierrors.Conflict(c, "Login already exists")
	case errors.Is(err, services.ErrLoginRequired):
		apierrors.BadRequest(c, "Login is required")
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.RespondWithError(c, http.StatusUnauthorized,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, "Invalid login or password"))
	default:
		apierrors.InternalError(c, "")
	}
}
