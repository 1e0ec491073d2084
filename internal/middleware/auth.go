package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/auth"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/constants"
	apierrors "github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/errors"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/repository"
)

// RequireAuth validates the bearer token and loads the acting user into the
// request context. Archived accounts are rejected outright.
func RequireAuth(tokens *auth.TokenService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.Unauthorized(c, "Unknown account")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		if user.Archive {
			apierrors.Forbidden(c, "Account is archived")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the acting user loaded by RequireAuth.
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}
