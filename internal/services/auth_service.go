package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/auth"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/constants"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/repository"
)

var (
	ErrLoginRequired        = errors.New("login is required")
	ErrLoginTaken           = errors.New("login already exists")
	ErrInvalidCredentials   = errors.New("invalid login or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration and credential verification.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Login      string
	Password   string
	Surname    string
	Name       string
	Patronymic string
	StudyGroup string
	Phone      int64
	Contacts   string
}

// Register creates a new account with the default role. A taken login is
// rejected and leaves the existing account untouched.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" {
		return nil, ErrLoginRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByLogin(login); err == nil {
		return nil, ErrLoginTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check login: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Login:        login,
		PasswordHash: string(hashedPassword),
		Surname:      input.Surname,
		Name:         input.Name,
		Patronymic:   input.Patronymic,
		StudyGroup:   input.StudyGroup,
		Phone:        input.Phone,
		Contacts:     input.Contacts,
		Role:         models.RoleStudent,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Login    string
	Password string
}

// LoginResult carries the issued session token and the authenticated user.
type LoginResult struct {
	Token string
	User  *models.User
}

// Login verifies credentials and issues a signed session token.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByLogin(input.Login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		Token: token,
		User:  user,
	}, nil
}
