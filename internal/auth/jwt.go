package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/config"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/constants"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims carries the session claims issued at login: the user ID as
// subject plus the account role.
type Claims struct {
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-SHA256 signed session tokens.
type TokenService struct {
	signingKey    []byte
	issuer        string
	audience      string
	tokenLifetime time.Duration
	timeFunc      func() time.Time // injectable for testing
}

// NewTokenService creates a TokenService from the loaded configuration.
func NewTokenService(cfg *config.Config) (*TokenService, error) {
	if len(cfg.JWTSecret) < constants.MinJWTSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", constants.MinJWTSecretLength)
	}

	return &TokenService{
		signingKey:    []byte(cfg.JWTSecret),
		issuer:        cfg.JWTIssuer,
		audience:      cfg.JWTAudience,
		tokenLifetime: time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		timeFunc:      time.Now,
	}, nil
}

// Issue creates a signed, time-bounded token for the user.
func (s *TokenService) Issue(userID uuid.UUID, role models.UserRole) (string, error) {
	now := s.timeFunc()

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Parse validates a token and returns its claims.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithTimeFunc(func() time.Time { return s.timeFunc() }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// UserID extracts the subject claim as a user ID.
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
