package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecogrocery/backend/internal/types"
)

// ErrInvalidPassword is returned when the site password does not match
var ErrInvalidPassword = errors.New("invalid password")

const sessionDuration = 24 * time.Hour

// AuthService gates the site behind a shared password and issues session
// JWTs for authenticated browsers.
type AuthService struct {
	jwtSecret        string
	sitePasswordHash string
}

// NewAuthService creates a new AuthService instance
func NewAuthService(jwtSecret, sitePasswordHash string) *AuthService {
	return &AuthService{
		jwtSecret:        jwtSecret,
		sitePasswordHash: sitePasswordHash,
	}
}

// Login checks the site password and returns a session token
func (s *AuthService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.sitePasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}

	claims := jwt.MapClaims{
		"session_id": uuid.New().String(),
		"exp":        time.Now().Add(sessionDuration).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a session token
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sessionIDStr, ok := claims["session_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		return nil, err
	}

	return &types.TokenClaims{SessionID: sessionID}, nil
}
