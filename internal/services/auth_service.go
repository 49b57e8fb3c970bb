package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/config"
	"github.com/swifttravel/travel-booking-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the operations admin account configured at
// deployment time and issues session tokens for the admin endpoints.
type AuthService struct {
	cfg        config.AdminConfig
	jwtService *jwt.Service
	logger     *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(cfg config.AdminConfig, jwtService *jwt.Service, logger *logrus.Logger) *AuthService {
	return &AuthService{cfg: cfg, jwtService: jwtService, logger: logger}
}

// Login verifies admin credentials and returns a signed token.
func (s *AuthService) Login(username, password string) (string, error) {
	if username != s.cfg.Username {
		return "", fmt.Errorf("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid username or password")
	}

	token, err := s.jwtService.GenerateToken(username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"username": username,
	}).Info("Admin login")

	return token, nil
}
