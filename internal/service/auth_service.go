package service

import (
	"errors"
	"strings"

	"github.com/kondzio-p/ftbd-blt/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid login or password")

// AuthService verifies admin credentials against the users table.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates an AuthService.
func NewAuthService(gdb *gorm.DB) *AuthService {
	return &AuthService{db: gdb}
}

// Authenticate returns the matching user or ErrInvalidCredentials.
func (s *AuthService) Authenticate(login, password string) (db.User, error) {
	username := strings.TrimSpace(login)
	if username == "" || password == "" {
		return db.User{}, ErrInvalidCredentials
	}

	var user db.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.User{}, ErrInvalidCredentials
		}
		return db.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return db.User{}, ErrInvalidCredentials
	}
	return user, nil
}
