package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/Kariqs/decorshop-api/models"
	"github.com/Kariqs/decorshop-api/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Default cost for bcrypt password hashing
const bcryptCost = 10

type AuthService struct {
	db         *gorm.DB
	files      utils.FileStore
	maxUpload  int64
	sessionTTL time.Duration
	now        func() time.Time
}

type ProfileUpdate struct {
	FirstName   string
	LastName    string
	Phone       string
	Address     string
	NewPassword string
	Image       io.Reader
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (s *AuthService) usernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (s *AuthService) Register(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, validationErrorf("Username and password are required.")
	}

	taken, err := s.usernameTaken(ctx, username)
	if err != nil {
		return models.User{}, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return models.User{}, ErrConflict
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Username: username, Password: hashed}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrConflict
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login checks the credential and opens a new session for the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.User, models.Session, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, models.Session{}, ErrUnauthorized
		}
		return models.User{}, models.Session{}, fmt.Errorf("fetch user: %w", err)
	}

	if err := comparePasswords(user.Password, password); err != nil {
		return models.User{}, models.Session{}, ErrUnauthorized
	}

	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return models.User{}, models.Session{}, fmt.Errorf("create session: %w", err)
	}
	return user, session, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", sessionID).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Resolve returns the user bound to a live session.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (models.User, error) {
	var session models.Session
	if err := s.db.WithContext(ctx).Where("id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUnauthorized
		}
		return models.User{}, fmt.Errorf("fetch session: %w", err)
	}

	if !s.now().Before(session.ExpiresAt) {
		if err := s.Logout(ctx, sessionID); err != nil {
			log.Println("Session cleanup error:", err)
		}
		return models.User{}, ErrUnauthorized
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUnauthorized
		}
		return models.User{}, fmt.Errorf("fetch user: %w", err)
	}
	return user, nil
}

// UpdateProfile overwrites every profile field, including with empty values.
// The image is stored before the row is written, so a bad upload leaves the
// profile untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, user models.User, in ProfileUpdate) (models.User, error) {
	imageURL := ""
	if in.Image != nil {
		url, err := utils.IngestImage(ctx, s.files, in.Image, utils.ProfileImageKey(user.ID), s.maxUpload)
		if err != nil {
			return models.User{}, err
		}
		imageURL = url
	}

	updates := map[string]any{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"phone":      in.Phone,
		"address":    in.Address,
	}

	if in.NewPassword != "" {
		hashed, err := hashPassword(in.NewPassword)
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = hashed
	}

	if imageURL != "" {
		updates["profile_image"] = imageURL
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}

	var updated models.User
	if err := s.db.WithContext(ctx).First(&updated, user.ID).Error; err != nil {
		return models.User{}, notFound(err, "user")
	}
	return updated, nil
}

// ProvisionAdmin makes sure the named admin account exists. It is safe to
// call on every start; an empty password is only accepted when the account
// already exists.
func (s *AuthService) ProvisionAdmin(ctx context.Context, username, password string) (models.User, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, false, errors.New("admin username is empty")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case err == nil:
		if !user.IsAdmin {
			if err := s.db.WithContext(ctx).Model(&user).Update("is_admin", true).Error; err != nil {
				return models.User{}, false, fmt.Errorf("promote admin: %w", err)
			}
			user.IsAdmin = true
		}
		return user, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return models.User{}, false, fmt.Errorf("fetch admin: %w", err)
	}

	if password == "" {
		return models.User{}, false, fmt.Errorf("admin %q does not exist and no admin password is configured", username)
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return models.User{}, false, fmt.Errorf("hash password: %w", err)
	}
	user = models.User{Username: username, Password: hashed, IsAdmin: true}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, false, fmt.Errorf("create admin: %w", err)
	}
	return user, true, nil
}
