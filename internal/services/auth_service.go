package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := dto.Validate(req); err != nil {
		metrics.ObserveAuth("register", "invalid")
		return nil, validationError(err)
	}

	db := s.db.WithContext(ctx)
	if err := s.checkAvailable(db, uuid.Nil, req.Username, req.Email); err != nil {
		metrics.ObserveAuth("register", "conflict")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}

	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			metrics.ObserveAuth("register", "conflict")
			return nil, s.takenError(db, uuid.Nil, req.Username, req.Email, ErrEmailTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.ObserveAuth("register", "ok")
	return s.authResponse(&user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := dto.Validate(req); err != nil {
		metrics.ObserveAuth("login", "invalid")
		return nil, validationError(err)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		metrics.ObserveAuth("login", "denied")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		metrics.ObserveAuth("login", "denied")
		return nil, ErrInvalidCredentials
	}

	metrics.ObserveAuth("login", "ok")
	return s.authResponse(&user)
}

// Me returns the public view of the calling user.
func (s *AuthService) Me(ctx context.Context, sess session.Session) (*dto.UserResponse, error) {
	user, err := s.currentUser(ctx, sess)
	if err != nil {
		return nil, err
	}
	resp := userResponse(user)
	return &resp, nil
}

// UpdateMe applies a partial profile update. Empty fields are left alone.
func (s *AuthService) UpdateMe(ctx context.Context, sess session.Session, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := dto.Validate(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.currentUser(ctx, sess)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := s.checkAvailable(db, user.ID, req.Username, req.Email); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = string(hash)
	}

	if len(updates) > 0 {
		if err := db.Model(user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, s.takenError(db, user.ID, req.Username, req.Email, ErrUsernameTaken)
			}
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		if req.Username != "" {
			user.Username = req.Username
		}
		if req.Email != "" {
			user.Email = req.Email
		}
	}

	resp := userResponse(user)
	return &resp, nil
}

// checkAvailable reports a conflict when another user already holds the
// username or email. self is excluded so profile updates can resubmit their
// own values.
func (s *AuthService) checkAvailable(db *gorm.DB, self uuid.UUID, username, email string) error {
	var count int64
	if email != "" {
		if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, self).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if count > 0 {
			return ErrEmailTaken
		}
	}
	if username != "" {
		if err := db.Model(&models.User{}).Where("username = ? AND id <> ?", username, self).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if count > 0 {
			return ErrUsernameTaken
		}
	}
	return nil
}

// takenError names the column a unique-index violation collided on. The row
// that won the race is committed by now, so checkAvailable sees it; fallback
// covers a winner that has since gone away.
func (s *AuthService) takenError(db *gorm.DB, self uuid.UUID, username, email string, fallback error) error {
	if err := s.checkAvailable(db, self, username, email); err != nil {
		return err
	}
	return fallback
}

func (s *AuthService) currentUser(ctx context.Context, sess session.Session) (*models.User, error) {
	if !sess.Authenticated() {
		return nil, ErrUserNotFound
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", sess.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: userResponse(user), Token: token}, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func userResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
