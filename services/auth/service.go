package auth

import (
	"context"
	"strings"
	"time"

	"lms/apperror"
	"lms/logger"
	"lms/models"
	"lms/models/course"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenIssuer signs a session token for a user.
type TokenIssuer func(user models.User) (string, error)

type Service struct {
	db        *gorm.DB
	log       *logger.Logger
	saltRound int
	issue     TokenIssuer
	now       func() time.Time
}

func NewService(db *gorm.DB, baseLog *logger.Logger, saltRound int, issue TokenIssuer) *Service {
	if saltRound < bcrypt.MinCost {
		saltRound = bcrypt.DefaultCost
	}
	return &Service{
		db:        db,
		log:       baseLog.With("service", "AuthService"),
		saltRound: saltRound,
		issue:     issue,
		now:       time.Now,
	}
}

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	Device    string
}

// Login checks the credentials and returns a signed token. Unknown email and
// wrong password produce the same error.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(in.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Unauthorized("Invalid credentials!")
	}
	if err != nil {
		return nil, apperror.Internal(err, "Failed to process your request!")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		s.log.Warn("failed login", "user_id", user.ID)
		return nil, apperror.Unauthorized("Invalid credentials!")
	}

	now := s.now()
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to update login time!")
	}
	user.LastLogin = &now

	tracking := models.LoginTracking{UserID: user.ID, IPAddress: in.IPAddress, Device: in.Device}
	if err := db.Create(&tracking).Error; err != nil {
		// A missing history row must not block the login.
		s.log.Warn("failed to save login tracking", "user_id", user.ID, "error", err)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, apperror.Internal(err, "Failed to generate token!")
	}

	s.log.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return &LoginResult{Token: token, User: user}, nil
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	NIS      string
	Phone    string
	ClassID  uint
}

type CreateUserResult struct {
	User    models.User     `json:"user"`
	Student *course.Student `json:"siswa,omitempty"`
}

// CreateUser registers an account. A siswa account with a class also gets
// its student record in the same transaction.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*CreateUserResult, error) {
	switch in.Role {
	case models.RoleAdmin, models.RoleTeacher, models.RoleStudent:
	default:
		return nil, apperror.ValidationFields("Validation failed!", map[string]string{
			"role": "Role must be one of admin, guru or siswa!",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.saltRound)
	if err != nil {
		return nil, apperror.Internal(err, "Failed to process your request!")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	var out CreateUserResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&taken).Error; err != nil {
			return apperror.Internal(err, "Failed to process your request!")
		}
		if taken > 0 {
			return apperror.ValidationFields("Validation failed!", map[string]string{
				"email": "Email is already registered!",
			})
		}

		user := models.User{
			Name:     strings.TrimSpace(in.Name),
			Email:    email,
			Password: string(hashed),
			Role:     in.Role,
		}
		if err := tx.Create(&user).Error; err != nil {
			return apperror.Internal(err, "Failed to create user!")
		}
		out.User = user

		if in.Role != models.RoleStudent || in.ClassID == 0 {
			return nil
		}

		var classes int64
		if err := tx.Model(&course.Class{}).Where("id = ?", in.ClassID).Count(&classes).Error; err != nil {
			return apperror.Internal(err, "Failed to process your request!")
		}
		if classes == 0 {
			return apperror.NotFound("Class not found!")
		}

		student := course.Student{
			NIS:     in.NIS,
			Name:    user.Name,
			Email:   user.Email,
			Phone:   in.Phone,
			ClassID: in.ClassID,
			UserID:  user.ID,
		}
		if err := tx.Create(&student).Error; err != nil {
			return apperror.Internal(err, "Failed to create student data!")
		}
		out.Student = &student
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user created", "user_id", out.User.ID, "role", out.User.Role)
	return &out, nil
}

// UserByID loads the account behind a session.
func (s *Service) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Unauthorized("User not found!")
	}
	if err != nil {
		return nil, apperror.Internal(err, "Failed to fetch user!")
	}
	return &user, nil
}

type LoginHistory struct {
	Items []models.LoginTracking `json:"loginTracking"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

// LoginHistory pages through the logins of a user, newest first.
func (s *Service) LoginHistory(ctx context.Context, userID uint, page, limit int) (*LoginHistory, error) {
	db := s.db.WithContext(ctx).
		Model(&models.LoginTracking{}).
		Where("user_id = ?", userID).
		Session(&gorm.Session{})

	out := &LoginHistory{Items: []models.LoginTracking{}, Page: page, Limit: limit}
	if err := db.Count(&out.Total).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to fetch login history!")
	}
	if err := db.Order("created_at desc, id desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out.Items).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to fetch login history!")
	}
	return out, nil
}
