package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mchamoudadev/colorie-tracker/models"
	"github.com/mchamoudadev/colorie-tracker/utils"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService struct{ db *gorm.DB }

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

// Register validates the input, hashes the password and stores the
// user. Hashing is an explicit pipeline step here, not a persistence
// hook on the model.
func (s *UserService) Register(ctx context.Context, email, password, name string, dailyGoal float64) (*models.User, error) {
	if ve := models.ValidateUser(email, password, name); ve != nil {
		return nil, ve
	}

	normalized := models.NormalizeEmail(email)

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalized).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if dailyGoal <= 0 {
		dailyGoal = 2000
	}

	user := models.User{
		Email:            normalized,
		Password:         hashed,
		Name:             name,
		DailyCalorieGoal: dailyGoal,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies credentials and returns the user. A missing
// user and a wrong password are deliberately indistinguishable.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the updatable profile fields; nil pointers
// leave the stored value untouched.
type ProfileUpdate struct {
	Name                *string
	DailyCalorieGoal    *float64
	OnboardingCompleted *bool
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, upd ProfileUpdate) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil && *upd.Name != "" {
		user.Name = *upd.Name
	}
	if upd.DailyCalorieGoal != nil && *upd.DailyCalorieGoal > 0 {
		user.DailyCalorieGoal = *upd.DailyCalorieGoal
	}
	if upd.OnboardingCompleted != nil {
		user.OnboardingCompleted = *upd.OnboardingCompleted
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
