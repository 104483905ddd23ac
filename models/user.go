package models

import (
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type User struct {
	gorm.Model
	Email               string  `gorm:"uniqueIndex;not null" json:"email"`
	Password            string  `gorm:"not null" json:"-"`
	Name                string  `gorm:"not null" json:"name"`
	DailyCalorieGoal    float64 `gorm:"default:2000" json:"dailyCalorieGoal"`
	OnboardingCompleted bool    `gorm:"default:false" json:"onboardingCompleted"`
}

// NormalizeEmail lowercases and trims an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateUser checks the fields of a user about to be registered.
// password is the plaintext candidate, checked before hashing.
func ValidateUser(email, password, name string) *ValidationError {
	ve := &ValidationError{}
	if !emailPattern.MatchString(NormalizeEmail(email)) {
		ve.Add("email", "please enter a valid email address")
	}
	if len(password) < 8 {
		ve.Add("password", "password must be at least 8 characters long")
	} else if len(password) > 32 {
		ve.Add("password", "password must be less than 32 characters long")
	}
	if strings.TrimSpace(name) == "" {
		ve.Add("name", "name is required")
	}
	return ve.orNil()
}
