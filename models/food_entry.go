package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// MealType is the coarse time-of-day tag on an entry.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists the four types in presentation order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ValidMealType reports whether s names one of the four meal types.
func ValidMealType(s string) bool {
	switch MealType(s) {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// FoodEntry is a single recorded food-consumption event. Entries are
// created once and never updated.
type FoodEntry struct {
	gorm.Model
	UserID     uint      `gorm:"index:idx_entries_user_time;not null" json:"userId"`
	FoodName   string    `gorm:"not null" json:"foodName"`
	Calories   float64   `gorm:"not null" json:"calories"`
	Protein    float64   `gorm:"default:0" json:"protein"`
	Carbs      float64   `gorm:"default:0" json:"carbs"`
	Fat        float64   `gorm:"default:0" json:"fat"`
	MealType   MealType  `gorm:"type:varchar(16);default:snack" json:"mealType"`
	ImageURL   string    `gorm:"not null" json:"imageUrl"`
	StorageKey string    `gorm:"not null" json:"storageKey"`
	Timestamp  time.Time `gorm:"index:idx_entries_user_time" json:"timestamp"`
}

// ValidateFoodEntry checks an entry about to be persisted.
func ValidateFoodEntry(e *FoodEntry) *ValidationError {
	ve := &ValidationError{}
	if e.UserID == 0 {
		ve.Add("userId", "owning user is required")
	}
	if strings.TrimSpace(e.FoodName) == "" {
		ve.Add("foodName", "food name is required")
	}
	if e.Calories < 0 {
		ve.Add("calories", "calories cannot be negative")
	}
	if e.Protein < 0 {
		ve.Add("protein", "protein cannot be negative")
	}
	if e.Carbs < 0 {
		ve.Add("carbs", "carbs cannot be negative")
	}
	if e.Fat < 0 {
		ve.Add("fat", "fat cannot be negative")
	}
	if e.MealType != "" && !ValidMealType(string(e.MealType)) {
		ve.Add("mealType", "meal type must be breakfast, lunch, dinner or snack")
	}
	if e.ImageURL == "" {
		ve.Add("imageUrl", "image URL is required")
	}
	if e.StorageKey == "" {
		ve.Add("storageKey", "storage key is required")
	}
	return ve.orNil()
}
