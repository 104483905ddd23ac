package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mchamoudadev/colorie-tracker/models"
)

// defaultEntryLimit caps list responses when the caller does not ask
// for a specific limit.
const defaultEntryLimit = 50

type EntryService struct{ db *gorm.DB }

func NewEntryService(db *gorm.DB) *EntryService { return &EntryService{db: db} }

// Create validates and persists a food entry. The timestamp defaults
// to now and the meal type to snack.
func (s *EntryService) Create(ctx context.Context, entry *models.FoodEntry) error {
	if entry.MealType == "" {
		entry.MealType = models.MealSnack
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if ve := models.ValidateFoodEntry(entry); ve != nil {
		return ve
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

// EntryFilter narrows a listing. Date selects one calendar day; Start
// and End select a closed range; at most one of the two applies.
type EntryFilter struct {
	Date  *time.Time
	Start *time.Time
	End   *time.Time
	Limit int
}

// List returns the user's entries, newest first.
func (s *EntryService) List(ctx context.Context, userID uint, filter EntryFilter) ([]models.FoodEntry, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Date != nil {
		q = q.Where("timestamp BETWEEN ? AND ?", DayStart(*filter.Date), DayEnd(*filter.Date))
	} else if filter.Start != nil && filter.End != nil {
		q = q.Where("timestamp BETWEEN ? AND ?", *filter.Start, *filter.End)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEntryLimit
	}

	var entries []models.FoodEntry
	if err := q.Order("timestamp DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
