package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/mchamoudadev/colorie-tracker/models"
)

// CalorieService computes daily/weekly/monthly nutrition summaries from
// a user's food entries. All computations are read-only folds; the
// service never writes.
type CalorieService struct{ db *gorm.DB }

func NewCalorieService(db *gorm.DB) *CalorieService { return &CalorieService{db: db} }

// kcal per gram of each macro
const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// MealStats is one bucket of summed nutrition facts.
type MealStats struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Count    int     `json:"count"`
}

func (m *MealStats) add(e models.FoodEntry) {
	m.Calories += e.Calories
	m.Protein += e.Protein
	m.Carbs += e.Carbs
	m.Fat += e.Fat
	m.Count++
}

// MacroDetail reports one macro's grams, the calories those grams
// represent, and its share of total macro calories.
type MacroDetail struct {
	Grams      float64 `json:"grams"`
	Calories   float64 `json:"calories"`
	Percentage int     `json:"percentage"`
}

type MacroBreakdown struct {
	Protein MacroDetail `json:"protein"`
	Carbs   MacroDetail `json:"carbs"`
	Fat     MacroDetail `json:"fat"`
}

type DailySummary struct {
	TotalCalories float64                       `json:"totalCalories"`
	TotalProtein  float64                       `json:"totalProtein"`
	TotalCarbs    float64                       `json:"totalCarbs"`
	TotalFat      float64                       `json:"totalFat"`
	MealBreakdown map[models.MealType]MealStats `json:"mealBreakdown"`
	Entries       int                           `json:"entries"`
	Macros        MacroBreakdown                `json:"macros"`
}

type WeeklySummary struct {
	DailyData     map[string]MealStats `json:"dailyData"`
	TotalEntries  int                  `json:"totalEntries"`
	TotalCalories float64              `json:"totalCalories"`
	TotalProtein  float64              `json:"totalProtein"`
	TotalCarbs    float64              `json:"totalCarbs"`
	TotalFat      float64              `json:"totalFat"`
	AvgCalories   int                  `json:"avgCalories"`
	Macros        MacroBreakdown       `json:"macros"`
}

type MonthlySummary struct {
	TotalEntries  int               `json:"totalEntries"`
	TotalCalories float64           `json:"totalCalories"`
	TotalProtein  float64           `json:"totalProtein"`
	TotalCarbs    float64           `json:"totalCarbs"`
	TotalFat      float64           `json:"totalFat"`
	AvgCalories   int               `json:"avgCalories"`
	HighestDay    float64           `json:"highestDay"`
	DaysTracked   int               `json:"daysTracked"`
	Macros        MacroBreakdown    `json:"macros"`
	DailyData     map[int]MealStats `json:"dailyData"`
}

// DailySummary folds the user's entries for one calendar day. The
// time-of-day on date is ignored; the window is local midnight through
// 23:59:59.999999999.
func (s *CalorieService) DailySummary(ctx context.Context, userID uint, date time.Time) (DailySummary, error) {
	entries, err := s.entriesInWindow(ctx, userID, DayStart(date), DayEnd(date))
	if err != nil {
		return DailySummary{}, err
	}
	return BuildDailySummary(entries), nil
}

// WeeklySummary folds the user's entries over an inclusive date-time
// range, grouped by calendar date. Days without entries are absent from
// DailyData; filling a fixed series is the caller's concern.
func (s *CalorieService) WeeklySummary(ctx context.Context, userID uint, start, end time.Time) (WeeklySummary, error) {
	entries, err := s.entriesInWindow(ctx, userID, start, end)
	if err != nil {
		return WeeklySummary{}, err
	}
	return BuildWeeklySummary(entries), nil
}

// MonthlySummary folds the user's entries over one calendar month.
// month is 1-12.
func (s *CalorieService) MonthlySummary(ctx context.Context, userID uint, year, month int) (MonthlySummary, error) {
	start, end, err := MonthWindow(year, month)
	if err != nil {
		return MonthlySummary{}, err
	}
	entries, err := s.entriesInWindow(ctx, userID, start, end)
	if err != nil {
		return MonthlySummary{}, err
	}
	return BuildMonthlySummary(entries), nil
}

func (s *CalorieService) entriesInWindow(ctx context.Context, userID uint, start, end time.Time) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND timestamp BETWEEN ? AND ?", userID, start, end).
		Order("timestamp ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// BuildDailySummary is the pure fold behind DailySummary. All four meal
// buckets are always present; an empty input yields all zeros. The meal
// buckets partition the entries, so their sums equal the grand totals.
func BuildDailySummary(entries []models.FoodEntry) DailySummary {
	summary := DailySummary{
		MealBreakdown: map[models.MealType]MealStats{
			models.MealBreakfast: {},
			models.MealLunch:     {},
			models.MealDinner:    {},
			models.MealSnack:     {},
		},
	}

	for _, e := range entries {
		summary.TotalCalories += e.Calories
		summary.TotalProtein += e.Protein
		summary.TotalCarbs += e.Carbs
		summary.TotalFat += e.Fat
		summary.Entries++

		mealType := e.MealType
		if !models.ValidMealType(string(mealType)) {
			mealType = models.MealSnack
		}
		bucket := summary.MealBreakdown[mealType]
		bucket.add(e)
		summary.MealBreakdown[mealType] = bucket
	}

	summary.Macros = BuildMacroBreakdown(summary.TotalProtein, summary.TotalCarbs, summary.TotalFat)
	return summary
}

// BuildWeeklySummary is the pure fold behind WeeklySummary. Entries are
// grouped by calendar date in the entry's own location, keyed YYYY-MM-DD.
func BuildWeeklySummary(entries []models.FoodEntry) WeeklySummary {
	summary := WeeklySummary{DailyData: make(map[string]MealStats)}

	for _, e := range entries {
		summary.TotalEntries++
		summary.TotalCalories += e.Calories
		summary.TotalProtein += e.Protein
		summary.TotalCarbs += e.Carbs
		summary.TotalFat += e.Fat

		key := e.Timestamp.Format("2006-01-02")
		day := summary.DailyData[key]
		day.add(e)
		summary.DailyData[key] = day
	}

	// average over days that actually have entries, not the span length
	if tracked := len(summary.DailyData); tracked > 0 {
		summary.AvgCalories = int(math.Round(summary.TotalCalories / float64(tracked)))
	}

	summary.Macros = BuildMacroBreakdown(summary.TotalProtein, summary.TotalCarbs, summary.TotalFat)
	return summary
}

// BuildMonthlySummary is the pure fold behind MonthlySummary. Entries
// are grouped by day-of-month.
func BuildMonthlySummary(entries []models.FoodEntry) MonthlySummary {
	summary := MonthlySummary{DailyData: make(map[int]MealStats)}

	for _, e := range entries {
		summary.TotalEntries++
		summary.TotalCalories += e.Calories
		summary.TotalProtein += e.Protein
		summary.TotalCarbs += e.Carbs
		summary.TotalFat += e.Fat

		day := summary.DailyData[e.Timestamp.Day()]
		day.add(e)
		summary.DailyData[e.Timestamp.Day()] = day
	}

	summary.DaysTracked = len(summary.DailyData)
	if summary.DaysTracked > 0 {
		summary.AvgCalories = int(math.Round(summary.TotalCalories / float64(summary.DaysTracked)))
	}
	for _, day := range summary.DailyData {
		if day.Calories > summary.HighestDay {
			summary.HighestDay = day.Calories
		}
	}

	summary.Macros = BuildMacroBreakdown(summary.TotalProtein, summary.TotalCarbs, summary.TotalFat)
	return summary
}

// BuildMacroBreakdown converts macro grams to calories (4/4/9 kcal per
// gram) and computes each macro's integer share of total macro calories.
// The ratio is multiplied by 100 before rounding; when the total is zero
// every percentage is zero.
func BuildMacroBreakdown(proteinGrams, carbsGrams, fatGrams float64) MacroBreakdown {
	proteinCal := proteinGrams * kcalPerGramProtein
	carbsCal := carbsGrams * kcalPerGramCarbs
	fatCal := fatGrams * kcalPerGramFat
	total := proteinCal + carbsCal + fatCal

	return MacroBreakdown{
		Protein: MacroDetail{Grams: proteinGrams, Calories: proteinCal, Percentage: pctOf(proteinCal, total)},
		Carbs:   MacroDetail{Grams: carbsGrams, Calories: carbsCal, Percentage: pctOf(carbsCal, total)},
		Fat:     MacroDetail{Grams: fatGrams, Calories: fatCal, Percentage: pctOf(fatCal, total)},
	}
}

func pctOf(part, total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}

// DayStart returns local midnight of t's calendar day.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last instant of t's calendar day.
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// MonthWindow returns the inclusive bounds of a calendar month. Asking
// time.Date for day 0 of the following month lands on the last day of
// the target month, which handles month lengths and leap years without
// a table.
func MonthWindow(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("month must be 1-12, got %d", month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.Month(month)+1, 0, 23, 59, 59, int(time.Second-time.Nanosecond), time.Local)
	return start, end, nil
}
