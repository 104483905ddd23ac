package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mchamoudadev/colorie-tracker/models"
	"github.com/mchamoudadev/colorie-tracker/services"
)

type ReportsController struct {
	users    *services.UserService
	calories *services.CalorieService
	logger   *zap.Logger
}

func NewReportsController(users *services.UserService, calories *services.CalorieService, logger *zap.Logger) *ReportsController {
	return &ReportsController{users: users, calories: calories, logger: logger}
}

// CompareWithGoal derives the goal-facing numbers for a day's consumed
// calories. Remaining never goes negative; overshoot is signalled by
// the boolean instead.
func CompareWithGoal(consumed, goal float64) (remaining float64, percentComplete int, isOverGoal bool) {
	remaining = goal - consumed
	if remaining < 0 {
		remaining = 0
	}
	if goal > 0 {
		percentComplete = int(math.Round(consumed / goal * 100))
	}
	return remaining, percentComplete, consumed > goal
}

// Daily handles GET /api/reports/daily?date=YYYY-MM-DD (default today).
func (rc *ReportsController) Daily(c *gin.Context) {
	targetDate := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		targetDate = parsed
	}

	user, ok := rc.loadUser(c)
	if !ok {
		return
	}

	summary, err := rc.calories.DailySummary(c.Request.Context(), user.ID, targetDate)
	if err != nil {
		rc.logger.Error("daily summary failed", zap.Error(err), zap.Uint("user_id", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	remaining, percent, over := CompareWithGoal(summary.TotalCalories, user.DailyCalorieGoal)

	c.JSON(http.StatusOK, gin.H{
		"date":            targetDate.Format("2006-01-02"),
		"goal":            user.DailyCalorieGoal,
		"consumed":        summary.TotalCalories,
		"remaining":       remaining,
		"percentComplete": percent,
		"isOverGoal":      over,
		"macros":          summary.Macros,
		"mealBreakdown":   summary.MealBreakdown,
		"entriesCount":    summary.Entries,
	})
}

// WeekDay is one slot of the fixed 7-day series.
type WeekDay struct {
	Date            string  `json:"date"`
	DayName         string  `json:"dayName"`
	Calories        float64 `json:"calories"`
	Protein         float64 `json:"protein"`
	Carbs           float64 `json:"carbs"`
	Fat             float64 `json:"fat"`
	EntriesCount    int     `json:"entriesCount"`
	Goal            float64 `json:"goal"`
	PercentComplete int     `json:"percentComplete"`
}

// BuildWeekSeries turns the engine's sparse per-day map into a fixed
// seven-day series ending on end, oldest first, with zero placeholders
// for untracked days. This fill-in is presentation logic; the
// aggregation engine only reports tracked days.
func BuildWeekSeries(dailyData map[string]services.MealStats, end time.Time, goal float64) []WeekDay {
	week := make([]WeekDay, 0, 7)
	start := end.AddDate(0, 0, -6)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		key := date.Format("2006-01-02")
		day := dailyData[key] // zero value when untracked

		_, percent, _ := CompareWithGoal(day.Calories, goal)
		week = append(week, WeekDay{
			Date:            key,
			DayName:         date.Format("Mon"),
			Calories:        day.Calories,
			Protein:         day.Protein,
			Carbs:           day.Carbs,
			Fat:             day.Fat,
			EntriesCount:    day.Count,
			Goal:            goal,
			PercentComplete: percent,
		})
	}
	return week
}

// Weekly handles GET /api/reports/weekly: a rolling 7-day window
// ending today.
func (rc *ReportsController) Weekly(c *gin.Context) {
	user, ok := rc.loadUser(c)
	if !ok {
		return
	}

	now := time.Now()
	start := services.DayStart(now.AddDate(0, 0, -6))
	end := services.DayEnd(now)

	summary, err := rc.calories.WeeklySummary(c.Request.Context(), user.ID, start, end)
	if err != nil {
		rc.logger.Error("weekly summary failed", zap.Error(err), zap.Uint("user_id", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"week":          BuildWeekSeries(summary.DailyData, now, user.DailyCalorieGoal),
		"totalEntries":  summary.TotalEntries,
		"totalCalories": summary.TotalCalories,
		"avgCalories":   summary.AvgCalories,
		"goal":          user.DailyCalorieGoal,
		"macros":        summary.Macros,
	})
}

// Monthly handles GET /api/reports/monthly?year=YYYY&month=M
// (defaults: the current month).
func (rc *ReportsController) Monthly(c *gin.Context) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid year"})
			return
		}
		year = parsed
	}
	if monthStr := c.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid month, expected 1-12"})
			return
		}
		month = parsed
	}

	user, ok := rc.loadUser(c)
	if !ok {
		return
	}

	summary, err := rc.calories.MonthlySummary(c.Request.Context(), user.ID, year, month)
	if err != nil {
		rc.logger.Error("monthly summary failed", zap.Error(err), zap.Uint("user_id", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":          year,
		"month":         month,
		"totalEntries":  summary.TotalEntries,
		"totalCalories": summary.TotalCalories,
		"avgCalories":   summary.AvgCalories,
		"highestDay":    summary.HighestDay,
		"daysTracked":   summary.DaysTracked,
		"dailyGoal":     user.DailyCalorieGoal,
		"macros":        summary.Macros,
		"chartData":     summary.DailyData,
	})
}

func (rc *ReportsController) loadUser(c *gin.Context) (*models.User, bool) {
	user, err := rc.users.GetByID(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return nil, false
		}
		rc.logger.Error("load user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return nil, false
	}
	return user, true
}
