package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchamoudadev/colorie-tracker/models"
)

func entry(day time.Time, meal models.MealType, calories, protein, carbs, fat float64) models.FoodEntry {
	return models.FoodEntry{
		UserID:    1,
		FoodName:  "test food",
		Calories:  calories,
		Protein:   protein,
		Carbs:     carbs,
		Fat:       fat,
		MealType:  meal,
		Timestamp: day,
	}
}

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.Local)
}

func TestBuildDailySummaryWorkedExample(t *testing.T) {
	d := day(2024, time.January, 15, 8)
	entries := []models.FoodEntry{
		entry(d, models.MealBreakfast, 500, 30, 60, 15),
		entry(d.Add(5*time.Hour), models.MealLunch, 800, 40, 100, 25),
		entry(d.Add(11*time.Hour), models.MealDinner, 700, 50, 80, 20),
	}

	s := BuildDailySummary(entries)

	assert.Equal(t, 2000.0, s.TotalCalories)
	assert.Equal(t, 120.0, s.TotalProtein)
	assert.Equal(t, 240.0, s.TotalCarbs)
	assert.Equal(t, 60.0, s.TotalFat)
	assert.Equal(t, 3, s.Entries)

	assert.Equal(t, MealStats{Calories: 500, Protein: 30, Carbs: 60, Fat: 15, Count: 1}, s.MealBreakdown[models.MealBreakfast])
	assert.Equal(t, MealStats{Calories: 800, Protein: 40, Carbs: 100, Fat: 25, Count: 1}, s.MealBreakdown[models.MealLunch])
	assert.Equal(t, MealStats{Calories: 700, Protein: 50, Carbs: 80, Fat: 20, Count: 1}, s.MealBreakdown[models.MealDinner])
	assert.Equal(t, MealStats{}, s.MealBreakdown[models.MealSnack])
}

func TestBuildDailySummaryEmpty(t *testing.T) {
	s := BuildDailySummary(nil)

	assert.Zero(t, s.TotalCalories)
	assert.Zero(t, s.Entries)
	// all four buckets are present even with no data
	require.Len(t, s.MealBreakdown, 4)
	for _, mt := range models.MealTypes {
		assert.Equal(t, MealStats{}, s.MealBreakdown[mt])
	}
	assert.Zero(t, s.Macros.Protein.Percentage)
	assert.Zero(t, s.Macros.Carbs.Percentage)
	assert.Zero(t, s.Macros.Fat.Percentage)
}

func TestMealBucketsPartitionTotals(t *testing.T) {
	d := day(2024, time.March, 3, 7)
	entries := []models.FoodEntry{
		entry(d, models.MealBreakfast, 320, 12, 40, 9),
		entry(d, models.MealBreakfast, 180, 6, 20, 7),
		entry(d, models.MealLunch, 640, 35, 70, 22),
		entry(d, models.MealSnack, 150, 4, 18, 8),
		entry(d, models.MealDinner, 510, 28, 55, 17),
		entry(d, models.MealSnack, 90, 2, 10, 4),
	}

	s := BuildDailySummary(entries)

	var calories, protein, carbs, fat float64
	var count int
	for _, mt := range models.MealTypes {
		b := s.MealBreakdown[mt]
		calories += b.Calories
		protein += b.Protein
		carbs += b.Carbs
		fat += b.Fat
		count += b.Count
	}
	assert.Equal(t, s.TotalCalories, calories)
	assert.Equal(t, s.TotalProtein, protein)
	assert.Equal(t, s.TotalCarbs, carbs)
	assert.Equal(t, s.TotalFat, fat)
	assert.Equal(t, s.Entries, count)
}

func TestMacroPercentagesSumTo100(t *testing.T) {
	// 155g protein, 310g carbs, 78g fat -> 620 + 1240 + 702 kcal.
	// The ratio is multiplied by 100 before rounding, so the shares
	// are 24/48/27, not collapsed to 0 or 100.
	m := BuildMacroBreakdown(155, 310, 78)

	assert.Equal(t, 620.0, m.Protein.Calories)
	assert.Equal(t, 1240.0, m.Carbs.Calories)
	assert.Equal(t, 702.0, m.Fat.Calories)

	assert.Equal(t, 24, m.Protein.Percentage)
	assert.Equal(t, 48, m.Carbs.Percentage)
	assert.Equal(t, 27, m.Fat.Percentage)

	sum := m.Protein.Percentage + m.Carbs.Percentage + m.Fat.Percentage
	assert.InDelta(t, 100, sum, 1)
}

func TestMacroPercentagesZeroWhenNoMacros(t *testing.T) {
	m := BuildMacroBreakdown(0, 0, 0)
	assert.Zero(t, m.Protein.Percentage)
	assert.Zero(t, m.Carbs.Percentage)
	assert.Zero(t, m.Fat.Percentage)
}

func TestBuildWeeklySummaryWorkedExample(t *testing.T) {
	entries := []models.FoodEntry{
		entry(day(2024, time.January, 15, 8), models.MealBreakfast, 500, 30, 60, 15),
		entry(day(2024, time.January, 15, 13), models.MealLunch, 800, 40, 100, 25),
		entry(day(2024, time.January, 16, 12), models.MealLunch, 600, 35, 70, 18),
		entry(day(2024, time.January, 17, 19), models.MealDinner, 700, 50, 80, 20),
	}

	s := BuildWeeklySummary(entries)

	assert.Equal(t, 4, s.TotalEntries)
	assert.Equal(t, 2600.0, s.TotalCalories)

	// exactly the tracked dates, nothing filled in
	require.Len(t, s.DailyData, 3)
	assert.Equal(t, MealStats{Calories: 1300, Protein: 70, Carbs: 160, Fat: 40, Count: 2}, s.DailyData["2024-01-15"])
	assert.Equal(t, MealStats{Calories: 600, Protein: 35, Carbs: 70, Fat: 18, Count: 1}, s.DailyData["2024-01-16"])
	assert.Equal(t, MealStats{Calories: 700, Protein: 50, Carbs: 80, Fat: 20, Count: 1}, s.DailyData["2024-01-17"])

	// averaged over the 3 tracked days, not the span length
	assert.Equal(t, 867, s.AvgCalories)
}

func TestBuildWeeklySummaryEmpty(t *testing.T) {
	s := BuildWeeklySummary(nil)
	assert.Zero(t, s.AvgCalories)
	assert.Empty(t, s.DailyData)
	assert.Zero(t, s.Macros.Fat.Percentage)
}

func TestBuildMonthlySummaryWorkedExample(t *testing.T) {
	entries := []models.FoodEntry{
		entry(day(2024, time.January, 15, 8), models.MealBreakfast, 500, 30, 60, 15),
		entry(day(2024, time.January, 15, 13), models.MealLunch, 800, 40, 100, 25),
		entry(day(2024, time.January, 20, 12), models.MealLunch, 600, 35, 70, 18),
		entry(day(2024, time.January, 20, 19), models.MealDinner, 700, 50, 80, 20),
	}

	s := BuildMonthlySummary(entries)

	assert.Equal(t, 4, s.TotalEntries)
	assert.Equal(t, 2600.0, s.TotalCalories)
	assert.Equal(t, 2, s.DaysTracked)
	assert.Equal(t, 1300, s.AvgCalories)
	assert.Equal(t, 1300.0, s.HighestDay)

	require.Len(t, s.DailyData, 2)
	assert.Equal(t, MealStats{Calories: 1300, Protein: 70, Carbs: 160, Fat: 40, Count: 2}, s.DailyData[15])
	assert.Equal(t, MealStats{Calories: 1300, Protein: 85, Carbs: 150, Fat: 38, Count: 2}, s.DailyData[20])
}

func TestBuildMonthlySummaryEqualHighestDays(t *testing.T) {
	entries := []models.FoodEntry{
		entry(day(2024, time.May, 15, 12), models.MealLunch, 1300, 0, 0, 0),
		entry(day(2024, time.May, 20, 12), models.MealLunch, 1300, 0, 0, 0),
	}
	s := BuildMonthlySummary(entries)
	assert.Equal(t, 2, s.DaysTracked)
	assert.Equal(t, 1300, s.AvgCalories)
	assert.Equal(t, 1300.0, s.HighestDay)
}

func TestBuildMonthlySummaryEmpty(t *testing.T) {
	s := BuildMonthlySummary(nil)
	assert.Zero(t, s.DaysTracked)
	assert.Zero(t, s.AvgCalories)
	assert.Zero(t, s.HighestDay)
	assert.Empty(t, s.DailyData)
}

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		name        string
		year, month int
		wantLastDay int
	}{
		{"leap february", 2024, 2, 29},
		{"non-leap february", 2023, 2, 28},
		{"december stays in december", 2024, 12, 31},
		{"thirty-day month", 2024, 4, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := MonthWindow(tt.year, tt.month)
			require.NoError(t, err)

			assert.Equal(t, tt.year, start.Year())
			assert.Equal(t, time.Month(tt.month), start.Month())
			assert.Equal(t, 1, start.Day())
			assert.Equal(t, 0, start.Hour())

			assert.Equal(t, tt.year, end.Year())
			assert.Equal(t, time.Month(tt.month), end.Month())
			assert.Equal(t, tt.wantLastDay, end.Day())
			assert.Equal(t, 23, end.Hour())

			// the instant after the window is the next month
			next := end.Add(time.Nanosecond)
			assert.Equal(t, 1, next.Day())
		})
	}
}

func TestMonthWindowRejectsBadMonth(t *testing.T) {
	_, _, err := MonthWindow(2024, 0)
	assert.Error(t, err)
	_, _, err = MonthWindow(2024, 13)
	assert.Error(t, err)
}

func TestFoldsAreIdempotent(t *testing.T) {
	entries := []models.FoodEntry{
		entry(day(2024, time.June, 2, 9), models.MealBreakfast, 410, 22, 38, 12),
		entry(day(2024, time.June, 2, 13), models.MealLunch, 760, 41, 88, 24),
		entry(day(2024, time.June, 4, 20), models.MealDinner, 655, 37, 61, 21),
	}

	assert.Equal(t, BuildDailySummary(entries), BuildDailySummary(entries))
	assert.Equal(t, BuildWeeklySummary(entries), BuildWeeklySummary(entries))
	assert.Equal(t, BuildMonthlySummary(entries), BuildMonthlySummary(entries))
}

func TestDayWindowCoversWholeDay(t *testing.T) {
	noon := day(2024, time.July, 9, 12)
	start, end := DayStart(noon), DayEnd(noon)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 9, start.Day())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 9, end.Day())
	assert.True(t, end.After(start))
	assert.Equal(t, 10, end.Add(time.Nanosecond).Day())
}
