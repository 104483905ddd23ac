package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchamoudadev/colorie-tracker/services"
)

func TestCompareWithGoal(t *testing.T) {
	remaining, percent, over := CompareWithGoal(1500, 2000)
	assert.Equal(t, 500.0, remaining)
	assert.Equal(t, 75, percent)
	assert.False(t, over)

	// remaining clamps at zero when over goal
	remaining, percent, over = CompareWithGoal(2500, 2000)
	assert.Equal(t, 0.0, remaining)
	assert.Equal(t, 125, percent)
	assert.True(t, over)

	// exactly on goal is not over
	remaining, percent, over = CompareWithGoal(2000, 2000)
	assert.Equal(t, 0.0, remaining)
	assert.Equal(t, 100, percent)
	assert.False(t, over)

	// a zero goal cannot divide
	_, percent, _ = CompareWithGoal(500, 0)
	assert.Equal(t, 0, percent)
}

func TestBuildWeekSeriesFillsSevenDays(t *testing.T) {
	end := time.Date(2024, time.January, 17, 15, 30, 0, 0, time.Local)
	dailyData := map[string]services.MealStats{
		"2024-01-15": {Calories: 1300, Protein: 70, Carbs: 160, Fat: 40, Count: 2},
		"2024-01-17": {Calories: 700, Protein: 50, Carbs: 80, Fat: 20, Count: 1},
	}

	week := BuildWeekSeries(dailyData, end, 2000)

	require.Len(t, week, 7)

	// oldest to newest, ending on the query date
	assert.Equal(t, "2024-01-11", week[0].Date)
	assert.Equal(t, "2024-01-17", week[6].Date)

	// tracked days carry their totals
	assert.Equal(t, 1300.0, week[4].Calories)
	assert.Equal(t, 2, week[4].EntriesCount)
	assert.Equal(t, 65, week[4].PercentComplete)
	assert.Equal(t, 700.0, week[6].Calories)

	// untracked days are zero-filled placeholders, not absent
	assert.Equal(t, "2024-01-16", week[5].Date)
	assert.Zero(t, week[5].Calories)
	assert.Zero(t, week[5].EntriesCount)
	assert.Zero(t, week[5].PercentComplete)
	assert.Equal(t, 2000.0, week[5].Goal)
}

func TestBuildWeekSeriesDayNames(t *testing.T) {
	// 2024-01-17 was a Wednesday
	end := time.Date(2024, time.January, 17, 12, 0, 0, 0, time.Local)
	week := BuildWeekSeries(nil, end, 2000)

	require.Len(t, week, 7)
	assert.Equal(t, "Thu", week[0].DayName)
	assert.Equal(t, "Wed", week[6].DayName)
}
