package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
}

func TestValidateUser(t *testing.T) {
	assert.Nil(t, ValidateUser("user@example.com", "password123", "Ayaan"))

	ve := ValidateUser("not-an-email", "short", " ")
	require.NotNil(t, ve)
	require.Len(t, ve.Fields, 3)
	assert.Contains(t, ve.Error(), "email")
	assert.Contains(t, ve.Error(), "password")
	assert.Contains(t, ve.Error(), "name")

	ve = ValidateUser("user@example.com", strings.Repeat("x", 33), "Ayaan")
	require.NotNil(t, ve)
	assert.Equal(t, "password", ve.Fields[0].Field)
}

func TestValidMealType(t *testing.T) {
	for _, mt := range MealTypes {
		assert.True(t, ValidMealType(string(mt)))
	}
	assert.False(t, ValidMealType("brunch"))
	assert.False(t, ValidMealType(""))
}

func TestValidateFoodEntry(t *testing.T) {
	valid := &FoodEntry{
		UserID:     1,
		FoodName:   "grilled salmon",
		Calories:   380,
		MealType:   MealDinner,
		ImageURL:   "https://cdn.example.com/colorie-tracker-rec/abc.jpeg",
		StorageKey: "colorie-tracker-rec/abc.jpeg",
	}
	assert.Nil(t, ValidateFoodEntry(valid))

	// macros default to zero and zero is allowed
	valid.Protein, valid.Carbs, valid.Fat = 0, 0, 0
	assert.Nil(t, ValidateFoodEntry(valid))

	negative := *valid
	negative.Calories = -1
	negative.Protein = -2
	ve := ValidateFoodEntry(&negative)
	require.NotNil(t, ve)
	assert.Len(t, ve.Fields, 2)

	missing := FoodEntry{MealType: "brunch"}
	ve = ValidateFoodEntry(&missing)
	require.NotNil(t, ve)
	fields := make(map[string]bool)
	for _, f := range ve.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"userId", "foodName", "mealType", "imageUrl", "storageKey"} {
		assert.True(t, fields[want], "expected a %s error", want)
	}
}
