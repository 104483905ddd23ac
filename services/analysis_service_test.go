package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeAnalysisDefaultsMealType(t *testing.T) {
	a, err := sanitizeAnalysis(&FoodAnalysis{
		FoodName: "grilled chicken",
		Calories: 420,
		Protein:  38,
		Carbs:    5,
		Fat:      18,
		MealType: "brunch",
	})
	require.NoError(t, err)
	assert.Equal(t, "snack", a.MealType)
}

func TestSanitizeAnalysisKeepsValidMealType(t *testing.T) {
	a, err := sanitizeAnalysis(&FoodAnalysis{
		FoodName: "oatmeal",
		Calories: 300,
		MealType: "breakfast",
	})
	require.NoError(t, err)
	assert.Equal(t, "breakfast", a.MealType)
}

func TestSanitizeAnalysisRejectsBadValues(t *testing.T) {
	_, err := sanitizeAnalysis(&FoodAnalysis{Calories: 100, MealType: "lunch"})
	assert.Error(t, err, "missing food name")

	_, err = sanitizeAnalysis(&FoodAnalysis{FoodName: "soup", Calories: -5, MealType: "lunch"})
	assert.Error(t, err, "negative calories")
}
