package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/mchamoudadev/colorie-tracker/models"
)

const analysisPrompt = `Analyze this food image and provide nutritional information.
Make your best estimate for a typical serving size shown in the image.
Provide accurate nutritional values based on the food visible in the image.
Respond with a JSON object with exactly these keys:
"foodName" (string), "calories" (number), "protein" (number, grams),
"carbs" (number, grams), "fat" (number, grams),
"mealType" (one of "breakfast", "lunch", "dinner", "snack").`

// FoodAnalysis is the structured estimate returned by the vision model.
type FoodAnalysis struct {
	FoodName string  `json:"foodName"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	MealType string  `json:"mealType"`
}

// AnalysisService asks a vision LLM for nutrition facts of a food
// photo reachable at a public URL.
type AnalysisService struct {
	llm *openai.LLM
}

func NewAnalysisService(apiKey, model string) (*AnalysisService, error) {
	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("init openai client: %w", err)
	}
	return &AnalysisService{llm: llm}, nil
}

// AnalyzeFood sends the image URL to the model and parses the JSON
// reply. No retries; a bad reply is the caller's failure.
func (s *AnalysisService) AnalyzeFood(ctx context.Context, imageURL string) (*FoodAnalysis, error) {
	resp, err := s.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			{
				Role: schema.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{
					llms.TextPart(analysisPrompt),
					llms.ImageURLPart(imageURL),
				},
			},
		},
		llms.WithJSONMode(),
		llms.WithMaxTokens(300),
	)
	if err != nil {
		return nil, fmt.Errorf("food analysis request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("food analysis returned no choices")
	}

	var analysis FoodAnalysis
	if err := json.Unmarshal([]byte(resp.Choices[0].Content), &analysis); err != nil {
		return nil, fmt.Errorf("parse food analysis: %w", err)
	}
	return sanitizeAnalysis(&analysis)
}

func sanitizeAnalysis(a *FoodAnalysis) (*FoodAnalysis, error) {
	if a.FoodName == "" {
		return nil, fmt.Errorf("food analysis missing food name")
	}
	if a.Calories < 0 || a.Protein < 0 || a.Carbs < 0 || a.Fat < 0 {
		return nil, fmt.Errorf("food analysis returned negative nutrition values")
	}
	if !models.ValidMealType(a.MealType) {
		a.MealType = string(models.MealSnack)
	}
	return a, nil
}
