package controllers

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mchamoudadev/colorie-tracker/models"
	"github.com/mchamoudadev/colorie-tracker/services"
	"github.com/mchamoudadev/colorie-tracker/utils"
)

type FoodController struct {
	entries  *services.EntryService
	users    *services.UserService
	calories *services.CalorieService
	analysis *services.AnalysisService
	storage  *utils.R2Storage
	hub      *services.RealtimeHub
	logger   *zap.Logger
}

func NewFoodController(
	entries *services.EntryService,
	users *services.UserService,
	calories *services.CalorieService,
	analysis *services.AnalysisService,
	storage *utils.R2Storage,
	hub *services.RealtimeHub,
	logger *zap.Logger,
) *FoodController {
	return &FoodController{
		entries:  entries,
		users:    users,
		calories: calories,
		analysis: analysis,
		storage:  storage,
		hub:      hub,
		logger:   logger,
	}
}

var (
	errNoImage      = errors.New("please upload an image of the food")
	errImageTooBig  = errors.New("image must be smaller than 10MB")
	errBadImageType = errors.New("only image files are allowed (jpeg, jpg, png, gif, webp)")
)

// readUploadedImage pulls the "image" file out of the multipart form
// and enforces the format and size limits.
func readUploadedImage(c *gin.Context) ([]byte, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return nil, errNoImage
	}
	defer file.Close()

	if header.Size > utils.MaxUploadSize {
		return nil, errImageTooBig
	}
	if !utils.AllowedImageFile(header.Filename, header.Header.Get("Content-Type")) {
		return nil, errBadImageType
	}

	data, err := io.ReadAll(io.LimitReader(file, utils.MaxUploadSize+1))
	if err != nil {
		return nil, errNoImage
	}
	if len(data) > utils.MaxUploadSize {
		return nil, errImageTooBig
	}
	return data, nil
}

// analyzeUpload runs the shared upload pipeline: optimize, store,
// analyze. On analysis failure the stored object is left behind; see
// DESIGN.md on orphaned uploads.
func (fc *FoodController) analyzeUpload(c *gin.Context) (analysis *services.FoodAnalysis, url, key string, optimized []byte, err error) {
	raw, err := readUploadedImage(c)
	if err != nil {
		return nil, "", "", nil, err
	}

	optimized, err = utils.OptimizeImage(raw)
	if err != nil {
		return nil, "", "", nil, err
	}

	url, key, err = fc.storage.UploadImage(c.Request.Context(), optimized)
	if err != nil {
		return nil, "", "", nil, err
	}

	analysis, err = fc.analysis.AnalyzeFood(c.Request.Context(), url)
	if err != nil {
		return nil, "", "", nil, err
	}
	return analysis, url, key, optimized, nil
}

// Scan handles POST /api/food/scan: analyze the photo and persist the
// entry in one step.
func (fc *FoodController) Scan(c *gin.Context) {
	analysis, url, key, _, err := fc.analyzeUpload(c)
	if err != nil {
		fc.respondUploadError(c, err)
		return
	}

	userID := c.GetUint("userID")
	entry := models.FoodEntry{
		UserID:     userID,
		FoodName:   analysis.FoodName,
		Calories:   analysis.Calories,
		Protein:    analysis.Protein,
		Carbs:      analysis.Carbs,
		Fat:        analysis.Fat,
		MealType:   models.MealType(analysis.MealType),
		ImageURL:   url,
		StorageKey: key,
	}
	if err := fc.entries.Create(c.Request.Context(), &entry); err != nil {
		fc.logger.Error("persist scanned entry failed", zap.Error(err), zap.Uint("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	fc.pushProgress(c, userID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Food scanned successfully",
		"food":    entry,
	})
}

// Analyze handles POST /api/food/analyze: run the pipeline but return
// a provisional result instead of persisting. The client must follow
// up with save or discard.
func (fc *FoodController) Analyze(c *gin.Context) {
	analysis, url, key, optimized, err := fc.analyzeUpload(c)
	if err != nil {
		fc.respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"foodName":    analysis.FoodName,
		"calories":    analysis.Calories,
		"protein":     analysis.Protein,
		"carbs":       analysis.Carbs,
		"fat":         analysis.Fat,
		"mealType":    analysis.MealType,
		"imageUrl":    url,
		"storageKey":  key,
		"imageBase64": "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(optimized),
	})
}

type SaveEntryInput struct {
	FoodName   string   `json:"foodName" binding:"required"`
	Calories   *float64 `json:"calories" binding:"required"`
	Protein    float64  `json:"protein"`
	Carbs      float64  `json:"carbs"`
	Fat        float64  `json:"fat"`
	MealType   string   `json:"mealType"`
	ImageURL   string   `json:"imageUrl" binding:"required"`
	StorageKey string   `json:"storageKey" binding:"required"`
}

// Save handles POST /api/food/save: persist a previously analyzed
// result.
func (fc *FoodController) Save(c *gin.Context) {
	var input SaveEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required except protein, fat, and carbs"})
		return
	}

	userID := c.GetUint("userID")
	entry := models.FoodEntry{
		UserID:     userID,
		FoodName:   input.FoodName,
		Calories:   *input.Calories,
		Protein:    input.Protein,
		Carbs:      input.Carbs,
		Fat:        input.Fat,
		MealType:   models.MealType(input.MealType),
		ImageURL:   input.ImageURL,
		StorageKey: input.StorageKey,
	}
	if err := fc.entries.Create(c.Request.Context(), &entry); err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"message": ve.Error(), "fields": ve.Fields})
			return
		}
		fc.logger.Error("save entry failed", zap.Error(err), zap.Uint("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	fc.pushProgress(c, userID)

	c.JSON(http.StatusCreated, entry)
}

type DiscardInput struct {
	StorageKey string `json:"storageKey" binding:"required"`
}

// Discard handles POST /api/food/discard: delete the stored image of
// an analysis the user rejected. No entry was ever created.
func (fc *FoodController) Discard(c *gin.Context) {
	var input DiscardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Storage key is required"})
		return
	}

	if err := fc.storage.DeleteImage(c.Request.Context(), input.StorageKey); err != nil {
		fc.logger.Error("discard image failed", zap.Error(err), zap.String("key", input.StorageKey))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

// Entries handles GET /api/food/entries with date, startDate/endDate
// and limit query parameters.
func (fc *FoodController) Entries(c *gin.Context) {
	filter := services.EntryFilter{}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		filter.Date = &date
	}

	startStr, endStr := c.Query("startDate"), c.Query("endDate")
	if startStr != "" && endStr != "" {
		start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid startDate, expected YYYY-MM-DD"})
			return
		}
		end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid endDate, expected YYYY-MM-DD"})
			return
		}
		end = services.DayEnd(end)
		filter.Start, filter.End = &start, &end
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
			return
		}
		filter.Limit = limit
	}

	entries, err := fc.entries.List(c.Request.Context(), c.GetUint("userID"), filter)
	if err != nil {
		fc.logger.Error("list entries failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// pushProgress recomputes today's totals and notifies the user's open
// websockets. Failures only cost the push, never the request.
func (fc *FoodController) pushProgress(c *gin.Context, userID uint) {
	ctx := c.Request.Context()

	user, err := fc.users.GetByID(ctx, userID)
	if err != nil {
		fc.logger.Warn("progress push skipped", zap.Error(err), zap.Uint("user_id", userID))
		return
	}
	summary, err := fc.calories.DailySummary(ctx, userID, time.Now())
	if err != nil {
		fc.logger.Warn("progress push skipped", zap.Error(err), zap.Uint("user_id", userID))
		return
	}

	remaining, percent, over := CompareWithGoal(summary.TotalCalories, user.DailyCalorieGoal)
	fc.hub.BroadcastProgress(userID, services.ProgressUpdate{
		Date:            time.Now().Format("2006-01-02"),
		Consumed:        summary.TotalCalories,
		Goal:            user.DailyCalorieGoal,
		Remaining:       remaining,
		PercentComplete: percent,
		IsOverGoal:      over,
	})
}

func (fc *FoodController) respondUploadError(c *gin.Context, err error) {
	if errors.Is(err, errNoImage) || errors.Is(err, errImageTooBig) || errors.Is(err, errBadImageType) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	fc.logger.Error("food upload pipeline failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
