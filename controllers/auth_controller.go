package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mchamoudadev/colorie-tracker/models"
	"github.com/mchamoudadev/colorie-tracker/services"
	"github.com/mchamoudadev/colorie-tracker/utils"
)

type AuthController struct {
	users     *services.UserService
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthController(users *services.UserService, jwtSecret string, logger *zap.Logger) *AuthController {
	return &AuthController{users: users, jwtSecret: jwtSecret, logger: logger}
}

type RegisterInput struct {
	Email            string  `json:"email" binding:"required"`
	Password         string  `json:"password" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	DailyCalorieGoal float64 `json:"dailyCalorieGoal"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	user, err := ac.users.Register(c.Request.Context(), input.Email, input.Password, input.Name, input.DailyCalorieGoal)
	if err != nil {
		var ve *models.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"message": ve.Error(), "fields": ve.Fields})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
		default:
			ac.logger.Error("register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	token, err := utils.GenerateJWT(ac.jwtSecret, user.ID)
	if err != nil {
		ac.logger.Error("token generation failed", zap.Error(err), zap.Uint("user_id", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    userPayload(user, token),
	})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	user, err := ac.users.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		ac.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	token, err := utils.GenerateJWT(ac.jwtSecret, user.ID)
	if err != nil {
		ac.logger.Error("token generation failed", zap.Error(err), zap.Uint("user_id", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userPayload(user, token),
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.users.GetByID(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		ac.logger.Error("fetch profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateProfileInput struct {
	Name                *string  `json:"name"`
	DailyCalorieGoal    *float64 `json:"dailyCalorieGoal"`
	OnboardingCompleted *bool    `json:"onboardingCompleted"`
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	user, err := ac.users.UpdateProfile(c.Request.Context(), c.GetUint("userID"), services.ProfileUpdate{
		Name:                input.Name,
		DailyCalorieGoal:    input.DailyCalorieGoal,
		OnboardingCompleted: input.OnboardingCompleted,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		ac.logger.Error("update profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

func userPayload(user *models.User, token string) gin.H {
	return gin.H{
		"email":               user.Email,
		"name":                user.Name,
		"dailyCalorieGoal":    user.DailyCalorieGoal,
		"onboardingCompleted": user.OnboardingCompleted,
		"token":               token,
	}
}
