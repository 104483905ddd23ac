package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mchamoudadev/colorie-tracker/controllers"
	"github.com/mchamoudadev/colorie-tracker/middlewares"
)

// Controllers bundles the constructed handlers the router wires up.
type Controllers struct {
	Auth     *controllers.AuthController
	Food     *controllers.FoodController
	Reports  *controllers.ReportsController
	Realtime *controllers.RealtimeController
}

func SetupRouter(db *gorm.DB, jwtSecret string, ctrl Controllers) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = 10 << 20

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Welcome to colorie tracker API",
			"version":   "1.0.0",
			"status":    "success",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	protected := middlewares.AuthMiddleware(db, jwtSecret)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.GET("/me", protected, ctrl.Auth.Me)
		auth.PUT("/update-profile", protected, ctrl.Auth.UpdateProfile)
	}

	food := r.Group("/api/food")
	food.Use(protected)
	{
		food.POST("/scan", ctrl.Food.Scan)
		food.POST("/analyze", ctrl.Food.Analyze)
		food.POST("/save", ctrl.Food.Save)
		food.POST("/discard", ctrl.Food.Discard)
		food.GET("/entries", ctrl.Food.Entries)
	}

	reports := r.Group("/api/reports")
	reports.Use(protected)
	{
		reports.GET("/daily", ctrl.Reports.Daily)
		reports.GET("/weekly", ctrl.Reports.Weekly)
		reports.GET("/monthly", ctrl.Reports.Monthly)
	}

	r.GET("/api/ws/progress", protected, ctrl.Realtime.ProgressWS)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return r
}
