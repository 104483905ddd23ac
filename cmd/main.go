package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/mchamoudadev/colorie-tracker/config"
	"github.com/mchamoudadev/colorie-tracker/controllers"
	"github.com/mchamoudadev/colorie-tracker/routes"
	"github.com/mchamoudadev/colorie-tracker/services"
	"github.com/mchamoudadev/colorie-tracker/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}

	storage, err := utils.NewR2Storage(context.Background(),
		cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2SecretAccessKey,
		cfg.R2BucketName, cfg.R2PublicURL)
	if err != nil {
		logger.Fatal("storage", zap.Error(err))
	}

	analysis, err := services.NewAnalysisService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if err != nil {
		logger.Fatal("analysis", zap.Error(err))
	}

	userSvc := services.NewUserService(db)
	entrySvc := services.NewEntryService(db)
	calorieSvc := services.NewCalorieService(db)
	hub := services.NewRealtimeHub()

	r := routes.SetupRouter(db, cfg.JWTSecret, routes.Controllers{
		Auth:     controllers.NewAuthController(userSvc, cfg.JWTSecret, logger),
		Food:     controllers.NewFoodController(entrySvc, userSvc, calorieSvc, analysis, storage, hub, logger),
		Reports:  controllers.NewReportsController(userSvc, calorieSvc, logger),
		Realtime: controllers.NewRealtimeController(hub),
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
