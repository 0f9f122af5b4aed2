package main

import (
	"log"

	"fachowiec/backend/internal/config"
	"fachowiec/backend/internal/db"
	"fachowiec/backend/internal/handler"
	"fachowiec/backend/internal/repository"
	"fachowiec/backend/internal/router"
	"fachowiec/backend/internal/service"
	"fachowiec/backend/internal/store"
)

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	recordStore := store.New(database)
	userRepo := repository.NewUserRepository(database)
	entryRepo := repository.NewTimeEntryRepository(recordStore)
	jobRepo := repository.NewJobRepository(recordStore)
	estimateRepo := repository.NewEstimateRepository(recordStore)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	timerService := service.NewTimerService(entryRepo, nil)
	reportService := service.NewReportService(entryRepo)
	jobService := service.NewJobService(jobRepo)
	estimateService := service.NewEstimateService(estimateRepo, jobRepo, cfg.DefaultTaxRate, nil)

	authHandler := handler.NewAuthHandler(authService)
	jobHandler := handler.NewJobHandler(jobService)
	timerHandler := handler.NewTimerHandler(timerService)
	reportHandler := handler.NewReportHandler(reportService, cfg.ExportDir)
	estimateHandler := handler.NewEstimateHandler(estimateService, cfg.DefaultTaxRate, cfg.ExportDir)

	engine := router.New(authService, authHandler, jobHandler, timerHandler, reportHandler, estimateHandler, cfg.CORSOrigins)
	log.Printf("backend listening on :%s", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
