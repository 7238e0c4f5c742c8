package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vanjararamdhan/student-crud-api/config"
	"github.com/vanjararamdhan/student-crud-api/db"
	"github.com/vanjararamdhan/student-crud-api/internal/student/handler"
	repo "github.com/vanjararamdhan/student-crud-api/internal/student/repository/postgres"
	"github.com/vanjararamdhan/student-crud-api/internal/student/service"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if cfg.Env == "development" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbPool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer dbPool.Close()

	studentRepo := repo.NewStudentRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	studentService := service.NewStudentService(studentRepo, tokenService, service.NewBcryptHasher(), logger)
	studentHandler := handler.NewStudentHandler(studentService, tokenService)

	app := fiber.New()
	handler.RegisterRoutes(app, studentHandler)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
