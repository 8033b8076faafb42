package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/motoluxe/internal/config"
	"github.com/example/motoluxe/internal/database"
	"github.com/example/motoluxe/internal/routes"
	"github.com/example/motoluxe/internal/storage"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db := database.Connect(cfg.DatabaseURL)
	files := storage.NewLocalStore(cfg.MediaDir)

	app := fiber.New(fiber.Config{
		AppName:   cfg.Branding.SiteName + " Catalog",
		BodyLimit: 20 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, files)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
