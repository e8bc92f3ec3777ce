package main

import (
	"context"
	"log"
	"time"

	"github.com/Kariqs/decorshop-api/controllers"
	"github.com/Kariqs/decorshop-api/initializers"
	"github.com/Kariqs/decorshop-api/middlewares"
	"github.com/Kariqs/decorshop-api/routes"
	"github.com/Kariqs/decorshop-api/services"
	"github.com/Kariqs/decorshop-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	if err := initializers.ConnectToDB(cfg); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if err := initializers.SyncDatabase(initializers.DB); err != nil {
		log.Fatalf("Database sync failed: %v", err)
	}

	ctx := context.Background()
	files, err := initializers.InitStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Upload storage unavailable: %v", err)
	}

	svc := services.New(services.Options{
		DB:             initializers.DB,
		Files:          files,
		Notifier:       utils.NewWebhookNotifier(cfg.OrderWebhookURL, cfg.WebhookTimeout),
		MaxUploadBytes: cfg.MaxUploadBytes,
		SessionTTL:     cfg.SessionTTL,
	})
	if err := initializers.ProvisionAdmin(ctx, svc.Auth, cfg); err != nil {
		log.Fatalf("Admin provisioning failed: %v", err)
	}

	ctrl := &controllers.Controller{
		DB:            initializers.DB,
		Services:      svc,
		SessionSecret: []byte(cfg.SessionSecret),
		SessionTTL:    cfg.SessionTTL,
		CookieSecure:  cfg.CookieSecure,
	}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(middlewares.LimitUploadSize(cfg.MaxUploadBytes))
	server.Use(middlewares.Authenticate(svc.Auth, ctrl.SessionSecret))

	if cfg.StorageDriver == "local" {
		routes.StaticRoutes(server, cfg.PublicURLPrefix, cfg.UploadDir)
	}
	routes.SetupRoutes(server, ctrl)

	log.Printf("Server running on port %s", cfg.Port)
	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
