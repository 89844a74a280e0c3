package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"travelmatch/backend/internal/api/handler"
	"travelmatch/backend/internal/chathub"
	"travelmatch/backend/internal/config"
	"travelmatch/backend/internal/match"
	"travelmatch/backend/internal/messaging"
	"travelmatch/backend/internal/models"
	"travelmatch/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: "",
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Migrations. The User and TravelPlan tables are read-only mirrors
	// of the external collaborators; migrating them here keeps local
	// development self-contained.
	err = db.AutoMigrate(
		&models.Match{},
		&models.Message{},
		&models.User{},
		&models.TravelPlan{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting TravelMatch Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	// 1. Dependencies
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	// 2. Services and the delivery engine
	matches := match.NewService(s)
	messages := messaging.NewService(s)
	hub := chathub.NewManager(messages, s)

	// 3. Gin and routing
	r := gin.Default()
	h := handler.NewHandler(hub, matches, messages, s, cfg)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
