package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/aarogyaai/backend/internal/adapters/database"
	"github.com/aarogyaai/backend/internal/adapters/fallback"
	"github.com/aarogyaai/backend/internal/adapters/search"
	"github.com/aarogyaai/backend/internal/application/services"
	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	"github.com/aarogyaai/backend/internal/infrastructure/clients/postgres"
	"github.com/aarogyaai/backend/internal/infrastructure/clients/typesense"
	"github.com/aarogyaai/backend/pkg/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	var searchRepo repositories.DoctorSearchRepository
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err == nil {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
	} else {
		log.Printf("Typesense unavailable, seeding database only: %v", err)
	}

	doctorRepo := database.NewDoctorAdapter(pgClient)
	adminRepo := database.NewAdminUserAdapter(pgClient)
	registry := services.NewRegistryService(doctorRepo, searchRepo, fallback.NewSeedRegistry(), nil)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				doctors,
				doctor_applications,
				admin_users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed doctors from the built-in registry
	created := 0
	for _, seed := range fallback.NewSeedRegistry().All() {
		doctor := *seed
		doctor.ID = uuid.New().String()
		if err := registry.Create(ctx, &doctor); err != nil {
			log.Printf("Failed to create doctor %s: %v", doctor.Name, err)
			continue
		}
		created++
	}
	log.Printf("Seeded %d doctors", created)

	// 2. Seed the console admin if credentials are provided
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin user")
		return
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &entities.AdminUser{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := adminRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Seeded admin user %s", email)
}
