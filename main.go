package main

import (
	"go.uber.org/zap"

	"blogbackend/internal/auth"
	"blogbackend/internal/config"
	"blogbackend/internal/repository"
	"blogbackend/internal/server"
	"blogbackend/internal/service"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Seed the configured admin account
	userRepo := repository.NewUserRepository(db, logger)
	if err := service.SeedAdmin(userRepo, auth.NewHasher(), cfg.Admin.Email, cfg.Admin.Password, logger); err != nil {
		logger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	// Initialize and run the server
	srv, err := server.NewServer(db, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize server", zap.Error(err))
	}
	srv.Run(cfg.Server.Port)
}
