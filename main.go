// main.go
package main

import (
	"context"
	"log"

	"villa-rental/cmd"
	"villa-rental/internal/data/repository"
	"villa-rental/internal/wire"
	"villa-rental/pkg/database"
	"villa-rental/pkg/gateway"
	"villa-rental/pkg/storage"
	"villa-rental/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Photo storage (local disk or S3 compatible bucket)
	store, err := storage.New(config.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to init storage", zap.Error(err))
	}

	// Payment gateway
	gw := gateway.NewMidtrans(config.Midtrans.ServerKey, config.Midtrans.Production, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, store, gw, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
