package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lms/config"
	"lms/database"
	"lms/logger"
	"lms/routers"
)

func main() {
	cfg := config.LoadConfig()

	appLog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.ConnectDb(cfg)
	if err != nil {
		appLog.Fatal("Failed to connect to the database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		appLog.Fatal("Failed to migrate the database", "error", err)
	}
	appLog.Info("Connected to the database successfully", "host", cfg.DBHost, "name", cfg.DBName)

	app := routers.NewApp(cfg, db, appLog)

	go func() {
		appLog.Info("Server is running", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLog.Fatal("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLog.Error("Server shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
