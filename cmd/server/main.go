package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cmcs_backend/internal/api"
	"cmcs_backend/internal/app/service"
	"cmcs_backend/internal/common/security"
	"cmcs_backend/internal/domain/repository"
	"cmcs_backend/internal/platform/cache"
	"cmcs_backend/internal/platform/config"
	"cmcs_backend/internal/platform/database"
	"cmcs_backend/internal/platform/storage"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis (dashboard stats cache)
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize upload storage
	fileStore, err := storage.NewFileStore(config.AppConfig.UploadDir)
	if err != nil {
		log.Fatalf("Could not initialize upload storage: %v", err)
	}

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	claimRepo := repository.NewPgClaimRepository(database.DB)

	// 7. Initialize Services
	statsCache := cache.NewClient(cache.RDB)
	authService := service.NewAuthService(userRepo, database.DB)
	claimService := service.NewClaimService(claimRepo, userRepo, fileStore, statsCache)
	statsService := service.NewStatsService(claimRepo, statsCache, config.AppConfig.StatsCacheTTL)
	reportService := service.NewReportService(claimRepo)
	userService := service.NewUserService(userRepo, database.DB)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, claimService, statsService, reportService, userService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
