package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "society-console-backend/internal/api/http"
	"society-console-backend/internal/config"
	"society-console-backend/internal/jobs"
	"society-console-backend/internal/logger"
	"society-console-backend/internal/scheduler"
	"society-console-backend/internal/service"
	"society-console-backend/internal/storage"
	"society-console-backend/internal/upload"
	"society-console-backend/internal/validation"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	withCron := flag.Bool("with-cron", false, "Run the scheduled jobs in this process")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Society Console backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "base_url", cfg.Server.BaseURL)

	repos, closeRepos, err := openRepositories(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to initialize repositories", "error", err)
		log.Fatalf("Failed to initialize repositories: %v", err)
	}
	defer closeRepos()

	logger.Info("Using local document storage", "upload_dir", cfg.Upload.Dir)
	docs, err := storage.NewLocalStore(cfg.Server.BaseURL, cfg.Upload.Dir)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}

	v := validation.New()
	directorySvc := service.NewDirectoryService(repos.entries, v)
	amenitySvc := service.NewAmenityService(repos.amenities, v)
	verificationSvc := service.NewVerificationService(repos.verifications)
	documentSvc := service.NewDocumentService(upload.NewValidator(uploadPolicy(cfg)), docs)

	router := httpapi.NewRouter(httpapi.RouterDependencies{
		Directory:    directorySvc,
		Amenities:    amenitySvc,
		Verification: verificationSvc,
		Documents:    documentSvc,
		Pagination: httpapi.Pagination{
			DefaultPageSize: cfg.Pagination.DefaultPageSize,
			MaxPageSize:     cfg.Pagination.MaxPageSize,
		},
		MaxUploadBytes: cfg.MaxUploadBytes(),
	})

	var cronScheduler *scheduler.Scheduler
	if *withCron {
		runner := jobs.NewJobRunner(&jobs.Services{Amenities: amenitySvc, Verification: verificationSvc}, cfg)
		cronScheduler, err = scheduler.NewScheduler(runner)
		if err != nil {
			log.Fatalf("Failed to initialize scheduler: %v", err)
		}
		cronScheduler.Start()
	}

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	if cronScheduler != nil {
		cronScheduler.Stop()
	}
	logger.Info("Server stopped. Goodbye!")
}

func uploadPolicy(cfg *config.Config) upload.Policy {
	p := upload.DefaultPolicy()
	p.MaxSize = cfg.MaxUploadBytes()
	if len(cfg.Upload.AllowedExtensions) > 0 {
		p.AllowedExtensions = cfg.Upload.AllowedExtensions
	}
	if len(cfg.Upload.AllowedMIMETypes) > 0 {
		p.AllowedMIMETypes = cfg.Upload.AllowedMIMETypes
	}
	return p
}
