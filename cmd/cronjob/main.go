package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"society-console-backend/internal/config"
	"society-console-backend/internal/jobs"
	"society-console-backend/internal/logger"
	"society-console-backend/internal/repository/postgres"
	"society-console-backend/internal/scheduler"
	"society-console-backend/internal/service"
	"society-console-backend/internal/validation"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('mark-overdue-maintenance', 'recompute-verification', 'all')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Society Console cronjob runner...", "log_level", cfg.Log.Level)

	// Jobs only make sense against shared storage; the memory driver lives
	// inside the server process (see the server's -with-cron flag).
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("Cronjob runner requires database.driver %q, got %q", config.DriverPostgres, cfg.Database.Driver)
	}

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	v := validation.New()
	jobRunner := jobs.NewJobRunner(&jobs.Services{
		Amenities:    service.NewAmenityService(store.AmenityRepository, v),
		Verification: service.NewVerificationService(store.VerificationRepository),
	}, cfg)

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if !jobRunner.RunOnce(*runOnce) {
			db.Close()
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}
