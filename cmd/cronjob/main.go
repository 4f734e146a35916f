package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"communityhub-backend/internal/config"
	"communityhub-backend/internal/jobs"
	"communityhub-backend/internal/logger"
	"communityhub-backend/internal/repository/postgres"
	"communityhub-backend/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('purge-expired-invites', 'purge-deleted-content', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CommunityHub Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
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
	jobRunner := jobs.NewJobRunner(store, cfg)

	// One-shot mode for operational use and debugging
	if *runOnce != "" {
		switch *runOnce {
		case "purge-expired-invites":
			jobRunner.PurgeExpiredInvites()
		case "purge-deleted-content":
			jobRunner.PurgeDeletedContent()
		case "all":
			jobRunner.PurgeExpiredInvites()
			jobRunner.PurgeDeletedContent()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		return
	}

	// Daemon mode: run on the configured cron schedule
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("Shutdown signal received")
}
