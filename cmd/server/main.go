package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	api "communityhub-backend/internal/api/http"
	"communityhub-backend/internal/config"
	"communityhub-backend/internal/logger"
	"communityhub-backend/internal/repository/postgres"
	"communityhub-backend/internal/security"
	"communityhub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CommunityHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	authMiddleware := api.NewAuthMiddleware(tokenManager)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	membershipSvc := service.NewMembershipService(store.UserRepository, store.MembershipRepository)
	feedSvc := service.NewFeedService(membershipSvc, store.PostRepository, store.OrganizationRepository)
	postSvc := service.NewPostService(
		membershipSvc,
		store.PostRepository,
		store.CommunityRepository,
		store.MembershipRepository,
		store.CommentRepository,
		store.TagRepository,
		store.ReactionRepository,
	)
	commentSvc := service.NewCommentService(
		membershipSvc,
		store.CommentRepository,
		store.PostRepository,
		store.CommunityRepository,
		store.ReactionRepository,
	)
	communitySvc := service.NewCommunityService(
		membershipSvc,
		store.CommunityRepository,
		store.MembershipRepository,
		store.InviteRepository,
		store.UserRepository,
		store.PostRepository,
		emailSvc,
		cfg.Invites.BaseURL,
	)

	// Initialize HTTP handlers
	feedHandler := api.NewFeedHandler(feedSvc)
	postHandler := api.NewPostHandler(postSvc)
	commentHandler := api.NewCommentHandler(commentSvc)
	communityHandler := api.NewCommunityHandler(communitySvc)

	router := api.NewRouter(authMiddleware, feedHandler, postHandler, commentHandler, communityHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Server stopped", "error", err)
		log.Fatalf("Server stopped: %v", err)
	}
}
