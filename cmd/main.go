package main

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"industry-lens/internal/config"
	"industry-lens/internal/handler"
	"industry-lens/internal/repository"
	"industry-lens/internal/services"
	"industry-lens/internal/utils"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	var (
		userRepo         repository.UserRepository
		professionalRepo repository.ProfessionalRepository
		reviewRepo       repository.ReviewRepository
		flagRepo         repository.FlagRepository
		notificationRepo repository.NotificationRepository
	)

	if cfg.MongoURI != "" {
		mongoClient, err := utils.NewMongoConnection(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		db := mongoClient.Database(cfg.MongoDBName)

		shutdownManager.Register(func(ctx context.Context) error {
			log.Println("[SHUTDOWN] Closing MongoDB connection...")
			return mongoClient.Disconnect(ctx)
		})

		userRepo = repository.NewMongoUserRepository(db)
		professionalRepo = repository.NewMongoProfessionalRepository(db)
		reviewRepo = repository.NewMongoReviewRepository(db)
		flagRepo = repository.NewMongoFlagRepository(db)
		notificationRepo = repository.NewMongoNotificationRepository(db)
		log.Println("Using MongoDB storage")
	} else {
		store := repository.NewMemoryStore()
		if err := repository.SeedDemoData(ctx, store); err != nil {
			log.Fatal("Failed to seed demo data:", err)
		}
		userRepo = store
		professionalRepo = store
		reviewRepo = store
		flagRepo = store
		notificationRepo = store
		log.Println("MONGO_URI not set, using seeded in-memory storage")
	}

	var redisClient *utils.RedisClient
	if cfg.RedisURL != "" {
		redisClient, err = utils.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		shutdownManager.Register(func(ctx context.Context) error {
			log.Println("[SHUTDOWN] Closing Redis connection...")
			return redisClient.Close()
		})
	} else {
		log.Println("REDIS_URL not set, caching and token revocation disabled")
	}

	var mailer services.EmailService
	if cfg.SMTPHost != "" {
		smtpPort, err := strconv.Atoi(cfg.SMTPPort)
		if err != nil {
			log.Fatal("Invalid SMTP_PORT:", err)
		}
		mailer = services.NewGomailMailer(cfg.SMTPHost, smtpPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	} else {
		mailer = services.LogMailer{}
		log.Println("SMTP_HOST not set, emails will be logged only")
	}

	tmdbClient := utils.NewTMDBClient(cfg.TMDBAPIKey)
	if !tmdbClient.Enabled() {
		log.Println("TMDB_API_KEY not set, metadata enrichment disabled")
	}

	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret)
	locks := utils.NewKeyedMutex()
	stats := services.NewStatsUpdater(reviewRepo, professionalRepo)

	notificationService := services.NewNotificationService(notificationRepo, redisClient)
	reviewService := services.NewReviewService(reviewRepo, professionalRepo, userRepo, stats, locks)
	moderationService := services.NewModerationService(reviewRepo, professionalRepo, userRepo, flagRepo, notificationService, mailer, stats, locks)
	flagService := services.NewFlagService(flagRepo, reviewRepo, userRepo, reviewService, locks)
	authService := services.NewAuthService(userRepo, jwtUtil, mailer, redisClient)
	userService := services.NewUserService(userRepo, reviewRepo, mailer, stats, locks)
	professionalService := services.NewProfessionalService(professionalRepo, reviewRepo, userRepo, tmdbClient)

	router := handler.NewRouter(handler.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Reviews:       handler.NewReviewHandler(reviewService, flagService),
		Notifications: handler.NewNotificationHandler(notificationService),
		Professionals: handler.NewProfessionalHandler(professionalService),
		Admin:         handler.NewAdminHandler(userService, moderationService, flagService, professionalService),
	}, jwtUtil, redisClient, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:    "0.0.0.0:" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Industry Lens API running on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	select {}
}
