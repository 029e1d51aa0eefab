package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/albatrip/travel-backend/internal/broker"
	"github.com/albatrip/travel-backend/internal/cache"
	"github.com/albatrip/travel-backend/internal/config"
	"github.com/albatrip/travel-backend/internal/database"
	"github.com/albatrip/travel-backend/internal/handlers"
	"github.com/albatrip/travel-backend/internal/middleware"
	"github.com/albatrip/travel-backend/internal/services"
	"github.com/albatrip/travel-backend/pkg/jwt"
	"github.com/albatrip/travel-backend/pkg/validator"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Albatrip Travel Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Redis read cache. A missing REDIS_ADDR disables caching and
	// every read falls through to the database.
	var cacheClient *cache.Client
	if cfg.Redis.Addr != "" {
		cacheClient, err = cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, continuing without cache")
			cacheClient = nil
		} else {
			defer cacheClient.Close()
			logger.Info("Redis cache connected")
		}
	} else {
		logger.Info("Redis not configured, cache disabled")
	}

	// Initialize Kafka event publishing. Missing KAFKA_BROKERS disables it.
	var producer *broker.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		logger.Infof("Kafka producer configured for topic %s", cfg.Kafka.Topic)
	} else {
		logger.Info("Kafka not configured, event publishing disabled")
	}
	eventPublisher := broker.NewEventPublisher(producer)

	// Initialize repositories
	userRepository := database.NewUserRepository(db)
	destinationRepository := database.NewDestinationRepository(db)
	packageRepository := database.NewPackageRepository(db)
	availabilityRepository := database.NewAvailabilityRepository(db)
	bookingRepository := database.NewBookingRepository(db)
	reviewRepository := database.NewReviewRepository(db)
	favoriteRepository := database.NewFavoriteRepository(db)
	contentRepository := database.NewContentRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	phoneValidator := validator.NewPhoneValidator()
	authService := services.NewAuthService(userRepository, jwtService, cfg.Security.BcryptCost, logger)
	catalogService := services.NewCatalogService(destinationRepository, packageRepository, cacheClient, logger)
	availabilityService := services.NewAvailabilityService(availabilityRepository, packageRepository, logger)
	bookingService := services.NewBookingService(bookingRepository, packageRepository, phoneValidator, eventPublisher, logger)
	reviewService := services.NewReviewService(reviewRepository, bookingRepository, logger)
	favoriteService := services.NewFavoriteService(favoriteRepository)
	contentService := services.NewContentService(contentRepository)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	destinationHandler := handlers.NewDestinationHandler(catalogService, logger)
	packageHandler := handlers.NewPackageHandler(catalogService, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, logger)
	contentHandler := handlers.NewContentHandler(contentService, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}
	router.Use(middleware.MetricsMiddleware())

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check and metrics endpoints
	router.GET("/health", healthCheckHandler(db.Ping))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Public browse surface
		v1.GET("/destinations", destinationHandler.List)
		v1.GET("/destinations/:id", destinationHandler.Get)
		v1.GET("/packages", packageHandler.List)
		v1.GET("/packages/:id", packageHandler.Get)
		v1.GET("/packages/:id/availability", availabilityHandler.ListByPackage)
		v1.GET("/packages/:id/reviews", reviewHandler.ListByPackage)
		v1.GET("/content/:key", contentHandler.Get)

		// Booking creation accepts guests; a logged-in customer's booking is
		// attached to their account.
		v1.POST("/bookings", middleware.OptionalAuthMiddleware(jwtService), bookingHandler.Create)

		// Customer routes (authentication required)
		customer := v1.Group("")
		customer.Use(middleware.AuthMiddleware(jwtService))
		{
			customer.GET("/bookings/my", bookingHandler.ListMine)
			customer.POST("/reviews", reviewHandler.Create)
			customer.POST("/packages/:id/favorite", favoriteHandler.Toggle)
			customer.GET("/favorites", favoriteHandler.List)
		}

		// Admin console routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService), middleware.RequireAdmin())
		{
			admin.POST("/destinations", destinationHandler.Create)
			admin.PUT("/destinations/:id", destinationHandler.Update)
			admin.DELETE("/destinations/:id", destinationHandler.Delete)

			admin.POST("/packages", packageHandler.Create)
			admin.PUT("/packages/:id", packageHandler.Update)
			admin.DELETE("/packages/:id", packageHandler.Delete)

			admin.POST("/packages/:id/availability", availabilityHandler.Upsert)
			admin.PUT("/availability/:id", availabilityHandler.Update)
			admin.DELETE("/availability/:id", availabilityHandler.Delete)

			admin.GET("/bookings", bookingHandler.List)
			admin.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)

			admin.GET("/reviews", reviewHandler.List)
			admin.PATCH("/reviews/:id/moderation", reviewHandler.Moderate)

			admin.PUT("/content/:key", contentHandler.Save)
		}
	}

	// HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// healthCheckHandler reports liveness and database reachability
func healthCheckHandler(ping func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	}
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		fields := logrus.Fields{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    path,
			"ip":      c.ClientIP(),
			"latency": latency.String(),
		}

		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.WithFields(fields).Error("Request completed")
		case c.Writer.Status() >= 400:
			logger.WithFields(fields).Warn("Request completed")
		default:
			logger.WithFields(fields).Info("Request completed")
		}
	}
}
