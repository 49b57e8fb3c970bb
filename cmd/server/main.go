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
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/config"
	"github.com/swifttravel/travel-booking-backend/internal/database"
	"github.com/swifttravel/travel-booking-backend/internal/database/migrations"
	"github.com/swifttravel/travel-booking-backend/internal/handlers"
	"github.com/swifttravel/travel-booking-backend/internal/middleware"
	"github.com/swifttravel/travel-booking-backend/internal/services"
	"github.com/swifttravel/travel-booking-backend/pkg/jwt"
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

	logger.Info("Starting SwiftTravel Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

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

	// Run pending migrations
	migrator, err := migrations.NewRunner(db)
	if err != nil {
		logger.Fatalf("Failed to initialize migrations: %v", err)
	}
	if err := migrator.Up(); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	routeRepo := database.NewRouteRepository(db)
	scheduleRepo := database.NewScheduleRepository(db)
	seatRepo := database.NewSeatReservationRepository(db)
	bookingRepo := database.NewBookingRepository(db, seatRepo, cfg.Booking.PNRPrefix)
	pricingRepo := database.NewPricingRepository(db)

	// Services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	authService := services.NewAuthService(cfg.Admin, jwtService, logger)
	pricingService := services.NewPricingService(pricingRepo, routeRepo, cfg.Booking.WeekendSurcharge, logger)
	scheduleService := services.NewScheduleService(scheduleRepo, routeRepo, pricingRepo, pricingService, logger)
	bookingService := services.NewBookingService(bookingRepo, scheduleRepo, seatRepo, logger)
	sweeperService := services.NewSweeperService(bookingRepo, cfg.Jobs.SweepMinInterval, logger)

	cronService := services.NewCronService(sweeperService, scheduleService, cfg.Jobs, logger)
	if err := cronService.Start(); err != nil {
		logger.Fatalf("Failed to start cron service: %v", err)
	}
	cronService.RunGenerationNow()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	routeHandler := handlers.NewRouteHandler(routeRepo, logger)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, bookingService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	pricingHandler := handlers.NewPricingHandler(pricingService, logger)
	jobsHandler := handlers.NewJobsHandler(sweeperService, scheduleService, cfg.Jobs.GenerationDaysAhead, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

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

	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		v1.GET("/quotes", pricingHandler.Quote)
		v1.GET("/schedules", scheduleHandler.List)
		v1.GET("/schedules/:id/seats", scheduleHandler.Seats)

		// Booking creation is public; a valid admin token flags the
		// booking as counter-made instead of rejecting the request.
		v1.POST("/bookings", middleware.IdentifyAdmin(jwtService), bookingHandler.Create)
		v1.GET("/bookings/:pnr", bookingHandler.GetByPNR)
		v1.GET("/bookings/:pnr/qr", bookingHandler.TicketQR)
		v1.POST("/bookings/:pnr/cancel", bookingHandler.Cancel)

		v1.GET("/routes", routeHandler.List)
		v1.GET("/routes/:id", routeHandler.Get)

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAdmin(jwtService, logger))
		{
			admin.POST("/routes", routeHandler.Create)
			admin.POST("/schedules", scheduleHandler.Create)
			admin.POST("/schedules/:id/cancel", scheduleHandler.Cancel)
			admin.POST("/jobs/sweep", jobsHandler.Sweep)
			admin.POST("/jobs/generate-schedules", jobsHandler.GenerateSchedules)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
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
	cronService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": time.Since(start).Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		entry := logger.WithFields(fields)
		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
