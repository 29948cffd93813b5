package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/yussufhh/Novella/internal/events"
	"github.com/yussufhh/Novella/internal/handler"
	"github.com/yussufhh/Novella/internal/middleware"
	"github.com/yussufhh/Novella/internal/rental"
	"github.com/yussufhh/Novella/internal/store"
	"github.com/yussufhh/Novella/pkg/config"
	"github.com/yussufhh/Novella/pkg/database"
	"github.com/yussufhh/Novella/pkg/jwtutil"
	"github.com/yussufhh/Novella/pkg/logger"
	"github.com/yussufhh/Novella/prometheus"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting rental service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Property events go to RabbitMQ when a broker is configured
	var propertyEvents rental.PropertyEvents = events.NopPublisher{}
	if cfg.AMQP.URL != "" {
		publisher, err := events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.QueueName, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer publisher.Close()
		propertyEvents = publisher
		log.Info("Property event publisher initialized", zap.String("queue", cfg.AMQP.QueueName))
	}

	// Wire stores and core services
	db := database.GetDB()
	users := store.NewUserStore(db)
	properties := store.NewPropertyStore(db)
	bookings := store.NewBookingStore(db)
	cache := store.NewPropertyCache(int64(cfg.Cache.MaxSize), cfg.Cache.TTL)

	identity := rental.NewIdentityService(users, rental.NewBcryptHasher())
	catalog := rental.NewCatalogService(users, properties, propertyEvents, cache)
	booking := rental.NewBookingService(users, properties, bookings)
	h := handler.New(identity, catalog, booking)

	// Initialize Echo framework
	e := echo.New()
	e.Validator = handler.NewValidator()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)

	authed := auth.Group("")
	authed.Use(middleware.AuthMiddleware)
	authed.GET("/me", h.Me)
	authed.PUT("/update-profile", h.UpdateProfile)
	authed.POST("/change-password", h.ChangePassword)

	// Rental routes - property browsing stays public
	rentals := e.Group("/rentals")
	rentals.GET("/properties", h.ListProperties)
	rentals.GET("/properties/:id", h.GetProperty)

	protected := rentals.Group("")
	protected.Use(middleware.AuthMiddleware)
	protected.POST("/properties", h.CreateProperty)
	protected.PUT("/properties/:id", h.UpdateProperty)
	protected.DELETE("/properties/:id", h.DeleteProperty)
	protected.GET("/my-properties", h.MyProperties)
	protected.POST("/bookings", h.CreateBooking)
	protected.GET("/my-bookings", h.MyBookings)
	protected.GET("/property-bookings", h.PropertyBookings)
	protected.PUT("/bookings/:id/status", h.UpdateBookingStatus)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
