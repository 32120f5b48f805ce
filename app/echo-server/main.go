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

	"jabRental/app/echo-server/router"
	"jabRental/business/category"
	"jabRental/business/orders"
	"jabRental/business/product"
	"jabRental/business/rental"
	"jabRental/business/session"
	userService "jabRental/business/user"
	"jabRental/internal/middleware"
	"jabRental/internal/repository/memory"
	"jabRental/internal/repository/notification"
	psqlRepo "jabRental/internal/repository/postgres"
	redisRepo "jabRental/internal/repository/redis"
	"jabRental/internal/rest"
	"jabRental/pkg/config"
	"jabRental/pkg/database"
	"jabRental/pkg/logger"
	"jabRental/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

type sessionRepository interface {
	session.SessionRepository
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting JAB Rental", "version", cfg.App.Version)

	metrics.Init()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStart()

	db, err := database.InitPostgres(startCtx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Sessions live in Redis when configured, in process memory otherwise
	var sessionRepo sessionRepository
	if cfg.Redis.RedisHost != "" {
		rdb, err := database.InitRedis(startCtx, cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("Failed to close redis", err)
			}
		}()
		sessionRepo = redisRepo.NewSessionRepository(rdb)
		logger.Info("Redis connected successfully")
	} else {
		sessionRepo = memory.NewSessionRepository()
		logger.Warn("REDIS_HOST not set, sessions are kept in memory")
	}

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	authenticator, err := rental.NewMockAuthenticator(cfg.Rental.MockPassword)
	if err != nil {
		logger.Fatal("Failed to init authenticator", "error", err)
	}

	// Init validate
	validate := validator.New()

	// Init repo
	productsRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)

	newStore := func() *rental.Store {
		return rental.NewStore(rental.Options{
			Authenticator:     authenticator,
			Ledger:            ordersRepo,
			Validate:          validate,
			Delay:             cfg.Rental.SimulatedDelay,
			OrdersDelay:       cfg.Rental.OrdersDelay,
			StrictTransitions: cfg.Rental.StrictTransitions,
		})
	}

	// Init service
	sessionManager := session.NewManager(sessionRepo, newStore, cfg.JWT.SecretKey, cfg.JWT.SessionTTL)
	productService := product.NewProductService(productsRepo)
	categoryService := category.NewCategoryService(categoryRepo)
	ordersService := orders.NewOrdersService(ordersRepo)
	userService := userService.NewUserService(sessionManager, mailjetEmail, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)

	if cfg.Rental.SeedCatalog {
		if _, err := productService.SeedCatalog(startCtx); err != nil {
			logger.Error("Failed to seed catalog", err)
		}
	}
	cancelStart()

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go sessionManager.RunJanitor(janitorCtx, cfg.Rental.JanitorInterval, cfg.Rental.SessionIdleTimeout)

	// Init handler
	healthHandler := rest.NewHealthHandler(cfg.App.Environment, cfg.App.Version,
		rest.HealthCheck{Name: "database", Check: func(ctx context.Context) error { return database.Ping(ctx, db) }},
		rest.HealthCheck{Name: "sessions", Check: sessionRepo.Ping},
	)
	sessionHandler := rest.NewSessionHandler(sessionManager)
	rentalHandler := rest.NewRentalHandler(sessionManager, productService, ordersService, userService)
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	userHandler := rest.NewUserHandler(userService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.App.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Admin-Key"},
	}))

	sessionRequired := middleware.SessionMiddleware(sessionManager)
	adminOnly := middleware.AdminKey(cfg.App.AdminApiKey)

	// Setup routes
	router.SetupHealthRoutes(e, healthHandler)

	api := e.Group("/api/v1")
	router.SetupSessionRoutes(api, sessionHandler, sessionRequired)
	router.SetupRentalRoutes(api, rentalHandler, sessionRequired)
	router.SetupProductRoutes(api, productHandler, adminOnly)
	router.SetupCategoryRoutes(api, categoryHandler)
	router.SetupUserRoutes(api, userHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
