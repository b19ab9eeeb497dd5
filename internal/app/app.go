package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"sportstravel/internal/config"
	"sportstravel/internal/handlers"
	"sportstravel/internal/middleware"
	"sportstravel/internal/pdf"
	"sportstravel/internal/repositories"
	"sportstravel/internal/routes"
	"sportstravel/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "sportstravel/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	// === Repos ===
	leadRepo := repositories.NewLeadRepository(db)
	historyRepo := repositories.NewLeadStatusHistoryRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	packageRepo := repositories.NewPackageRepository(db)
	quoteRepo := repositories.NewQuoteRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.DryRun,
	)

	lifecycle := services.NewLifecycleService(db, leadRepo, historyRepo)
	leadService := services.NewLeadService(leadRepo, historyRepo, lifecycle)
	eventService := services.NewEventService(eventRepo)
	packageService := services.NewPackageService(packageRepo, eventRepo)
	quoteService := services.NewQuoteService(quoteRepo, leadRepo, eventRepo, packageRepo, lifecycle, emailService)
	userService := services.NewUserService(userRepo, authService)
	reportService := services.NewReportService(leadRepo, eventRepo, packageRepo, quoteRepo)

	pdfGen := pdf.NewQuoteGenerator("Sports Travel")

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService)
	leadHandler := handlers.NewLeadHandler(leadService)
	eventHandler := handlers.NewEventHandler(eventService)
	packageHandler := handlers.NewPackageHandler(packageService)
	quoteHandler := handlers.NewQuoteHandler(quoteService, eventService, packageService, leadService, pdfGen)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	healthHandler := handlers.NewHealthHandler(db, leadRepo)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerMinute))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		leadHandler,
		eventHandler,
		packageHandler,
		quoteHandler,
		dashboardHandler,
		healthHandler,
		routes.Options{
			JWTSecret:    []byte(cfg.Auth.JWTSecret),
			LeadsPerHour: cfg.RateLimit.LeadsPerHour,
		},
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
