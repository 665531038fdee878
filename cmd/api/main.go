package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-insights/internal/config"
	"alfredoptarigan/resume-insights/internal/handlers"
	"alfredoptarigan/resume-insights/internal/repositories"
	"alfredoptarigan/resume-insights/internal/roeai"
	"alfredoptarigan/resume-insights/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	stageRepo := repositories.NewStageRecordRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfService := services.NewPDFService()
	log.Println("✅ Services initialized successfully")

	// Initialize the Roe AI agent client. The memoizer keeps repeated
	// identical calls off the network.
	agentClient := roeai.NewMemoizer(roeai.NewClient(cfg.RoeAI.BaseURL))
	insightService := services.NewInsightService(agentClient, cfg.RoeAI)
	jobDetailService := services.NewJobDetailService(agentClient, cfg.RoeAI)
	fitService := services.NewFitService(agentClient, cfg.RoeAI)
	log.Println("✅ Agent client initialized successfully")

	// Initialize session store and start its expiry sweeper
	sessions := services.NewSessionStore(cfg.Session.TTL, cfg.Session.SweepInterval)
	sessions.Start()
	log.Println("✅ Session store initialized successfully")

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		pdfService,
		sessions,
		cfg.Storage.MaxFileSize,
	)
	insightsHandler := handlers.NewInsightsHandler(sessions, insightService, stageRepo)
	jobHandler := handlers.NewJobHandler(sessions, jobDetailService, stageRepo)
	fitHandler := handlers.NewFitHandler(sessions, fitService, stageRepo)
	sessionHandler := handlers.NewSessionHandler(sessions, stageRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Insights API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/sessions/:id/insights", insightsHandler.HandleExtract)
	api.Post("/sessions/:id/job", jobHandler.HandleExtract)
	api.Post("/sessions/:id/fit", fitHandler.HandleEvaluate)
	api.Get("/sessions/:id", sessionHandler.HandleGet)
	api.Get("/sessions/:id/history", sessionHandler.HandleHistory)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Insights API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/sessions/:id/insights",
				"POST /api/v1/sessions/:id/job",
				"POST /api/v1/sessions/:id/fit",
				"GET /api/v1/sessions/:id",
				"GET /api/v1/sessions/:id/history",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		sessions.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
