package main

import (
	"context"
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

	"talenthub/recruitment-api/internal/apperrors"
	"talenthub/recruitment-api/internal/config"
	"talenthub/recruitment-api/internal/handlers"
	"talenthub/recruitment-api/internal/middleware"
	"talenthub/recruitment-api/internal/repositories"
	"talenthub/recruitment-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET must be set")
	}

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewJobRoleRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	evalRepo := repositories.NewEvaluationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize object store
	store := services.NewDiskObjectStore(cfg.Storage.UploadPath)
	if err := store.EnsureRoot(); err != nil {
		log.Fatalf("❌ Failed to create storage directory: %v", err)
	}

	extractor := services.NewPDFTextExtractor()
	log.Println("✅ Storage and extractor initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	scorer := services.NewScoringClient(geminiService, cfg.Worker.ScoreTimeout)

	// Initialize similarity index; the pipeline runs without it if Qdrant
	// is unreachable.
	var index services.SimilarityIndex
	qdrantIndex, err := services.NewQdrantSimilarityIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		geminiService,
	)
	if err != nil {
		log.Printf("⚠️  Qdrant unavailable, similarity search disabled: %v", err)
	} else if err := qdrantIndex.InitCollection(); err != nil {
		log.Printf("⚠️  Failed to initialize Qdrant collection, similarity search disabled: %v", err)
	} else {
		index = qdrantIndex
		log.Println("✅ Qdrant similarity index initialized successfully")
	}

	// Initialize scoring queue
	queue := services.NewScoringQueue(
		scorer,
		evalRepo,
		index,
		cfg.Worker.Concurrency,
		cfg.Worker.QueueSize,
	)

	ctx := context.Background()
	queue.Start(ctx)
	log.Println("✅ Scoring queue started successfully")

	// Initialize services
	appService := services.NewApplicationService(
		appRepo,
		roleRepo,
		evalRepo,
		store,
		extractor,
		scorer,
		queue,
		index,
	)
	roleService := services.NewJobRoleService(roleRepo, appRepo)
	log.Println("✅ Services initialized")

	// Initialize handlers
	appHandler := handlers.NewApplicationHandler(appService, cfg.Storage.MaxFileSize)
	roleHandler := handlers.NewJobRoleHandler(roleService)
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, userRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Recruitment API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: apperrors.Handler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")
	auth := authMiddleware.Middleware()

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Job roles
	api.Post("/job-roles", auth, roleHandler.HandleCreate)
	api.Get("/job-roles", roleHandler.HandleList)
	api.Get("/job-roles/:id", roleHandler.HandleGet)
	api.Put("/job-roles/:id", auth, roleHandler.HandleUpdate)
	api.Delete("/job-roles/:id", auth, roleHandler.HandleDelete)

	// Applications; submission is public, candidates hold no account
	api.Post("/applications", appHandler.HandleSubmit)
	api.Get("/applications", auth, appHandler.HandleList)
	api.Get("/applications/:id", auth, appHandler.HandleGet)
	api.Patch("/applications/:id/status", auth, appHandler.HandleUpdateStatus)
	api.Delete("/applications/:id", auth, appHandler.HandleDelete)
	api.Post("/applications/:id/reevaluate", auth, appHandler.HandleReevaluate)
	api.Get("/applications/:id/evaluation", auth, appHandler.HandleGetEvaluation)
	api.Get("/applications/:id/similar", auth, appHandler.HandleSimilar)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		// Quiesce HTTP first so in-flight submissions can still enqueue,
		// then stop the queue, which drains what was accepted.
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		queue.Stop()
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
