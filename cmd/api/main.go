package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"study-planner-api/config"
	"study-planner-api/handlers"
	"study-planner-api/middleware"
	"study-planner-api/planner"
	"study-planner-api/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.Println("Start service")
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Println("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	log.Println("init services")
	summaryCache := services.NewCacheService(cfg.CacheTTL, 2*cfg.CacheTTL)

	var (
		store  services.Store
		sharer handlers.ObjectSharer
	)
	switch cfg.StoreBackend {
	case "minio":
		minioService, err := services.NewMinIOService(cfg)
		if err != nil {
			return err
		}
		if err := minioService.EnsureBucket(ctx); err != nil {
			return err
		}
		store = services.NewObjectStore(minioService)
		sharer = minioService
	default:
		store = services.NewMemoryStore(services.NewCacheService(0, 10*time.Minute))
	}
	log.Printf("Store backend: %s", cfg.StoreBackend)

	assistant := services.NewAssistant(cfg, summaryCache)
	if !assistant.Enabled() {
		log.Println("OPENAI_API_KEY is not set, AI routes will answer 500")
	}
	notifier := services.NewNotifier(services.LogSink{})
	defer notifier.Stop()
	timer := services.NewStudyTimer(store)
	clock := handlers.SystemClock(cfg.Location)

	log.Println("init handlers")
	scheduleHandler := handlers.NewScheduleHandler(planner.NewEngine(), assistant, sharer, clock)
	goalsHandler := handlers.NewGoalsHandler(planner.NewComposer(), timer, notifier, assistant, clock)
	aiHandler := handlers.NewAIHandler(assistant, cfg.MaxUploadSize)
	subjectHandler := handlers.NewSubjectHandler(services.NewSubjectImporter(), cfg.MaxUploadSize)
	storeHandler := handlers.NewStoreHandler(store)
	timerHandler := handlers.NewTimerHandler(timer, clock)
	notificationHandler := handlers.NewNotificationHandler(notifier, clock)
	cacheHandler := handlers.NewCacheHandler(summaryCache)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Println("init router")
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadSize
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(gin.Recovery())

	aiLimit := middleware.RateLimit(middleware.NewRateLimiter(cfg.AIRatePerSec, cfg.AIRateBurst))

	api := router.Group("/api")
	{
		api.GET("/health", handlers.Health(clock))

		// Key-value persistence
		api.GET("/store/:key", storeHandler.Get)
		api.PUT("/store/:key", storeHandler.Put)
		api.DELETE("/store/:key", storeHandler.Delete)

		// Schedules
		api.POST("/schedule/generate", scheduleHandler.Generate)
		api.POST("/schedule/export", scheduleHandler.Export)
		api.POST("/schedule", aiLimit, scheduleHandler.GenerateAI)

		// Goals
		api.POST("/goals/generate", goalsHandler.Generate)
		api.POST("/goals/notes/extract", aiLimit, goalsHandler.ExtractNotes)

		// Subjects
		api.POST("/subjects/import", subjectHandler.Import)

		// Study timer
		api.POST("/timer/start", timerHandler.Start)
		api.POST("/timer/stop", timerHandler.Stop)
		api.GET("/timer/stats", timerHandler.Stats)

		// Cache management
		api.POST("/cache/invalidate", cacheHandler.InvalidateCache)

		// Notifications
		api.POST("/notifications", notificationHandler.Schedule)
		api.GET("/notifications", notificationHandler.List)
		api.DELETE("/notifications/:id", notificationHandler.Cancel)

		ai := api.Group("/ai")
		ai.GET("/status", aiHandler.Status)
		ai.Use(aiLimit)
		ai.POST("/chat", aiHandler.Chat)
		ai.POST("/upload", aiHandler.Upload)
		ai.POST("/goals", aiHandler.Goals)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting server on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
