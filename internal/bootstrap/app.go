package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"room-decorator/internal/domain"
	httpHandler "room-decorator/internal/handler/http"
	"room-decorator/internal/infra/persistence/kv"
	redisstate "room-decorator/internal/infra/state/redis"
	"room-decorator/internal/middleware"
	"room-decorator/internal/service"
	"room-decorator/internal/tasks"
	"room-decorator/internal/worker"
)

// Config holds everything loaded from the environment.
type Config struct {
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	KeyPrefix       string
	JWTSecret       string
	ServerPort      string
	LogLevel        string
	AppEnv          string
	CORSOrigin      string
	CanvasWidth     int
	CanvasHeight    int
	ThemeDuration   time.Duration
	AutosaveDelay   time.Duration
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// LoadConfig reads configuration from the environment, with a .env file
// as an optional overlay for development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:       os.Getenv("REDIS_KEY_PREFIX"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		ServerPort:      os.Getenv("SERVER_PORT"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		AppEnv:          os.Getenv("APP_ENV"),
		CORSOrigin:      os.Getenv("CORS_ALLOWED_ORIGIN"),
		RateLimitMax:    100,
		RateLimitWindow: 1 * time.Second,
		AutosaveDelay:   2 * time.Second,
	}

	cfg.RedisDB, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	cfg.CanvasWidth, _ = strconv.Atoi(os.Getenv("CANVAS_WIDTH"))
	cfg.CanvasHeight, _ = strconv.Atoi(os.Getenv("CANVAS_HEIGHT"))
	if hours, _ := strconv.Atoi(os.Getenv("THEME_DURATION_HOURS")); hours > 0 {
		cfg.ThemeDuration = time.Duration(hours) * time.Hour
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rd:"
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:3000"
	}
	if cfg.CanvasWidth <= 0 {
		cfg.CanvasWidth = domain.DefaultCanvas.Width
	}
	if cfg.CanvasHeight <= 0 {
		cfg.CanvasHeight = domain.DefaultCanvas.Height
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App bundles the application's components for startup and shutdown.
type App struct {
	Config       *Config
	Log          *logrus.Logger
	RedisClient  *redis.Client
	AsynqClient  *asynq.Client
	WorkerServer *worker.WorkerServer
	Autosave     *service.AutosaveScheduler
	HTTPServer   *http.Server

	redisClientOpt asynq.RedisClientOpt
}

// NewApp loads configuration and wires every component.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	log.Info("Configuration loaded")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	log.Info("Redis client initialized")

	redisClientOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	asynqClient := asynq.NewClient(redisClientOpt)
	log.Info("Asynq client initialized")

	store := redisstate.NewStore(redisClient, cfg.KeyPrefix)
	designRepo := kv.NewDesignRepository(store)
	themeRepo := kv.NewThemeRepository(store)
	voteRepo := kv.NewVoteRepository(store)
	submissionRepo := kv.NewSubmissionRepository(store)
	leaderboardRepo := kv.NewLeaderboardRepository(store)
	log.Info("Repositories initialized")

	canvas := domain.Canvas{Width: cfg.CanvasWidth, Height: cfg.CanvasHeight}
	editorService := service.NewEditorService(designRepo, canvas)
	submissionService := service.NewSubmissionService(designRepo, submissionRepo, leaderboardRepo)
	votingService := service.NewVotingService(designRepo, voteRepo, leaderboardRepo)
	themeService := service.NewThemeService(themeRepo, cfg.ThemeDuration)
	leaderboardService := service.NewLeaderboardService(designRepo, leaderboardRepo)
	autosave := service.NewAutosaveScheduler(cfg.AutosaveDelay)
	log.Info("Services initialized")

	designHandler := httpHandler.NewDesignHandler(editorService, submissionService, themeService, autosave)
	themeHandler := httpHandler.NewThemeHandler(themeService, submissionService)
	galleryHandler := httpHandler.NewGalleryHandler(submissionService, votingService, leaderboardService, themeService)
	log.Info("Handlers initialized")

	workerServer := worker.NewWorkerServer(redisClientOpt, themeService, log)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RateLimit(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow))

	api := router.Group("/api")
	api.GET("/init", middleware.OptionalAuth(cfg.JWTSecret), themeHandler.Init)
	api.GET("/gallery", galleryHandler.Gallery)
	api.GET("/leaderboard", galleryHandler.Leaderboard)
	api.GET("/themes/archived", themeHandler.ArchivedThemes)
	api.GET("/theme/:id", themeHandler.GetTheme)

	// The /design subtree keeps the static action paths the UI calls
	// (save, submit, vote); per-asset editing lives under /designs/:id so
	// static and parameter segments never share a router level.
	authed := api.Group("").Use(middleware.Auth(cfg.JWTSecret))
	{
		authed.POST("/designs", designHandler.CreateDesign)
		authed.GET("/designs/mine", designHandler.MyDesigns)
		authed.GET("/design/:id", designHandler.GetDesign)
		authed.DELETE("/design/:id", designHandler.DeleteDesign)
		authed.POST("/design/save", designHandler.SaveDesign)
		authed.POST("/design/submit", designHandler.SubmitDesign)
		authed.POST("/design/vote", galleryHandler.Vote)
		authed.GET("/design/:id/vote", galleryHandler.MyVote)
		authed.POST("/designs/:id/asset", designHandler.PlaceAsset)
		authed.POST("/designs/:id/asset/:index/move", designHandler.MoveAsset)
		authed.POST("/designs/:id/asset/:index/rotate", designHandler.RotateAsset)
		authed.POST("/designs/:id/asset/:index/zindex", designHandler.AdjustZIndex)
		authed.DELETE("/designs/:id/asset/:index", designHandler.RemoveAsset)
		authed.POST("/designs/:id/background", designHandler.UpdateBackground)
	}
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	log.Info("Router setup complete")

	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	return &App{
		Config:         cfg,
		Log:            log,
		RedisClient:    redisClient,
		AsynqClient:    asynqClient,
		WorkerServer:   workerServer,
		Autosave:       autosave,
		HTTPServer:     httpServer,
		redisClientOpt: redisClientOpt,
	}, nil
}

// Start launches the worker, the rotation scheduler and the HTTP server.
func (a *App) Start() {
	go a.WorkerServer.Start()
	a.Log.Info("Worker server routine started")

	a.registerPeriodicTasks()

	go func() {
		a.Log.Infof("HTTP server listening on %s", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

func (a *App) registerPeriodicTasks() {
	scheduler := asynq.NewScheduler(a.redisClientOpt, &asynq.SchedulerOpts{})

	payload, err := tasks.NewThemeRotationCheckTask()
	if err != nil {
		a.Log.Errorf("Failed to build rotation check payload: %v", err)
		return
	}
	task := asynq.NewTask(tasks.TypeThemeRotationCheck, payload)

	schedule := "@every 1m"
	entryID, err := scheduler.Register(schedule, task, asynq.Queue("default"))
	if err != nil {
		a.Log.Errorf("Could not register rotation check task: %v", err)
	} else {
		a.Log.Infof("Rotation check registered with schedule '%s' (EntryID: %s)", schedule, entryID)
	}

	go func() {
		a.Log.Info("Asynq scheduler starting...")
		if err := scheduler.Run(); err != nil {
			if !errors.Is(err, asynq.ErrServerClosed) {
				a.Log.Errorf("Asynq scheduler Run() failed: %v", err)
			} else {
				a.Log.Info("Asynq scheduler stopped.")
			}
		}
	}()
}

// Shutdown stops the application gracefully.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	if a.Autosave != nil {
		a.Autosave.Stop()
	}
	if a.WorkerServer != nil {
		a.WorkerServer.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	if a.AsynqClient != nil {
		if err := a.AsynqClient.Close(); err != nil {
			a.Log.Errorf("Error closing Asynq client: %v", err)
		}
	}
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}
	a.Log.Info("Application shutdown complete.")
}

// LoggerMiddleware logs one structured line per request.
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		switch {
		case errorMessage != "":
			entry.Error(errorMessage)
		case statusCode >= 500:
			entry.Error("Server error")
		case statusCode >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request handled")
		}
	}
}
