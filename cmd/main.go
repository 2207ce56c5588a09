package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"darkops-lab/internal/catalog"
	"darkops-lab/internal/config"
	"darkops-lab/internal/database/mongo"
	"darkops-lab/internal/database/redis"
	"darkops-lab/internal/event"
	"darkops-lab/internal/handlers"
	"darkops-lab/internal/metrics"
	"darkops-lab/internal/middleware"
	"darkops-lab/internal/repository"
	"darkops-lab/internal/repository/memory"
	"darkops-lab/internal/service"
	"darkops-lab/pkg/discovery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"
)

func setupLogging(cfg config.LogConfig) (io.Closer, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, "darkops_lab.log"),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	out := io.MultiWriter(os.Stdout, rotator)
	log.SetOutput(out)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	gin.DefaultWriter = out
	gin.DefaultErrorWriter = out

	return rotator, nil
}

type stores struct {
	sessions service.SessionStore
	progress service.ProgressStore
	quiz     service.QuizStore
	status   service.StatusStore
	ping     func(ctx context.Context) error
	close    func()
}

func setupStorage(cfg config.MongoDBConfig) (*stores, error) {
	if cfg.Driver == "memory" {
		log.Println("Using in-memory storage, data is lost on restart")
		return &stores{
			sessions: memory.NewSessionStore(),
			progress: memory.NewProgressStore(),
			quiz:     memory.NewQuizStore(),
			status:   memory.NewStatusStore(),
			close:    func() {},
		}, nil
	}

	database, err := mongo.InitMongo(cfg)
	if err != nil {
		return nil, err
	}

	progressRepo := repository.NewProgressRepository(database)
	quizRepo := repository.NewQuizRepository(database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := progressRepo.CreateIndexes(ctx); err != nil {
		log.Printf("Warning: Failed to create database indexes: %v", err)
	} else if err := quizRepo.CreateIndexes(ctx); err != nil {
		log.Printf("Warning: Failed to create database indexes: %v", err)
	} else {
		log.Println("Database indexes created successfully")
	}

	return &stores{
		sessions: repository.NewSessionRepository(database),
		progress: progressRepo,
		quiz:     quizRepo,
		status:   repository.NewStatusRepository(database),
		ping: func(ctx context.Context) error {
			if !mongo.IsConnected(ctx) {
				return errors.New("mongodb is not reachable")
			}
			return nil
		},
		close: mongo.DisconnectMongo,
	}, nil
}

func setupCatalog(cfg *config.Config) *catalog.Catalog {
	var cache catalog.Cache = catalog.NewMemoryCache()
	if client := redis.InitRedis(cfg.Redis); client != nil {
		cache = repository.NewRedisRepo(client)
		log.Println("Attack catalog cached in Redis")
	}
	return catalog.New(catalog.FileLoader(cfg.Catalog.Path), cache, cfg.Catalog.TTL)
}

func main() {
	cfg := config.Load()

	logCloser, err := setupLogging(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	gin.SetMode(cfg.Server.GinMode)

	storage, err := setupStorage(cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	attackCatalog := setupCatalog(cfg)
	if _, err := attackCatalog.List(context.Background()); err != nil {
		log.Fatalf("Failed to load attack catalog: %v", err)
	}

	eventPublisher, err := event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Printf("Warning: Failed to initialize event publisher: %v", err)
		eventPublisher, _ = event.NewEventPublisher("", cfg.RabbitMQ.Exchange)
	}

	// Services
	sessionService := service.NewSessionService(storage.sessions, eventPublisher)
	attackService := service.NewAttackService(attackCatalog)
	progressService := service.NewProgressService(storage.progress, storage.sessions, attackCatalog, eventPublisher)
	quizService := service.NewQuizService(storage.quiz, storage.sessions, attackCatalog, eventPublisher)
	statusService := service.NewStatusService(storage.status)

	h := &handlers.Handlers{
		Sessions: handlers.NewSessionHandler(sessionService),
		Attacks:  handlers.NewAttackHandler(attackService),
		Progress: handlers.NewProgressHandler(progressService),
		Quiz:     handlers.NewQuizHandler(quizService),
		Status:   handlers.NewStatusHandler(statusService, storage.ping),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[DARKOPS] %v | %3d | %13v | %15s | %-7s %#v\n%s",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			param.Method,
			param.Path,
			param.ErrorMessage,
		)
	}))
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	r.Use(metrics.Middleware())
	r.GET("/metrics", metrics.Handler())

	h.RegisterRoutes(r, middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	var registry *discovery.ServiceRegistry
	if cfg.Consul.Address != "" {
		registry, err = discovery.NewServiceRegistry(cfg)
		if err != nil {
			log.Printf("Warning: Service discovery init failed: %v", err)
		} else if err := registry.Register(); err != nil {
			log.Printf("Warning: %v", err)
			registry = nil
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)

	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	if registry != nil {
		if err := registry.Deregister(); err != nil {
			log.Printf("Error deregistering from service discovery: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if err := eventPublisher.Close(); err != nil {
		log.Printf("Error closing event publisher: %v", err)
	}
	redis.CloseRedis()
	storage.close()

	<-doneChan
	log.Println("Server shutdown complete")
}

// corsConfig allows every origin when the list contains "*". Credentials
// are only allowed for an explicit origin list.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
