package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/arjohnson15/workoutapp/config"
	"github.com/arjohnson15/workoutapp/internal/auth"
	"github.com/arjohnson15/workoutapp/internal/catalog"
	"github.com/arjohnson15/workoutapp/internal/docstore"
	"github.com/arjohnson15/workoutapp/internal/events"
	"github.com/arjohnson15/workoutapp/internal/handlers"
	"github.com/arjohnson15/workoutapp/internal/metrics"
	"github.com/arjohnson15/workoutapp/internal/middleware"
	"github.com/arjohnson15/workoutapp/internal/mq"
	"github.com/arjohnson15/workoutapp/internal/services"
	"github.com/arjohnson15/workoutapp/internal/store"
)

const bootstrapTimeout = 2 * time.Minute

// Deps are the collaborators a Server is assembled from. Store is required;
// the rest are optional.
type Deps struct {
	Store       docstore.Store
	Queue       *mq.MQ
	RateLimiter middleware.RequestRateLimiter
	Registry    *prometheus.Registry
	HTTPClient  *http.Client
	Now         func() time.Time
}

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	store      docstore.Store
	queue      *mq.MQ
	redis      *redis.Client
	metrics    *metrics.Manager
	exercises  *store.ExerciseRepository
	loader     *catalog.Loader

	// mu guards closed and bootstrapCancel, and orders bootstrapWG.Add
	// before Shutdown waits on it.
	mu              sync.Mutex
	closed          bool
	bootstrapCancel context.CancelFunc
	bootstrapWG     sync.WaitGroup
}

// New opens the configured backends and constructs a Server.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	docs, err := docstore.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}

	queue, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		_ = docs.Close()
		return nil, fmt.Errorf("open message queue: %w", err)
	}

	deps := Deps{Store: docs, Queue: queue}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" && cfg.LoginRatePerMin > 0 {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, login rate limiting disabled")
			_ = redisClient.Close()
			redisClient = nil
		} else {
			deps.RateLimiter = redis_rate.NewLimiter(redisClient)
		}
	}

	srv, err := Build(cfg, deps)
	if err != nil {
		_ = multierr.Combine(closeQueue(queue), docs.Close())
		return nil, err
	}
	srv.redis = redisClient
	return srv, nil
}

// Build wires services, handlers and middleware over deps.
func Build(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, errors.New("document store is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	metricsManager := metrics.NewManager(metrics.Namespace, metrics.Subsystem, registry)

	userRepo := store.NewUserRepository(deps.Store)
	exerciseRepo := store.NewExerciseRepository(deps.Store)
	workoutRepo := store.NewWorkoutRepository(deps.Store)
	settingsRepo := store.NewSettingsRepository(deps.Store)

	tokens := auth.NewProvider(cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(userRepo, settingsRepo, tokens, cfg.BcryptCost)
	exerciseService := services.NewExerciseService(exerciseRepo)
	workoutService := services.NewWorkoutService(workoutRepo, exerciseRepo).WithMetrics(metricsManager)
	planService := services.NewPlanService(settingsRepo)
	analyticsService := services.NewAnalyticsService(workoutRepo)
	if deps.Now != nil {
		tokens.WithClock(deps.Now)
		workoutService.WithClock(deps.Now)
		planService.WithClock(deps.Now)
		analyticsService.WithClock(deps.Now)
	}
	if deps.Queue != nil {
		workoutService.WithPublisher(events.NewPublisher(deps.Queue, cfg.MQ.Channel))
	}

	var loginLimit func(http.Handler) http.Handler
	if deps.RateLimiter != nil && cfg.LoginRatePerMin > 0 {
		loginLimit = middleware.RateLimit(deps.RateLimiter, "login", cfg.LoginRatePerMin, metricsManager)
	}
	authMiddleware := handlers.RequireAuth(tokens)

	router := chi.NewRouter()
	router.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		middleware.PanicRecovery(metricsManager),
		middleware.LogRequest(),
		middleware.RequestMetrics(metricsManager),
		chimiddleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	router.Route("/api", func(r chi.Router) {
		handlers.AuthRouter(r, userService, authMiddleware, loginLimit)
		r.Route("/exercises", func(r chi.Router) {
			handlers.ExerciseRouter(r, exerciseService, authMiddleware)
		})
		r.Route("/workouts", func(r chi.Router) {
			handlers.WorkoutRouter(r, workoutService, authMiddleware)
		})
		r.Route("/settings", func(r chi.Router) {
			handlers.SettingsRouter(r, planService, authMiddleware)
		})
		r.Route("/plan", func(r chi.Router) {
			handlers.PlanRouter(r, planService, authMiddleware)
		})
		r.Route("/analytics", func(r chi.Router) {
			handlers.AnalyticsRouter(r, analyticsService, authMiddleware)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpClient := deps.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		store:      deps.Store,
		queue:      deps.Queue,
		metrics:    metricsManager,
		exercises:  exerciseRepo,
		loader:     catalog.NewLoader(cfg.ExerciseSource, catalog.NewFetcher(httpClient, cfg.ExercisesURL)),
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// BootstrapCatalog seeds the exercise catalog when it is empty.
func (s *Server) BootstrapCatalog(ctx context.Context) (int, error) {
	size, err := catalog.Bootstrap(ctx, s.exercises, s.loader)
	if err != nil {
		return 0, err
	}
	s.metrics.GaugeCatalogSize.Set(float64(size))
	return size, nil
}

// Start seeds the catalog in the background and runs the HTTP server until
// Shutdown is called. Start after Shutdown returns without serving.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	s.bootstrapCancel = cancel
	s.bootstrapWG.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.bootstrapWG.Done()
		defer cancel()
		if _, err := s.BootstrapCatalog(ctx); err != nil {
			log.WithError(err).Error("exercise catalog bootstrap failed, catalog left empty")
		}
	}()

	log.Infof("listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and releases
// every backend.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	cancel := s.bootstrapCancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.bootstrapWG.Wait()

	err := s.httpServer.Shutdown(ctx)
	err = multierr.Append(err, closeQueue(s.queue))
	if s.redis != nil {
		err = multierr.Append(err, s.redis.Close())
	}
	return multierr.Append(err, s.store.Close())
}

func closeQueue(queue *mq.MQ) error {
	if queue == nil {
		return nil
	}
	return queue.Close()
}
