// Package server contains the HTTP handlers for the application's routes.
package server

import (
	"context"
	"errors"
	"time"

	"threaded/internal/cache"
	"threaded/internal/config"
	"threaded/internal/database"
	"threaded/internal/middleware"
	"threaded/internal/repository"
	"threaded/internal/service"
	"threaded/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	sessions       *session.Store
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo     repository.UserRepository
	relationRepo repository.RelationRepository
	threadRepo   repository.ThreadRepository
	imageRepo    repository.ImageRepository

	authService      *service.AuthService
	userService      *service.UserService
	relationService  *service.RelationService
	threadService    *service.ThreadService
	imageService     *service.ImageService
	dashboardService *service.DashboardService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()
	if redisClient == nil {
		// Sessions live in Redis; unlike the cache, they are not optional.
		return nil, errors.New("redis is required for the session store")
	}

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	sessions, err := session.NewStore(redisClient, cfg.SessionSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	imageRepo := repository.NewImageRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		sessions:       sessions,
		promMiddleware: middleware.InitMetrics("threaded"),
		userRepo:       userRepo,
		relationRepo:   relationRepo,
		threadRepo:     threadRepo,
		imageRepo:      imageRepo,
	}

	s.authService = service.NewAuthService(userRepo)
	s.userService = service.NewUserService(userRepo)
	s.relationService = service.NewRelationService(relationRepo, userRepo)
	s.threadService = service.NewThreadService(threadRepo, userRepo)
	s.imageService = service.NewImageService(imageRepo, userRepo)
	s.dashboardService = service.NewDashboardService(userRepo, threadRepo, imageRepo, s.relationService)

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Load the session before the context middleware so the logger sees the user id.
	app.Use(s.SessionLoader())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks and metrics
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Public pages
	app.Get("/", s.Homepage)
	app.Get("/login", s.ShowLogin)
	app.Post("/login", s.Login)
	app.Get("/register", s.ShowRegister)
	app.Post("/register", s.Register)
	app.Get("/logout", s.Logout)

	// Session-protected pages
	app.Get("/user_name", s.AuthRequired(), s.ShowUsernameForm)
	app.Post("/user_name", s.AuthRequired(), s.AssignUsername)
	app.Get("/dashboard", s.Dashboard)
	app.Get("/dashboard/:userId", s.AuthRequired(), s.UserDashboard)
	app.Post("/dashboard", s.AuthRequired(), s.DashboardPost)

	// Connections
	connections := app.Group("/connections", s.AuthRequired())
	connections.Get("/", s.ListConnections)
	connections.Post("/", s.SendConnectionRequest)
	connections.Post("/:id/accept", s.AcceptConnectionRequest)
	connections.Post("/:id/reject", s.RejectConnectionRequest)

	// Threads
	app.Get("/threads", s.ListThreads)
	app.Get("/threads/:id", s.GetThread)
	app.Post("/threads", s.AuthRequired(), s.CreateThread)
	app.Post("/threads/:id/contributions", s.AuthRequired(), s.AddContribution)

	// Images
	app.Post("/images", s.AuthRequired(), s.CreateImage)
	app.Get("/users/:userId/images", s.ListUserImages)

	// Search
	app.Get("/search", s.SearchUsers)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
