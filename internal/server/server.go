// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"

	_ "mindstream/docs" // swagger docs
	"mindstream/internal/cache"
	"mindstream/internal/config"
	"mindstream/internal/database"
	"mindstream/internal/middleware"
	"mindstream/internal/store"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	mongo          *database.Mongo
	cache          *cache.Cache
	users          store.UserStore
	thoughts       store.ThoughtStore
	promMiddleware *fiberprometheus.FiberPrometheus
}

// NewServer creates a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	c := cache.New(cfg.RedisURL)

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}

	return &Server{
		config:         cfg,
		mongo:          db,
		cache:          c,
		users:          store.NewUserStore(db, c),
		thoughts:       store.NewThoughtStore(db, c),
		promMiddleware: fiberprometheus.New("mindstream-api"),
	}, nil
}

// NewServerWithStores creates a Server over already-initialized stores.
// Use this in tests where no database or cache is available.
func NewServerWithStores(cfg *config.Config, users store.UserStore, thoughts store.ThoughtStore) *Server {
	return &Server{
		config:   cfg,
		users:    users,
		thoughts: thoughts,
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Propagate the request ID into the request context for logging
	app.Use(middleware.ContextMiddleware())

	// Distributed tracing (after requestid so spans carry the request id)
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := "*"
	if s.config != nil && s.config.AllowedOrigins != "" {
		origins = s.config.AllowedOrigins
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
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
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/", s.HealthCheck)
	api.Get("/swagger/*", swagger.HandlerDefault)

	users := api.Group("/users")
	users.Get("/", s.GetUsers)
	users.Post("/", s.CreateUser)
	users.Get("/:userId", s.GetUser)
	users.Put("/:userId", s.UpdateUser)
	users.Delete("/:userId", s.DeleteUser)
	users.Post("/:userId/friends/:friendId", s.AddFriend)
	users.Delete("/:userId/friends/:friendId", s.RemoveFriend)

	thoughts := api.Group("/thoughts")
	thoughts.Get("/", s.GetThoughts)
	thoughts.Post("/", s.CreateThought)
	thoughts.Get("/:thoughtId", s.GetThought)
	thoughts.Put("/:thoughtId", s.UpdateThought)
	thoughts.Delete("/:thoughtId", s.DeleteThought)
	thoughts.Post("/:thoughtId/reactions", s.AddReaction)
	thoughts.Delete("/:thoughtId/reactions", s.RemoveReaction)
}

// HealthCheck handles GET /api/ requests
// @Summary API banner
// @Description Report the API name and version.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Mindstream API",
		"version": "1.0.0",
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.mongo == nil {
		dbStatus = "unavailable"
	} else if err := s.mongo.Ping(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional; reads degrade to uncached without it.
	redisStatus := "healthy"
	if !s.cache.Available() {
		redisStatus = "unavailable"
	} else if err := s.cache.Ping(ctx); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cache.Close()
	if s.mongo != nil {
		return s.mongo.Disconnect(ctx)
	}
	return nil
}
