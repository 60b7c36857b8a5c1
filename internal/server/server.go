// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ripple/internal/assets"
	"ripple/internal/cache"
	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/middleware"
	"ripple/internal/notifications"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config *config.Config
	db     *mongo.Database
	app    *fiber.App
	prom   *fiberprometheus.FiberPrometheus

	userRepo         repository.UserRepository
	postRepo         repository.PostRepository
	notificationRepo repository.NotificationRepository

	userSvc         *service.UserService
	postSvc         *service.PostService
	socialSvc       *service.SocialService
	notificationSvc *service.NotificationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		return nil, fmt.Errorf("index bootstrap failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	notifier := notifications.NewNotifier(cache.GetClient())

	var assetHost assets.Host
	if cfg.CloudinaryURL != "" {
		host, err := assets.NewCloudinaryHost(cfg.CloudinaryURL)
		if err != nil {
			return nil, fmt.Errorf("asset host init failed: %w", err)
		}
		assetHost = host
	} else {
		slog.Warn("no asset host configured, image uploads disabled")
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationSvc := service.NewNotificationService(notificationRepo, notifier)

	// Registers collectors into the default Prometheus registry, so it must
	// be constructed once per process, not per fiber app.
	prom := fiberprometheus.New("ripple-api")

	server := &Server{
		config:           cfg,
		db:               db,
		prom:             prom,
		userRepo:         userRepo,
		postRepo:         postRepo,
		notificationRepo: notificationRepo,
		userSvc:          service.NewUserService(userRepo, assetHost),
		postSvc:          service.NewPostService(postRepo, userRepo, notificationSvc, assetHost),
		socialSvc:        service.NewSocialService(userRepo, notificationSvc),
		notificationSvc:  notificationSvc,
	}

	middleware.InitMiddleware(cfg)
	server.app = server.buildApp()
	return server, nil
}

func (s *Server) buildApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Ripple API",
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.StructuredLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	if s.prom != nil {
		s.prom.RegisterAt(app, "/metrics")
		app.Use(s.prom.Middleware)
	}

	s.setupRoutes(app)
	return app
}

func (s *Server) setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health check
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "server is ready",
			"version": "1.0.0",
		})
	})

	// Credential endpoints are rate limited per IP; fail-open without Redis.
	authLimit := middleware.RateLimit(cache.GetClient(), "auth", 10, time.Minute)

	auth := api.Group("/auth")
	auth.Post("/signup", authLimit, s.Signup)
	auth.Post("/login", authLimit, s.Login)
	auth.Get("/me", middleware.AuthRequired, s.GetMe)

	users := api.Group("/users")
	users.Get("/profile/:username", s.GetUserProfile)
	users.Get("/suggested", middleware.AuthRequired, s.GetSuggestedUsers)
	users.Post("/follow/:id", middleware.AuthRequired, s.FollowUser)
	users.Put("/me", middleware.AuthRequired, s.UpdateMyProfile)

	posts := api.Group("/posts")
	posts.Get("/", s.GetAllPosts)
	posts.Get("/user/:username", s.GetUserPosts)
	posts.Get("/following", middleware.AuthRequired, s.GetFollowingFeed)
	posts.Get("/likes/:id", s.GetLikedPosts)
	posts.Get("/:id", s.GetPost)
	posts.Post("/", middleware.AuthRequired, s.CreatePost)
	posts.Post("/like/:id", middleware.AuthRequired, s.LikePost)
	posts.Post("/comment/:id", middleware.AuthRequired, s.CommentOnPost)
	posts.Delete("/:id", middleware.AuthRequired, s.DeletePost)

	notifs := api.Group("/notifications", middleware.AuthRequired)
	notifs.Get("/", s.GetNotifications)
	notifs.Delete("/", s.DeleteNotifications)
	notifs.Delete("/:id", s.DeleteNotification)
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the server and closes its connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return err
	}
	cache.Close()
	return database.Disconnect(ctx, s.db)
}

// App exposes the fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}
