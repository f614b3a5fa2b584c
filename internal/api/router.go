package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/openboard/forum-api/docs"
	"github.com/openboard/forum-api/internal/api/handler"
	"github.com/openboard/forum-api/internal/api/middleware"
	"github.com/openboard/forum-api/internal/core/domain"
	"github.com/openboard/forum-api/internal/core/ports"
	"github.com/openboard/forum-api/internal/core/service"
	mongodb "github.com/openboard/forum-api/internal/infrastructure/db/mongo"
	redisdb "github.com/openboard/forum-api/internal/infrastructure/db/redis"
)

// Deps carries everything the router needs that is constructed in main:
// live connections, the token service, and the audit recorder.
type Deps struct {
	Mongo  *mongo.Database
	Client *mongo.Client
	Redis  *redis.Client
	Tokens ports.TokenService
	Audit  ports.AuditRecorder
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("forum"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(d.Mongo)
	threadRepo := mongodb.NewThreadRepository(d.Mongo)
	postRepo := mongodb.NewPostRepository(d.Mongo)
	txRunner := mongodb.NewTxRunner(d.Client)
	revoked := redisdb.NewRevocationList(d.Redis)

	authService := service.NewAuthService(userRepo, d.Tokens, revoked, d.Logger)
	threadService := service.NewThreadService(threadRepo, postRepo, userRepo, txRunner, d.Logger)
	postService := service.NewPostService(postRepo, threadRepo, userRepo, d.Logger)
	adminService := service.NewAdminService(userRepo, threadRepo, postRepo, txRunner, d.Audit, d.Logger)

	authHandler := handler.NewAuthHandler(authService)
	threadHandler := handler.NewThreadHandler(threadService)
	postHandler := handler.NewPostHandler(postService)
	adminHandler := handler.NewAdminHandler(adminService)

	requireAuth := middleware.Auth(d.Tokens, revoked)
	optionalAuth := middleware.OptionalAuth(d.Tokens, revoked)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	// Me is the session probe: an invalid or missing cookie yields a clean
	// 401 from the handler rather than a middleware rejection.
	auth.GET("/me", authHandler.Me, optionalAuth)

	// --- Thread routes: reads are public, mutations need a session ---
	threads := e.Group("/api/threads")
	threads.GET("/all", threadHandler.List)
	threads.GET("/thread/:id", threadHandler.Get)
	threads.POST("/thread/new", threadHandler.Create, requireAuth)
	threads.PUT("/thread/:id", threadHandler.Update, requireAuth)
	threads.DELETE("/thread/:id", threadHandler.Delete, requireAuth)

	// --- Post routes ---
	posts := e.Group("/api/posts")
	posts.GET("/thread/:id", postHandler.ListByThread)
	posts.POST("/thread/:id", postHandler.Create, requireAuth)
	posts.PUT("/post/:id", postHandler.Update, requireAuth)
	posts.DELETE("/post/:id", postHandler.Delete, requireAuth)

	// --- Admin routes ---
	admin := e.Group("/api/admin", requireAuth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users/all", adminHandler.ListUsers)
	admin.DELETE("/ban/:username", adminHandler.Ban)
	admin.DELETE("/post/:id", adminHandler.DeletePost)
	admin.DELETE("/thread/:id", adminHandler.DeleteThread)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
