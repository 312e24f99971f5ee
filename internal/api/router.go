package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/habitaly/portal/docs"
	"github.com/habitaly/portal/internal/api/handler"
	"github.com/habitaly/portal/internal/api/middleware"
	"github.com/habitaly/portal/internal/core/service"
	"github.com/habitaly/portal/internal/infrastructure/identity"
	"github.com/habitaly/portal/internal/infrastructure/mail"

	mongodb "github.com/habitaly/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/habitaly/portal/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	countsRepo := mongodb.NewCountsRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb, tokenTTL)
	resetTokens := redisdb.NewResetTokenStore(rdb)
	mailer := mail.NewLogMailer(log)
	google := identity.NewStubProvider("google")
	facebook := identity.NewStubProvider("facebook")

	sessionService := service.NewSessionService(
		userRepo, sessionStore, resetTokens, mailer,
		google, facebook,
		jwtSecret, tokenTTL, log,
	)

	authHandler := handler.NewAuthHandler(sessionService)
	dashboardHandler := handler.NewDashboardHandler(countsRepo, log)
	authMiddleware := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/google", authHandler.LoginWithGoogle)
	e.POST("/auth/facebook", authHandler.LoginWithFacebook)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)
	// Logout and restore read the token themselves: both must work with a
	// token the Auth middleware would already reject.
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)

	// --- Dashboard routes (guarded) ---
	dash := e.Group("/dashboard", authMiddleware, middleware.Guard())
	dash.GET("/nav", dashboardHandler.Nav)
	dash.GET("/panels/:tab", dashboardHandler.Panel)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
