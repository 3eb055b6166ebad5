package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/warehouse-suite/user-service/docs"
	"github.com/warehouse-suite/user-service/internal/api/handler"
	"github.com/warehouse-suite/user-service/internal/api/middleware"
	"github.com/warehouse-suite/user-service/internal/core/service"
	mongodb "github.com/warehouse-suite/user-service/internal/infrastructure/db/mongo"
)

// Options carries the router's external dependencies and settings.
type Options struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("users"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(opts.Mongo, opts.Log)
	userService := service.NewUserService(userRepo, opts.JWTSecret, opts.TokenTTL)
	userHandler := handler.NewUserHandler(userService)
	auth := middleware.Auth(opts.JWTSecret, userRepo)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("/me", userHandler.GetMe, auth)
	users.GET("", userHandler.List, auth)
	users.GET("/:codUser", userHandler.GetByCode, auth)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler(opts.Mongo, opts.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
