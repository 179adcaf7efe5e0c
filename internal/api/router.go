package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/hostelhub/hostel-api/docs"
	"github.com/hostelhub/hostel-api/internal/api/handler"
	"github.com/hostelhub/hostel-api/internal/api/middleware"
	"github.com/hostelhub/hostel-api/internal/core/domain"
	"github.com/hostelhub/hostel-api/internal/core/service"
	"github.com/hostelhub/hostel-api/internal/infrastructure/config"
	mongorepo "github.com/hostelhub/hostel-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/hostelhub/hostel-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(ctx context.Context, cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsDevelopment())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hostel"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderXRequestedWith, echo.HeaderOrigin, echo.HeaderAccept},
	}))

	// --- Dependencies ---
	userRepo, err := mongorepo.NewUserRepository(ctx, db)
	if err != nil {
		return nil, err
	}
	roomRepo, err := mongorepo.NewRoomRepository(ctx, db)
	if err != nil {
		return nil, err
	}

	issuer := service.NewTokenIssuer(cfg.JWTSecret, service.TokenTTL)
	throttle := redisinfra.NewLoginThrottle(rdb)
	authService := service.NewAuthService(userRepo, issuer, throttle, log)
	roomService := service.NewRoomService(roomRepo, log)

	session := handler.NewSessionWriter(!cfg.IsDevelopment())
	authHandler := handler.NewAuthHandler(authService, session)
	roomHandler := handler.NewRoomHandler(roomService)
	authn := middleware.Auth(cfg.JWTSecret, userRepo)

	// --- Default route ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"service": "hostel-api", "status": "running"})
	})

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authn)
	auth.GET("/me", authHandler.Me, authn)
	auth.PUT("/me", authHandler.UpdateProfile, authn)
	auth.GET("/userdashboard", authHandler.Dashboard, authn)

	// --- Room management routes ---
	rooms := e.Group("/api/adminauth/rooms", authn)
	rooms.GET("", roomHandler.List, middleware.RBAC(domain.RoleAdmin, domain.RoleStaff))
	rooms.GET("/:id", roomHandler.Get, middleware.RBAC(domain.RoleAdmin, domain.RoleStaff))
	rooms.POST("", roomHandler.Create, middleware.RBAC(domain.RoleAdmin))
	rooms.PUT("/:id", roomHandler.Update, middleware.RBAC(domain.RoleAdmin))
	rooms.PATCH("/:id/status", roomHandler.ChangeStatus, middleware.RBAC(domain.RoleAdmin, domain.RoleStaff))
	rooms.DELETE("/:id", roomHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)             // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)   // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
