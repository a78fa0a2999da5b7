package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/staffdesk/employee-api/docs"
	"github.com/staffdesk/employee-api/internal/api/handler"
	"github.com/staffdesk/employee-api/internal/api/middleware"
	"github.com/staffdesk/employee-api/internal/auth"
	"github.com/staffdesk/employee-api/internal/core/ports"
	"github.com/staffdesk/employee-api/internal/core/service"
	mongodb "github.com/staffdesk/employee-api/internal/infrastructure/db/mongo"
	redisdb "github.com/staffdesk/employee-api/internal/infrastructure/db/redis"
	"github.com/staffdesk/employee-api/internal/notify"
)

// NewRouter builds and returns the Echo instance with all routes
// registered. rdb may be nil (Redis disabled); hub may be nil, in which
// case the websocket route is not exposed and notifier should be a no-op.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	tokens *auth.TokenManager,
	notifier ports.Notifier,
	hub *notify.Hub,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("employee_api"))

	// --- Dependencies ---
	var limiter service.LoginLimiter = service.NoopLoginLimiter{}
	if rdb != nil {
		limiter = redisdb.NewLoginLimiter(rdb)
	}

	userRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, tokens, limiter, log)
	authHandler := handler.NewAuthHandler(authService)

	employeeRepo := mongodb.NewEmployeeRepository(db)
	employeeService := service.NewEmployeeService(employeeRepo, notifier, log)
	employeeHandler := handler.NewEmployeeHandler(employeeService)

	authMiddleware := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.PUT("/auth/change-password", authHandler.ChangePassword, authMiddleware)

	// --- Employee routes (all authenticated) ---
	employees := e.Group("/employees", authMiddleware)
	employees.POST("", employeeHandler.Create)
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.PUT("/:id", employeeHandler.Update)
	employees.DELETE("/:id", employeeHandler.Delete)

	// --- Real-time admin notifications ---
	if hub != nil {
		e.GET("/ws", hub.ServeWS)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
