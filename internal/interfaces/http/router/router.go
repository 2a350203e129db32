package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/infrastructure/auth"
	"github.com/invoicehub/backend/internal/infrastructure/logger"
	"github.com/invoicehub/backend/internal/interfaces/http/handler"
	"github.com/invoicehub/backend/internal/interfaces/http/middleware"
)

// Deps holds everything the HTTP router wires together
type Deps struct {
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	CORS           middleware.CORSConfig

	Auth      *handler.AuthHandler
	Invoices  *handler.InvoiceHandler
	Products  *handler.ProductHandler
	Customers *handler.CustomerHandler
	Dashboard *handler.DashboardHandler
	System    *handler.SystemHandler
}

// RouteRegistrar registers a handler's routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// New builds the gin engine with middleware and all API routes
func New(deps Deps) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		logger.Recovery(deps.Logger),
		logger.GinMiddleware(deps.Logger),
		middleware.RequestID(),
		middleware.CORSWithConfig(deps.CORS),
		middleware.Secure(),
	)

	// Probes stay outside the versioned, authenticated surface
	if deps.System != nil {
		engine.GET("/health", deps.System.Health)
		engine.GET("/ping", deps.System.Ping)
	}

	api := engine.Group("/api/v1")

	jwtCfg := middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.TokenBlacklist,
		Logger:         deps.Logger,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/auth/logout",
		},
	}
	api.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	if deps.Auth != nil {
		deps.Auth.RegisterRoutes(api)
	}
	if deps.Invoices != nil {
		deps.Invoices.RegisterRoutes(api)
	}
	if deps.Products != nil {
		deps.Products.RegisterRoutes(api)
	}
	if deps.Customers != nil {
		deps.Customers.RegisterRoutes(api)
	}
	if deps.Dashboard != nil {
		deps.Dashboard.RegisterRoutes(api)
	}

	return engine
}
