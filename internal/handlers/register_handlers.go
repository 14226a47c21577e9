package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/etsy_atlas/cmd/docs"
	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/middleware"
	"github.com/SscSPs/etsy_atlas/internal/platform/config"
	"github.com/SscSPs/etsy_atlas/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	cookie := middleware.SessionCookie{Name: cfg.SessionCookieName, Secure: cfg.IsProduction}

	r.GET("/health", getHealth)

	sessionLimiter, err := middleware.NewMemoryLimiter(cfg.SessionRateLimit)
	if err != nil {
		return fmt.Errorf("session rate limit: %w", err)
	}
	RegisterSessionRoutes(r, services.Session, services.GoogleOAuth, cookie, cfg.IsProduction, middleware.RateLimit(sessionLimiter))

	if err := setupImportRoutes(r, cfg, services); err != nil {
		return err
	}

	setupAPIV1Routes(r, cookie, services, posthogClient)
	setupPageRoutes(r, cfg, cookie, services)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupImportRoutes mounts the import webhook behind CORS, a rate limit and the optional api key.
func setupImportRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	importLimiter, err := middleware.NewMemoryLimiter(cfg.ImportRateLimit)
	if err != nil {
		return fmt.Errorf("import rate limit: %w", err)
	}

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{http.MethodPost, http.MethodOptions}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, middleware.ImportKeyHeader)
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}

	RegisterImportRoutes(r, services.Order,
		cors.New(corsCfg),
		middleware.RateLimit(importLimiter),
		middleware.ImportKeyAuth(cfg.ImportAPIKeyHash),
	)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cookie middleware.SessionCookie,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1",
		middleware.SessionAuth(services.Session, cookie),
		middleware.PosthogMiddleware(posthogClient),
	)

	RegisterOrderRoutes(v1, services.Order)
	RegisterProductRoutes(v1, services.Product)
	RegisterCapitalRoutes(v1, services.Capital)
	RegisterUserRoutes(v1, services.User)
	RegisterAdminRoutes(v1, services.Seed, services.User)
}

// setupPageRoutes serves the dashboard bundle behind the route gate.
func setupPageRoutes(r *gin.Engine, cfg *config.Config, cookie middleware.SessionCookie, services *portssvc.ServiceContainer) {
	RegisterPageRoutes(r, services.Session, cookie, middleware.RouteGateConfig{
		ProtectedPrefix: cfg.DashboardPath,
		LoginPath:       cfg.LoginPath,
	}, cfg.FrontendDir)
}

// RegisterPageRoutes mounts the gated page paths and serves everything else
// that is not an API path from frontendDir.
func RegisterPageRoutes(
	r *gin.Engine,
	sessionService portssvc.SessionSvcFacade,
	cookie middleware.SessionCookie,
	gateCfg middleware.RouteGateConfig,
	frontendDir string,
) {
	gate := middleware.RouteGate(sessionService, cookie, gateCfg)
	spa := spaHandler(frontendDir)

	r.GET("/", gate, spa)
	r.GET(gateCfg.LoginPath, gate, spa)
	r.GET(gateCfg.ProtectedPrefix, gate, spa)
	r.GET(gateCfg.ProtectedPrefix+"/*page", gate, spa)

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "code": apperrors.CodeNotFound})
			return
		}
		spa(c)
	})
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
