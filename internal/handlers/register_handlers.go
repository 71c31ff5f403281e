package handlers

import (
	"fmt"
	"time"

	portssvc "github.com/SscSPs/finance_flow/internal/core/ports/services"
	"github.com/SscSPs/finance_flow/internal/middleware"
	"github.com/SscSPs/finance_flow/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// HTTP metrics are registered with reg and served from it on /metrics.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	reg *prometheus.Registry,
) error {
	loginLimiter, err := middleware.NewIPLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}

	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	r.Use(middleware.NewHTTPMetrics(reg).Middleware())

	r.GET("/health", getHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	registerAuthRoutes(r, services, loginLimiter)
	setupAPIV1Routes(r, services)
	return nil
}

// setupAPIV1Routes configures the bearer-protected /api/v1 group
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(services.Token))

	registerUserRoutes(v1, services.User)
	registerLedgerRoutes(v1, services.Ledger)
	registerReportingRoutes(v1, services.Reporting)
}

// corsConfig allows the configured origins, or any origin without credentials when none are set.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
