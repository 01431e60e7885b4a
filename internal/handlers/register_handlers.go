package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/hearthview/opsdash/internal/core/ports/services"
	"github.com/hearthview/opsdash/internal/middleware"
	"github.com/hearthview/opsdash/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check for load balancers; no session required.
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public sign-in routes.
	registerAuthRoutes(r, cfg)

	// Every page requires a signed operator session.
	setupPageRoutes(r, cfg, services)
}

// setupPageRoutes configures the session-protected page group and
// delegates to the per-page registrations.
func setupPageRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	pages := r.Group("/", middleware.OperatorSession(cfg.SessionSecret))

	render := newPageRenderer(services.Venue)

	registerHomeRoutes(pages, render)
	registerBriefRoutes(pages, render, services.Brief)
	registerVarianceRoutes(pages, render, services.Variance)
	registerFindingRoutes(pages, render, services.Finding)
	registerPlanRoutes(pages, render, "/budgets", "Budgets", services.Budget)
	registerPlanRoutes(pages, render, "/labour", "Labour plans", services.Labour)
	registerCashRoutes(pages, render, services.Cash)
	registerEvidenceRoutes(pages, render, services.Evidence)
}
