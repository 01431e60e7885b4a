package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hearthview/opsdash/internal/core/ports/services"
	"github.com/hearthview/opsdash/internal/middleware"
)

// findingHandler renders the guardian findings page.
type findingHandler struct {
	render         *pageRenderer
	findingService portssvc.FindingSvcFacade
}

func registerFindingRoutes(rg *gin.RouterGroup, render *pageRenderer, findingService portssvc.FindingSvcFacade) {
	h := &findingHandler{render: render, findingService: findingService}
	rg.GET("/findings", h.showFindings)
}

func (h *findingHandler) showFindings(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.render.render(c, "findings.tmpl", "/findings", sel, nil, nil)
		return
	}

	view, err := h.findingService.Load(c.Request.Context(), sel.VenueID, sel.Week)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to load findings", slog.String("venue_id", sel.VenueID), slog.String("error", err.Error()))
		h.render.render(c, "findings.tmpl", "/findings", sel, nil, err)
		return
	}
	h.render.render(c, "findings.tmpl", "/findings", sel, view, nil)
}
