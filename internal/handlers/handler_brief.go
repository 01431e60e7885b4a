package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hearthview/opsdash/internal/core/ports/services"
	"github.com/hearthview/opsdash/internal/middleware"
)

// briefHandler renders the Monday brief page.
type briefHandler struct {
	render       *pageRenderer
	briefService portssvc.BriefSvcFacade
}

func registerBriefRoutes(rg *gin.RouterGroup, render *pageRenderer, briefService portssvc.BriefSvcFacade) {
	h := &briefHandler{render: render, briefService: briefService}
	rg.GET("/brief", h.showBrief)
}

func (h *briefHandler) showBrief(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.render.render(c, "brief.tmpl", "/brief", sel, nil, nil)
		return
	}

	view, err := h.briefService.LoadWeek(c.Request.Context(), sel.VenueID, sel.Week)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to load brief", slog.String("venue_id", sel.VenueID), slog.String("error", err.Error()))
		h.render.render(c, "brief.tmpl", "/brief", sel, nil, err)
		return
	}
	h.render.render(c, "brief.tmpl", "/brief", sel, view, nil)
}
