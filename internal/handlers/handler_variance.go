package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hearthview/opsdash/internal/core/ports/services"
	"github.com/hearthview/opsdash/internal/dto"
	"github.com/hearthview/opsdash/internal/middleware"
	"github.com/hearthview/opsdash/internal/utils"
)

// variancePage is the variances page body: the grouped cards plus the
// resolved reporting period.
type variancePage struct {
	View        *dto.VarianceView
	PeriodStart string
	PeriodEnd   string
}

// varianceHandler renders the variances page.
type varianceHandler struct {
	render          *pageRenderer
	varianceService portssvc.VarianceSvcFacade
}

func registerVarianceRoutes(rg *gin.RouterGroup, render *pageRenderer, varianceService portssvc.VarianceSvcFacade) {
	h := &varianceHandler{render: render, varianceService: varianceService}
	rg.GET("/variances", h.showVariances)
}

func (h *varianceHandler) showVariances(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.render.render(c, "variances.tmpl", "/variances", sel, nil, nil)
		return
	}

	start, end := resolvePeriod(c.Query("periodStart"), c.Query("periodEnd"), sel.Week)
	view, err := h.varianceService.Load(c.Request.Context(), sel.VenueID, start, end)
	page := variancePage{View: view, PeriodStart: start, PeriodEnd: end}
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to load variances", slog.String("venue_id", sel.VenueID), slog.String("error", err.Error()))
		h.render.render(c, "variances.tmpl", "/variances", sel, page, err)
		return
	}
	h.render.render(c, "variances.tmpl", "/variances", sel, page, nil)
}

// resolvePeriod picks the reporting period: explicit query parameters win,
// otherwise the selected week expands to its seven days.
func resolvePeriod(start, end, week string) (string, string) {
	if start != "" && end != "" {
		return start, end
	}
	if week != "" {
		if t, err := time.Parse("2006-01-02", week); err == nil {
			return week, utils.ISODate(t.AddDate(0, 0, 6))
		}
	}
	return start, end
}
