package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/hearthview/opsdash/internal/core/domain"
	portssvc "github.com/hearthview/opsdash/internal/core/ports/services"
	"github.com/hearthview/opsdash/internal/dto"
	"github.com/hearthview/opsdash/internal/middleware"
)

// planPage is the budget/labour page body. Base is the route prefix the
// template uses to build action URLs, Title the page heading.
type planPage struct {
	Board *dto.PlanBoard
	Base  string
	Title string
}

// planHandler serves one plan kind. Budgets and labour plans share the
// same workflow shape, so the same handler is registered twice with a
// different facade, route prefix and title.
type planHandler struct {
	render      *pageRenderer
	planService portssvc.PlanSvcFacade
	base        string
	title       string
}

func registerPlanRoutes(rg *gin.RouterGroup, render *pageRenderer, base, title string, planService portssvc.PlanSvcFacade) {
	h := &planHandler{render: render, planService: planService, base: base, title: title}

	g := rg.Group(base)
	{
		g.GET("", h.showBoard)
		g.POST("/select", h.selectPlan)
		g.POST("/create", h.createPlan)
		g.POST("/confirm", h.confirmPlan)
	}
}

func (h *planHandler) showBoard(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.renderBoard(c, sel, nil, nil)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := domain.PlanStatus(c.Query("status"))
	board, err := h.planService.Load(c.Request.Context(), sel.VenueID, status)
	if err != nil {
		logger.Error("Failed to load plans", slog.String("venue_id", sel.VenueID), slog.String("error", err.Error()))
		h.renderBoard(c, sel, h.planService.Board(sel.VenueID), err)
		return
	}
	if planID := c.Query("planId"); planID != "" {
		board, err = h.planService.Select(c.Request.Context(), sel.VenueID, planID)
		if err != nil {
			logger.Warn("Failed to select plan", slog.String("plan_id", planID), slog.String("error", err.Error()))
			h.renderBoard(c, sel, h.planService.Board(sel.VenueID), err)
			return
		}
	}
	h.renderBoard(c, sel, board, nil)
}

func (h *planHandler) selectPlan(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.renderBoard(c, sel, nil, errValidation("select a venue first"))
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var form dto.PlanSelectForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderBoard(c, sel, h.planService.Board(sel.VenueID), errValidation("choose a plan to inspect"))
		return
	}

	board, err := h.planService.Select(c.Request.Context(), sel.VenueID, form.PlanID)
	if err != nil {
		logger.Warn("Failed to select plan", slog.String("plan_id", form.PlanID), slog.String("error", err.Error()))
		h.renderBoard(c, sel, h.planService.Board(sel.VenueID), err)
		return
	}
	h.renderBoard(c, sel, board, nil)
}

func (h *planHandler) createPlan(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.renderBoard(c, sel, nil, errValidation("select a venue first"))
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operator, _ := middleware.GetOperatorFromContext(c.Request.Context())

	var form dto.PlanCreateForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderBoard(c, sel, h.planService.Board(sel.VenueID), errValidation("a payload is required"))
		return
	}

	board, err := h.planService.Create(c.Request.Context(), sel.VenueID, form.Payload, operator)
	if err != nil {
		logger.Warn("Failed to create plan", slog.String("venue_id", sel.VenueID), slog.String("error", err.Error()))
		h.renderBoard(c, sel, h.planService.Board(sel.VenueID), err)
		return
	}
	logger.Info("Plan created", slog.String("venue_id", sel.VenueID))
	h.renderBoard(c, sel, board, nil)
}

func (h *planHandler) confirmPlan(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.renderBoard(c, sel, nil, errValidation("select a venue first"))
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operator, _ := middleware.GetOperatorFromContext(c.Request.Context())

	board, err := h.planService.Confirm(c.Request.Context(), sel.VenueID, operator)
	if err != nil {
		logger.Warn("Failed to confirm plan", slog.String("venue_id", sel.VenueID), slog.String("error", err.Error()))
		h.renderBoard(c, sel, h.planService.Board(sel.VenueID), err)
		return
	}
	h.renderBoard(c, sel, board, nil)
}

func (h *planHandler) renderBoard(c *gin.Context, sel dto.Selection, board *dto.PlanBoard, err error) {
	h.render.render(c, "plans.tmpl", h.base, sel, planPage{Board: board, Base: h.base, Title: h.title}, err)
}
