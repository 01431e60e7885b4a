package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hearthview/opsdash/internal/core/ports/services"
	"github.com/hearthview/opsdash/internal/dto"
	"github.com/hearthview/opsdash/internal/middleware"
)

// cashHandler serves the cash snapshot page.
type cashHandler struct {
	render      *pageRenderer
	cashService portssvc.CashSvcFacade
}

func registerCashRoutes(rg *gin.RouterGroup, render *pageRenderer, cashService portssvc.CashSvcFacade) {
	h := &cashHandler{render: render, cashService: cashService}

	g := rg.Group("/cash")
	{
		g.GET("", h.showBoard)
		g.POST("/create", h.createSnapshot)
		g.POST("/correct", h.correctSnapshot)
	}
}

func (h *cashHandler) showBoard(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.renderBoard(c, sel, nil, nil)
		return
	}

	board, err := h.cashService.Load(c.Request.Context(), sel.VenueID, sel.Week)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to load cash snapshots", slog.String("venue_id", sel.VenueID), slog.String("error", err.Error()))
		h.renderBoard(c, sel, h.cashService.Board(sel.VenueID), err)
		return
	}
	h.renderBoard(c, sel, board, nil)
}

func (h *cashHandler) createSnapshot(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.renderBoard(c, sel, nil, errValidation("select a venue first"))
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operator, _ := middleware.GetOperatorFromContext(c.Request.Context())

	var form dto.CashCreateForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderBoard(c, sel, h.cashService.Board(sel.VenueID), errValidation("a week start date is required"))
		return
	}
	form.Revenue = optFloat(c, "revenue")
	form.Costs = optFloat(c, "costs")

	board, err := h.cashService.Create(c.Request.Context(), sel.VenueID, form, operator)
	if err != nil {
		logger.Warn("Failed to create cash snapshot", slog.String("venue_id", sel.VenueID), slog.String("error", err.Error()))
		h.renderBoard(c, sel, h.cashService.Board(sel.VenueID), err)
		return
	}
	logger.Info("Cash snapshot recorded", slog.String("venue_id", sel.VenueID), slog.String("week", form.WeekStartDate))
	h.renderBoard(c, sel, board, nil)
}

func (h *cashHandler) correctSnapshot(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.renderBoard(c, sel, nil, errValidation("select a venue first"))
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operator, _ := middleware.GetOperatorFromContext(c.Request.Context())

	var form dto.CashCorrectForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderBoard(c, sel, h.cashService.Board(sel.VenueID), errValidation("choose a snapshot to correct"))
		return
	}
	form.Revenue = optFloat(c, "revenue")
	form.Costs = optFloat(c, "costs")

	board, err := h.cashService.Correct(c.Request.Context(), sel.VenueID, form, operator)
	if err != nil {
		logger.Warn("Failed to correct cash snapshot", slog.String("snapshot_id", form.SnapshotID), slog.String("error", err.Error()))
		h.renderBoard(c, sel, h.cashService.Board(sel.VenueID), err)
		return
	}
	logger.Info("Cash snapshot corrected", slog.String("snapshot_id", form.SnapshotID))
	h.renderBoard(c, sel, board, nil)
}

func (h *cashHandler) renderBoard(c *gin.Context, sel dto.Selection, board *dto.CashBoard, err error) {
	h.render.render(c, "cash.tmpl", "/cash", sel, board, err)
}
