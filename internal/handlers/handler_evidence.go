package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/hearthview/opsdash/internal/core/domain"
	portssvc "github.com/hearthview/opsdash/internal/core/ports/services"
	"github.com/hearthview/opsdash/internal/dto"
	"github.com/hearthview/opsdash/internal/middleware"
)

// evidenceHandler serves the evidence and extraction-candidate page.
type evidenceHandler struct {
	render          *pageRenderer
	evidenceService portssvc.EvidenceSvcFacade
}

func registerEvidenceRoutes(rg *gin.RouterGroup, render *pageRenderer, evidenceService portssvc.EvidenceSvcFacade) {
	h := &evidenceHandler{render: render, evidenceService: evidenceService}

	g := rg.Group("/evidence")
	{
		g.GET("", h.showBoard)
		g.POST("/upload", h.upload)
		g.POST("/extract", h.extract)
		g.POST("/candidates/confirm", h.confirmCandidate)
		g.POST("/candidates/reject", h.rejectCandidate)
	}
}

func (h *evidenceHandler) showBoard(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.renderBoard(c, sel, nil, nil)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	source := domain.EvidenceSource(c.Query("source"))
	board, err := h.evidenceService.Load(c.Request.Context(), sel.VenueID, source)
	if err != nil {
		logger.Error("Failed to load evidence", slog.String("venue_id", sel.VenueID), slog.String("error", err.Error()))
		h.renderBoard(c, sel, h.evidenceService.Board(sel.VenueID), err)
		return
	}
	if evidenceID := c.Query("evidenceId"); evidenceID != "" {
		board, err = h.evidenceService.Select(c.Request.Context(), sel.VenueID, evidenceID)
		if err != nil {
			logger.Warn("Failed to select evidence", slog.String("evidence_id", evidenceID), slog.String("error", err.Error()))
			h.renderBoard(c, sel, h.evidenceService.Board(sel.VenueID), err)
			return
		}
	}
	h.renderBoard(c, sel, board, nil)
}

func (h *evidenceHandler) upload(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.renderBoard(c, sel, nil, errValidation("select a venue first"))
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operator, _ := middleware.GetOperatorFromContext(c.Request.Context())

	var form dto.EvidenceUploadForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderBoard(c, sel, h.evidenceService.Board(sel.VenueID), errValidation("pick a document source"))
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.renderBoard(c, sel, h.evidenceService.Board(sel.VenueID), errValidation("a file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		h.renderBoard(c, sel, h.evidenceService.Board(sel.VenueID), err)
		return
	}
	defer file.Close()

	board, err := h.evidenceService.Upload(c.Request.Context(), sel.VenueID, file, fileHeader.Filename, form.Source, operator)
	if err != nil {
		logger.Warn("Failed to upload evidence", slog.String("venue_id", sel.VenueID), slog.String("error", err.Error()))
		h.renderBoard(c, sel, h.evidenceService.Board(sel.VenueID), err)
		return
	}
	logger.Info("Evidence uploaded", slog.String("venue_id", sel.VenueID), slog.String("file", fileHeader.Filename))
	h.renderBoard(c, sel, board, nil)
}

func (h *evidenceHandler) extract(c *gin.Context) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.renderBoard(c, sel, nil, errValidation("select a venue first"))
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operator, _ := middleware.GetOperatorFromContext(c.Request.Context())

	evidenceID := c.PostForm("evidenceId")
	if evidenceID == "" {
		h.renderBoard(c, sel, h.evidenceService.Board(sel.VenueID), errValidation("choose a document to extract from"))
		return
	}

	board, err := h.evidenceService.Extract(c.Request.Context(), sel.VenueID, evidenceID, operator)
	if err != nil {
		logger.Warn("Failed to extract candidates", slog.String("evidence_id", evidenceID), slog.String("error", err.Error()))
		h.renderBoard(c, sel, h.evidenceService.Board(sel.VenueID), err)
		return
	}
	logger.Info("Extraction requested", slog.String("evidence_id", evidenceID))
	h.renderBoard(c, sel, board, nil)
}

func (h *evidenceHandler) confirmCandidate(c *gin.Context) {
	h.reviewCandidate(c, false)
}

func (h *evidenceHandler) rejectCandidate(c *gin.Context) {
	h.reviewCandidate(c, true)
}

func (h *evidenceHandler) reviewCandidate(c *gin.Context, reject bool) {
	sel := bindSelection(c)
	if !sel.HasVenue() {
		h.renderBoard(c, sel, nil, errValidation("select a venue first"))
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operator, _ := middleware.GetOperatorFromContext(c.Request.Context())

	var form dto.CandidateReviewForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderBoard(c, sel, h.evidenceService.Board(sel.VenueID), errValidation("choose a candidate to review"))
		return
	}

	var board *dto.EvidenceBoard
	var err error
	if reject {
		board, err = h.evidenceService.RejectCandidate(c.Request.Context(), sel.VenueID, form.CandidateID, form.Reason, operator)
	} else {
		board, err = h.evidenceService.ConfirmCandidate(c.Request.Context(), sel.VenueID, form.CandidateID, operator)
	}
	if err != nil {
		logger.Warn("Failed to review candidate", slog.String("candidate_id", form.CandidateID), slog.String("error", err.Error()))
		h.renderBoard(c, sel, h.evidenceService.Board(sel.VenueID), err)
		return
	}
	logger.Info("Candidate reviewed", slog.String("candidate_id", form.CandidateID), slog.Bool("rejected", reject))
	h.renderBoard(c, sel, board, nil)
}

func (h *evidenceHandler) renderBoard(c *gin.Context, sel dto.Selection, board *dto.EvidenceBoard, err error) {
	h.render.render(c, "evidence.tmpl", "/evidence", sel, board, err)
}
