package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hearthview/opsdash/internal/apperrors"
	"github.com/hearthview/opsdash/internal/core/domain"
	portssvc "github.com/hearthview/opsdash/internal/core/ports/services"
	"github.com/hearthview/opsdash/internal/dto"
	"github.com/hearthview/opsdash/internal/middleware"
)

// pageData is the model every page template receives: the shared shell
// (operator, venue list, current selection) plus the page body in Data.
type pageData struct {
	Operator string
	// Path is the page's canonical GET path, used for nav highlighting and
	// as the target of the venue selector form. Action handlers pass their
	// page's path here, not the action URL.
	Path   string
	Sel    dto.Selection
	Venues []domain.Venue
	Error  string
	Data   any
}

// pageRenderer assembles the shared shell around each page body. The
// venue list drives the navigation selector and is fetched on every page
// render.
type pageRenderer struct {
	venueService portssvc.VenueSvcFacade
}

func newPageRenderer(venueService portssvc.VenueSvcFacade) *pageRenderer {
	return &pageRenderer{venueService: venueService}
}

// render writes one page. A page error becomes an inline banner rather
// than a bare error response, so whatever state Data carries still shows.
func (r *pageRenderer) render(c *gin.Context, name, path string, sel dto.Selection, data any, pageErr error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operator, _ := middleware.GetOperatorFromContext(c.Request.Context())

	venues, err := r.venueService.ListVenues(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list venues for navigation", slog.String("error", err.Error()))
		if pageErr == nil {
			pageErr = err
		}
	}

	c.HTML(http.StatusOK, name, pageData{
		Operator: operator,
		Path:     path,
		Sel:      sel,
		Venues:   venues,
		Error:    apperrors.DisplayMessage(pageErr),
		Data:     data,
	})
}

// optFloat reads a nullable numeric form field. Empty or malformed input
// yields nil, keeping "not entered" distinct from zero.
func optFloat(c *gin.Context, name string) *float64 {
	raw := strings.TrimSpace(c.PostForm(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// errValidation wraps a form-binding failure message so the banner shows
// it like any other validation refusal.
func errValidation(msg string) error {
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, msg)
}

// bindSelection reads the venue/week pair from the query string. The two
// fields are plain strings, so binding cannot fail.
func bindSelection(c *gin.Context) dto.Selection {
	var sel dto.Selection
	_ = c.ShouldBindQuery(&sel)
	return sel
}
