package handlers

import (
	"github.com/gin-gonic/gin"
)

// homeHandler renders the landing page: a venue prompt plus the shared
// navigation shell.
type homeHandler struct {
	render *pageRenderer
}

func registerHomeRoutes(rg *gin.RouterGroup, render *pageRenderer) {
	h := &homeHandler{render: render}
	rg.GET("/", h.showHome)
}

func (h *homeHandler) showHome(c *gin.Context) {
	sel := bindSelection(c)
	h.render.render(c, "home.tmpl", "/", sel, nil, nil)
}
