package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hearthview/opsdash/internal/dto"
	"github.com/hearthview/opsdash/internal/middleware"
	"github.com/hearthview/opsdash/internal/platform/config"
)

// authHandler handles the name-only operator sign-in. There is no
// password: the backend trusts the dashboard, and the operator name only
// becomes the actor identifier recorded on writes.
type authHandler struct {
	cfg *config.Config
}

// registerAuthRoutes registers the public sign-in routes and sign-out.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) {
	h := &authHandler{cfg: cfg}

	r.GET(middleware.SignInPath, h.showSignIn)
	r.POST(middleware.SignInPath, h.signIn)
	r.POST("/signout", h.signOut)
}

func (h *authHandler) showSignIn(c *gin.Context) {
	c.HTML(http.StatusOK, "signin.tmpl", gin.H{"Next": c.Query("next")})
}

func (h *authHandler) signIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var form dto.SignInForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "signin.tmpl", gin.H{
			"Error": "Enter your name to sign in.",
			"Next":  c.PostForm("next"),
		})
		return
	}
	name := strings.TrimSpace(form.Name)
	if name == "" {
		c.HTML(http.StatusBadRequest, "signin.tmpl", gin.H{
			"Error": "Enter your name to sign in.",
			"Next":  c.PostForm("next"),
		})
		return
	}

	token, err := middleware.IssueSessionToken(name, h.cfg.SessionSecret, h.cfg.SessionExpiryDuration, time.Now())
	if err != nil {
		logger.Error("Failed to issue session token", slog.String("error", err.Error()))
		c.HTML(http.StatusInternalServerError, "signin.tmpl", gin.H{
			"Error": "Sign-in failed, please try again.",
			"Next":  c.PostForm("next"),
		})
		return
	}

	logger.Info("Operator signed in", slog.String("operator", name))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, int(h.cfg.SessionExpiryDuration.Seconds()), "/", "", h.cfg.IsProduction, true)

	// Only same-site relative targets; anything else falls back to home.
	next := c.PostForm("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	c.Redirect(http.StatusSeeOther, next)
}

func (h *authHandler) signOut(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusSeeOther, middleware.SignInPath)
}
