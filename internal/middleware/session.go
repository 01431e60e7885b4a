package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName holds the signed operator session token.
const SessionCookieName = "opsdash_session"

// SignInPath is where unauthenticated page requests are redirected.
const SignInPath = "/signin"

// IssueSessionToken signs a session token for an operator name. The name
// becomes the actor identifier forwarded on every backend write.
func IssueSessionToken(operator, secret string, expiry time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   operator,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		Issuer:    "opsdash",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates a session token and returns the operator
// name.
func ParseSessionToken(tokenString, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid session claims")
	}
	return claims.Subject, nil
}

// OperatorSession creates a Gin middleware handler that requires a valid
// session cookie and stores the operator name in the request context.
// Unauthenticated requests are redirected to the sign-in page with the
// original URL preserved so selection survives the round trip.
func OperatorSession(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		cookie, err := c.Cookie(SessionCookieName)
		if err != nil {
			redirectToSignIn(c)
			return
		}
		operator, err := ParseSessionToken(cookie, secret)
		if err != nil {
			logger.Warn("Invalid session token", slog.String("error", err.Error()))
			redirectToSignIn(c)
			return
		}

		ctx := context.WithValue(c.Request.Context(), operatorCtxKey, operator)
		ctx = context.WithValue(ctx, loggerCtxKey, logger.With(slog.String("operator", operator)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func redirectToSignIn(c *gin.Context) {
	target := SignInPath
	if c.Request.Method == http.MethodGet && c.Request.URL.Path != SignInPath {
		target += "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
	}
	c.Redirect(http.StatusSeeOther, target)
	c.Abort()
}

// GetOperatorFromContext retrieves the signed-in operator name.
func GetOperatorFromContext(ctx context.Context) (string, bool) {
	operator, ok := ctx.Value(operatorCtxKey).(string)
	return operator, ok && operator != ""
}
