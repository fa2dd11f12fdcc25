package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieOptions describes how the session cookie is issued. The cookie is
// HTTP-only and same-site restricted: page scripts never see the token.
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

func SetSessionCookie(c *gin.Context, opts CookieOptions, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     opts.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(c *gin.Context, opts CookieOptions) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest extracts the session token from the request cookie.
// An absent cookie yields an empty token.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	cookie, err := c.Request.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
