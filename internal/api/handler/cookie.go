package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openboard/forum-api/internal/api/middleware"
)

const authCookieTTL = time.Hour

// setAuthCookie delivers the token as an HttpOnly, Secure, SameSite=Strict
// cookie. The token never travels in a header or response body.
func setAuthCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(authCookieTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookie expires the auth cookie immediately.
func clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
