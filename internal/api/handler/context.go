package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openboard/forum-api/internal/api/middleware"
	"github.com/openboard/forum-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware.
// A nil result means the request is anonymous (OptionalAuth routes only).
func ctxPrincipal(c echo.Context) *domain.Principal {
	p, _ := c.Get(middleware.ContextKeyPrincipal).(*domain.Principal)
	return p
}

// ctxToken returns the validated token's id and expiry, needed for
// revocation on logout.
func ctxToken(c echo.Context) (tokenID string, expiresAt time.Time) {
	tokenID, _ = c.Get(middleware.ContextKeyTokenID).(string)
	expiresAt, _ = c.Get(middleware.ContextKeyTokenExp).(time.Time)
	return tokenID, expiresAt
}
