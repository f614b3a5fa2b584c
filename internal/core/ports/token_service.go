package ports

import (
	"time"

	"github.com/openboard/forum-api/internal/core/domain"
)

// ParsedToken is the result of validating a signed token.
type ParsedToken struct {
	Principal domain.Principal
	// TokenID is the token's jti claim, used for revocation on logout.
	TokenID   string
	ExpiresAt time.Time
}

// TokenService issues and validates signed identity tokens.
type TokenService interface {
	// Issue returns a compact signed token embedding the principal's
	// identity plus issuer, audience and a fixed expiry.
	Issue(p domain.Principal) (string, error)
	// Parse validates signature, expiry, issuer and audience. Any failure
	// yields an error; callers treat the request as anonymous.
	Parse(token string) (*ParsedToken, error)
}
