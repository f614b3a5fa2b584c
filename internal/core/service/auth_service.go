package service

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openboard/forum-api/internal/core/domain"
	"github.com/openboard/forum-api/internal/core/ports"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 28
	passwordMinLen = 16
)

// AuthService implements registration, login and logout.
type AuthService struct {
	users   ports.UserRepository
	tokens  ports.TokenService
	revoker ports.TokenRevoker
	logger  zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, revoker ports.TokenRevoker, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, revoker: revoker, logger: logger}
}

// Register creates a Member account and issues a token for it. Validation
// happens before any write.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, string, error) {
	if l := len(username); l < usernameMinLen || l > usernameMaxLen {
		return nil, "", fmt.Errorf("%w: username must be %d-%d characters", domain.ErrValidation, usernameMinLen, usernameMaxLen)
	}
	if err := checkPasswordPolicy(password); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(domain.Principal{
		UserID:   created.ID,
		Username: created.Username,
		Role:     created.Role,
	})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("user registered")
	return created, token, nil
}

// Login verifies credentials and issues a fresh token. A missing user and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")
	return user, token, nil
}

// Logout revokes the token for its remaining lifetime. Clearing the cookie
// alone would leave the token valid until exp.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, tokenID, ttl)
}

// checkPasswordPolicy enforces the registration password rules: at least
// passwordMinLen characters with an upper, a lower, a digit and a symbol.
func checkPasswordPolicy(password string) error {
	if len(password) < passwordMinLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, passwordMinLen)
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return fmt.Errorf("%w: password must contain upper and lower case letters, a digit and a symbol", domain.ErrValidation)
	}
	return nil
}
