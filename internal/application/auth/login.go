package auth

import (
	"context"
	"strings"

	"github.com/baechuer/contactbook/internal/domain"
)

// Login authenticates an account and issues a fresh session token,
// overwriting any previously stored one (single active session).
// IMPORTANT: an unknown email and a wrong password must be
// indistinguishable (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials.
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	// The verification gate: correct credentials are not enough while
	// the account has not confirmed its email.
	if !u.Verified {
		return LoginResult{}, domain.ErrEmailNotVerified()
	}

	token, err := s.signer.SignSessionToken(u.ID, s.sessionTTL)
	if err != nil {
		return LoginResult{}, err
	}

	if err := s.users.SetSessionToken(ctx, u.ID, token); err != nil {
		return LoginResult{}, err
	}
	u.SessionToken = token

	s.audit("login", map[string]string{"user_id": u.ID})
	return LoginResult{User: u, Token: token}, nil
}
