package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baechuer/contactbook/internal/application/auth"
	"github.com/baechuer/contactbook/internal/domain"
)

type SessionVerifier interface {
	VerifySessionToken(token string) (auth.TokenClaims, error)
}

// AccountLoader is the slice of the user repo the middleware needs.
type AccountLoader interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Session authenticates Authorization: Bearer <token>.
//
// A request passes only when all four hold, in order: the header
// carries a well-formed bearer token, the signature verifies, the
// account exists, and the presented token equals the token stored on
// the account. Signature validity alone is not enough; a later login
// or a logout replaces or clears the stored token and every older
// token dies with it, with no revocation list to consult.
//
// Unverified accounts are rejected last with their own message so the
// client can tell "verify your email" apart from "log in again".
func Session(verifier SessionVerifier, users AccountLoader, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeErr(w, r, domain.ErrNotAuthorized())
				return
			}

			claims, err := verifier.VerifySessionToken(raw)
			if err != nil {
				writeErr(w, r, domain.ErrNotAuthorized())
				return
			}
			if strings.TrimSpace(claims.UserID) == "" {
				writeErr(w, r, domain.ErrNotAuthorized())
				return
			}

			u, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				writeErr(w, r, domain.ErrNotAuthorized())
				return
			}

			if u.SessionToken == "" || u.SessionToken != raw {
				writeErr(w, r, domain.ErrNotAuthorized())
				return
			}

			if !u.Verified {
				writeErr(w, r, domain.ErrAccountNotVerified())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	// The scheme is the literal "Bearer"; "bearer" is malformed.
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}
