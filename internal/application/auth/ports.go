package auth

import (
	"context"
	"io"
	"time"

	"github.com/baechuer/contactbook/internal/domain"
)

/*
UserRepo
--------
Persistence port for accounts.
Only describes WHAT the auth flows need, not HOW it's stored.
Every update method is a single atomic field write.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// SetSessionToken overwrites the stored session token; "" clears it.
	// Last writer wins: a later login legitimately invalidates an earlier
	// session, logout revokes the current one.
	SetSessionToken(ctx context.Context, userID string, token string) error

	// ConsumeVerificationToken atomically flips Verified and clears the
	// token for the account holding it. An unknown (or already consumed)
	// token yields ErrUserNotFound, which makes re-verification fail
	// not-found instead of re-triggering.
	ConsumeVerificationToken(ctx context.Context, token string) (domain.User, error)

	SetAvatarURL(ctx context.Context, userID string, avatarURL string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt. Compare returns nil on match and must not reveal
where a mismatch occurred.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// TokenClaims is the identity a verified session token carries.
type TokenClaims struct {
	UserID string
	Exp    time.Time
}

/*
TokenSigner
-----------
Issues and verifies signed session tokens (JWT).
Used by the service and the session-authenticator middleware.
Signature validity alone never authorizes a request; the middleware
cross-checks the stored session token.
*/
type TokenSigner interface {
	SignSessionToken(userID string, ttl time.Duration) (string, error)
	VerifySessionToken(token string) (TokenClaims, error)
}

/*
VerificationTokens
------------------
Opaque one-time tokens for email confirmation. Unrelated to the
signing scheme above.
*/
type VerificationTokens interface {
	New() (string, error)
}

// Message is an outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

/*
Mailer
------
Fire-and-forget side channel. A send failure must never fail the
calling request; the service logs and moves on. No retries.
*/
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

/*
AvatarStore
-----------
Receives the raw upload, resizes it to the fixed square dimension and
relocates it into the public avatars directory under a name embedding
the account id. Returns the public URL path.
*/
type AvatarStore interface {
	Store(ctx context.Context, userID, originalName string, r io.Reader) (string, error)
}
