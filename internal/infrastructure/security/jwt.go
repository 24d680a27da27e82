package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/baechuer/contactbook/internal/application/auth"
	"github.com/baechuer/contactbook/internal/domain"
)

// JWTSigner issues and verifies HS256 session tokens bound to an
// account id. The secret is process-wide configuration loaded once at
// startup; rotation is out of scope.
type JWTSigner struct {
	secret []byte
	issuer string
}

func NewJWTSigner(secret string, issuer string) *JWTSigner {
	return &JWTSigner{
		secret: []byte(secret),
		issuer: issuer,
	}
}

type sessionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) SignSessionToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique jti: iat/exp have second resolution, so without it
			// two logins in the same second would mint identical tokens
			// and the stored-token overwrite would revoke nothing.
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

func (s *JWTSigner) VerifySessionToken(token string) (auth.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrNotAuthorized()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		// Expired and tampered tokens fail the same way for clients.
		return auth.TokenClaims{}, domain.ErrNotAuthorized()
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return auth.TokenClaims{}, domain.ErrNotAuthorized()
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return auth.TokenClaims{UserID: claims.UserID, Exp: exp}, nil
}
