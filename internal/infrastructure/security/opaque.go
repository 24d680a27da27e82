package security

import (
	"crypto/rand"
	"encoding/base64"
)

// OpaqueTokens generates unguessable one-time tokens for email
// confirmation: 32 random bytes, URL-safe base64. No relation to the
// JWT signing scheme.
type OpaqueTokens struct{}

func NewOpaqueTokens() *OpaqueTokens { return &OpaqueTokens{} }

func (OpaqueTokens) New() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
