package auth

import (
	"fmt"
	"time"

	"github.com/baechuer/contactbook/internal/domain"
)

// Service composes the account lifecycle use cases: register, login,
// logout, current profile, email verification and avatar updates.
//
// One service covers both deployment variants; the feature flags in
// Config decide whether registration gates on email verification and
// whether avatar upload is exposed.
type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner
	vtok   VerificationTokens
	mailer Mailer
	avatar AvatarStore

	sessionTTL time.Duration
	baseURL    string
	mailFrom   string

	verifyEnabled bool
	avatarEnabled bool

	audit func(action string, fields map[string]string)
}

type Config struct {
	SessionTTL               time.Duration
	BaseURL                  string
	MailFrom                 string
	EmailVerificationEnabled bool
	AvatarUploadEnabled      bool
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	vtok VerificationTokens,
	mailer Mailer,
	avatar AvatarStore,
	cfg Config,
) *Service {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 23 * time.Hour
	}
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,
		vtok:   vtok,
		mailer: mailer,
		avatar: avatar,

		sessionTTL:    ttl,
		baseURL:       cfg.BaseURL,
		mailFrom:      cfg.MailFrom,
		verifyEnabled: cfg.EmailVerificationEnabled,
		avatarEnabled: cfg.AvatarUploadEnabled,

		audit: func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// RegisterResult carries the created account. The session token is NOT
// part of it: the account logs in separately.
type RegisterResult struct {
	User domain.User
}

// LoginResult carries the signed session token plus the account.
type LoginResult struct {
	User  domain.User
	Token string
}

// verificationMail builds the confirmation email for a stored token.
func (s *Service) verificationMail(email, token string) Message {
	link := fmt.Sprintf("%s/api/users/verify/%s", s.baseURL, token)
	return Message{
		To:      email,
		Subject: "Verify email",
		HTML:    fmt.Sprintf(`To confirm your registration please click on the <a href="%s">verify email</a> link`, link),
		Text:    fmt.Sprintf("To confirm your registration please open the link %s", link),
	}
}
