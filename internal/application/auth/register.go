package auth

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/contactbook/internal/domain"
	"github.com/baechuer/contactbook/internal/logger"
)

// gravatarURL derives the deterministic placeholder avatar for an email.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://gravatar.com/avatar/%s.jpg?d=robohash", hex.EncodeToString(sum[:]))
}

// Register creates a new account. With email verification enabled the
// account starts unverified, holding a one-time verification token that
// is also mailed out; with verification disabled it starts verified and
// no email is sent. The response never carries the password hash or the
// verification token.
func (s *Service) Register(ctx context.Context, email, password string) (RegisterResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return RegisterResult{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return RegisterResult{}, domain.ErrMissingField("password")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return RegisterResult{}, domain.ErrEmailInUse()
	} else if !domain.Is(err, "user_not_found") {
		return RegisterResult{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return RegisterResult{}, err
		}
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Subscription: domain.SubscriptionStarter,
		AvatarURL:    gravatarURL(email),
		Verified:     !s.verifyEnabled,
	}

	if s.verifyEnabled {
		token, err := s.vtok.New()
		if err != nil {
			return RegisterResult{}, domain.ErrRandomFailed(err)
		}
		u.VerificationToken = token
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return RegisterResult{}, err
	}

	if s.verifyEnabled {
		// Fire-and-forget: a mail failure must not roll back the account.
		if err := s.mailer.Send(ctx, s.verificationMail(created.Email, created.VerificationToken)); err != nil {
			logger.WithCtx(ctx).Error().
				Err(err).
				Str("user_id", created.ID).
				Msg("verification email send failed")
		}
	}

	s.audit("register", map[string]string{"user_id": created.ID})
	return RegisterResult{User: created}, nil
}
