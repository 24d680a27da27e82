package auth

import (
	"context"
	"strings"

	"github.com/baechuer/contactbook/internal/domain"
)

// Verify consumes a verification token: it flips Verified and clears
// the token in one atomic update. A reused or unknown token is no
// longer findable and fails not-found, which makes the flow idempotent
// in its failure mode.
func (s *Service) Verify(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrUserNotFound()
	}

	u, err := s.users.ConsumeVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	s.audit("verify_email", map[string]string{"user_id": u.ID})
	return nil
}

// ResendVerification re-sends the confirmation email for an unverified
// account. The stored token is reused rather than regenerated, so the
// link in the original email stays valid.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.ErrMissingField("email")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// The original flow reports the missing account as a missing
		// field, not as not-found.
		if domain.Is(err, "user_not_found") {
			return domain.ErrMissingField("email")
		}
		return err
	}

	// Never mail a verification link to an already-verified account.
	if u.Verified {
		return domain.ErrAlreadyVerified()
	}

	if err := s.mailer.Send(ctx, s.verificationMail(u.Email, u.VerificationToken)); err != nil {
		return domain.ErrInternal(err)
	}

	s.audit("resend_verification", map[string]string{"user_id": u.ID})
	return nil
}
