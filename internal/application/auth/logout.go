package auth

import "context"

// Logout clears the stored session token. Once cleared, the token the
// caller presented no longer authenticates, so a second logout with the
// same token cannot reach this point.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.users.SetSessionToken(ctx, userID, ""); err != nil {
		return err
	}
	s.audit("logout", map[string]string{"user_id": userID})
	return nil
}
