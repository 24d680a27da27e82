package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/baechuer/contactbook/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

const userColumns = `id, email, password_hash, subscription, avatar_url, session_token, verified, verification_token`

type userRow struct {
	ID                string
	Email             string
	PasswordHash      string
	Subscription      string
	AvatarURL         string
	SessionToken      sql.NullString
	Verified          bool
	VerificationToken sql.NullString
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserRow(row rowScanner) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Email,
		&ur.PasswordHash,
		&ur.Subscription,
		&ur.AvatarURL,
		&ur.SessionToken,
		&ur.Verified,
		&ur.VerificationToken,
	)
	return ur, err
}

func toDomainUser(ur userRow) domain.User {
	return domain.User{
		ID:                ur.ID,
		Email:             ur.Email,
		PasswordHash:      ur.PasswordHash,
		Subscription:      domain.Subscription(ur.Subscription),
		AvatarURL:         ur.AvatarURL,
		SessionToken:      ur.SessionToken.String,
		Verified:          ur.Verified,
		VerificationToken: ur.VerificationToken.String,
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ---------- auth.UserRepo ----------

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.ID == "" || u.Email == "" || u.PasswordHash == "" {
		return domain.User{}, domain.ErrInternal(errors.New("incomplete user record"))
	}
	if u.Subscription == "" {
		u.Subscription = domain.SubscriptionStarter
	}

	const q = `
INSERT INTO users (id, email, password_hash, subscription, avatar_url, verified, verification_token)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING ` + userColumns + `;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q,
		u.ID, u.Email, u.PasswordHash, string(u.Subscription), u.AvatarURL,
		u.Verified, nullable(u.VerificationToken),
	))
	if err != nil {
		// The unique index on email backs the duplicate-registration 409.
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return domain.User{}, domain.ErrEmailInUse()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

// SetSessionToken is a single-statement write: concurrent logins for
// one account resolve as last-writer-wins on the stored token.
func (r *UserRepo) SetSessionToken(ctx context.Context, userID string, token string) error {
	const q = `
UPDATE users
SET session_token = $2
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, userID, nullable(token))
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

// ConsumeVerificationToken flips verified and clears the token in one
// atomic statement keyed by the token itself, so a consumed token is
// simply unfindable on the second attempt.
func (r *UserRepo) ConsumeVerificationToken(ctx context.Context, token string) (domain.User, error) {
	const q = `
UPDATE users
SET verified = TRUE,
    verification_token = NULL
WHERE verification_token = $1
RETURNING ` + userColumns + `;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, token))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) SetAvatarURL(ctx context.Context, userID string, avatarURL string) error {
	const q = `
UPDATE users
SET avatar_url = $2
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, userID, avatarURL)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}
