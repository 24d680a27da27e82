package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/baechuer/contactbook/internal/domain"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func userRows(u domain.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "subscription", "avatar_url",
		"session_token", "verified", "verification_token",
	}).AddRow(
		u.ID, u.Email, u.PasswordHash, string(u.Subscription), u.AvatarURL,
		nullable(u.SessionToken), u.Verified, nullable(u.VerificationToken),
	)
}

func sampleUser() domain.User {
	return domain.User{
		ID:                "u1",
		Email:             "a@b.com",
		PasswordHash:      "hash",
		Subscription:      domain.SubscriptionStarter,
		AvatarURL:         "https://gravatar.com/avatar/x.jpg?d=robohash",
		Verified:          false,
		VerificationToken: "vt-1",
	}
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)
	u := sampleUser()

	mock.ExpectQuery(`(?s)SELECT .+ FROM users\s+WHERE email = \$1`).
		WithArgs("a@b.com").
		WillReturnRows(userRows(u))

	got, err := repo.GetByEmail(context.Background(), " A@B.com ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "u1" || got.VerificationToken != "vt-1" {
		t.Fatalf("unexpected user %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(`(?s)SELECT .+ FROM users\s+WHERE email = \$1`).
		WithArgs("a@b.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "a@b.com")
	if !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestUserRepo_GetByID_EmptyID(t *testing.T) {
	db, _ := newMock(t)
	repo := NewUserRepo(db)

	_, err := repo.GetByID(context.Background(), "  ")
	if !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestUserRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)
	u := sampleUser()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(u.ID, u.Email, u.PasswordHash, "starter", u.AvatarURL, false, "vt-1").
		WillReturnRows(userRows(u))

	created, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Email != "a@b.com" {
		t.Fatalf("unexpected user %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)
	u := sampleUser()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

	_, err := repo.Create(context.Background(), u)
	if !domain.Is(err, "email_in_use") {
		t.Fatalf("expected email_in_use, got %v", err)
	}
}

func TestUserRepo_SetSessionToken(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(`UPDATE users\s+SET session_token = \$2\s+WHERE id = \$1`).
		WithArgs("u1", "tok").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetSessionToken(context.Background(), "u1", "tok"); err != nil {
		t.Fatalf("set: %v", err)
	}
}

func TestUserRepo_SetSessionToken_ClearStoresNull(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(`UPDATE users\s+SET session_token = \$2\s+WHERE id = \$1`).
		WithArgs("u1", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetSessionToken(context.Background(), "u1", ""); err != nil {
		t.Fatalf("clear: %v", err)
	}
}

func TestUserRepo_SetSessionToken_UnknownUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(`UPDATE users`).
		WithArgs("ghost", "tok").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetSessionToken(context.Background(), "ghost", "tok")
	if !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestUserRepo_ConsumeVerificationToken(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	u := sampleUser()
	u.Verified = true
	u.VerificationToken = ""

	mock.ExpectQuery(`UPDATE users\s+SET verified = TRUE`).
		WithArgs("vt-1").
		WillReturnRows(userRows(u))

	got, err := repo.ConsumeVerificationToken(context.Background(), "vt-1")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if !got.Verified || got.VerificationToken != "" {
		t.Fatalf("unexpected user %+v", got)
	}
}

func TestUserRepo_ConsumeVerificationToken_Unknown(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(`UPDATE users\s+SET verified = TRUE`).
		WithArgs("spent").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.ConsumeVerificationToken(context.Background(), "spent")
	if !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestUserRepo_SetAvatarURL(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(`UPDATE users\s+SET avatar_url = \$2`).
		WithArgs("u1", "/avatars/u1-me.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetAvatarURL(context.Background(), "u1", "/avatars/u1-me.png"); err != nil {
		t.Fatalf("set: %v", err)
	}
}
