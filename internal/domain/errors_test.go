package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_MessageAndCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := Wrap(KindInternal, "internal_error", "Server error", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected Unwrap to expose the cause")
	}
	if got := err.Error(); got == "" || got == "Server error" {
		t.Fatalf("expected kind and code in message, got %q", got)
	}
}

func TestIs_MatchesCode(t *testing.T) {
	t.Parallel()

	err := ErrUserNotFound()
	if !Is(err, "user_not_found") {
		t.Fatal("expected code match")
	}
	if Is(err, "contact_not_found") {
		t.Fatal("unexpected code match")
	}
	if Is(nil, "user_not_found") {
		t.Fatal("nil must not match")
	}
	if Is(errors.New("plain"), "user_not_found") {
		t.Fatal("plain error must not match")
	}
}

func TestIs_SeesThroughWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("handler: %w", ErrEmailInUse())
	if !Is(err, "email_in_use") {
		t.Fatal("expected match through wrapping")
	}
}

func TestClientMessages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *Error
		want string
	}{
		{ErrEmailInUse(), "Email in use"},
		{ErrInvalidCredentials(), "Email or password is wrong"},
		{ErrEmailNotVerified(), "Email not verified"},
		{ErrAccountNotVerified(), "Your account is not verified"},
		{ErrNotAuthorized(), "Not authorized"},
		{ErrUserNotFound(), "User not found"},
		{ErrContactNotFound(), "Contact not found"},
		{ErrRouteNotFound(), "Route not found"},
		{ErrFileNotUploaded(), "File not uploaded"},
		{ErrAlreadyVerified(), "Verification has already been passed"},
		{ErrEmptyBody(), "Body must have at least one field"},
		{ErrMissingField("email"), "missing required field email"},
	}

	for _, c := range cases {
		if c.err.Message != c.want {
			t.Fatalf("code %s: got %q, want %q", c.err.Code, c.err.Message, c.want)
		}
	}
}

func TestKinds(t *testing.T) {
	t.Parallel()

	if ErrEmailInUse().Kind != KindConflict {
		t.Fatal("email_in_use should be a conflict")
	}
	if ErrAccountNotVerified().Kind != KindAuth {
		t.Fatal("account_not_verified should be auth")
	}
	if ErrContactNotFound().Kind != KindNotFound {
		t.Fatal("contact_not_found should be not_found")
	}
	if ErrEmptyBody().Kind != KindValidation {
		t.Fatal("empty_body should be validation")
	}
}
