package memory

import (
	"context"
	"testing"

	"github.com/baechuer/contactbook/internal/application/auth"
)

func TestNoopMailer_CapturesMessages(t *testing.T) {
	t.Parallel()

	m := NewNoopMailer()

	err := m.Send(context.Background(), auth.Message{To: "a@b.com", Subject: "Verify email"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	sent := m.Sent()
	if len(sent) != 1 || sent[0].To != "a@b.com" {
		t.Fatalf("unexpected capture %+v", sent)
	}

	// the accessor must return a copy
	sent[0].To = "mutated"
	if m.Sent()[0].To != "a@b.com" {
		t.Fatal("internal slice leaked")
	}
}
