package memory

import (
	"context"
	"sync"

	"github.com/baechuer/contactbook/internal/application/auth"
	"github.com/baechuer/contactbook/internal/logger"
)

// NoopMailer logs outbound mail instead of dispatching it. Bootstrap
// falls back to it in dev when no broker is configured; tests use it
// to capture what would have been sent.
type NoopMailer struct {
	mu   sync.Mutex
	sent []auth.Message
}

func NewNoopMailer() *NoopMailer { return &NoopMailer{} }

func (m *NoopMailer) Send(ctx context.Context, msg auth.Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()

	logger.WithCtx(ctx).Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("noop mailer: email suppressed")
	return nil
}

// Sent returns a copy of everything captured so far.
func (m *NoopMailer) Sent() []auth.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]auth.Message, len(m.sent))
	copy(out, m.sent)
	return out
}
