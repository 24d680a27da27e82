package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/baechuer/contactbook/internal/application/auth"
)

const (
	DefaultExchange = "contactbook.mail"
	routingKey      = "mail.outbound"

	// Minimum window to wait for Return / Confirm.
	publishWait = 150 * time.Millisecond
)

// Mailer publishes outbound email messages to a topic exchange; a mail
// worker consumes and delivers them. From the caller's standpoint this
// is the fire-and-forget side channel: one attempt, no retry.
type Mailer struct {
	url      string
	exchange string
	from     string

	mu sync.Mutex

	conn *amqp.Connection
	ch   *amqp.Channel

	confirmCh <-chan amqp.Confirmation
	returnCh  <-chan amqp.Return
}

func NewMailer(url, from string) (*Mailer, error) {
	m := &Mailer{
		url:      url,
		exchange: DefaultExchange,
		from:     from,
	}
	if err := m.connect(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mailer) SetExchange(name string) {
	if name != "" {
		m.exchange = name
	}
}

func (m *Mailer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	return nil
}

// ---- auth.Mailer ----

type outboundMail struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

func (m *Mailer) Send(ctx context.Context, msg auth.Message) error {
	return m.publishJSON(ctx, outboundMail{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
}

// ---- internal ----

func (m *Mailer) connect() error {
	conn, err := amqp.Dial(m.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	// Declare topic exchange (idempotent).
	if err := ch.ExchangeDeclare(
		m.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false,
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("exchange declare: %w", err)
	}

	// Enable confirm mode so a nack surfaces as an error to log.
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("confirm mode: %w", err)
	}

	m.confirmCh = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	m.returnCh = ch.NotifyReturn(make(chan amqp.Return, 1))

	m.conn = conn
	m.ch = ch
	return nil
}

func (m *Mailer) ensureConnected() error {
	if m.conn != nil && !m.conn.IsClosed() && m.ch != nil {
		return nil
	}
	return m.connect()
}

func (m *Mailer) publishJSON(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	// Ensure there is a deadline to avoid blocking a request forever.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureConnected(); err != nil {
		return err
	}

	// Drain stale confirm / return frames from a previous publish.
drain:
	for {
		select {
		case <-m.confirmCh:
		case <-m.returnCh:
		default:
			break drain
		}
	}

	if err := m.ch.PublishWithContext(
		ctx,
		m.exchange,
		routingKey,
		true,  // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	); err != nil {
		m.reset()
		return fmt.Errorf("publish failed: %w", err)
	}

	select {
	case ret := <-m.returnCh:
		// No queue bound for the routing key.
		return fmt.Errorf("rabbitmq unroutable: code=%d text=%s", ret.ReplyCode, ret.ReplyText)

	case conf := <-m.confirmCh:
		if !conf.Ack {
			return fmt.Errorf("rabbitmq nack: deliveryTag=%d", conf.DeliveryTag)
		}
		return nil

	case <-time.After(publishWait):
		return fmt.Errorf("rabbitmq publish timeout")

	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mailer) reset() {
	if m.ch != nil {
		_ = m.ch.Close()
		m.ch = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
}
