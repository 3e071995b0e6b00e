// Package notify delivers user notifications over RabbitMQ. Delivery is
// best-effort: every error is returned to the caller, which logs and moves
// on. A failed notification never affects a committed booking transition.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"roombook/internal/pkg/config"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationEvent is the queue payload consumed by the mailer worker.
type NotificationEvent struct {
	UserID    uuid.UUID `json:"user_id"`
	RequestID uuid.UUID `json:"request_id"`
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	SentAt    time.Time `json:"sent_at"`
}

type AMQPNotifier struct {
	cfg config.AMQPConfig

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewNotifier returns a no-op notifier when AMQP is disabled, so local
// development needs no broker.
func NewNotifier(cfg config.AMQPConfig) commands.Notifier {
	if cfg.Disabled {
		return NopNotifier{}
	}
	return &AMQPNotifier{cfg: cfg}
}

func (n *AMQPNotifier) Notify(ctx context.Context, userID, requestID uuid.UUID, message, category string) error {
	ch, err := n.channel()
	if err != nil {
		return err
	}

	body, err := json.Marshal(NotificationEvent{
		UserID:    userID,
		RequestID: requestID,
		Message:   message,
		Category:  category,
		SentAt:    time.Now().UTC(),
	})
	if err != nil {
		return errs.Wrap(err, "failed to marshal notification event")
	}

	err = ch.PublishWithContext(ctx,
		"",              // default exchange
		n.cfg.QueueName, // routing key = queue name
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		n.reset()
		return errs.Wrap(err, "failed to publish notification")
	}
	return nil
}

// channel lazily dials and declares the durable queue, reusing the
// connection across publishes until it breaks.
func (n *AMQPNotifier) channel() (*amqp.Channel, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ch != nil && !n.conn.IsClosed() {
		return n.ch, nil
	}

	conn, err := amqp.Dial(n.cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to dial broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open channel")
	}
	if _, err := ch.QueueDeclare(
		n.cfg.QueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to declare queue")
	}

	n.conn = conn
	n.ch = ch
	return ch, nil
}

func (n *AMQPNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ch != nil {
		_ = n.ch.Close()
		n.ch = nil
	}
	if n.conn != nil {
		_ = n.conn.Close()
		n.conn = nil
	}
}

func (n *AMQPNotifier) Close() {
	n.reset()
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, uuid.UUID, uuid.UUID, string, string) error {
	return nil
}
