package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
)

// statusChangeEvent is the message published when a reimbursement request
// changes state. A downstream mailer consumes it; this service never sends
// email itself.
type statusChangeEvent struct {
	Email      string    `json:"email"`
	RequestID  string    `json:"requestID"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers reimbursement status notifications over a topic
// exchange.
type Publisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

var _ portssvc.Notifier = (*Publisher)(nil)

// NewPublisher connects to the broker and declares the exchange.
func NewPublisher(amqpURL string, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// SendStatusChangeNotification publishes a status change event. The routing
// key carries the new status so consumers can subscribe selectively, e.g.
// "reimbursement.status.approved".
func (p *Publisher) SendStatusChangeNotification(ctx context.Context, email string, requestID string, status domain.ReimbursementStatus) error {
	event := statusChangeEvent{
		Email:      email,
		RequestID:  requestID,
		Status:     string(status),
		OccurredAt: time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status change event: %w", err)
	}

	routingKey := "reimbursement.status." + strings.ToLower(string(status))
	if err := p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		return fmt.Errorf("failed to publish status change for request %s: %w", requestID, err)
	}
	return nil
}

// Close gracefully closes the channel and connection.
func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
