// Package notify publishes crisis events to RabbitMQ so that humans can follow up.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/PabloGalante/farum-triage/internal/domain"
	"github.com/PabloGalante/farum-triage/internal/observability"
)

const DefaultExchange = "farum.crisis"

// Channel is the part of *amqp.Channel the notifier publishes with.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier implements domain.CrisisNotifier. Events go to a topic exchange with
// routing key "crisis.<tier>".
type AMQPNotifier struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  Channel
	exchange string
}

// Dial connects to the broker and declares the durable topic exchange.
func Dial(url, exchange string) (*AMQPNotifier, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq connect: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare exchange %s: %w", exchange, err)
	}

	n := NewAMQPNotifier(ch, exchange)
	n.conn = conn
	return n, nil
}

func NewAMQPNotifier(ch Channel, exchange string) *AMQPNotifier {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &AMQPNotifier{channel: ch, exchange: exchange}
}

// RoutingKey is the topic an event of the given tier is published under.
func RoutingKey(tier domain.CrisisTier) string {
	return "crisis." + tier.String()
}

func (n *AMQPNotifier) NotifyCrisis(ctx context.Context, event domain.CrisisEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	err = n.channel.PublishWithContext(ctx, n.exchange, RoutingKey(event.Tier),
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    string(event.SessionID) + "-" + event.At.UTC().Format("20060102T150405.000"),
			Timestamp:    event.At,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish crisis event: %w", err)
	}

	observability.WithFields("session_id", event.SessionID, "tier", event.Tier.String()).
		Infow("crisis event published", "exchange", n.exchange)
	return nil
}

func (n *AMQPNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	err := n.channel.Close()
	if n.conn != nil {
		if cerr := n.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
