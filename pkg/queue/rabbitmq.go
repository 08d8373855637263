package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"media-feed/pkg/config"
	"media-feed/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	PostEventsExchange = "post_events"
	PostEventsQueue    = "post_events_queue"

	EventPostCreated = "post.created"
	EventPostDeleted = "post.deleted"
)

// PostEvent is published after a post has been committed or removed.
type PostEvent struct {
	Type       string    `json:"type"`
	PostID     string    `json:"post_id"`
	URL        string    `json:"url,omitempty"`
	FileType   string    `json:"file_type,omitempty"`
	FileName   string    `json:"file_name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		PostEventsExchange, // name
		"topic",            // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		PostEventsQueue, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		PostEventsQueue,    // queue name
		"post.*",           // routing key
		PostEventsExchange, // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishPostEvent publishes event to the post events exchange, routed by its type.
func (c *Client) PublishPostEvent(ctx context.Context, event PostEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	if err := c.channel.PublishWithContext(ctx, PostEventsExchange, event.Type, false, false, msg); err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish %s for post_id=%s: %v", event.Type, event.PostID, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Debug("[RABBITMQ] Published %s for post_id=%s", event.Type, event.PostID)
	return nil
}

func newPublishing(event PostEvent) (amqp.Publishing, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
	}, nil
}
