package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quizforge/mocktest/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const attemptSubmittedQueue = "attempt.submitted"

// AttemptSubmittedEvent is published after an attempt is scored.
type AttemptSubmittedEvent struct {
	AttemptID      string    `json:"attemptId"`
	UserID         uint      `json:"userId"`
	TestID         uint      `json:"testId"`
	TestTitle      string    `json:"testTitle"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     float64   `json:"percentage"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// Publisher fans submission events out to downstream consumers (notifications,
// analytics). A nil *RabbitPublisher is a valid no-op publisher.
type Publisher interface {
	PublishAttemptSubmitted(ctx context.Context, evt AttemptSubmittedEvent) error
}

type RabbitPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewRabbitPublisher(cfg *config.Config) (*RabbitPublisher, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := channel.QueueDeclare(
		attemptSubmittedQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &RabbitPublisher{conn: conn, channel: channel}, nil
}

func (p *RabbitPublisher) Close() error {
	if p == nil {
		return nil
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *RabbitPublisher) PublishAttemptSubmitted(ctx context.Context, evt AttemptSubmittedEvent) error {
	if p == nil {
		return nil
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	err = p.channel.PublishWithContext(
		ctx,
		"",                    // exchange
		attemptSubmittedQueue, // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish attempt.submitted: %w", err)
	}
	log.Debug().Str("attemptID", evt.AttemptID).Msg("Published attempt.submitted event")
	return nil
}
