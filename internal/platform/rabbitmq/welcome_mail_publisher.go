package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"kekambas-blog/internal/mail"
)

type WelcomeMailPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewWelcomeMailPublisher(conn *amqp.Connection, queueName string) *WelcomeMailPublisher {
	return &WelcomeMailPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *WelcomeMailPublisher) Publish(ctx context.Context, msg mail.WelcomeEmail) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal welcome email failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish welcome email failed: %w", err)
	}
	return nil
}
