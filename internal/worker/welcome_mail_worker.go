package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"kekambas-blog/internal/logger"
	"kekambas-blog/internal/mail"
)

// WelcomeMailWorker consumes queued registration notifications and hands
// them to the mail sender. Delivery is best effort: a failed send is
// nacked without requeue and logged, never retried.
type WelcomeMailWorker struct {
	conn      *amqp.Connection
	sender    mail.Sender
	queueName string
	log       *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWelcomeMailWorker(conn *amqp.Connection, sender mail.Sender, queueName string, log *logger.Logger) *WelcomeMailWorker {
	return &WelcomeMailWorker{
		conn:      conn,
		sender:    sender,
		queueName: queueName,
		log:       log,
	}
}

func (w *WelcomeMailWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var msg mail.WelcomeEmail
				if err := json.Unmarshal(d.Body, &msg); err != nil {
					w.log.Errorw("decode welcome email failed", "err", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.sender.Send(workerCtx, msg); err != nil {
					w.log.Errorw("send welcome email failed", "to", msg.To, "err", err)
					_ = d.Nack(false, false)
					continue
				}

				w.log.Infow("welcome email sent", "to", msg.To)
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *WelcomeMailWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
