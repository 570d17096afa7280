package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/plushmarket/storefront/internal/model"
	"github.com/plushmarket/storefront/internal/store"
)

const (
	reconcileQueueName = "payments.reconcile"
	dlxExchange        = "payments.dlx"
	dlqQueueName       = "payments.dlq"
	idempotencyTTL     = 24 * time.Hour
)

// PaymentWorker verifies a session's terminal status with the store after a
// completed checkout and records the outcome on the order. The store stays
// the authority: the worker never infers payment from the message alone.
type PaymentWorker struct {
	channel     *amqp.Channel
	payments    store.PaymentClient
	orders      store.OrderClient
	redisClient *redis.Client
	log         *slog.Logger
	done        chan struct{}
}

func NewPaymentWorker(
	ch *amqp.Channel,
	payments store.PaymentClient,
	orders store.OrderClient,
	redisClient *redis.Client,
	log *slog.Logger,
) *PaymentWorker {
	return &PaymentWorker{
		channel:     ch,
		payments:    payments,
		orders:      orders,
		redisClient: redisClient,
		log:         log,
		done:        make(chan struct{}),
	}
}

// SetupRabbitMQ declares exchanges, queues, and bindings (DLX/DLQ).
func SetupRabbitMQ(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(dlxExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLX: %w", err)
	}
	if _, err := ch.QueueDeclare(dlqQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}
	if err := ch.QueueBind(dlqQueueName, reconcileQueueName, dlxExchange, false, nil); err != nil {
		return fmt.Errorf("bind DLQ: %w", err)
	}
	if _, err := ch.QueueDeclare(reconcileQueueName, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    dlxExchange,
		"x-dead-letter-routing-key": reconcileQueueName,
	}); err != nil {
		return fmt.Errorf("declare reconcile queue: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set QoS: %w", err)
	}
	return nil
}

func (w *PaymentWorker) Start(ctx context.Context) error {
	msgs, err := w.channel.Consume(reconcileQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				w.processMessage(ctx, msg)
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	w.log.Info("payment worker started")
	return nil
}

func (w *PaymentWorker) Stop() { close(w.done) }

func (w *PaymentWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	var rec model.ReconcileMessage
	if err := json.Unmarshal(msg.Body, &rec); err != nil {
		w.log.Error("unmarshal reconcile message", "error", err)
		_ = msg.Nack(false, false)
		return
	}

	log := w.log.With("attempt_id", rec.AttemptID, "order_id", rec.OrderID)

	// Idempotency check via Redis
	idempotencyKey := "payment_reconciled:" + rec.AttemptID.String()
	exists, err := w.redisClient.Exists(ctx, idempotencyKey).Result()
	if err != nil {
		log.Error("check idempotency key", "error", err)
		_ = msg.Nack(false, true)
		return
	}
	if exists > 0 {
		log.Info("attempt already reconciled, skipping")
		_ = msg.Ack(false)
		return
	}

	if err := w.reconcile(ctx, rec); err != nil {
		log.Error("reconcile payment failed", "error", err)
		_ = msg.Nack(false, false) // → DLQ
		return
	}

	if err := w.redisClient.Set(ctx, idempotencyKey, "1", idempotencyTTL).Err(); err != nil {
		log.Error("set idempotency key", "error", err)
	}

	_ = msg.Ack(false)
	log.Info("payment reconciled")
}

func (w *PaymentWorker) reconcile(ctx context.Context, rec model.ReconcileMessage) error {
	status, err := w.payments.GetSessionStatus(ctx, rec.SessionID)
	if err != nil {
		return fmt.Errorf("get session status: %w", err)
	}

	switch st := status.(type) {
	case model.SessionCompleted:
		if err := w.orders.UpdateOrderPaymentStatus(ctx, "", rec.OrderID, "paid"); err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
	case model.SessionFailed:
		// The buyer saw a success redirect but the store disagrees. Record
		// the store's verdict; nothing to retry here.
		w.log.Warn("session not completed on reconcile",
			"attempt_id", rec.AttemptID, "order_id", rec.OrderID, "error", st.Error)
		if err := w.orders.UpdateOrderPaymentStatus(ctx, "", rec.OrderID, "failed"); err != nil {
			return fmt.Errorf("mark order payment failed: %w", err)
		}
	}
	return nil
}
