package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/plushmarket/storefront/internal/model"
	"github.com/plushmarket/storefront/internal/repository"
	"github.com/plushmarket/storefront/internal/store"
)

const reconcileQueueName = "payments.reconcile"

// CheckoutService drives one checkout attempt through
// idle → order_created → session_created → redirected → completed/failed.
// Steps are strictly sequential; a failed step halts the attempt at its last
// stable state and retry is always caller-initiated.
type CheckoutService struct {
	cart     *CartService
	orders   store.OrderClient
	payments store.PaymentClient
	attempts repository.AttemptRepository
	amqpCh   *amqp.Channel

	successURL string
	cancelURL  string
	currency   string
}

func NewCheckoutService(
	cart *CartService,
	orders store.OrderClient,
	payments store.PaymentClient,
	attempts repository.AttemptRepository,
	amqpCh *amqp.Channel,
	successURL, cancelURL, currency string,
) *CheckoutService {
	return &CheckoutService{
		cart:       cart,
		orders:     orders,
		payments:   payments,
		attempts:   attempts,
		amqpCh:     amqpCh,
		successURL: successURL,
		cancelURL:  cancelURL,
		currency:   currency,
	}
}

// Begin creates the order for the caller's current cart, then a payment
// session for it, and returns the attempt holding the processor redirect URL.
// If order creation fails the attempt never leaves idle and no session is
// ever requested. If the processor is unconfigured or session creation fails,
// the order exists, the cart is untouched, and the attempt halts at
// order_created so Resume can pick it up.
func (s *CheckoutService) Begin(ctx context.Context, sess Session, address string) (*model.CheckoutAttempt, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if strings.TrimSpace(address) == "" {
		return nil, ErrMissingAddress
	}

	priced, total, err := s.cart.Get(ctx, sess)
	if err != nil {
		return nil, err
	}
	if len(priced) == 0 {
		return nil, ErrEmptyCart
	}

	attempt := &model.CheckoutAttempt{
		ID:             uuid.New(),
		UserID:         sess.Caller,
		State:          model.CheckoutIdle,
		IdempotencyKey: uuid.New(),
		Items:          s.toShoppingItems(priced),
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	items := make([]model.CartLine, 0, len(priced))
	for _, line := range priced {
		items = append(items, line.CartLine)
	}

	orderID, err := s.orders.CreateOrder(ctx, sess.Caller, address, items, total)
	if err != nil {
		s.halt(ctx, attempt, err)
		return nil, fmt.Errorf("create order: %w", err)
	}

	attempt.OrderID = orderID
	if err := s.advance(ctx, attempt, model.CheckoutOrderCreated); err != nil {
		return nil, err
	}

	if err := s.createSession(ctx, sess, attempt); err != nil {
		return attempt, err
	}
	return attempt, nil
}

// Resume retries session creation for an attempt halted at order_created,
// for example after the processor was configured. The attempt's frozen item
// snapshot is reused, so cart edits made since Begin never change what gets
// charged; a new session supersedes any earlier redirect URL.
func (s *CheckoutService) Resume(ctx context.Context, sess Session, attemptID uuid.UUID) (*model.CheckoutAttempt, error) {
	attempt, err := s.ownedAttempt(ctx, sess, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.State != model.CheckoutOrderCreated {
		return nil, ErrIllegalTransition
	}

	if err := s.createSession(ctx, sess, attempt); err != nil {
		return attempt, err
	}
	return attempt, nil
}

// createSession runs order_created → session_created over the attempt's
// frozen items. The configuration check comes first so an unconfigured
// processor surfaces as setup guidance rather than a payment failure.
func (s *CheckoutService) createSession(ctx context.Context, sess Session, attempt *model.CheckoutAttempt) error {
	configured, err := s.payments.IsPaymentConfigured(ctx)
	if err != nil {
		s.halt(ctx, attempt, err)
		return fmt.Errorf("check payment configuration: %w", err)
	}
	if !configured {
		s.halt(ctx, attempt, ErrPaymentNotConfigured)
		return ErrPaymentNotConfigured
	}

	attemptParam := "?attempt=" + attempt.ID.String()
	url, err := s.payments.CreateCheckoutSession(ctx, sess.Caller, attempt.Items, s.successURL+attemptParam, s.cancelURL+attemptParam)
	if err != nil {
		s.halt(ctx, attempt, err)
		return fmt.Errorf("create checkout session: %w", err)
	}
	if url == "" {
		s.halt(ctx, attempt, ErrSessionWithoutURL)
		return ErrSessionWithoutURL
	}

	attempt.SessionURL = url
	return s.advance(ctx, attempt, model.CheckoutSessionCreated)
}

// Resolve settles an attempt after the processor redirected the buyer back.
// Arrival alone proves nothing: the store is asked for the session's terminal
// status, which is one of exactly two shapes. A completed payment is the only
// thing that clears the cached cart.
func (s *CheckoutService) Resolve(ctx context.Context, attemptID uuid.UUID, sessionID string) (*model.CheckoutAttempt, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}
	if attempt.State.IsTerminal() {
		return attempt, nil
	}

	if attempt.State == model.CheckoutSessionCreated {
		if err := s.advance(ctx, attempt, model.CheckoutRedirected); err != nil {
			return nil, err
		}
	}
	if attempt.State != model.CheckoutRedirected {
		return nil, ErrIllegalTransition
	}

	status, err := s.payments.GetSessionStatus(ctx, sessionID)
	if err != nil {
		s.halt(ctx, attempt, err)
		return nil, fmt.Errorf("get session status: %w", err)
	}

	switch st := status.(type) {
	case model.SessionCompleted:
		s.cart.InvalidateCart(ctx, attempt.UserID)
		attempt.LastError = ""
		if err := s.advance(ctx, attempt, model.CheckoutCompleted); err != nil {
			return nil, err
		}
		s.publishReconcile(ctx, attempt, sessionID)
	case model.SessionFailed:
		attempt.LastError = st.Error
		if err := s.advance(ctx, attempt, model.CheckoutFailed); err != nil {
			return nil, err
		}
	}
	return attempt, nil
}

// SessionStatus passes the store's verdict through unchanged; callers can ask
// at any later time and always get one of the two terminal shapes.
func (s *CheckoutService) SessionStatus(ctx context.Context, sessionID string) (model.SessionStatus, error) {
	status, err := s.payments.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session status: %w", err)
	}
	return status, nil
}

func (s *CheckoutService) Attempt(ctx context.Context, sess Session, attemptID uuid.UUID) (*model.CheckoutAttempt, error) {
	return s.ownedAttempt(ctx, sess, attemptID)
}

func (s *CheckoutService) ListAttempts(ctx context.Context, sess Session) ([]model.CheckoutAttempt, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	return s.attempts.ListByUserID(ctx, sess.Caller)
}

func (s *CheckoutService) ownedAttempt(ctx context.Context, sess Session, attemptID uuid.UUID) (*model.CheckoutAttempt, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}
	if attempt.UserID != sess.Caller {
		return nil, ErrOrderAccessDenied
	}
	return attempt, nil
}

func (s *CheckoutService) advance(ctx context.Context, attempt *model.CheckoutAttempt, next model.CheckoutState) error {
	if !attempt.State.CanTransitionTo(next) {
		return ErrIllegalTransition
	}
	attempt.State = next
	if err := s.attempts.Update(ctx, attempt); err != nil {
		return fmt.Errorf("update attempt: %w", err)
	}
	return nil
}

// halt records why the attempt stopped without leaving its current state.
func (s *CheckoutService) halt(ctx context.Context, attempt *model.CheckoutAttempt, cause error) {
	attempt.LastError = cause.Error()
	_ = s.attempts.Update(ctx, attempt)
}

func (s *CheckoutService) toShoppingItems(priced []model.PricedLine) []model.ShoppingItem {
	items := make([]model.ShoppingItem, 0, len(priced))
	for _, line := range priced {
		items = append(items, model.ShoppingItem{
			ProductName:        line.Product.Name,
			ProductDescription: line.Product.Description,
			PriceInCents:       line.Product.Price,
			Quantity:           line.Quantity,
			Currency:           s.currency,
		})
	}
	return items
}

func (s *CheckoutService) publishReconcile(ctx context.Context, attempt *model.CheckoutAttempt, sessionID string) {
	if s.amqpCh == nil {
		return
	}
	msg, _ := json.Marshal(model.ReconcileMessage{
		AttemptID: attempt.ID,
		OrderID:   attempt.OrderID,
		SessionID: sessionID,
		Caller:    attempt.UserID,
	})
	_ = s.amqpCh.PublishWithContext(ctx, "", reconcileQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         msg,
		DeliveryMode: amqp.Persistent,
	})
}
