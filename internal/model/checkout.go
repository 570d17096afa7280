package model

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutState is the position of one checkout attempt in the
// order/payment pipeline.
type CheckoutState string

const (
	CheckoutIdle           CheckoutState = "idle"
	CheckoutOrderCreated   CheckoutState = "order_created"
	CheckoutSessionCreated CheckoutState = "session_created"
	CheckoutRedirected     CheckoutState = "redirected"
	CheckoutCompleted      CheckoutState = "completed"
	CheckoutFailed         CheckoutState = "failed"
)

var checkoutTransitions = map[CheckoutState][]CheckoutState{
	CheckoutIdle:           {CheckoutOrderCreated},
	CheckoutOrderCreated:   {CheckoutSessionCreated},
	CheckoutSessionCreated: {CheckoutRedirected},
	CheckoutRedirected:     {CheckoutCompleted, CheckoutFailed},
}

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutCompleted || s == CheckoutFailed
}

func (s CheckoutState) String() string { return string(s) }

// CanTransitionTo reports whether next is a legal successor of s.
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	for _, allowed := range checkoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CheckoutAttempt is the persisted "current state + context" of one run
// through the checkout pipeline. It is orchestration state only; the true
// terminal payment outcome always comes from the store.
type CheckoutAttempt struct {
	ID             uuid.UUID
	UserID         string
	State          CheckoutState
	OrderID        int64
	SessionURL     string
	IdempotencyKey uuid.UUID
	// Items is the priced snapshot frozen when the attempt was created.
	// Payment sessions are always built from it, never from the live cart.
	Items     []ShoppingItem
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReconcileMessage asks the payment worker to verify a session's terminal
// status with the store and finalize the order's payment status.
type ReconcileMessage struct {
	AttemptID uuid.UUID `json:"attempt_id"`
	OrderID   int64     `json:"order_id"`
	SessionID string    `json:"session_id"`
	Caller    string    `json:"caller"`
}
