package service

import "errors"

// Authorization: surfaced immediately, operation not attempted.
var (
	ErrNotAuthenticated = errors.New("authentication required")
	ErrNotAuthorized    = errors.New("admin role required")
)

// Validation: rejected before any remote call.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingAddress  = errors.New("shipping address is required")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidProduct  = errors.New("product needs a name and a positive price")
)

// Configuration: routed to setup, not retry.
var ErrPaymentNotConfigured = errors.New("payment processor is not configured")

// State conflict.
var (
	ErrAlreadyDecided    = errors.New("submission already has a terminal decision")
	ErrIllegalTransition = errors.New("illegal checkout state transition")
)

var (
	ErrAttemptNotFound    = errors.New("checkout attempt not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAccessDenied  = errors.New("access denied")
	ErrSessionWithoutURL  = errors.New("checkout session has no redirect url")
)
