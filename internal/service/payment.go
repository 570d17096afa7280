package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/plushmarket/storefront/internal/model"
	"github.com/plushmarket/storefront/internal/store"
)

var ErrInvalidPaymentConfig = errors.New("payment configuration needs a secret key")

// PaymentService covers processor setup: whether credentials exist, and the
// admin-only operation that supplies them.
type PaymentService struct {
	payments store.PaymentClient
}

func NewPaymentService(payments store.PaymentClient) *PaymentService {
	return &PaymentService{payments: payments}
}

func (s *PaymentService) IsConfigured(ctx context.Context) (bool, error) {
	configured, err := s.payments.IsPaymentConfigured(ctx)
	if err != nil {
		return false, fmt.Errorf("check payment configuration: %w", err)
	}
	return configured, nil
}

func (s *PaymentService) Configure(ctx context.Context, sess Session, cfg model.PaymentConfiguration) error {
	if !sess.IsAdmin() {
		return ErrNotAuthorized
	}
	if cfg.SecretKey == "" {
		return ErrInvalidPaymentConfig
	}
	if err := s.payments.SetPaymentConfiguration(ctx, sess.Caller, cfg); err != nil {
		return fmt.Errorf("set payment configuration: %w", err)
	}
	return nil
}
