// Package store is the typed client surface of the authoritative remote
// store. The store owns all persistence and per-operation consistency;
// this package only shapes its contract.
package store

import (
	"context"

	"github.com/plushmarket/storefront/internal/model"
)

type CatalogClient interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	AddProduct(ctx context.Context, caller string, p model.Product) (int64, error)
	UpdateProduct(ctx context.Context, caller string, p model.Product) error
	RemoveProduct(ctx context.Context, caller string, id int64) error
}

type CartClient interface {
	GetCart(ctx context.Context, caller string) ([]model.CartLine, error)
	AddToCart(ctx context.Context, caller string, line model.CartLine) error
	RemoveFromCart(ctx context.Context, caller string, productID int64) error
}

type OrderClient interface {
	CreateOrder(ctx context.Context, caller, address string, items []model.CartLine, total int64) (int64, error)
	GetOrder(ctx context.Context, caller string, id int64) (*model.Order, error)
	ListMyOrders(ctx context.Context, caller string) ([]model.Order, error)
	ListAllOrders(ctx context.Context, caller string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, caller string, orderID int64, status string) error
	UpdateOrderPaymentStatus(ctx context.Context, caller string, orderID int64, paymentStatus string) error
}

type PaymentClient interface {
	IsPaymentConfigured(ctx context.Context) (bool, error)
	SetPaymentConfiguration(ctx context.Context, caller string, cfg model.PaymentConfiguration) error
	CreateCheckoutSession(ctx context.Context, caller string, items []model.ShoppingItem, successURL, cancelURL string) (string, error)
	GetSessionStatus(ctx context.Context, sessionID string) (model.SessionStatus, error)
}

type SubmissionClient interface {
	SubmitProduct(ctx context.Context, caller string, p model.Product) (int64, error)
	DecideSubmission(ctx context.Context, caller string, submissionID int64, status model.ApprovalStatus) error
	ListMySubmissions(ctx context.Context, caller string) ([]model.SellerProductSubmission, error)
	ListSellerSubmissions(ctx context.Context, caller, seller string) ([]model.SellerProductSubmission, error)
	ListAllSubmissions(ctx context.Context, caller string) ([]model.SellerProductSubmission, error)
}

type IdentityClient interface {
	GetCallerRole(ctx context.Context, caller string) (model.Role, error)
	GetProfile(ctx context.Context, caller string) (*model.UserProfile, error)
	SaveProfile(ctx context.Context, caller string, profile model.UserProfile) error
}

// Client is the full remote store contract.
type Client interface {
	CatalogClient
	CartClient
	OrderClient
	PaymentClient
	SubmissionClient
	IdentityClient
}
