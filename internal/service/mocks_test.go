package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/plushmarket/storefront/internal/model"
)

var errRemote = errors.New("store unavailable")

// --- catalog ---

type mockCatalogClient struct {
	products map[int64]model.Product
	nextID   int64
}

func newMockCatalogClient() *mockCatalogClient {
	return &mockCatalogClient{products: make(map[int64]model.Product)}
}

func (m *mockCatalogClient) put(p model.Product) {
	m.products[p.ID] = p
}

func (m *mockCatalogClient) ListProducts(_ context.Context) ([]model.Product, error) {
	var products []model.Product
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

func (m *mockCatalogClient) GetProduct(_ context.Context, id int64) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, errRemote
	}
	return &p, nil
}

func (m *mockCatalogClient) AddProduct(_ context.Context, _ string, p model.Product) (int64, error) {
	m.nextID++
	p.ID = m.nextID
	m.products[p.ID] = p
	return p.ID, nil
}

func (m *mockCatalogClient) UpdateProduct(_ context.Context, _ string, p model.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockCatalogClient) RemoveProduct(_ context.Context, _ string, id int64) error {
	delete(m.products, id)
	return nil
}

// --- cart ---

type mockCartClient struct {
	carts map[string][]model.CartLine
}

func newMockCartClient() *mockCartClient {
	return &mockCartClient{carts: make(map[string][]model.CartLine)}
}

func (m *mockCartClient) GetCart(_ context.Context, caller string) ([]model.CartLine, error) {
	return m.carts[caller], nil
}

func (m *mockCartClient) AddToCart(_ context.Context, caller string, line model.CartLine) error {
	lines := m.carts[caller]
	for i := range lines {
		if lines[i].ProductID == line.ProductID && lines[i].Variant == line.Variant {
			lines[i].Quantity += line.Quantity
			return nil
		}
	}
	m.carts[caller] = append(lines, line)
	return nil
}

func (m *mockCartClient) RemoveFromCart(_ context.Context, caller string, productID int64) error {
	lines := m.carts[caller]
	var kept []model.CartLine
	for _, l := range lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	m.carts[caller] = kept
	return nil
}

// --- orders ---

type mockOrderClient struct {
	orders          map[int64]*model.Order
	nextID          int64
	failCreate      bool
	createCalls     int
	statuses        map[int64]string
	paymentStatuses map[int64]string
}

func newMockOrderClient() *mockOrderClient {
	return &mockOrderClient{
		orders:          make(map[int64]*model.Order),
		statuses:        make(map[int64]string),
		paymentStatuses: make(map[int64]string),
	}
}

func (m *mockOrderClient) CreateOrder(_ context.Context, caller, address string, items []model.CartLine, total int64) (int64, error) {
	m.createCalls++
	if m.failCreate {
		return 0, errRemote
	}
	m.nextID++
	m.orders[m.nextID] = &model.Order{
		ID: m.nextID, UserID: caller, ShippingAddress: address,
		Items: items, Total: total, PaymentStatus: "unpaid",
	}
	return m.nextID, nil
}

func (m *mockOrderClient) GetOrder(_ context.Context, _ string, id int64) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return o, nil
}

func (m *mockOrderClient) ListMyOrders(_ context.Context, caller string) ([]model.Order, error) {
	var orders []model.Order
	for _, o := range m.orders {
		if o.UserID == caller {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (m *mockOrderClient) ListAllOrders(_ context.Context, _ string) ([]model.Order, error) {
	var orders []model.Order
	for _, o := range m.orders {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (m *mockOrderClient) UpdateOrderStatus(_ context.Context, _ string, orderID int64, status string) error {
	m.statuses[orderID] = status
	return nil
}

func (m *mockOrderClient) UpdateOrderPaymentStatus(_ context.Context, _ string, orderID int64, paymentStatus string) error {
	m.paymentStatuses[orderID] = paymentStatus
	return nil
}

// --- payments ---

type mockPaymentClient struct {
	configured         bool
	failConfigCheck    bool
	sessionURL         string
	failCreateSession  bool
	createSessionCalls int
	lastItems          []model.ShoppingItem
	status             model.SessionStatus
	statusCalls        int
	savedConfig        *model.PaymentConfiguration
}

func (m *mockPaymentClient) IsPaymentConfigured(_ context.Context) (bool, error) {
	if m.failConfigCheck {
		return false, errRemote
	}
	return m.configured, nil
}

func (m *mockPaymentClient) SetPaymentConfiguration(_ context.Context, _ string, cfg model.PaymentConfiguration) error {
	m.savedConfig = &cfg
	m.configured = true
	return nil
}

func (m *mockPaymentClient) CreateCheckoutSession(_ context.Context, _ string, items []model.ShoppingItem, _, _ string) (string, error) {
	m.createSessionCalls++
	if m.failCreateSession {
		return "", errRemote
	}
	m.lastItems = items
	return m.sessionURL, nil
}

func (m *mockPaymentClient) GetSessionStatus(_ context.Context, _ string) (model.SessionStatus, error) {
	m.statusCalls++
	if m.status == nil {
		return nil, errRemote
	}
	return m.status, nil
}

// --- submissions ---

type mockSubmissionClient struct {
	subs        map[int64]*model.SellerProductSubmission
	nextID      int64
	decideCalls int
}

func newMockSubmissionClient() *mockSubmissionClient {
	return &mockSubmissionClient{subs: make(map[int64]*model.SellerProductSubmission)}
}

func (m *mockSubmissionClient) SubmitProduct(_ context.Context, caller string, p model.Product) (int64, error) {
	m.nextID++
	m.subs[m.nextID] = &model.SellerProductSubmission{
		ID: m.nextID, Seller: caller, Product: p, ApprovalStatus: model.ApprovalPending,
	}
	return m.nextID, nil
}

func (m *mockSubmissionClient) DecideSubmission(_ context.Context, _ string, submissionID int64, status model.ApprovalStatus) error {
	m.decideCalls++
	sub, ok := m.subs[submissionID]
	if !ok {
		return errRemote
	}
	sub.ApprovalStatus = status
	return nil
}

func (m *mockSubmissionClient) ListMySubmissions(_ context.Context, caller string) ([]model.SellerProductSubmission, error) {
	var subs []model.SellerProductSubmission
	for _, sub := range m.subs {
		if sub.Seller == caller {
			subs = append(subs, *sub)
		}
	}
	return subs, nil
}

func (m *mockSubmissionClient) ListSellerSubmissions(ctx context.Context, _, seller string) ([]model.SellerProductSubmission, error) {
	return m.ListMySubmissions(ctx, seller)
}

func (m *mockSubmissionClient) ListAllSubmissions(_ context.Context, _ string) ([]model.SellerProductSubmission, error) {
	var subs []model.SellerProductSubmission
	for _, sub := range m.subs {
		subs = append(subs, *sub)
	}
	return subs, nil
}

// --- identity ---

type mockIdentityClient struct {
	roles    map[string]model.Role
	profiles map[string]model.UserProfile
}

func newMockIdentityClient() *mockIdentityClient {
	return &mockIdentityClient{roles: make(map[string]model.Role), profiles: make(map[string]model.UserProfile)}
}

func (m *mockIdentityClient) GetCallerRole(_ context.Context, caller string) (model.Role, error) {
	if role, ok := m.roles[caller]; ok {
		return role, nil
	}
	return model.RoleUser, nil
}

func (m *mockIdentityClient) GetProfile(_ context.Context, caller string) (*model.UserProfile, error) {
	p, ok := m.profiles[caller]
	if !ok {
		return nil, errRemote
	}
	return &p, nil
}

func (m *mockIdentityClient) SaveProfile(_ context.Context, caller string, profile model.UserProfile) error {
	m.profiles[caller] = profile
	return nil
}

// --- checkout attempts ---

type mockAttemptRepo struct {
	attempts map[uuid.UUID]model.CheckoutAttempt
}

func newMockAttemptRepo() *mockAttemptRepo {
	return &mockAttemptRepo{attempts: make(map[uuid.UUID]model.CheckoutAttempt)}
}

func (m *mockAttemptRepo) Create(_ context.Context, attempt *model.CheckoutAttempt) error {
	attempt.CreatedAt = time.Now()
	attempt.UpdatedAt = attempt.CreatedAt
	m.attempts[attempt.ID] = *attempt
	return nil
}

func (m *mockAttemptRepo) GetByID(_ context.Context, id uuid.UUID) (*model.CheckoutAttempt, error) {
	a, ok := m.attempts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *mockAttemptRepo) Update(_ context.Context, attempt *model.CheckoutAttempt) error {
	attempt.UpdatedAt = time.Now()
	m.attempts[attempt.ID] = *attempt
	return nil
}

func (m *mockAttemptRepo) ListByUserID(_ context.Context, userID string) ([]model.CheckoutAttempt, error) {
	var attempts []model.CheckoutAttempt
	for _, a := range m.attempts {
		if a.UserID == userID {
			attempts = append(attempts, a)
		}
	}
	return attempts, nil
}
