package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/plushmarket/storefront/internal/model"
)

const callerHeader = "X-Caller-ID"

// HTTPClient talks JSON over HTTP to the remote store. The storefront
// authenticates itself with a service token and asserts the end caller via
// a header; the store remains the authority for what that caller may do.
type HTTPClient struct {
	baseURL      string
	serviceToken string
	http         *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL, serviceToken string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:      baseURL,
		serviceToken: serviceToken,
		http:         &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path, caller string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.serviceToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceToken)
	}
	if caller != "" {
		req.Header.Set(callerHeader, caller)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &apiErr)
		return &Error{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// --- catalog ---

func (c *HTTPClient) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), "", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) AddProduct(ctx context.Context, caller string, p model.Product) (int64, error) {
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/products", caller, p, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, caller string, p model.Product) error {
	return c.do(ctx, http.MethodPut, "/products/"+strconv.FormatInt(p.ID, 10), caller, p, nil)
}

func (c *HTTPClient) RemoveProduct(ctx context.Context, caller string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/products/"+strconv.FormatInt(id, 10), caller, nil, nil)
}

// --- cart ---

func (c *HTTPClient) GetCart(ctx context.Context, caller string) ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := c.do(ctx, http.MethodGet, "/cart", caller, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *HTTPClient) AddToCart(ctx context.Context, caller string, line model.CartLine) error {
	return c.do(ctx, http.MethodPost, "/cart/items", caller, line, nil)
}

func (c *HTTPClient) RemoveFromCart(ctx context.Context, caller string, productID int64) error {
	return c.do(ctx, http.MethodDelete, "/cart/items/"+strconv.FormatInt(productID, 10), caller, nil, nil)
}

// --- orders ---

func (c *HTTPClient) CreateOrder(ctx context.Context, caller, address string, items []model.CartLine, total int64) (int64, error) {
	req := struct {
		Address string           `json:"address"`
		Items   []model.CartLine `json:"items"`
		Total   int64            `json:"total"`
	}{Address: address, Items: items, Total: total}

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", caller, req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *HTTPClient) GetOrder(ctx context.Context, caller string, id int64) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+strconv.FormatInt(id, 10), caller, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *HTTPClient) ListMyOrders(ctx context.Context, caller string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders", caller, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *HTTPClient) ListAllOrders(ctx context.Context, caller string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/admin/orders", caller, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *HTTPClient) UpdateOrderStatus(ctx context.Context, caller string, orderID int64, status string) error {
	req := struct {
		Status string `json:"status"`
	}{Status: status}
	return c.do(ctx, http.MethodPut, "/admin/orders/"+strconv.FormatInt(orderID, 10)+"/status", caller, req, nil)
}

func (c *HTTPClient) UpdateOrderPaymentStatus(ctx context.Context, caller string, orderID int64, paymentStatus string) error {
	req := struct {
		PaymentStatus string `json:"payment_status"`
	}{PaymentStatus: paymentStatus}
	return c.do(ctx, http.MethodPut, "/admin/orders/"+strconv.FormatInt(orderID, 10)+"/payment-status", caller, req, nil)
}

// --- payments ---

func (c *HTTPClient) IsPaymentConfigured(ctx context.Context) (bool, error) {
	var resp struct {
		Configured bool `json:"configured"`
	}
	if err := c.do(ctx, http.MethodGet, "/payments/configured", "", nil, &resp); err != nil {
		return false, err
	}
	return resp.Configured, nil
}

func (c *HTTPClient) SetPaymentConfiguration(ctx context.Context, caller string, cfg model.PaymentConfiguration) error {
	return c.do(ctx, http.MethodPost, "/payments/configuration", caller, cfg, nil)
}

func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, caller string, items []model.ShoppingItem, successURL, cancelURL string) (string, error) {
	req := struct {
		Items      []model.ShoppingItem `json:"items"`
		SuccessURL string               `json:"success_url"`
		CancelURL  string               `json:"cancel_url"`
	}{Items: items, SuccessURL: successURL, CancelURL: cancelURL}

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/payments/sessions", caller, req, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *HTTPClient) GetSessionStatus(ctx context.Context, sessionID string) (model.SessionStatus, error) {
	var resp struct {
		Status   string `json:"status"`
		Caller   string `json:"caller"`
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := c.do(ctx, http.MethodGet, "/payments/sessions/"+sessionID+"/status", "", nil, &resp); err != nil {
		return nil, err
	}

	switch resp.Status {
	case "completed":
		return model.SessionCompleted{Caller: resp.Caller, Response: resp.Response}, nil
	case "failed":
		return model.SessionFailed{Error: resp.Error}, nil
	default:
		return nil, fmt.Errorf("unknown session status %q", resp.Status)
	}
}

// --- submissions ---

func (c *HTTPClient) SubmitProduct(ctx context.Context, caller string, p model.Product) (int64, error) {
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/submissions", caller, p, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *HTTPClient) DecideSubmission(ctx context.Context, caller string, submissionID int64, status model.ApprovalStatus) error {
	req := struct {
		Status model.ApprovalStatus `json:"status"`
	}{Status: status}
	return c.do(ctx, http.MethodPost, "/submissions/"+strconv.FormatInt(submissionID, 10)+"/decision", caller, req, nil)
}

func (c *HTTPClient) ListMySubmissions(ctx context.Context, caller string) ([]model.SellerProductSubmission, error) {
	var subs []model.SellerProductSubmission
	if err := c.do(ctx, http.MethodGet, "/submissions/mine", caller, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *HTTPClient) ListSellerSubmissions(ctx context.Context, caller, seller string) ([]model.SellerProductSubmission, error) {
	var subs []model.SellerProductSubmission
	if err := c.do(ctx, http.MethodGet, "/submissions/seller/"+seller, caller, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *HTTPClient) ListAllSubmissions(ctx context.Context, caller string) ([]model.SellerProductSubmission, error) {
	var subs []model.SellerProductSubmission
	if err := c.do(ctx, http.MethodGet, "/submissions", caller, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// --- identity ---

func (c *HTTPClient) GetCallerRole(ctx context.Context, caller string) (model.Role, error) {
	var resp struct {
		Role model.Role `json:"role"`
	}
	if err := c.do(ctx, http.MethodGet, "/me/role", caller, nil, &resp); err != nil {
		return "", err
	}
	return resp.Role, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, caller string) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := c.do(ctx, http.MethodGet, "/me/profile", caller, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) SaveProfile(ctx context.Context, caller string, profile model.UserProfile) error {
	return c.do(ctx, http.MethodPut, "/me/profile", caller, profile, nil)
}
