package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/plushmarket/storefront/internal/model"
)

// --- cart ---

type AddCartLineRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
	Variant   string `json:"variant"`
}

type PricedLineResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Variant   string `json:"variant"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

type CartResponse struct {
	Lines []PricedLineResponse `json:"lines"`
	Total int64                `json:"total"`
}

// --- checkout ---

type BeginCheckoutRequest struct {
	Address string `json:"address" binding:"required"`
}

type CheckoutAttemptResponse struct {
	ID          uuid.UUID `json:"id"`
	State       string    `json:"state"`
	OrderID     int64     `json:"order_id,omitempty"`
	RedirectURL string    `json:"redirect_url,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SessionStatusResponse struct {
	Status   string `json:"status"`
	Caller   string `json:"caller,omitempty"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// --- payments ---

type PaymentConfigRequest struct {
	SecretKey        string   `json:"secret_key" binding:"required"`
	AllowedCountries []string `json:"allowed_countries" binding:"required"`
}

// --- catalog / submissions ---

type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       int64    `json:"price" binding:"required,min=1"`
	Variants    []string `json:"variants"`
	Images      []string `json:"images"`
}

func (r ProductRequest) Product() model.Product {
	return model.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Variants:    r.Variants,
		Images:      r.Images,
	}
}

type DecideSubmissionRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type SubmissionResponse struct {
	ID             int64         `json:"id"`
	Seller         string        `json:"seller"`
	Product        model.Product `json:"product"`
	ApprovalStatus string        `json:"approval_status"`
}

// --- orders ---

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- profile ---

type ProfileRequest struct {
	Name string `json:"name" binding:"required"`
}
