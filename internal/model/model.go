package model

// Role of a caller, as reported by the remote store. The mapping is
// authoritative server-side; the storefront fetches it, never computes it.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Product is owned by the remote store. Price is in minor currency units.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Variants    []string `json:"variants"`
	Price       int64    `json:"price"`
	Images      []string `json:"images"`
}

// CartLine is one (product, variant, quantity) entry in a caller's cart.
// The cart holds at most one line per (ProductID, Variant) pair.
type CartLine struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Variant   string `json:"variant"`
}

// PricedLine is a cart line joined against the current catalog.
type PricedLine struct {
	CartLine
	Product   Product `json:"product"`
	LineTotal int64   `json:"line_total"`
}

// Order items and total are frozen at creation time; only PaymentStatus and
// the fulfillment Status change afterwards.
type Order struct {
	ID              int64      `json:"id"`
	UserID          string     `json:"user_id"`
	ShippingAddress string     `json:"shipping_address"`
	Items           []CartLine `json:"items"`
	Total           int64      `json:"total"`
	PaymentStatus   string     `json:"payment_status"`
	Status          string     `json:"status"`
}

// ShoppingItem is one payment-processor line item, one per distinct product
// in the order being paid for.
type ShoppingItem struct {
	ProductName        string `json:"product_name"`
	ProductDescription string `json:"product_description"`
	PriceInCents       int64  `json:"price_in_cents"`
	Quantity           int64  `json:"quantity"`
	Currency           string `json:"currency"`
}

// PaymentConfiguration is the processor credential set an admin supplies once.
type PaymentConfiguration struct {
	SecretKey        string   `json:"secret_key"`
	AllowedCountries []string `json:"allowed_countries"`
}

// SessionStatus is the terminal state of a checkout session as reported by
// the processor via the store. There is no pending variant: the caller either
// has not asked yet or gets one of the two shapes below.
type SessionStatus interface {
	sessionStatus()
}

// SessionCompleted carries the original caller's identity, if the store could
// recover it, and the processor's raw response payload.
type SessionCompleted struct {
	Caller   string `json:"caller,omitempty"`
	Response string `json:"response"`
}

// SessionFailed carries the processor's error description.
type SessionFailed struct {
	Error string `json:"error"`
}

func (SessionCompleted) sessionStatus() {}
func (SessionFailed) sessionStatus()    {}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Terminal reports whether no further approval transition is permitted.
func (s ApprovalStatus) Terminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// SellerProductSubmission is a candidate product awaiting moderation.
// Once approved or rejected it never changes again.
type SellerProductSubmission struct {
	ID             int64          `json:"id"`
	Seller         string         `json:"seller"`
	Product        Product        `json:"product"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
}

// UserProfile is the caller-editable profile held by the store.
type UserProfile struct {
	Name string `json:"name"`
}
