package checkout

import (
	"context"
	"net/url"
	"time"
)

// API is the slice of the backend client the checkout service depends on.
type API interface {
	Get(ctx context.Context, path string, result any) error
	Post(ctx context.Context, path string, body, result any) error
	Put(ctx context.Context, path string, body, result any) error
}

// OrderStatus is the backend's order lifecycle value, passed through for display.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderItem is one purchased line as the backend reports it.
type OrderItem struct {
	ProductID string  `json:"productId"`
	VariantID string  `json:"variantId,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is the backend's order record.
type Order struct {
	ID             string      `json:"id"`
	Status         OrderStatus `json:"status"`
	Items          []OrderItem `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	Shipping       float64     `json:"shipping"`
	Tax            float64     `json:"tax"`
	Discount       float64     `json:"discount,omitempty"`
	Total          float64     `json:"total"`
	Currency       string      `json:"currency"`
	GatewayOrderID string      `json:"gatewayOrderId,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// PlaceOrderRequest carries the checkout form: shipping address plus an
// optional coupon code. Items come from the server-side cart.
type PlaceOrderRequest struct {
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	CouponCode  string `json:"couponCode,omitempty"`
}

// Service exposes the order operations of the backend.
type Service struct {
	client API
}

// NewService creates a checkout service.
func NewService(client API) (*Service, error) {
	if client == nil {
		return nil, ErrMissingClient
	}
	return &Service{client: client}, nil
}

// PlaceOrder creates an order from the current cart and returns it with the
// payment gateway's order id attached.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (Order, error) {
	var order Order
	if err := s.client.Post(ctx, "/orders", req, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// VerifyPayment forwards the gateway's correlation identifiers to the
// backend. Signature verification happens entirely server-side.
func (s *Service) VerifyPayment(ctx context.Context, gatewayOrderID, paymentID, signature string) (Order, error) {
	req := map[string]string{
		"razorpayOrderId":   gatewayOrderID,
		"razorpayPaymentId": paymentID,
		"razorpaySignature": signature,
	}
	var order Order
	if err := s.client.Post(ctx, "/orders/verify-payment", req, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// Orders lists the current user's orders.
func (s *Service) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := s.client.Get(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches one order by id.
func (s *Service) Order(ctx context.Context, id string) (Order, error) {
	var order Order
	if err := s.client.Get(ctx, "/orders/"+url.PathEscape(id), &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// CancelOrder cancels a pending order.
func (s *Service) CancelOrder(ctx context.Context, id string) (Order, error) {
	var order Order
	if err := s.client.Put(ctx, "/orders/"+url.PathEscape(id)+"/cancel", nil, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}
