package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// OrderStatus tracks the order lifecycle
type OrderStatus = string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus checks a status transition target is recognized
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentCashOnDelivery is the only payment method; there is no
// gateway integration.
const PaymentCashOnDelivery = "cash_on_delivery"

// Product is a catalog entry. Prices are kept in both BGN and EUR as
// the storefront displays both.
type Product struct {
	bun.BaseModel      `bun:"table:products,alias:prd"`
	ID                 uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name               string     `bun:"name,notnull" json:"name"`
	Description        string     `bun:"description" json:"description,omitempty"`
	Price              float64    `bun:"price,notnull" json:"price"`
	PriceEUR           float64    `bun:"price_eur,notnull" json:"price_eur"`
	Category           string     `bun:"category,notnull" json:"category"`
	ImageURL           string     `bun:"image_url" json:"image_url,omitempty"`
	Stock              int        `bun:"stock" json:"stock"`
	DiscountPercentage int        `bun:"discount_percentage" json:"discount_percentage"`
	CreatedAt          *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// OrderItem is a line captured at order time; the price is a snapshot,
// not a reference into the catalog.
type OrderItem struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
}

// Order is a placed order. UserID is nil for guest checkouts.
type Order struct {
	bun.BaseModel      `bun:"table:orders,alias:ord"`
	ID                 uuid.UUID   `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID             *uuid.UUID  `bun:"user_id,nullzero,type:uuid" json:"user_id,omitempty"`
	Items              []OrderItem `bun:"items,type:jsonb" json:"items"`
	Total              float64     `bun:"total,notnull" json:"total"`
	ShippingName       string      `bun:"shipping_name,notnull" json:"shipping_name"`
	ShippingPhone      string      `bun:"shipping_phone,notnull" json:"shipping_phone"`
	ShippingAddress    string      `bun:"shipping_address,notnull" json:"shipping_address"`
	ShippingCity       string      `bun:"shipping_city,notnull" json:"shipping_city"`
	ShippingPostalCode string      `bun:"shipping_postal_code" json:"shipping_postal_code,omitempty"`
	Notes              string      `bun:"notes" json:"notes,omitempty"`
	Status             OrderStatus `bun:"status,notnull" json:"status"`
	PaymentMethod      string      `bun:"payment_method,notnull" json:"payment_method"`
	CreatedAt          *time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// ComputeTotal sums the line snapshots. The server always recomputes
// the total; client-supplied totals are ignored.
func (o *Order) ComputeTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.ProductPrice * float64(item.Quantity)
	}
	return total
}

// ChatMessage is one entry in the public chat feed.
type ChatMessage struct {
	bun.BaseModel `bun:"table:chat_messages,alias:msg"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Nickname      string     `bun:"nickname,notnull" json:"nickname"`
	Message       string     `bun:"message,notnull" json:"message"`
	Timestamp     *time.Time `bun:"timestamp,nullzero,default:current_timestamp" json:"timestamp,omitempty"`
}
